// Package cluster resolves version/name cluster specs to rule-file paths.
package cluster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const hbaFileName = "pg_hba.conf"

// Cluster is a resolved database cluster under the configured root.
type Cluster struct {
	Version string
	Name    string
	Dir     string
}

// ID returns the "version/name" form used in flags and allowlists.
func (c Cluster) ID() string {
	return c.Version + "/" + c.Name
}

// HBAPath returns the path of the cluster's authentication rule file.
func (c Cluster) HBAPath() string {
	return filepath.Join(c.Dir, hbaFileName)
}

// Resolve parses a "version/name" spec and verifies that the cluster
// directory exists under root.
func Resolve(root, spec string) (Cluster, error) {
	version, name, ok := strings.Cut(spec, "/")
	if !ok || !validPart(version) || !validPart(name) {
		return Cluster{}, fmt.Errorf("malformed cluster %q: want <version>/<name>", spec)
	}

	dir := filepath.Join(root, version, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Cluster{}, fmt.Errorf("cluster %s does not exist under %s", spec, root)
	}

	return Cluster{Version: version, Name: name, Dir: dir}, nil
}

// validPart rejects empty components and anything that could escape the
// cluster root.
func validPart(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`)
}
