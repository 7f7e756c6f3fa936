package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	// No config file under a fresh HOME falls back to built-in defaults.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/etc/postgresql", cfg.Clusters.Root)
	assert.Equal(t, []string{"*/*"}, cfg.Clusters.Allow)
	assert.Equal(t, 16, cfg.Lint.WideIPv4Prefix)
	assert.Equal(t, 48, cfg.Lint.WideIPv6Prefix)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`clusters:
  root: /var/lib/pgsql
  allow: ["17/*", "16/main"]
lint:
  wide_ipv4_prefix: 8
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/pgsql", cfg.Clusters.Root)
	assert.Equal(t, []string{"17/*", "16/main"}, cfg.Clusters.Allow)
	assert.Equal(t, 8, cfg.Lint.WideIPv4Prefix)
	// Omitted keys keep their defaults.
	assert.Equal(t, 48, cfg.Lint.WideIPv6Prefix)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clusters: ["), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Clusters.Root = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Clusters.Allow = nil
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Lint.WideIPv4Prefix = 33
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Lint.WideIPv6Prefix = -1
	assert.Error(t, cfg.Validate())
}
