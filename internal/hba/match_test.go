package hba

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadString writes content to a temp file and loads it.
func loadString(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pg_hba.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	store, err := Load(path)
	require.NoError(t, err)
	return store
}

func TestAuthorizes_LocalTrust(t *testing.T) {
	store := loadString(t, "local all all trust\n")

	assert.True(t, store.Authorizes(Query{Database: "postgres", Role: "admin", Method: "trust"}))
	assert.True(t, store.Authorizes(Query{Database: "other", Role: "nobody", Method: "trust"}))
	assert.False(t, store.Authorizes(Query{Database: "postgres", Role: "admin", Method: "md5"}))
}

func TestAuthorizes_HostNetwork(t *testing.T) {
	store := loadString(t, "host test nobody 10.0.0.0/24 md5\n")

	inside := Query{Addr: mustIP(t, "10.0.0.5"), Database: "test", Role: "nobody", Method: "md5"}
	assert.True(t, store.Authorizes(inside))

	outside := inside
	outside.Addr = mustIP(t, "10.0.1.5")
	assert.False(t, store.Authorizes(outside))

	wrongDB := inside
	wrongDB.Database = "prod"
	assert.False(t, store.Authorizes(wrongDB))

	wrongRole := inside
	wrongRole.Role = "admin"
	assert.False(t, store.Authorizes(wrongRole))
}

func TestAuthorizes_Wildcards(t *testing.T) {
	store := loadString(t, "host all all 10.0.0.0/8 md5\n")

	q := Query{Addr: mustIP(t, "10.1.2.3"), Database: "anything", Role: "anyone", Method: "md5"}
	assert.True(t, store.Authorizes(q))

	literal := loadString(t, "host mydb all 10.0.0.0/8 md5\n")
	q.Database = "mydb"
	assert.True(t, literal.Authorizes(q))
	q.Database = "otherdb"
	assert.False(t, literal.Authorizes(q))
}

func TestAuthorizes_MethodExactness(t *testing.T) {
	store := loadString(t, "host all all 10.0.0.0/8 md5\n")
	q := Query{Addr: mustIP(t, "10.0.0.1"), Database: "db", Role: "r"}

	q.Method = "md5"
	assert.True(t, store.Authorizes(q))
	q.Method = "md5 sameuser"
	assert.False(t, store.Authorizes(q))
}

func TestAuthorizes_SSLDirections(t *testing.T) {
	store := loadString(t, "hostssl all all 10.0.0.0/8 md5\n")
	q := Query{Addr: mustIP(t, "10.0.0.1"), Database: "db", Role: "r", Method: "md5"}

	// A plain query accepts any host kind, hostssl included.
	q.ForceSSL = false
	assert.True(t, store.Authorizes(q))

	// An SSL-requiring query is satisfied only by hostssl.
	q.ForceSSL = true
	assert.True(t, store.Authorizes(q))

	plain := loadString(t, "host all all 10.0.0.0/8 md5\nhostnossl all all 10.0.0.0/8 md5\n")
	q.ForceSSL = true
	assert.False(t, plain.Authorizes(q))
	q.ForceSSL = false
	assert.True(t, plain.Authorizes(q))
}

func TestAuthorizes_LocalVsNetwork(t *testing.T) {
	store := loadString(t, "local all all md5\nhost all all 0.0.0.0/0 md5\n")

	local := Query{Database: "db", Role: "r", Method: "md5"}
	entry, ok := store.Match(local)
	require.True(t, ok)
	assert.Equal(t, Local, entry.Kind)

	network := Query{Addr: mustIP(t, "10.0.0.1"), Database: "db", Role: "r", Method: "md5"}
	entry, ok = store.Match(network)
	require.True(t, ok)
	assert.Equal(t, Host, entry.Kind)

	// With only the other transport's rules, no match either way.
	localOnly := loadString(t, "local all all md5\n")
	assert.False(t, localOnly.Authorizes(network))
	hostOnly := loadString(t, "host all all 0.0.0.0/0 md5\n")
	assert.False(t, hostOnly.Authorizes(local))
}

func TestAuthorizes_FamilyMismatch(t *testing.T) {
	store := loadString(t, "host all all ::/0 md5\n")
	q := Query{Addr: mustIP(t, "10.0.0.5"), Database: "db", Role: "r", Method: "md5"}
	assert.False(t, store.Authorizes(q))
}

func TestAuthorizes_CommentsNeverMatch(t *testing.T) {
	store := loadString(t, "# host all all 0.0.0.0/0 trust\n\nlocal all all trust\n")
	require.Len(t, store.Entries, 3)

	q := Query{Addr: mustIP(t, "10.0.0.5"), Database: "db", Role: "r", Method: "trust"}
	assert.False(t, store.Authorizes(q))
	assert.True(t, store.Authorizes(Query{Database: "db", Role: "r", Method: "trust"}))
}
