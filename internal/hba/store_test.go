package hba

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PreservesOrderAndRaw(t *testing.T) {
	content := "# leading comment\nlocal all all trust\nhost test nobody 10.0.0.0/24 md5\n"
	path := filepath.Join(t.TempDir(), "pg_hba.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store, err := Load(path)
	require.NoError(t, err)
	require.Len(t, store.Entries, 3)
	assert.Equal(t, path, store.Path)

	assert.Equal(t, Comment, store.Entries[0].Kind)
	assert.Equal(t, "# leading comment", store.Entries[0].Raw)
	assert.Equal(t, Local, store.Entries[1].Kind)
	assert.Equal(t, "local all all trust", store.Entries[1].Raw)
	assert.Equal(t, Host, store.Entries[2].Kind)
	assert.Equal(t, "host test nobody 10.0.0.0/24 md5", store.Entries[2].Raw)
}

func TestLoad_WholeFileFailFast(t *testing.T) {
	content := "local all all trust\nhost all all 10.0.0.0/24 scram-sha-256\nlocal all all md5\n"
	path := filepath.Join(t.TempDir(), "pg_hba.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store, err := Load(path)
	assert.Nil(t, store, "no partial store on a parse failure")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidMethod)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.Equal(t, 2, loadErr.Line)
	assert.Equal(t, "host all all 10.0.0.0/24 scram-sha-256", loadErr.Raw)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.conf")
	store, err := Load(path)
	assert.Nil(t, store)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, path, loadErr.Path)
	assert.Zero(t, loadErr.Line)
	require.ErrorIs(t, err, os.ErrNotExist)
}
