package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "nested", "state.json"))
	require.NoError(t, err)
	return f
}

func TestFileRoundTrip(t *testing.T) {
	f := newTestFile(t)

	_, ok, err := f.Get(KeyAuth)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, f.Set(KeyAuth, "token-value"))
	require.NoError(t, f.Set(KeyCart, `{"items":[]}`))

	val, ok, err := f.Get(KeyAuth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-value", val)

	require.NoError(t, f.Set(KeyAuth, "replaced"))
	val, _, err = f.Get(KeyAuth)
	require.NoError(t, err)
	assert.Equal(t, "replaced", val)
}

func TestFileDelete(t *testing.T) {
	f := newTestFile(t)

	require.NoError(t, f.Set(KeyAuth, "token-value"))
	require.NoError(t, f.Delete(KeyAuth))

	_, ok, err := f.Get(KeyAuth)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a key that is not there is fine.
	require.NoError(t, f.Delete("absent"))
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	first, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(KeyAuth, "persisted"))

	second, err := NewFile(path)
	require.NoError(t, err)
	val, ok, err := second.Get(KeyAuth)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", val)
}

func TestFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Set(KeyAuth, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileRejectsCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, _, err = f.Get(KeyAuth)
	assert.Error(t, err)
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get(KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(KeyCart, "value"))
	val, ok, err := m.Get(KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	require.NoError(t, m.Delete(KeyCart))
	_, ok, err = m.Get(KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)
}
