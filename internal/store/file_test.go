package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkessler/stemtutor/internal/store"
)

func TestFileStore_ReadMissing(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	var out []string
	err = fs.Read("nothing", &out)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_ReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	var out map[string]any
	err = fs.Read("broken", &out)
	// Corrupt and missing are deliberately the same failure.
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_RoundTrip(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := []map[string]string{{"id": "a"}, {"id": "b"}}
	require.NoError(t, fs.Write("things", in))

	var out []map[string]string
	require.NoError(t, fs.Read("things", &out))
	assert.Equal(t, in, out)
}

func TestFileStore_DeterministicFormatting(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	require.NoError(t, err)

	value := map[string]any{"zebra": 1, "apple": 2, "mango": []string{"x"}}
	require.NoError(t, fs.Write("fmt", value))
	first, err := os.ReadFile(filepath.Join(dir, "fmt.json"))
	require.NoError(t, err)

	require.NoError(t, fs.Write("fmt", value))
	second, err := os.ReadFile(filepath.Join(dir, "fmt.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated writes of the same value must produce identical bytes")
	assert.Contains(t, string(first), "  \"apple\"", "documents are indented with two spaces")
}

func TestFileStore_List(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, fs.Write("flashcards", []string{}))
	require.NoError(t, fs.Write("subjects", []string{}))

	names, err := fs.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"flashcards", "subjects"}, names)
}
