package serializer_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-http-server/consolebank/serializer"
	"github.com/stretchr/testify/require"
)

type document struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

func TestFileSerializer(t *testing.T) {
	dir := t.TempDir()
	jsonFilePath := filepath.Join(dir, "doc.json")
	doc1 := document{Name: "ledger", Lines: []string{"a", "b"}}

	err := serializer.WriteJSONToFile(doc1, filepath.Join(dir, "not_contains", "trash_test.json"))
	require.Error(t, err)
	err = serializer.WriteJSONToFile(doc1, jsonFilePath)
	require.NoError(t, err)

	doc2 := document{}
	err = serializer.ReadJSONFromFile(jsonFilePath, &doc2)
	require.NoError(t, err)
	require.Equal(t, doc1, doc2)

	info, err := os.Stat(jsonFilePath)
	require.NoError(t, err)
	require.Equal(t, serializer.FileMode, info.Mode().Perm())
}

func TestFileSerializerOverwrite(t *testing.T) {
	dir := t.TempDir()
	jsonFilePath := filepath.Join(dir, "doc.json")

	require.NoError(t, serializer.WriteJSONToFile(document{Name: "long name", Lines: []string{"x", "y", "z"}}, jsonFilePath))
	require.NoError(t, serializer.WriteJSONToFile(document{Name: "short"}, jsonFilePath))

	got := document{}
	require.NoError(t, serializer.ReadJSONFromFile(jsonFilePath, &got))
	require.Equal(t, "short", got.Name)
	require.Empty(t, got.Lines)

	// no temporary files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestReadMissingFile(t *testing.T) {
	err := serializer.ReadJSONFromFile(filepath.Join(t.TempDir(), "missing.json"), &document{})
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadMalformedFile(t *testing.T) {
	jsonFilePath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(jsonFilePath, []byte("{not json"), 0o600))

	err := serializer.ReadJSONFromFile(jsonFilePath, &document{})
	require.ErrorIs(t, err, serializer.ErrMalformedJSON)
	require.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestReadDirectory(t *testing.T) {
	err := serializer.ReadJSONFromFile(t.TempDir(), &document{})
	require.Error(t, err)
	require.NotErrorIs(t, err, serializer.ErrMalformedJSON)
}
