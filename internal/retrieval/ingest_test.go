package retrieval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeMaterial(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMaterials_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeMaterial(t, dir, "notes.md", "Photosynthesis converts light to energy.\n\nChlorophyll absorbs red and blue light.")

	docs, err := LoadMaterials([]string{path}, 50)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	require.Equal(t, "notes.md", docs[0].Metadata["source"])
	require.Equal(t, "1", docs[0].Metadata["chunk"])
	require.Equal(t, "2", docs[1].Metadata["chunk"])
	require.Contains(t, docs[0].Text, "Photosynthesis")
}

func TestLoadMaterials_DirectoryFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeMaterial(t, dir, "a.txt", "text notes")
	writeMaterial(t, dir, "b.md", "markdown notes")
	writeMaterial(t, dir, "c.pdf", "binary junk")

	docs, err := LoadMaterials([]string{dir}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	sources := map[string]bool{}
	for _, d := range docs {
		sources[d.Metadata["source"]] = true
	}
	require.True(t, sources["a.txt"])
	require.True(t, sources["b.md"])
	require.False(t, sources["c.pdf"])
}

func TestLoadMaterials_ExplicitFileIgnoresExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeMaterial(t, dir, "notes.text", "explicitly named files always load")

	docs, err := LoadMaterials([]string{path}, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestLoadMaterials_MissingPath(t *testing.T) {
	_, err := LoadMaterials([]string{filepath.Join(t.TempDir(), "nope.md")}, 0)
	require.Error(t, err)
}
