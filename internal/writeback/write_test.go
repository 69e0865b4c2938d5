package writeback

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/vitrine/internal/content"
)

func tempFile(t *testing.T, data string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "write-test-*")
	require.NoError(t, err)
	_, err = f.WriteString(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestWriteFile_Replace(t *testing.T) {
	path := tempFile(t, `{"old":true}`)
	require.NoError(t, WriteFile(path, []byte(`{"new":true}`)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"new":true}`, string(got))
}

func TestWriteFile_PreservesPermissions(t *testing.T) {
	path := tempFile(t, "content")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFile_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin", "content.json")
	require.NoError(t, WriteFile(path, []byte("{}")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	tree := content.Object{"sectionOrder": content.List{content.String("hero")}, "hero": content.Object{"title": content.String("Hi")}}

	require.NoError(t, Save(path, tree))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := content.Decode(data)
	require.NoError(t, err)
	assert.True(t, content.Equal(tree, back))

	err = Save(path, content.List{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	data2, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, data2, "invalid documents are not written")
}
