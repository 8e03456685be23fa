package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFileSystem_Implements_FileSystem(t *testing.T) {
	var _ FileSystem = DefaultFileSystem{}
}

func TestDefaultFileSystem_ReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "pyvenv.cfg")
	expectedContent := "home = C:\\msys64\\mingw64\\bin\n"

	err := os.WriteFile(tmpFile, []byte(expectedContent), 0644)
	require.NoError(t, err)

	fs := DefaultFileSystem{}
	content, err := fs.ReadFile(tmpFile)

	assert.NoError(t, err)
	assert.Equal(t, expectedContent, content)
}

func TestDefaultFileSystem_ReadFile_NonExistent(t *testing.T) {
	fs := DefaultFileSystem{}
	_, err := fs.ReadFile("/nonexistent/file/path.txt")

	assert.Error(t, err)
}

func TestDefaultFileSystem_Exists(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "activate")

	fs := DefaultFileSystem{}
	assert.False(t, fs.Exists(tmpFile))

	err := os.WriteFile(tmpFile, []byte("# activation script"), 0644)
	require.NoError(t, err)

	assert.True(t, fs.Exists(tmpFile))
}

func TestDefaultFileSystem_WriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "output.txt")
	content := "command = python -m venv target"

	fs := DefaultFileSystem{}
	err := fs.WriteFile(tmpFile, content)

	require.NoError(t, err)

	data, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDefaultFileSystem_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "roundtrip.txt")
	originalContent := "home = old\nexecutable = old\ncommand = old\n"

	fs := DefaultFileSystem{}

	err := fs.WriteFile(tmpFile, originalContent)
	require.NoError(t, err)

	readContent, err := fs.ReadFile(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, originalContent, readContent)
}
