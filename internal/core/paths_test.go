package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLogFiles(t *testing.T) {
	t.Run("Removes all venvfix log files", func(t *testing.T) {
		tmpDir := t.TempDir()

		oldDefaultPaths := defaultPaths
		defer func() {
			defaultPaths = oldDefaultPaths
		}()

		defaultPaths = &Paths{
			DataDir: tmpDir,
		}

		logFile1 := filepath.Join(tmpDir, "venvfix.log")
		logFile2 := filepath.Join(tmpDir, "venvfix.1234.log")
		otherFile := filepath.Join(tmpDir, "journal.db")

		require.NoError(t, os.WriteFile(logFile1, []byte("log1"), 0644))
		require.NoError(t, os.WriteFile(logFile2, []byte("log2"), 0644))
		require.NoError(t, os.WriteFile(otherFile, []byte("db"), 0644))

		err := CleanLogFiles()
		require.NoError(t, err)

		_, err = os.Stat(logFile1)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(logFile2)
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(otherFile)
		assert.NoError(t, err, "journal database should not be removed")
	})

	t.Run("Empty data dir is fine", func(t *testing.T) {
		tmpDir := t.TempDir()

		oldDefaultPaths := defaultPaths
		defer func() {
			defaultPaths = oldDefaultPaths
		}()

		defaultPaths = &Paths{
			DataDir: tmpDir,
		}

		assert.NoError(t, CleanLogFiles())
	})
}
