package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/axcore/tartube-sub001/internal/venv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, venv.DefaultDir, cfg.VenvDir)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "venvfix.yaml")

	content := `root: /opt/tartube
venv_dir: ../custom-venv
cygpath: /usr/bin/cygpath
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/tartube", cfg.Root)
	assert.Equal(t, "../custom-venv", cfg.VenvDir)
	assert.Equal(t, "/usr/bin/cygpath", cfg.Cygpath)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, venv.DefaultBinDir, cfg.BinDir)
	assert.Equal(t, venv.DefaultPython, cfg.Python)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "venvfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Venv(t *testing.T) {
	cfg := Default()
	cfg.VenvDir = "../custom-venv"

	v := cfg.Venv()
	assert.Equal(t, "../custom-venv", v.Dir())
	assert.Equal(t, venv.DefaultBinDir, v.BinDir())
	assert.Equal(t, venv.DefaultPython, v.Python())
}

func TestConfig_Venv_EmptyFieldsKeepDefaults(t *testing.T) {
	v := Config{}.Venv()

	assert.Equal(t, venv.DefaultDir, v.Dir())
	assert.Equal(t, venv.DefaultBinDir, v.BinDir())
	assert.Equal(t, venv.DefaultPython, v.Python())
}
