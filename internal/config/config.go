package config

import (
	"fmt"
	"os"

	"github.com/axcore/tartube-sub001/internal/venv"
	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. All paths except Root are POSIX-style and
// relative to Root; the working root is always an explicit input, never taken
// from an inherited working directory.
type Config struct {
	Root    string `yaml:"root"`
	VenvDir string `yaml:"venv_dir"`
	BinDir  string `yaml:"bin_dir"`
	Python  string `yaml:"python"`
	Cygpath string `yaml:"cygpath"`
}

// Default returns the settings for a stock Tartube MSYS2 install.
func Default() Config {
	return Config{
		Root:    ".",
		VenvDir: venv.DefaultDir,
		BinDir:  venv.DefaultBinDir,
		Python:  venv.DefaultPython,
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}

	return cfg, nil
}

// Venv builds the virtual environment description this config points at.
func (c Config) Venv() *venv.VirtualEnv {
	var opts []venv.Option
	if c.BinDir != "" {
		opts = append(opts, venv.WithBinDir(c.BinDir))
	}
	if c.Python != "" {
		opts = append(opts, venv.WithPython(c.Python))
	}

	return venv.New(c.VenvDir, opts...)
}
