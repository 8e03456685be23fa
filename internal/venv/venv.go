package venv

import "path/filepath"

// Default relative locations for a Tartube MSYS2 install. All of these are
// POSIX-style paths resolved against the working root, matching the layout
// the installer produces.
const (
	DefaultDir    = "../ytdl-venv"
	DefaultBinDir = "../mingw64/bin"
	DefaultPython = "../mingw64/bin/python3.exe"
)

// VirtualEnv describes a Python virtual environment by the relative paths
// recorded inside it: the environment directory itself, the bin directory of
// the interpreter that created it, and the interpreter executable.
type VirtualEnv struct {
	dir    string
	binDir string
	python string
}

type Option = func(*VirtualEnv)

func WithBinDir(path string) Option {
	return func(v *VirtualEnv) {
		v.binDir = path
	}
}

func WithPython(path string) Option {
	return func(v *VirtualEnv) {
		v.python = path
	}
}

// New creates a VirtualEnv rooted at dir. An empty dir selects the default
// Tartube location.
func New(dir string, opts ...Option) *VirtualEnv {
	if dir == "" {
		dir = DefaultDir
	}

	v := &VirtualEnv{
		dir:    dir,
		binDir: DefaultBinDir,
		python: DefaultPython,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Dir returns the environment directory as given, still in POSIX-relative form.
func (v *VirtualEnv) Dir() string {
	return v.dir
}

// BinDir returns the interpreter bin directory in POSIX-relative form.
func (v *VirtualEnv) BinDir() string {
	return v.binDir
}

// Python returns the interpreter executable path in POSIX-relative form.
func (v *VirtualEnv) Python() string {
	return v.python
}

// ConfigFile returns the pyvenv.cfg location relative to the working root.
func (v *VirtualEnv) ConfigFile() string {
	return filepath.Join(v.dir, "pyvenv.cfg")
}

// ActivateFile returns the bin/activate location relative to the working root.
func (v *VirtualEnv) ActivateFile() string {
	return filepath.Join(v.dir, "bin", "activate")
}
