package winpath

import (
	"fmt"
	"os/exec"
	"strings"
)

// Shims for os/exec lookups so the cygpath-backed translator can be exercised
// on hosts without the utility installed.
var (
	execLookPath = exec.LookPath
	execOutput   = func(bin string, args ...string) ([]byte, error) {
		return exec.Command(bin, args...).Output()
	}
)

// Translator converts a POSIX-style relative path into the native path form
// used by the host. This is the one capability the repair procedure needs from
// the platform; implementations are injected so tests can stub them.
type Translator interface {
	ToNative(path string) (string, error)
}

// CygpathTranslator converts paths by invoking the cygpath utility with -w,
// the same way the MSYS2 shell scripts do.
type CygpathTranslator struct {
	// Bin is the cygpath executable to invoke. Empty selects "cygpath" from
	// the search path.
	Bin string
}

func NewCygpathTranslator(bin string) *CygpathTranslator {
	return &CygpathTranslator{Bin: bin}
}

func (t *CygpathTranslator) ToNative(path string) (string, error) {
	bin := t.Bin
	if bin == "" {
		bin = "cygpath"
	}

	if _, err := execLookPath(bin); err != nil {
		// No converter on this host; fall back to a plain separator swap so
		// the tool still produces usable values outside an MSYS2 shell.
		return FallbackTranslator{}.ToNative(path)
	}

	out, err := execOutput(bin, "-w", path)
	if err != nil {
		return "", fmt.Errorf("%s -w %s: %w", bin, path, err)
	}

	return strings.TrimSpace(string(out)), nil
}

// FallbackTranslator converts a POSIX-style path to Windows display form by
// swapping separators. It performs no drive-letter resolution; relative paths
// stay relative, which matches what cygpath -w emits for them.
type FallbackTranslator struct{}

func (FallbackTranslator) ToNative(path string) (string, error) {
	return strings.ReplaceAll(path, "/", `\`), nil
}
