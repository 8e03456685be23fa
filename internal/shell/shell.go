package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// RunScriptFromReader parses reader as a shell script and executes it on the
// given runner. name is used in parser error messages.
func RunScriptFromReader(ctx context.Context, runner *interp.Runner, reader io.Reader, name string) error {
	parser := syntax.NewParser()

	script, err := parser.Parse(reader, name)
	if err != nil {
		return err
	}

	return runner.Run(ctx, script)
}

// RunScriptFromFile executes the script at path on the given runner.
func RunScriptFromFile(ctx context.Context, runner *interp.Runner, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return RunScriptFromReader(ctx, runner, file, filepath.Base(path))
}

// CheckScriptFile parses the script at path without executing it and returns
// the first syntax error, if any.
func CheckScriptFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	parser := syntax.NewParser()
	if _, err := parser.Parse(file, filepath.Base(path)); err != nil {
		return err
	}

	return nil
}

// NewVenvRunner builds an interpreter whose environment has the virtual
// environment activated: VIRTUAL_ENV set to the native venv path and the venv
// bin directory first on PATH.
func NewVenvRunner(venvDir, binDir string, stdin io.Reader, stdout, stderr io.Writer) (*interp.Runner, error) {
	env := append(os.Environ(),
		"VIRTUAL_ENV="+venvDir,
		"PATH="+binDir+string(os.PathListSeparator)+os.Getenv("PATH"),
	)

	return interp.New(
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(stdin, stdout, stderr),
	)
}

// ActivateAndRun sources the activate script and then executes commands read
// from stdin inside the activated environment. This covers the variant of the
// original repair that activated the environment after fixing it.
func ActivateAndRun(ctx context.Context, activatePath, venvDir, binDir string, stdin io.Reader, stdout, stderr io.Writer) error {
	runner, err := NewVenvRunner(venvDir, binDir, stdin, stdout, stderr)
	if err != nil {
		return err
	}

	if err := RunScriptFromFile(ctx, runner, activatePath); err != nil {
		return fmt.Errorf("sourcing %s: %w", activatePath, err)
	}

	return RunScriptFromReader(ctx, runner, stdin, "stdin")
}
