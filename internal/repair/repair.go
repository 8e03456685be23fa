package repair

import (
	"fmt"
	"path/filepath"

	"github.com/axcore/tartube-sub001/internal/filesystem"
	"github.com/axcore/tartube-sub001/internal/venv"
	"github.com/axcore/tartube-sub001/internal/winpath"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Outcome classifies what happened to one target file during a repair run.
type Outcome string

const (
	// OutcomeRewritten means the file was patched and written back.
	OutcomeRewritten Outcome = "rewritten"
	// OutcomeMissing means the file was absent and the step was skipped.
	OutcomeMissing Outcome = "missing"
	// OutcomePlanned means a dry run computed the rewrite without writing it.
	OutcomePlanned Outcome = "planned"
	// OutcomeFailed means the file exists but could not be read or written.
	OutcomeFailed Outcome = "failed"
)

// FileResult describes the outcome for one target file.
type FileResult struct {
	Path    string
	Outcome Outcome
	Size    int // size in bytes of the (planned) rewritten content
	Err     error
}

// Report collects the per-file results of one repair run.
type Report struct {
	VenvDir string // native form of the venv directory
	Results []FileResult
}

// Rewritten returns the results for files that were actually patched.
func (r *Report) Rewritten() []FileResult {
	return lo.Filter(r.Results, func(res FileResult, _ int) bool {
		return res.Outcome == OutcomeRewritten
	})
}

// Missing returns the results for files that were absent.
func (r *Report) Missing() []FileResult {
	return lo.Filter(r.Results, func(res FileResult, _ int) bool {
		return res.Outcome == OutcomeMissing
	})
}

// Repairer rewrites the path strings recorded inside a relocated virtual
// environment so they match the current install location. Both target files
// are handled independently; a missing file skips that step and never aborts
// the other one.
type Repairer struct {
	Root       string // working root all relative paths resolve against
	Env        *venv.VirtualEnv
	FS         filesystem.FileSystem
	Translator winpath.Translator
	Logger     *zap.Logger
	DryRun     bool
}

func NewRepairer(root string, env *venv.VirtualEnv, fs filesystem.FileSystem, translator winpath.Translator, logger *zap.Logger) *Repairer {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Repairer{
		Root:       root,
		Env:        env,
		FS:         fs,
		Translator: translator,
		Logger:     logger,
	}
}

// Repair converts the recorded relative paths to native form and patches
// pyvenv.cfg and bin/activate in place. The returned report holds one result
// per target file; only a path-translation failure is returned as an error.
func (r *Repairer) Repair() (*Report, error) {
	binDir, err := r.Translator.ToNative(r.Env.BinDir())
	if err != nil {
		return nil, fmt.Errorf("converting bin directory: %w", err)
	}

	venvDir, err := r.Translator.ToNative(r.Env.Dir())
	if err != nil {
		return nil, fmt.Errorf("converting venv directory: %w", err)
	}

	python := r.Env.Python()
	command := python + " -m venv " + venvDir

	r.Logger.Info("repairing virtual environment",
		zap.String("root", r.Root),
		zap.String("venv", venvDir),
		zap.String("home", binDir),
		zap.Bool("dryRun", r.DryRun))

	report := &Report{VenvDir: venvDir}
	report.Results = append(report.Results, r.rewritePyvenvCfg(binDir, python, command))
	report.Results = append(report.Results, r.rewriteActivate(venvDir))

	return report, nil
}

// rewritePyvenvCfg replaces the home, executable and command entries of
// pyvenv.cfg with the freshly computed values.
func (r *Repairer) rewritePyvenvCfg(home, executable, command string) FileResult {
	path := filepath.Join(r.Root, r.Env.ConfigFile())

	if !r.FS.Exists(path) {
		r.Logger.Warn("target file missing", zap.String("file", path))
		return FileResult{Path: path, Outcome: OutcomeMissing}
	}

	content, err := r.FS.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	patched := content
	replaced := 0
	for _, kv := range []struct{ key, value string }{
		{"home", home},
		{"executable", executable},
		{"command", command},
	} {
		var n int
		patched, n = SetKeyLines(patched, kv.key, kv.value)
		replaced += n
	}

	return r.commit(path, patched, replaced)
}

// rewriteActivate retargets the VIRTUAL_ENV assignments of bin/activate at the
// current venv location.
func (r *Repairer) rewriteActivate(venvDir string) FileResult {
	path := filepath.Join(r.Root, r.Env.ActivateFile())

	if !r.FS.Exists(path) {
		r.Logger.Warn("target file missing", zap.String("file", path))
		return FileResult{Path: path, Outcome: OutcomeMissing}
	}

	content, err := r.FS.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	patched, calls := ReplaceCygpathCalls(content, venvDir)
	patched, exports := ReplaceExportLines(patched, venvDir)

	return r.commit(path, patched, calls+exports)
}

// commit writes the patched content back, or only records the plan in dry-run
// mode. No backup and no atomic replace: this mirrors the one-shot manual
// repair the tool replaces.
func (r *Repairer) commit(path, content string, replaced int) FileResult {
	if r.DryRun {
		r.Logger.Info("dry run, not writing",
			zap.String("file", path),
			zap.Int("replacements", replaced))
		return FileResult{Path: path, Outcome: OutcomePlanned, Size: len(content)}
	}

	if err := r.FS.WriteFile(path, content); err != nil {
		r.Logger.Error("write failed", zap.String("file", path), zap.Error(err))
		return FileResult{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	r.Logger.Info("rewrote file",
		zap.String("file", path),
		zap.Int("replacements", replaced),
		zap.Int("bytes", len(content)))

	return FileResult{Path: path, Outcome: OutcomeRewritten, Size: len(content)}
}
