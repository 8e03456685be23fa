package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/axcore/tartube-sub001/internal/config"
	"github.com/axcore/tartube-sub001/internal/core"
	"github.com/axcore/tartube-sub001/internal/filesystem"
	"github.com/axcore/tartube-sub001/internal/journal"
	"github.com/axcore/tartube-sub001/internal/repair"
	"github.com/axcore/tartube-sub001/internal/shell"
	"github.com/axcore/tartube-sub001/internal/styles"
	"github.com/axcore/tartube-sub001/internal/winpath"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var rootDir = flag.String("root", "", "working root the relative paths resolve against")
var venvDir = flag.String("venv", "", "virtual environment directory, relative to the root")
var configFile = flag.String("config", "", "use a custom config file instead of <root>/venvfix.yaml")
var cygpathBin = flag.String("cygpath", "", "path conversion utility to invoke")
var dryRun = flag.Bool("dry-run", false, "report the planned rewrites without touching any file")
var checkScript = flag.Bool("check", false, "parse the activate script after rewriting and report syntax errors")
var activateEnv = flag.Bool("activate", false, "after repairing, run commands from stdin inside the activated environment")
var historyCount = flag.Int("history", 0, "print the last n journal entries and exit")
var freshLog = flag.Bool("fresh-log", false, "remove old log files before starting")

var helpFlag bool
var versionFlag bool

func init() {
	// Register help flags: -h and --help
	flag.BoolVar(&helpFlag, "h", false, "display help information")
	flag.BoolVar(&helpFlag, "help", false, "display help information")

	// Register version flags: -v, -ver, and --version
	flag.BoolVar(&versionFlag, "v", false, "display build version")
	flag.BoolVar(&versionFlag, "ver", false, "display build version")
	flag.BoolVar(&versionFlag, "version", false, "display build version")
}

func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if helpFlag {
		printUsage()
		return
	}

	if *freshLog {
		if err := core.CleanLogFiles(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to clean log files: %v\n", err)
		}
	}

	// Initialize the logger
	logger, err := initializeLogger()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	sessionID := uuid.New().String()
	logger.Info("-------- new venvfix session --------",
		zap.String("session", sessionID),
		zap.Any("args", os.Args))

	// Initialize the journal manager
	journalManager, err := journal.NewJournalManager(core.JournalFile())
	if err != nil {
		logger.Warn("failed to initialize journal manager", zap.Error(err))
		// The journal is optional, continue without it
		journalManager = nil
	}
	defer func() {
		if journalManager != nil {
			if err := journalManager.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close journal manager: %v\n", err)
			}
		}
	}()

	if *historyCount > 0 {
		printHistory(journalManager, *historyCount)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(styles.ERROR(err.Error()))
		logger.Error("config error", zap.Error(err))
		return
	}

	run(cfg, sessionID, journalManager, logger)
}

// run performs the repair and reports each outcome on the console. The
// process always finishes with exit status 0: a missing target file is a
// skipped step, not a failure to signal.
func run(cfg config.Config, sessionID string, journalManager *journal.JournalManager, logger *zap.Logger) {
	fmt.Println(styles.BANNER("Tartube ytdl-venv path repair"))
	fmt.Println("=============================")

	env := cfg.Venv()
	repairer := repair.NewRepairer(
		cfg.Root,
		env,
		filesystem.DefaultFileSystem{},
		winpath.NewCygpathTranslator(cfg.Cygpath),
		logger,
	)
	repairer.DryRun = *dryRun

	report, err := repairer.Repair()
	if err != nil {
		fmt.Println(styles.ERROR(err.Error()))
		logger.Error("repair aborted", zap.Error(err))
		fmt.Println(styles.BANNER("Finished."))
		return
	}

	for _, res := range report.Results {
		printResult(res)

		if journalManager != nil {
			if err := journalManager.Record(sessionID, report.VenvDir, res.Path, string(res.Outcome)); err != nil {
				logger.Warn("failed to record journal entry", zap.Error(err))
			}
		}
	}

	if *checkScript && !*dryRun {
		checkActivate(cfg, env.ActivateFile())
	}

	if *dryRun {
		fmt.Println(styles.HINT(fmt.Sprintf("dry run: %d file(s) missing, nothing written", len(report.Missing()))))
	} else {
		fmt.Println(styles.HINT(fmt.Sprintf("%d file(s) updated, %d missing", len(report.Rewritten()), len(report.Missing()))))
	}

	fmt.Println(styles.BANNER("Finished."))

	if *activateEnv && !*dryRun {
		activate(cfg, report, logger)
	}
}

func printResult(res repair.FileResult) {
	switch res.Outcome {
	case repair.OutcomeRewritten:
		fmt.Printf("%s %s (%s)\n", styles.SUCCESS("updated"), styles.PATH(res.Path), humanize.Bytes(uint64(res.Size)))
	case repair.OutcomePlanned:
		fmt.Printf("%s %s (%s)\n", styles.HINT("would update"), styles.PATH(res.Path), humanize.Bytes(uint64(res.Size)))
	case repair.OutcomeMissing:
		fmt.Println("could not find file: " + res.Path)
	case repair.OutcomeFailed:
		fmt.Printf("%s %s: %v\n", styles.ERROR("failed to update"), styles.PATH(res.Path), res.Err)
	}
}

func checkActivate(cfg config.Config, activateFile string) {
	path := filepath.Join(cfg.Root, activateFile)

	if err := shell.CheckScriptFile(path); err != nil {
		fmt.Printf("%s %v\n", styles.ERROR("activate script check:"), err)
		return
	}

	fmt.Println(styles.HINT("activate script parses as valid shell"))
}

// activate sources the repaired activate script and feeds stdin through an
// interpreter running inside the environment.
func activate(cfg config.Config, report *repair.Report, logger *zap.Logger) {
	env := cfg.Venv()
	activatePath := filepath.Join(cfg.Root, env.ActivateFile())
	venvBin := filepath.Join(cfg.Root, env.Dir(), "bin")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println(styles.HINT("reading commands from stdin, ctrl-d to finish"))
	}

	err := shell.ActivateAndRun(
		context.Background(),
		activatePath,
		report.VenvDir,
		venvBin,
		os.Stdin, os.Stdout, os.Stderr,
	)
	if err != nil {
		fmt.Println(styles.ERROR(err.Error()))
		logger.Error("activation failed", zap.Error(err))
	}
}

// loadConfig reads the YAML config file and applies the flag overrides on
// top. The working root is always explicit: flag, then file, then ".".
func loadConfig() (config.Config, error) {
	path := *configFile
	if path == "" {
		root := *rootDir
		if root == "" {
			root = "."
		}
		path = filepath.Join(root, "venvfix.yaml")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if *rootDir != "" {
		cfg.Root = *rootDir
	}
	if *venvDir != "" {
		cfg.VenvDir = *venvDir
	}
	if *cygpathBin != "" {
		cfg.Cygpath = *cygpathBin
	}

	return cfg, nil
}

func printHistory(journalManager *journal.JournalManager, limit int) {
	if journalManager == nil {
		fmt.Println(styles.ERROR("journal is unavailable"))
		return
	}

	records, err := journalManager.Recent(limit)
	if err != nil {
		fmt.Println(styles.ERROR(err.Error()))
		return
	}

	if len(records) == 0 {
		fmt.Println("no repair runs recorded yet")
		return
	}

	for _, rec := range records {
		fmt.Printf("%-18s %-10s %s\n", humanize.Time(rec.CreatedAt), rec.Outcome, rec.File)
	}
}

func initializeLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if BUILD_VERSION == "dev" {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

func printUsage() {
	// Header
	fmt.Println(styles.BANNER("Usage:") + " venvfix [flags]")
	fmt.Println("\nRepairs the recorded paths of a relocated Tartube virtual environment.")
	fmt.Println()

	// Flags
	fmt.Println(styles.BANNER("Options:"))

	// We want to group aliases like -h and -help together
	// Map to track which flags we've already printed
	printed := make(map[string]bool)

	flag.VisitAll(func(f *flag.Flag) {
		if printed[f.Name] {
			return
		}

		// Identify aliases based on shared usage strings.
		aliases := []string{f.Name}
		flag.VisitAll(func(p *flag.Flag) {
			if p.Name == f.Name {
				return
			}
			if p.Usage == f.Usage {
				aliases = append(aliases, p.Name)
				printed[p.Name] = true
			}
		})
		printed[f.Name] = true

		// Separate short and long flags
		var shortFlags, longFlags []string
		for _, name := range aliases {
			if len(name) == 1 {
				shortFlags = append(shortFlags, "-"+name)
			} else {
				longFlags = append(longFlags, "-"+name)
			}
		}

		// Construct the flag string: short flags first, then long flags
		flagStr := ""
		if len(shortFlags) > 0 {
			flagStr = strings.Join(shortFlags, ", ")
		}
		if len(longFlags) > 0 {
			if flagStr != "" {
				flagStr += ", "
			}
			flagStr += strings.Join(longFlags, ", ")
		}

		// Check if the flag takes an argument
		argName, usage := flag.UnquoteUsage(f)
		if argName != "" {
			flagStr += " <" + argName + ">"
		}

		fmt.Printf("  %-28s %s\n", flagStr, usage)
	})
}
