package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pickline/pickline/internal/config"
	"github.com/pickline/pickline/internal/core"
	"github.com/pickline/pickline/internal/history"
	"github.com/pickline/pickline/pkg/pick"
)

var BUILD_VERSION = "dev"

// stringList collects repeatable string flags.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint(*s) }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

var prompt = flag.String("p", "select: ", "prompt to display")
var initial = flag.String("i", "", "initial input text")
var requireMatch = flag.Bool("r", false, "only accept one of the candidates")
var maxCandidates = flag.Int("max", 0, "minibuffer candidate limit (0 = default, negative = unlimited)")
var noHistory = flag.Bool("no-history", false, "do not read or record selection history")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

var defaults stringList

const helpText = `pickline - prompt for a line of text with completion

USAGE:
  pickline [options] [candidate...]

Candidates come from the command line, or from stdin (one per line)
when none are given. The selection is printed to stdout; the selector
draws on stderr so pickline composes with pipes.

Requests the minibuffer selector cannot represent are served through a
plain tab-completing prompt instead. Press Ctrl+T inside the selector
to switch to it explicitly.

OPTIONS:
`

func main() {
	flag.Var(&defaults, "d", "default value (repeatable; first one wins)")
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := config.NewLoader(nil).LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pickline: %v\n", err)
		os.Exit(1)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pickline: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() // Flush any buffered log entries

	if err := run(cfg, logger); err != nil {
		if errors.Is(err, pick.ErrInterrupted) {
			os.Exit(1)
		}
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "pickline: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	candidates, err := readCandidates()
	if err != nil {
		return err
	}

	req := &pick.Request{
		Prompt:       *prompt,
		Source:       pick.ListSource(candidates),
		RequireMatch: *requireMatch,
		Initial:      pick.Initial{Text: *initial, Pos: -1},
		Defaults:     defaults,
	}

	if cfg.History.Enabled && !*noHistory {
		store, err := initializeHistory(cfg)
		if err != nil {
			// History is a convenience; completion works without it.
			logger.Warn("history unavailable", zap.Error(err))
		} else {
			req.History = store
		}
	}

	opts := pick.NewOptions()
	opts.Logger = logger
	opts.MaxVisible = cfg.UI.MaxVisible
	opts.HistoryLimit = cfg.UI.HistoryLimit
	opts.MaxCandidates = cfg.MaxCandidates
	if *maxCandidates != 0 {
		opts.MaxCandidates = *maxCandidates
	}

	selection, err := pick.Read(context.Background(), req, opts)
	if err != nil {
		return err
	}

	fmt.Println(selection)
	return nil
}

// readCandidates collects candidates from argv, or from stdin when no
// arguments were given and stdin is not a terminal.
func readCandidates() ([]string, error) {
	if flag.NArg() > 0 {
		return flag.Args(), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no candidates: pass them as arguments or pipe them through stdin")
	}

	var candidates []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		candidates = append(candidates, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return candidates, nil
}

func initializeHistory(cfg *config.Config) (*history.Store, error) {
	path := cfg.History.Path
	if path == "" {
		path = core.HistoryFile()
	}
	return history.Open(path)
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if BUILD_VERSION == "dev" {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.OutputPaths = []string{core.LogFile()}
	loggerConfig.ErrorOutputPaths = []string{core.LogFile()}
	return loggerConfig.Build()
}
