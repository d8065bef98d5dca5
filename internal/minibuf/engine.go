package minibuf

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pickline/pickline/internal/complete"
)

// Config configures an Engine.
type Config struct {
	// KeyMap provides key bindings. Nil selects DefaultKeyMap.
	KeyMap *KeyMap

	// Styles provides selector styling. Nil selects DefaultStyles.
	Styles *Styles

	// MaxVisible is the number of candidate rows shown at once.
	MaxVisible int

	// HistoryLimit is how many previous selections are offered for
	// history navigation.
	HistoryLimit int

	// Logger for debug output. Nil means no logging.
	Logger *zap.Logger
}

// Engine is the restricted completion engine: a blocking minibuffer
// selector over an enumerable candidate list. Requests it cannot
// represent never reach it; the adapter routes those to standard
// completion up front.
type Engine struct {
	keymap       *KeyMap
	styles       Styles
	maxVisible   int
	historyLimit int
	logger       *zap.Logger
}

// New creates an Engine from cfg.
func New(cfg Config) *Engine {
	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}
	styles := DefaultStyles()
	if cfg.Styles != nil {
		styles = *cfg.Styles
	}
	maxVisible := cfg.MaxVisible
	if maxVisible <= 0 {
		maxVisible = 10
	}
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 50
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		keymap:       keymap,
		styles:       styles,
		maxVisible:   maxVisible,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Read prompts the user with the minibuffer selector and blocks until
// a selection is made, the prompt is cancelled, or the user asks for
// standard completion. It consumes the session's armed flag on entry;
// gesture handlers observe the derived active flag for the duration of
// this one call.
//
// The UI is drawn on stderr so stdout stays usable for the selection.
func (e *Engine) Read(ctx context.Context, req *complete.Request, ses *complete.Session) (string, error) {
	if ses == nil {
		ses = &complete.Session{}
	}
	ses.Consume()

	if !term.IsTerminal(int(os.Stderr.Fd())) {
		// No terminal to draw on; let the adapter fall back.
		return "", complete.ErrSwitchStandard
	}

	// When stdin is a pipe (candidates fed in), the selector reads
	// keys from the controlling terminal instead.
	input := os.Stdin
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			return "", complete.ErrSwitchStandard
		}
		defer tty.Close()
		input = tty
	}

	candidates := complete.Expand(req.Source, req.Predicate)

	var history []string
	if req.History != nil {
		recent, err := req.History.Recent(e.historyLimit)
		if err != nil {
			e.logger.Debug("history unavailable", zap.Error(err))
		} else {
			history = recent
		}
	}

	model := newModel(req, ses, candidates, history, e.keymap, e.styles, e.maxVisible, e.logger)
	program := tea.NewProgram(model,
		tea.WithInput(input),
		tea.WithOutput(os.Stderr),
		tea.WithContext(ctx))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("minibuffer session failed: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("minibuffer session returned unexpected model %T", final)
	}

	switch fm.resultKind() {
	case resultSwitch:
		return "", complete.ErrSwitchStandard
	case resultCancel, resultInterrupt:
		return "", complete.ErrInterrupted
	default:
		selection := fm.Selection()
		if req.History != nil && selection != "" {
			if err := req.History.Record(req.Prompt, selection); err != nil {
				e.logger.Debug("failed to record selection", zap.Error(err))
			}
		}
		return selection, nil
	}
}
