// Package pick exposes pickline's generic completion entry point:
// prompt the user for a line of text with completion, serving the
// request through the minibuffer selector when possible and through
// standard completion otherwise. Read is designed to be installable
// wherever a host would normally call its own completion routine; it
// accepts the full generic argument contract and returns the selected
// text.
package pick

import (
	"context"

	"go.uber.org/zap"

	"github.com/pickline/pickline/internal/complete"
	"github.com/pickline/pickline/internal/minibuf"
	"github.com/pickline/pickline/internal/standard"
)

// Aliases re-exporting the request model, so callers build requests
// without reaching into internal packages.
type (
	// Request is a single completion request.
	Request = complete.Request
	// Source describes the completion candidates.
	Source = complete.Source
	// ListSource is an enumerable candidate collection.
	ListSource = complete.ListSource
	// FuncSource generates candidates dynamically; such requests are
	// always served by standard completion.
	FuncSource = complete.FuncSource
	// Predicate filters candidates.
	Predicate = complete.Predicate
	// Initial is pre-filled input text with an optional cursor position.
	Initial = complete.Initial
	// History is the selection history handle.
	History = complete.History
	// Session carries the call-scoped engine activation flags.
	Session = complete.Session
	// EngineFunc is the blocking engine call signature.
	EngineFunc = complete.EngineFunc
)

// Re-exported control values.
var (
	// ErrInterrupted is returned when the user cancels the prompt.
	ErrInterrupted = complete.ErrInterrupted
	// ErrSwitchStandard is the internal fallback signal. It only
	// escapes Read when no fallback engine is configured.
	ErrSwitchStandard = complete.ErrSwitchStandard
)

// DefaultMaxCandidates is the default minibuffer candidate limit.
const DefaultMaxCandidates = complete.DefaultMaxCandidates

// Options configures a Reader.
type Options struct {
	// MaxCandidates limits the candidate list handed to the minibuffer
	// selector. Zero selects DefaultMaxCandidates, negative removes
	// the limit.
	MaxCandidates int

	// ExtraProperties mirrors host-level extra completion properties.
	// Any entry forces every request to standard completion.
	ExtraProperties map[string]any

	// Fallback overrides the standard completion routine. It must not
	// call back into the same Reader.
	Fallback EngineFunc

	// KeyMap overrides the selector key bindings.
	KeyMap *minibuf.KeyMap

	// Styles overrides the selector styling.
	Styles *minibuf.Styles

	// MaxVisible is the number of candidate rows shown at once.
	MaxVisible int

	// HistoryLimit is how many previous selections are offered for
	// history navigation.
	HistoryLimit int

	// Logger for debug output. Nil means no logging.
	Logger *zap.Logger
}

// NewOptions returns Options with default values.
func NewOptions() Options {
	return Options{
		MaxVisible:   10,
		HistoryLimit: 50,
	}
}

// Reader is a reusable completion entry point. The fallback routine is
// resolved once at construction, so a Reader can safely be installed
// as a host's generic completion hook without risking recursion.
type Reader struct {
	adapter *complete.Adapter
}

// New creates a Reader from opts.
func New(opts Options) *Reader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := minibuf.New(minibuf.Config{
		KeyMap:       opts.KeyMap,
		Styles:       opts.Styles,
		MaxVisible:   opts.MaxVisible,
		HistoryLimit: opts.HistoryLimit,
		Logger:       logger,
	})

	fallback := opts.Fallback
	if fallback == nil {
		fallback = standard.New(logger).Read
	}

	adapter := complete.New(complete.Config{
		Restricted:      engine.Read,
		Fallback:        fallback,
		MaxCandidates:   opts.MaxCandidates,
		ExtraProperties: opts.ExtraProperties,
		Logger:          logger,
	})

	return &Reader{adapter: adapter}
}

// Read serves one completion request and returns the user's selection.
// Safe for re-entrant use: a nested request started while an outer one
// is being handled gets its own call-scoped state.
func (r *Reader) Read(ctx context.Context, req *Request) (string, error) {
	return r.adapter.Read(ctx, req)
}

// Read is a convenience wrapper constructing a one-shot Reader.
func Read(ctx context.Context, req *Request, opts Options) (string, error) {
	return New(opts).Read(ctx, req)
}
