package complete

import (
	"context"
	"errors"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrSwitchStandard is the fallback signal: the request cannot or
// should not be served by the minibuffer engine and must be retried
// with the standard completion routine and the original arguments. It
// carries no payload and is handled at exactly one place, the top of
// Adapter.Read.
var ErrSwitchStandard = errors.New("switch to standard completion")

// ErrInterrupted is returned when the user cancels the prompt. Both
// engines report cancellation the same way.
var ErrInterrupted = errors.New("completion interrupted")

// DefaultMaxCandidates caps the candidate list handed to the
// minibuffer engine. Larger sets fall back to standard completion so
// the selector stays responsive.
const DefaultMaxCandidates = 30000

// EngineFunc is the blocking call shared by both completion engines:
// prompt the user, return the selection.
type EngineFunc func(ctx context.Context, req *Request, ses *Session) (string, error)

// Config configures an Adapter.
type Config struct {
	// Restricted is the minibuffer engine entry point.
	Restricted EngineFunc

	// Fallback is the standard completion routine invoked whenever the
	// minibuffer engine cannot serve a request. It must not be the
	// adapter itself.
	Fallback EngineFunc

	// MaxCandidates limits the candidate list handed to the minibuffer
	// engine. Zero selects DefaultMaxCandidates; a negative value
	// removes the limit.
	MaxCandidates int

	// ExtraProperties mirrors the host's extra completion properties.
	// The minibuffer engine cannot honor any of them, so a non-empty
	// map forces every request to the fallback routine.
	ExtraProperties map[string]any

	// Logger for debug output. Nil means no logging.
	Logger *zap.Logger
}

// Adapter routes completion requests between the restricted minibuffer
// engine and the standard fallback routine. The fallback engine is
// resolved once at construction.
type Adapter struct {
	restricted EngineFunc
	fallback   EngineFunc
	max        int
	extraProps map[string]any
	logger     *zap.Logger
}

// New creates an Adapter from cfg.
func New(cfg Config) *Adapter {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	max := cfg.MaxCandidates
	if max == 0 {
		max = DefaultMaxCandidates
	}
	return &Adapter{
		restricted: cfg.Restricted,
		fallback:   cfg.Fallback,
		max:        max,
		extraProps: cfg.ExtraProperties,
		logger:     logger,
	}
}

// Read serves one completion request and returns the user's selection.
// It is the single handler for the fallback signal: any
// ErrSwitchStandard raised while preparing the request or from inside
// the minibuffer engine's own interaction loop results in exactly one
// delegation to the fallback routine, with the original unrewritten
// request. There is no retry of the minibuffer engine.
func (a *Adapter) Read(ctx context.Context, req *Request) (string, error) {
	sel, err := a.tryMinibuffer(ctx, req)
	if errors.Is(err, ErrSwitchStandard) {
		if a.fallback == nil {
			return "", err
		}
		a.logger.Debug("serving request via standard completion",
			zap.String("prompt", req.Prompt))
		return a.fallback(ctx, req, &Session{})
	}
	return sel, err
}

// tryMinibuffer runs the compatibility checks, rewrites the request
// into the minibuffer engine's shape, and delegates to it. Every
// incompatibility is reported as ErrSwitchStandard.
func (a *Adapter) tryMinibuffer(ctx context.Context, req *Request) (string, error) {
	if a.restricted == nil {
		return "", ErrSwitchStandard
	}
	if req.InheritInputMethod {
		// The minibuffer has no input method concept.
		return "", ErrSwitchStandard
	}
	if len(a.extraProps) > 0 {
		return "", ErrSwitchStandard
	}
	if _, dynamic := req.Source.(FuncSource); dynamic {
		return "", ErrSwitchStandard
	}

	candidates := Expand(req.Source, req.Predicate)
	if a.max > 0 && len(candidates) > a.max {
		a.logger.Debug("candidate set too large for minibuffer",
			zap.String("count", humanize.Comma(int64(len(candidates)))),
			zap.Int("max", a.max))
		return "", ErrSwitchStandard
	}

	rw := req.clone()
	candidates = normalizeDefaults(rw, candidates)
	candidates = liftDefault(rw, candidates)
	rw.Source = ListSource(candidates)

	ses := &Session{}
	ses.Arm()
	return a.restricted(ctx, rw, ses)
}
