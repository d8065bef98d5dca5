// Package complete implements the completion request adapter for pickline.
// It decides whether an interactive completion request can be served by
// the restricted minibuffer engine, rewrites the request into a shape
// that engine understands, and transfers control to the standard
// fallback routine with the original arguments when it cannot.
package complete

import "strings"

// Predicate filters candidate strings. A nil Predicate accepts every
// candidate.
type Predicate func(string) bool

// Source describes the set of possible completions before filtering.
// Implementations must be safe to expand more than once: expanding the
// same source with the same predicate yields the same ordered sequence.
type Source interface {
	// Complete returns every candidate that starts with prefix and
	// satisfies pred, in source order, duplicates preserved.
	Complete(prefix string, pred Predicate) []string
}

// ListSource is an enumerable candidate collection. This is the only
// source shape the minibuffer engine accepts.
type ListSource []string

// Complete implements Source by prefix-filtering the list in order.
func (s ListSource) Complete(prefix string, pred Predicate) []string {
	out := make([]string, 0, len(s))
	for _, c := range s {
		if prefix != "" && !strings.HasPrefix(c, prefix) {
			continue
		}
		if pred != nil && !pred(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// FuncSource generates candidates dynamically from a prefix. The
// minibuffer engine cannot enumerate one up front, so requests carrying
// a FuncSource always take the fallback path.
type FuncSource func(prefix string, pred Predicate) []string

// Complete implements Source by invoking the generator.
func (s FuncSource) Complete(prefix string, pred Predicate) []string {
	return s(prefix, pred)
}

// Expand materializes a source into the exhaustive ordered candidate
// list: every entry matching the empty prefix that satisfies pred.
func Expand(src Source, pred Predicate) []string {
	if src == nil {
		return nil
	}
	return src.Complete("", pred)
}

// Initial is the text pre-filled into the input area, with an optional
// cursor position. Pos < 0 places the cursor at the end of the text.
type Initial struct {
	Text string
	Pos  int
}

// History is the opaque history handle threaded through a request.
// Engines use it to offer previous selections and to record the final
// one; a nil handle disables both.
type History interface {
	// Recent returns up to limit previous selections, most recent first.
	Recent(limit int) ([]string, error)
	// Record stores a selection made for the given prompt.
	Record(prompt, selection string) error
}

// Request is a single completion request: everything needed to prompt
// the user for one line of text with completion. The adapter never
// mutates a Request; rewrites happen on a copy, and the fallback
// routine always receives the original.
type Request struct {
	// Prompt is displayed ahead of the input area.
	Prompt string

	// Source supplies the completion candidates.
	Source Source

	// Predicate optionally narrows Source. Nil accepts everything.
	Predicate Predicate

	// RequireMatch restricts submission to candidates from Source.
	RequireMatch bool

	// Initial pre-fills the input area.
	Initial Initial

	// History is the selection history handle, or nil.
	History History

	// Defaults is the ordered default value sequence. Nil or empty
	// means no default; a single-element slice is a plain default.
	Defaults []string

	// InheritInputMethod asks the engine to keep the host input method
	// active. The minibuffer engine has no equivalent concept.
	InheritInputMethod bool
}

// Default returns the effective single default value, or "" when the
// request has none.
func (r *Request) Default() string {
	if len(r.Defaults) == 0 {
		return ""
	}
	return r.Defaults[0]
}

// clone returns a shallow copy whose Defaults slice is independent, so
// rewrites cannot alias the original request.
func (r *Request) clone() *Request {
	c := *r
	if r.Defaults != nil {
		c.Defaults = append([]string(nil), r.Defaults...)
	}
	return &c
}
