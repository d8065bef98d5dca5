// Package standard implements pickline's always-capable completion
// routine: a plain terminal prompt with tab completion. It accepts
// every request shape the public API allows, including dynamic
// candidate sources and unlimited candidate counts, which is what makes
// it a safe fallback for the minibuffer engine.
package standard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pickline/pickline/internal/complete"
)

var (
	output = termenv.NewOutput(os.Stderr)

	promptStyle = func(s string) string {
		return output.String(s).
			Foreground(output.Color("12")).
			Bold().
			String()
	}
	noticeStyle = func(s string) string {
		return output.String(s).
			Foreground(output.Color("8")).
			String()
	}
)

// Engine is the standard completion routine.
type Engine struct {
	logger *zap.Logger

	// in/out default to stdin/stderr; tests replace them.
	in  *os.File
	out *os.File
}

// New creates a standard Engine.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger: logger,
		in:     os.Stdin,
		out:    os.Stderr,
	}
}

// Read prompts the user for a line of text with tab completion and
// blocks until submission or cancellation. Unlike the minibuffer
// engine it consumes every request shape: dynamic sources are queried
// per keystroke through Source.Complete, the input method flag is
// honored trivially by leaving terminal input untouched, and no
// candidate count limit applies.
func (e *Engine) Read(ctx context.Context, req *complete.Request, ses *complete.Session) (string, error) {
	if ses != nil {
		ses.Consume()
	}

	if !term.IsTerminal(int(e.in.Fd())) {
		// Candidates may have been piped through stdin; prefer the
		// controlling terminal for interaction when one exists.
		if tty, err := os.Open("/dev/tty"); err == nil {
			defer tty.Close()
			saved := e.in
			e.in = tty
			defer func() { e.in = saved }()
			return e.readTerminal(ctx, req)
		}
		return e.readPlain(req)
	}
	return e.readTerminal(ctx, req)
}

// readTerminal runs the interactive prompt on a raw-mode terminal.
func (e *Engine) readTerminal(ctx context.Context, req *complete.Request) (string, error) {
	fd := int(e.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	rw := struct {
		io.Reader
		io.Writer
	}{e.in, e.out}

	t := term.NewTerminal(rw, promptStyle(req.Prompt))
	t.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' {
			return "", 0, false
		}
		completed, ok := completeLine(req, line)
		if !ok {
			return "", 0, false
		}
		return completed, len(completed), true
	}

	if req.Initial.Text != "" {
		// The terminal offers no way to seed the edit buffer, so the
		// initial text is shown as part of the prompt context.
		fmt.Fprintf(e.out, "%s\r\n", noticeStyle("(initial input: "+req.Initial.Text+")"))
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return "", complete.ErrInterrupted
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		selection, ok := e.accept(req, line)
		if !ok {
			fmt.Fprintf(e.out, "%s\r\n", noticeStyle("[no match among candidates]"))
			continue
		}
		e.record(req, selection)
		return selection, nil
	}
}

// readPlain reads a single line without terminal interaction. Used when
// stdin is not a TTY (pipes, tests).
func (e *Engine) readPlain(req *complete.Request) (string, error) {
	reader := bufio.NewReader(e.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", complete.ErrInterrupted
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")

	selection, ok := e.accept(req, line)
	if !ok {
		// Without a terminal there is no way to re-prompt; the first
		// prefix match wins, or the raw line stands.
		matches := req.Source.Complete(line, req.Predicate)
		if len(matches) > 0 {
			selection = matches[0]
		} else {
			selection = line
		}
	}
	e.record(req, selection)
	return selection, nil
}

// accept validates a submitted line against the request contract. The
// second result is false when a required match is missing.
func (e *Engine) accept(req *complete.Request, line string) (string, bool) {
	if line == "" {
		return req.Default(), true
	}
	if !req.RequireMatch {
		return line, true
	}
	for _, c := range req.Source.Complete(line, req.Predicate) {
		if c == line {
			return line, true
		}
	}
	return "", false
}

func (e *Engine) record(req *complete.Request, selection string) {
	if req.History == nil || selection == "" {
		return
	}
	if err := req.History.Record(req.Prompt, selection); err != nil {
		e.logger.Debug("failed to record selection", zap.Error(err))
	}
}

// completeLine extends line to the longest common prefix of the
// candidates matching it. Returns false when nothing matches.
func completeLine(req *complete.Request, line string) (string, bool) {
	matches := req.Source.Complete(line, req.Predicate)
	if len(matches) == 0 {
		return "", false
	}
	lcp := matches[0]
	for _, m := range matches[1:] {
		lcp = commonPrefix(lcp, m)
		if lcp == "" {
			break
		}
	}
	if len(lcp) <= len(line) {
		return "", false
	}
	return lcp, true
}

func commonPrefix(a, b string) string {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}
	i := 0
	for i < max && a[i] == b[i] {
		i++
	}
	return a[:i]
}
