package minibuf

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/pickline/pickline/internal/complete"
)

// resultKind indicates how a selector session ended.
type resultKind int

const (
	// resultNone means the session is still running.
	resultNone resultKind = iota
	// resultSubmit means the user accepted a selection.
	resultSubmit
	// resultCancel means the user dismissed the prompt (Escape).
	resultCancel
	// resultInterrupt means the user interrupted (Ctrl+C).
	resultInterrupt
	// resultSwitch means the user asked for standard completion.
	resultSwitch
)

// pasteMsg carries clipboard content into the update loop.
type pasteMsg string

// Model is the Bubble Tea model for the minibuffer selector. It owns
// the query line, the filtered candidate list, and the session flags
// that let gesture handlers know whether the adapter started this
// invocation.
type Model struct {
	input  textinput.Model
	keymap *KeyMap
	styles Styles

	req *complete.Request
	ses *complete.Session

	candidates []string
	filtered   []string
	selected   int // -1 = no explicit selection
	offset     int // first visible row

	history    []string
	histIdx    int // 0 = live query, 1.. = history entries
	savedQuery string

	width      int
	maxVisible int

	result    resultKind
	selection string

	logger *zap.Logger
}

// newModel creates a selector model for one request.
func newModel(
	req *complete.Request,
	ses *complete.Session,
	candidates []string,
	history []string,
	keymap *KeyMap,
	styles Styles,
	maxVisible int,
	logger *zap.Logger,
) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keymap == nil {
		keymap = DefaultKeyMap()
	}
	if maxVisible <= 0 {
		maxVisible = 10
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.SetValue(req.Initial.Text)
	if req.Initial.Pos >= 0 && req.Initial.Pos <= len([]rune(req.Initial.Text)) {
		ti.SetCursor(req.Initial.Pos)
	} else {
		ti.CursorEnd()
	}
	ti.Focus()

	m := Model{
		input:      ti,
		keymap:     keymap,
		styles:     styles,
		req:        req,
		ses:        ses,
		candidates: candidates,
		selected:   -1,
		width:      80,
		maxVisible: maxVisible,
		logger:     logger,
	}
	m.refilter()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(m.req.Prompt) - 1
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case pasteMsg:
		return m.handlePaste(string(msg))
	}

	return m, nil
}

// handleKeyMsg routes a key press to its action handler, or to the
// query line for plain text editing.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keymap.Lookup(msg) {
	case ActionSubmit:
		return m.handleSubmit()

	case ActionCancel:
		m.result = resultCancel
		return m, tea.Quit

	case ActionInterrupt:
		m.result = resultInterrupt
		return m, tea.Quit

	case ActionSwitchStandard:
		return m.handleSwitchStandard()

	case ActionCharacterForward:
		// At the end of the query this gesture is redirected to the
		// switch command, but only for adapter-initiated sessions.
		if m.input.Position() >= len([]rune(m.input.Value())) {
			if m.ses != nil && m.ses.Active() {
				return m.handleSwitchStandard()
			}
			return m, nil
		}
		m.input.SetCursor(m.input.Position() + 1)
		return m, nil

	case ActionCharacterBackward:
		// Same redirection at the start of the query.
		if m.input.Position() == 0 {
			if m.ses != nil && m.ses.Active() {
				return m.handleSwitchStandard()
			}
			return m, nil
		}
		m.input.SetCursor(m.input.Position() - 1)
		return m, nil

	case ActionLineStart:
		m.input.SetCursor(0)
		return m, nil

	case ActionLineEnd:
		m.input.CursorEnd()
		return m, nil

	case ActionSelectNext, ActionComplete:
		m.selectNext()
		return m, nil

	case ActionSelectPrev, ActionCompleteBackward:
		m.selectPrev()
		return m, nil

	case ActionHistoryPrev:
		m.historyPrev()
		return m, nil

	case ActionHistoryNext:
		m.historyNext()
		return m, nil

	case ActionPaste:
		return m, readClipboard
	}

	// Not one of ours; let the query line edit itself.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.histIdx = 0
		m.refilter()
	}
	return m, cmd
}

// handleSubmit resolves the current selection and quits, unless a
// required match is missing.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	sel, ok := m.resolveSelection()
	if !ok {
		return m, nil
	}
	m.selection = sel
	m.result = resultSubmit
	return m, tea.Quit
}

// handleSwitchStandard ends the session with the switch signal. The
// adapter turns this into a fallback to standard completion.
func (m Model) handleSwitchStandard() (tea.Model, tea.Cmd) {
	m.logger.Debug("switch to standard completion requested",
		zap.String("prompt", m.req.Prompt))
	m.result = resultSwitch
	return m, tea.Quit
}

// handlePaste inserts clipboard text at the cursor.
func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	if text == "" {
		return m, nil
	}
	runes := []rune(m.input.Value())
	pos := m.input.Position()
	if pos > len(runes) {
		pos = len(runes)
	}
	m.input.SetValue(string(runes[:pos]) + text + string(runes[pos:]))
	m.input.SetCursor(pos + len([]rune(text)))
	m.histIdx = 0
	m.refilter()
	return m, nil
}

// resolveSelection computes the value the session should return. The
// second result is false when a required match is missing and the
// submit must be refused.
func (m *Model) resolveSelection() (string, bool) {
	if m.selected >= 0 && m.selected < len(m.filtered) {
		return m.filtered[m.selected], true
	}

	query := m.input.Value()
	if query == "" {
		// No input and no selection: the default, or empty.
		return m.req.Default(), true
	}

	if m.req.RequireMatch {
		for _, c := range m.filtered {
			if c == query {
				return query, true
			}
		}
		if len(m.filtered) > 0 {
			return m.filtered[0], true
		}
		return "", false
	}

	return query, true
}

// refilter recomputes the filtered candidate list from the query.
func (m *Model) refilter() {
	query := m.input.Value()
	if query == "" {
		m.filtered = m.candidates
	} else {
		matches := fuzzy.Find(query, m.candidates)
		out := make([]string, len(matches))
		for i, match := range matches {
			out[i] = match.Str
		}
		m.filtered = out
	}
	m.selected = -1
	m.offset = 0
}

func (m *Model) selectNext() {
	if len(m.filtered) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.filtered)
	m.ensureVisible()
}

func (m *Model) selectPrev() {
	if len(m.filtered) == 0 {
		return
	}
	if m.selected <= 0 {
		m.selected = len(m.filtered) - 1
	} else {
		m.selected--
	}
	m.ensureVisible()
}

// ensureVisible scrolls the list so the selection stays on screen.
func (m *Model) ensureVisible() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.maxVisible {
		m.offset = m.selected - m.maxVisible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) historyPrev() {
	if len(m.history) == 0 || m.histIdx >= len(m.history) {
		return
	}
	if m.histIdx == 0 {
		m.savedQuery = m.input.Value()
	}
	m.histIdx++
	m.input.SetValue(m.history[m.histIdx-1])
	m.input.CursorEnd()
	m.refilterKeepingHistory()
}

func (m *Model) historyNext() {
	if m.histIdx == 0 {
		return
	}
	m.histIdx--
	if m.histIdx == 0 {
		m.input.SetValue(m.savedQuery)
	} else {
		m.input.SetValue(m.history[m.histIdx-1])
	}
	m.input.CursorEnd()
	m.refilterKeepingHistory()
}

// refilterKeepingHistory refilters without resetting the history walk.
func (m *Model) refilterKeepingHistory() {
	idx := m.histIdx
	saved := m.savedQuery
	m.refilter()
	m.histIdx = idx
	m.savedQuery = saved
}

// readClipboard is the tea.Cmd behind ActionPaste.
func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	if err != nil {
		return pasteMsg("")
	}
	return pasteMsg(text)
}

// Result accessors used by the engine and by tests.

func (m Model) resultKind() resultKind { return m.result }

// Selection returns the accepted value once the session has ended with
// a submit.
func (m Model) Selection() string { return m.selection }

// Query returns the current query line content.
func (m Model) Query() string { return m.input.Value() }

// Filtered returns the current filtered candidate list.
func (m Model) Filtered() []string { return m.filtered }

// Selected returns the index of the highlighted candidate, -1 if none.
func (m Model) Selected() int { return m.selected }
