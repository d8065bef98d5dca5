package minibuf

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickline/pickline/internal/complete"
)

func testModel(req *complete.Request, candidates, history []string) Model {
	ses := &complete.Session{}
	ses.Arm()
	ses.Consume()
	return newModel(req, ses, candidates, history, DefaultKeyMap(), DefaultStyles(), 10, nil)
}

func unarmedModel(req *complete.Request, candidates []string) Model {
	return newModel(req, &complete.Session{}, candidates, nil, DefaultKeyMap(), DefaultStyles(), 10, nil)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func typeRunes(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func keyMsg(typ tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: typ}
}

func TestModelStartsWithAllCandidates(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"apple", "banana", "cherry"}, nil)

	assert.Equal(t, []string{"apple", "banana", "cherry"}, m.Filtered())
	assert.Equal(t, -1, m.Selected())
	assert.Equal(t, "", m.Query())
}

func TestModelSeedsInitialInput(t *testing.T) {
	req := &complete.Request{
		Prompt:  "pick: ",
		Initial: complete.Initial{Text: "ban", Pos: -1},
	}
	m := testModel(req, []string{"apple", "banana"}, nil)

	assert.Equal(t, "ban", m.Query())
	assert.Equal(t, []string{"banana"}, m.Filtered())
}

func TestModelFiltersAsUserTypes(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"apple", "banana", "apricot"}, nil)

	m = typeRunes(t, m, "ap")

	assert.Equal(t, "ap", m.Query())
	assert.ElementsMatch(t, []string{"apple", "apricot"}, m.Filtered())

	m = typeRunes(t, m, "r")
	assert.Equal(t, []string{"apricot"}, m.Filtered())
}

func TestModelNoMatch(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"apple"}, nil)

	m = typeRunes(t, m, "zzz")
	assert.Empty(t, m.Filtered())
}

func TestModelTabCyclesSelection(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a", "b", "c"}, nil)

	m = press(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, 0, m.Selected())
	m = press(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, 1, m.Selected())
	m = press(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, 2, m.Selected())
	m = press(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, 0, m.Selected(), "selection wraps around")
}

func TestModelShiftTabCyclesBackward(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a", "b", "c"}, nil)

	m = press(t, m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, 2, m.Selected(), "backward from no selection lands on last")
	m = press(t, m, keyMsg(tea.KeyShiftTab))
	assert.Equal(t, 1, m.Selected())
}

func TestModelTypingResetsSelection(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"aa", "ab"}, nil)

	m = press(t, m, keyMsg(tea.KeyTab))
	require.Equal(t, 0, m.Selected())

	m = typeRunes(t, m, "a")
	assert.Equal(t, -1, m.Selected())
}

func TestModelSubmitExplicitSelection(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a", "b", "c"}, nil)

	m = press(t, m, keyMsg(tea.KeyTab))
	m = press(t, m, keyMsg(tea.KeyTab))
	m = press(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, resultSubmit, m.resultKind())
	assert.Equal(t, "b", m.Selection())
}

func TestModelSubmitEmptyQueryReturnsDefault(t *testing.T) {
	req := &complete.Request{Prompt: "pick: ", Defaults: []string{"fallback"}}
	m := testModel(req, []string{"a", "b"}, nil)

	m = press(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, resultSubmit, m.resultKind())
	assert.Equal(t, "fallback", m.Selection())
}

func TestModelSubmitFreeTextWithoutRequireMatch(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"alpha"}, nil)

	m = typeRunes(t, m, "custom")
	m = press(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, resultSubmit, m.resultKind())
	assert.Equal(t, "custom", m.Selection())
}

func TestModelRequireMatchAcceptsFirstFiltered(t *testing.T) {
	req := &complete.Request{Prompt: "pick: ", RequireMatch: true}
	m := testModel(req, []string{"apple", "apricot"}, nil)

	m = typeRunes(t, m, "app")
	m = press(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, resultSubmit, m.resultKind())
	assert.Equal(t, "apple", m.Selection())
}

func TestModelRequireMatchRefusesNonMatch(t *testing.T) {
	req := &complete.Request{Prompt: "pick: ", RequireMatch: true}
	m := testModel(req, []string{"apple"}, nil)

	m = typeRunes(t, m, "zzz")
	m = press(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, resultNone, m.resultKind(), "submit is refused, session continues")
	assert.Equal(t, "zzz", m.Query())
}

func TestModelCancelAndInterrupt(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}

	m := testModel(req, []string{"a"}, nil)
	m = press(t, m, keyMsg(tea.KeyEsc))
	assert.Equal(t, resultCancel, m.resultKind())

	m = testModel(req, []string{"a"}, nil)
	m = press(t, m, keyMsg(tea.KeyCtrlC))
	assert.Equal(t, resultInterrupt, m.resultKind())
}

func TestModelExplicitSwitchToStandard(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := unarmedModel(req, []string{"a"})

	// Ctrl+T works regardless of session arming.
	m = press(t, m, keyMsg(tea.KeyCtrlT))
	assert.Equal(t, resultSwitch, m.resultKind())
}

func TestModelForwardGestureAtEndSwitchesWhenArmed(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a"}, nil)

	m = press(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, resultSwitch, m.resultKind())
}

func TestModelForwardGestureAtEndIgnoredWhenUnarmed(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := unarmedModel(req, []string{"a"})

	m = press(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, resultNone, m.resultKind())
}

func TestModelForwardGestureMidQueryMovesCursor(t *testing.T) {
	req := &complete.Request{
		Prompt:  "pick: ",
		Initial: complete.Initial{Text: "abc", Pos: 1},
	}
	m := testModel(req, []string{"abc"}, nil)

	m = press(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, resultNone, m.resultKind())
	assert.Equal(t, 2, m.input.Position())
}

func TestModelBackwardGestureAtStartSwitchesWhenArmed(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a"}, nil)

	m = press(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, resultSwitch, m.resultKind())
}

func TestModelBackwardGestureAtStartIgnoredWhenUnarmed(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := unarmedModel(req, []string{"a"})

	m = press(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, resultNone, m.resultKind())
}

func TestModelBackwardGestureMidQueryMovesCursor(t *testing.T) {
	req := &complete.Request{
		Prompt:  "pick: ",
		Initial: complete.Initial{Text: "abc", Pos: -1},
	}
	m := testModel(req, []string{"abc"}, nil)

	m = press(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, resultNone, m.resultKind())
	assert.Equal(t, 2, m.input.Position())
}

func TestModelLineStartAndEnd(t *testing.T) {
	req := &complete.Request{
		Prompt:  "pick: ",
		Initial: complete.Initial{Text: "abc", Pos: 1},
	}
	m := testModel(req, []string{"abc"}, nil)

	m = press(t, m, keyMsg(tea.KeyHome))
	assert.Equal(t, 0, m.input.Position())

	m = press(t, m, keyMsg(tea.KeyEnd))
	assert.Equal(t, 3, m.input.Position())
}

func TestModelHistoryNavigation(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"older", "newest", "live"}, []string{"newest", "older"})

	m = typeRunes(t, m, "live")

	altP := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}, Alt: true}
	altN := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true}

	m = press(t, m, altP)
	assert.Equal(t, "newest", m.Query())

	m = press(t, m, altP)
	assert.Equal(t, "older", m.Query())

	// Walking past the oldest entry stays put.
	m = press(t, m, altP)
	assert.Equal(t, "older", m.Query())

	m = press(t, m, altN)
	assert.Equal(t, "newest", m.Query())

	// Walking back down restores the live query.
	m = press(t, m, altN)
	assert.Equal(t, "live", m.Query())
}

func TestModelPasteInsertsAtCursor(t *testing.T) {
	req := &complete.Request{
		Prompt:  "pick: ",
		Initial: complete.Initial{Text: "ac", Pos: 1},
	}
	m := testModel(req, []string{"abc"}, nil)

	updated, _ := m.Update(pasteMsg("b"))
	m = updated.(Model)

	assert.Equal(t, "abc", m.Query())
	assert.Equal(t, 2, m.input.Position())
	assert.Equal(t, []string{"abc"}, m.Filtered())
}

func TestModelWindowResize(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	m := testModel(req, []string{"a"}, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	assert.Equal(t, 120, m.width)
}

func TestModelScrollKeepsSelectionVisible(t *testing.T) {
	req := &complete.Request{Prompt: "pick: "}
	candidates := []string{"c0", "c1", "c2", "c3", "c4"}
	m := newModel(req, &complete.Session{}, candidates, nil, DefaultKeyMap(), DefaultStyles(), 2, nil)

	for i := 0; i < 4; i++ {
		m = press(t, m, keyMsg(tea.KeyDown))
	}
	assert.Equal(t, 3, m.Selected())
	assert.Equal(t, 2, m.offset, "window scrolled down to keep selection visible")

	// Wrap to the top scrolls back.
	m = press(t, m, keyMsg(tea.KeyDown))
	m = press(t, m, keyMsg(tea.KeyDown))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 0, m.offset)
}
