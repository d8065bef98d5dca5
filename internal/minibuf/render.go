package minibuf

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const truncationTail = "…"

// View implements tea.Model. It renders the prompt line, the visible
// window of the candidate list, and a match counter.
func (m Model) View() string {
	if m.result != resultNone {
		// Session is over; leave nothing behind on the alternate line.
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Prompt.Render(m.req.Prompt))
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		if m.input.Value() != "" {
			b.WriteString(m.styles.Notice.Render("  [no match]"))
			b.WriteString("\n")
		}
	} else {
		end := m.offset + m.maxVisible
		if end > len(m.filtered) {
			end = len(m.filtered)
		}
		for i := m.offset; i < end; i++ {
			row := m.filtered[i]
			if m.width > 4 {
				row = truncate.StringWithTail(row, uint(m.width-4), truncationTail)
			}
			if i == m.selected {
				b.WriteString(m.styles.Selected.Render("> " + row))
			} else {
				b.WriteString(m.styles.Candidate.Render("  " + row))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Counter.Render(fmt.Sprintf("  %s/%s",
		humanize.Comma(int64(len(m.filtered))),
		humanize.Comma(int64(len(m.candidates))))))

	return b.String()
}
