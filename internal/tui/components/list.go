package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/sorter"
	"github.com/tessro/uampc/internal/tui/styles"
	"github.com/tessro/uampc/internal/vtable"
)

// Column describes one column of a list.
type Column[T any] struct {
	Key   sorter.Key
	Title string
	// Width is the fixed width. Columns with Flex share the remaining space.
	Width int
	Flex  int
	Right bool
	// MinTotal hides the column when the list is narrower.
	MinTotal int
	Value    func(T) string
}

// Layout picks the columns that fit in width and sizes the flexible ones.
func Layout[T any](cols []Column[T], width int) []Column[T] {
	var out []Column[T]
	for _, c := range cols {
		if width >= c.MinTotal {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil
	}

	fixed, flex := len(out)-1, 0
	for _, c := range out {
		fixed += c.Width
		flex += c.Flex
	}
	free := max(0, width-fixed)
	rest := free
	last := -1
	for i := range out {
		if out[i].Flex == 0 {
			continue
		}
		w := free * out[i].Flex / flex
		out[i].Width += w
		rest -= w
		last = i
	}
	if last >= 0 {
		out[last].Width += rest
	}
	return out
}

func cell(s string, width int, right bool) string {
	s = styles.Truncate(s, width)
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// Header renders the column titles, marking the sorted column.
func Header[T any](cols []Column[T], key sorter.Key, ascending bool) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		title := c.Title
		if key != "" && c.Key == key {
			if ascending {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		parts[i] = cell(title, c.Width, c.Right)
	}
	return styles.Label.Bold(true).Render(strings.Join(parts, " "))
}

// Line renders one item across the columns as plain text.
func Line[T any](cols []Column[T], item T) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = cell(c.Value(item), c.Width, c.Right)
	}
	return strings.Join(parts, " ")
}

// Lines renders the rows of a pane that are on screen. The cursor row is
// highlighted when focused and the active row is colored. Lines whose row
// is not materialized stay blank.
func Lines[T any, K comparable](p *session.Pane[T, K], width int, focused bool, line func(T) string) []string {
	lines := make([]string, 0, p.Scroller.ClientHeight())
	top := p.Scroller.ScrollTop()
	p.Visible(func(i int, row vtable.Row[T, K], ok bool) {
		if !ok {
			lines = append(lines, "")
			return
		}
		text := cell(line(row.Item), width, false)
		style := lipgloss.NewStyle()
		if row.Active {
			style = styles.Playing
		}
		if focused && top+i == p.Cursor() {
			style = style.Background(styles.Surface).Bold(true)
		}
		lines = append(lines, style.Render(text))
	})
	for len(lines) < p.Scroller.ClientHeight() {
		lines = append(lines, "")
	}
	return lines
}

// Box wraps content in a titled panel of the given outer size.
func Box(title string, content []string, width, height int, focused bool) string {
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{styles.PanelTitle(title, focused)}, content...)...)
	return styles.Panel(focused).
		Width(max(0, width-2)).
		Height(max(0, height-2)).
		MaxHeight(height).
		Render(body)
}
