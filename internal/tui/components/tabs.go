package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/uampc/internal/tui/styles"
)

// Tabs renders a row of labels with one selected.
type Tabs struct{}

// NewTabs creates a tab row.
func NewTabs() *Tabs {
	return &Tabs{}
}

// Render renders labels, highlighting the one at selected and coloring
// the one at playing.
func (t *Tabs) Render(labels []string, selected, playing int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		style := styles.Muted.Padding(0, 1)
		if i == playing {
			style = styles.Playing.Padding(0, 1)
		}
		if i == selected {
			style = style.Bold(true).Background(styles.Surface).Foreground(styles.Primary)
		}
		parts[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, styles.Dim.Render("│")))
}
