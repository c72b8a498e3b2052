package wizard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tessro/uampc/internal/session"
)

// TabItem describes one playlist of the stack.
type TabItem struct {
	Index int
	Label string
	Songs int
	// Current is the title of the playlist's current song, if any.
	Current string
}

// TabItems lists the playlist stack of s, the playing playlist first.
func TabItems(s *session.Session) []TabItem {
	labels := s.Tabs()
	items := make([]TabItem, 0, len(labels))
	for i, label := range labels {
		pl, err := s.Player.ByTab(i)
		if err != nil {
			continue
		}
		item := TabItem{Index: i, Label: label, Songs: pl.Len()}
		if cur, ok := pl.Current(); ok {
			item.Current = pl.Songs[cur].Title
		}
		items = append(items, item)
	}
	return items
}

// TabModel is the bubbletea model for the playlist tab picker.
type TabModel struct {
	tabs     []TabItem
	cursor   int
	selected *TabItem
	width    int
	height   int
}

// Styles for the tab picker
var (
	tabTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	tabItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	tabSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	tabPlayingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	tabMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewTabModel creates a new tab picker model.
func NewTabModel(tabs []TabItem) TabModel {
	return TabModel{
		tabs:   tabs,
		width:  80,
		height: 20,
	}
}

// Init initializes the model.
func (m TabModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TabModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if len(m.tabs) > 0 && m.cursor < len(m.tabs) {
				m.selected = &m.tabs[m.cursor]
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < len(m.tabs)-1 {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(len(m.tabs)-1, 0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m TabModel) View() string {
	var b strings.Builder

	b.WriteString(tabTitleStyle.Render("📚 Select Playlist"))
	b.WriteString("\n\n")

	if len(m.tabs) == 0 {
		b.WriteString(tabMutedStyle.Render("No playlists"))
	} else {
		for i, tab := range m.tabs {
			var line strings.Builder

			if tab.Index == 0 {
				line.WriteString(tabPlayingStyle.Render("● "))
			} else {
				line.WriteString(tabMutedStyle.Render("○ "))
			}
			line.WriteString(tab.Label)
			line.WriteString(" " + tabMutedStyle.Render(fmt.Sprintf("(%s songs)", humanize.Comma(int64(tab.Songs)))))
			if tab.Current != "" {
				line.WriteString(tabMutedStyle.Render(" - " + tab.Current))
			}

			if i == m.cursor {
				b.WriteString(tabSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(tabItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(tabMutedStyle.Render("↑/↓ navigate • enter raise • esc quit"))
	b.WriteString("\n")
	b.WriteString(tabMutedStyle.Render("● playing  ○ suspended"))

	return b.String()
}

// Selected returns the selected tab, or nil if none.
func (m TabModel) Selected() *TabItem {
	return m.selected
}

// RunTabPicker runs the tab picker and returns the selected tab.
func RunTabPicker(tabs []TabItem) (*TabItem, error) {
	model := NewTabModel(tabs)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(TabModel).Selected(), nil
}
