package wizard

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
)

// SearchType represents the type of search to perform.
type SearchType int

const (
	SearchAll SearchType = iota
	SearchSongs
	SearchAlbums
	SearchArtists

	searchTypes = 4
)

// allLimit caps each kind of result in the combined search.
const allLimit = 5

// SearchResult represents a search result item. Exactly one of Song,
// Album and Artist is set.
type SearchResult struct {
	Title    string
	Subtitle string
	Type     SearchType

	Song   *core.Song
	Album  *library.Album
	Artist *library.Artist
}

// SearchFunc is a function that performs a search.
type SearchFunc func(query string, searchType SearchType) ([]SearchResult, error)

// LibrarySearch searches the views of lib. It replaces the library's
// search queries.
func LibrarySearch(lib *library.Library) SearchFunc {
	return func(query string, searchType SearchType) ([]SearchResult, error) {
		limit := -1
		if searchType == SearchAll {
			limit = allLimit
		}

		var results []SearchResult
		if searchType == SearchAll || searchType == SearchArtists {
			lib.SearchArtists(query)
			for _, a := range head(lib.Artists.Get(), limit) {
				results = append(results, SearchResult{
					Title: a.Name, Subtitle: a.Details(), Type: SearchArtists, Artist: a,
				})
			}
		}
		if searchType == SearchAll || searchType == SearchAlbums {
			lib.SearchAlbums(query)
			for _, a := range head(lib.Albums.Get(), limit) {
				results = append(results, SearchResult{
					Title: a.Name, Subtitle: a.Artist + " (" + a.YearString() + ")", Type: SearchAlbums, Album: a,
				})
			}
		}
		if searchType == SearchAll || searchType == SearchSongs {
			lib.SearchSongs(query)
			for _, s := range head(lib.Songs.Get(), limit) {
				results = append(results, SearchResult{
					Title: s.Title, Subtitle: s.Artist() + " - " + s.Album, Type: SearchSongs, Song: s,
				})
			}
		}
		return results, nil
	}
}

func head[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// SearchModel is the bubbletea model for the search wizard.
type SearchModel struct {
	input      textinput.Model
	results    []SearchResult
	cursor     int
	searchType SearchType
	searchFunc SearchFunc
	selected   *SearchResult
	err        error
	debounce   time.Duration
	lastQuery  string
	searching  bool
	width      int
	height     int
}

// Styles
var (
	searchTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	searchTabStyle = lipgloss.NewStyle().
			Padding(0, 2)

	searchActiveTabStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Background(lipgloss.Color("205")).
				Foreground(lipgloss.Color("0"))

	searchResultStyle = lipgloss.NewStyle().
				PaddingLeft(2)

	searchSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	searchSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// NewSearchModel creates a new search wizard model.
func NewSearchModel(searchFunc SearchFunc, debounce time.Duration) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search for songs, albums, artists..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	return SearchModel{
		input:      ti,
		searchFunc: searchFunc,
		debounce:   debounce,
		searchType: SearchAll,
		width:      80,
		height:     20,
	}
}

// Init initializes the model.
func (m SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// debounceMsg is sent after the debounce period.
type debounceMsg struct {
	query string
}

// searchResultsMsg contains search results.
type searchResultsMsg struct {
	query   string
	results []SearchResult
	err     error
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if len(m.results) > 0 && m.cursor < len(m.results) {
				m.selected = &m.results[m.cursor]
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case "tab":
			m.searchType = (m.searchType + 1) % searchTypes
			return m, m.doSearch(m.input.Value())

		case "shift+tab":
			m.searchType = (m.searchType + searchTypes - 1) % searchTypes
			return m, m.doSearch(m.input.Value())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4

	case debounceMsg:
		if msg.query == m.input.Value() && msg.query != m.lastQuery {
			m.lastQuery = msg.query
			m.searching = true
			return m, m.doSearch(msg.query)
		}
		return m, nil

	case searchResultsMsg:
		// Results of a superseded query are dropped.
		if msg.query != m.input.Value() {
			return m, nil
		}
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.cursor = 0
		return m, nil
	}

	// Handle text input
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if query := m.input.Value(); query != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.debounce, func(time.Time) tea.Msg {
			return debounceMsg{query: query}
		}))
	}

	return m, tea.Batch(cmds...)
}

// doSearch performs the search.
func (m SearchModel) doSearch(query string) tea.Cmd {
	searchType := m.searchType
	return func() tea.Msg {
		if strings.TrimSpace(query) == "" {
			return searchResultsMsg{query: query}
		}
		results, err := m.searchFunc(query, searchType)
		return searchResultsMsg{query: query, results: results, err: err}
	}
}

// View renders the model.
func (m SearchModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(searchTitleStyle.Render("🔍 Search"))
	b.WriteString("\n\n")

	// Search input
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	// Type filter tabs
	tabs := []string{"All", "Songs", "Albums", "Artists"}
	for i, tab := range tabs {
		if SearchType(i) == m.searchType {
			b.WriteString(searchActiveTabStyle.Render(tab))
		} else {
			b.WriteString(searchTabStyle.Render(tab))
		}
	}
	b.WriteString("\n\n")

	// Results
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("Error: " + m.err.Error()))
	} else if m.searching {
		b.WriteString("Searching...")
	} else if len(m.results) == 0 && m.input.Value() != "" {
		b.WriteString("No results found")
	} else {
		maxResults := max(m.height-10, 5)
		start := 0
		if m.cursor >= maxResults {
			start = m.cursor - maxResults + 1
		}
		for i := start; i < len(m.results); i++ {
			if i-start >= maxResults {
				b.WriteString(searchSubtitleStyle.Render("  ...and more"))
				break
			}
			result := m.results[i]

			line := kindLabel(result.Type) + result.Title
			if result.Subtitle != "" {
				line += " " + searchSubtitleStyle.Render(result.Subtitle)
			}

			if i == m.cursor {
				b.WriteString(searchSelectedStyle.Render("▸ " + line))
			} else {
				b.WriteString(searchResultStyle.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	// Help
	b.WriteString("\n")
	b.WriteString(searchSubtitleStyle.Render("↑/↓ navigate • tab switch type • enter select • esc quit"))

	return b.String()
}

func kindLabel(t SearchType) string {
	switch t {
	case SearchArtists:
		return "👤 "
	case SearchAlbums:
		return "💿 "
	default:
		return "🎵 "
	}
}

// Selected returns the selected result, or nil if none.
func (m SearchModel) Selected() *SearchResult {
	return m.selected
}

// RunSearch runs the search wizard and returns the selected result.
func RunSearch(searchFunc SearchFunc, debounce time.Duration) (*SearchResult, error) {
	model := NewSearchModel(searchFunc, debounce)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(SearchModel).Selected(), nil
}
