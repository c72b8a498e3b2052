package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/config"
	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/sorter"
	"github.com/tessro/uampc/internal/tui/components"
	"github.com/tessro/uampc/internal/tui/styles"
	"github.com/tessro/uampc/internal/uamp"
)

// Screen is the main view shown above the bar.
type Screen int

const (
	ScreenLibrary Screen = iota
	ScreenAlbums
	ScreenArtists
	ScreenPlaylist
	ScreenDetail
)

// listScreens are cycled with tab. The detail screen is opened from a list.
var listScreens = []string{"Library", "Albums", "Artists", "Playlist"}

const (
	errorDuration  = 5 * time.Second
	noticeDuration = 3 * time.Second
	// seekStep is how far the seek keys move, in seconds.
	seekStep = 5.0
	barRows  = 5
)

// Sender delivers intents to the server.
type Sender interface {
	Send(ctx context.Context, intent uamp.Intent) error
}

// Source delivers server events, as uamp.Stream does.
type Source interface {
	Run(ctx context.Context, events chan<- uamp.Event, status chan<- uamp.Status) error
}

// Options configures the UI.
type Options struct {
	// Server is the address shown while connecting.
	Server         string
	Theme          string
	SearchDebounce time.Duration
	TickInterval   time.Duration
	RequestTimeout time.Duration
	BarAutoscroll  bool
}

// OptionsFromConfig builds the UI options from the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Server:         cfg.Server.URL(),
		Theme:          cfg.TUI.Theme,
		SearchDebounce: time.Duration(cfg.TUI.SearchDebounce) * time.Millisecond,
		TickInterval:   time.Duration(cfg.TUI.TickInterval) * time.Millisecond,
		RequestTimeout: cfg.Server.RequestTimeout(),
		BarAutoscroll:  cfg.TUI.Autoscroll(),
	}
}

func (o *Options) applyDefaults() {
	if o.SearchDebounce <= 0 {
		o.SearchDebounce = 200 * time.Millisecond
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 10 * time.Second
	}
}

// Model is the main TUI model
type Model struct {
	session *session.Session
	sender  Sender
	keys    KeyMap
	opts    Options
	log     *zap.Logger
	copy    func(string) error

	events <-chan uamp.Event
	status <-chan uamp.Status

	width  int
	height int

	screen     Screen
	listScreen Screen // the screen a detail page was opened from
	barFocused bool

	// Components
	songs      *components.SongList
	playlist   *components.SongList
	detail     *components.SongList
	albums     *components.AlbumList
	artists    *components.ArtistList
	nowPlaying *components.NowPlaying
	tabs       *components.Tabs

	// Overlays
	showHelp bool

	// Search state
	searching   bool
	searchInput textinput.Model
	lastQuery   string

	// Connection
	connected bool
	connErr   error
	lastTick  time.Time

	// Status line
	notice       string
	noticeExpiry time.Time
	lastError    error
	errorExpiry  time.Time

	quitting bool
}

// NewModel creates a model over s. Events and status updates are read
// from the channels until they are closed; nil channels are never read.
func NewModel(s *session.Session, sender Sender, events <-chan uamp.Event, status <-chan uamp.Status, opts Options, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	opts.applyDefaults()

	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "/"

	return Model{
		session:     s,
		sender:      sender,
		keys:        DefaultKeyMap(),
		opts:        opts,
		log:         log.With(zap.String("module", "tui")),
		copy:        clipboard.WriteAll,
		events:      events,
		status:      status,
		songs:       components.NewSongList("Library"),
		playlist:    components.NewSongList("Playlist"),
		detail:      components.NewSongList(""),
		albums:      components.NewAlbumList(),
		artists:     components.NewArtistList(),
		nowPlaying:  components.NewNowPlaying(),
		tabs:        components.NewTabs(),
		searchInput: ti,
	}
}

// Messages
type eventMsg uamp.Event
type statusMsg uamp.Status
type streamClosedMsg struct{}
type frameMsg struct{}
type tickMsg time.Time
type errMsg struct{ err error }
type searchDebounceMsg struct{ query string }

// Commands
func waitForEvent(ch <-chan uamp.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg(ev)
	}
}

func waitForStatus(ch <-chan uamp.Status) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return statusMsg(st)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// flush clears the tables' scroll guards on the next turn of the loop.
func (m Model) flush() tea.Cmd {
	if !m.session.Frames.Pending() {
		return nil
	}
	return func() tea.Msg { return frameMsg{} }
}

func (m Model) send(intent uamp.Intent) tea.Cmd {
	sender, timeout, log := m.sender, m.opts.RequestTimeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := sender.Send(ctx, intent); err != nil {
			log.Warn("send failed", zap.Stringer("intent", intent), zap.Error(err))
			return errMsg{err}
		}
		return nil
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		waitForStatus(m.status),
		m.tick(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, m.flush()

	case eventMsg:
		return m.handleEvent(uamp.Event(msg))

	case statusMsg:
		m.connected = msg.Connected
		m.connErr = msg.Err
		if msg.Connected {
			m.setNotice("Connected")
		}
		return m, waitForStatus(m.status)

	case streamClosedMsg:
		m.connected = false
		m.setError(errors.New("event stream closed"))
		return m, nil

	case frameMsg:
		m.session.Frames.Flush()
		return m, m.flush()

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			m.session.Tick(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		m.expire(now)
		return m, m.tick()

	case errMsg:
		m.setError(msg.err)
		return m, nil

	case searchDebounceMsg:
		if msg.query == m.searchInput.Value() && msg.query != m.lastQuery {
			m.applySearch(msg.query)
		}
		return m, m.flush()
	}

	// Forward other messages to textinput when search is active
	if m.searching {
		var inputCmd tea.Cmd
		m.searchInput, inputCmd = m.searchInput.Update(msg)
		return m, inputCmd
	}

	return m, nil
}

func (m Model) handleEvent(ev uamp.Event) (tea.Model, tea.Cmd) {
	notice, err := m.session.Apply(ev)
	if err != nil {
		m.setError(err)
	}
	switch notice {
	case session.NoticeQuitting:
		m.setNotice("Server is quitting")
	case session.NoticeRestarting:
		m.setNotice("Server is restarting")
	case session.NoticeServerMoved:
		m.setNotice("Server moved to " + m.session.MovedTo())
	case session.NoticeClientChanged:
		m.setNotice("A newer client is available on the server")
	}
	if m.screen == ScreenDetail && m.session.Album == nil && m.session.Artist == nil {
		m.screen = m.listScreen
	}
	// Position updates restart the estimate.
	m.lastTick = time.Now()
	return m, tea.Batch(waitForEvent(m.events), m.flush())
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorDuration)
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeExpiry = time.Now().Add(noticeDuration)
}

func (m *Model) expire(now time.Time) {
	if m.lastError != nil && now.After(m.errorExpiry) {
		m.lastError = nil
	}
	if m.notice != "" && now.After(m.noticeExpiry) {
		m.notice = ""
	}
}

// layout returns the heights of the main panel and the bar panel.
func (m Model) layout() (mainH, barH int) {
	rows := barRows
	if m.height < 24 {
		rows = 2
	}
	barH = components.HeaderLines + rows + 3
	mainH = max(5, m.height-barH-2)
	return mainH, barH
}

func (m *Model) resize() {
	mainH, barH := m.layout()
	rows := max(1, mainH-4)
	m.session.Songs.Resize(rows)
	m.session.Albums.Resize(rows)
	m.session.Artists.Resize(rows)
	m.session.Playlist.Resize(rows)
	m.session.Detail.Resize(rows)
	m.session.Bar.Resize(max(1, barH-components.HeaderLines-3))
}

// pane is the part of a session pane the key handlers use.
type pane interface {
	Move(delta int)
	MoveTo(i int)
	Len() int
	Cursor() int
}

func (m Model) focusedPane() pane {
	if m.barFocused {
		return m.session.Bar
	}
	switch m.screen {
	case ScreenAlbums:
		return m.session.Albums
	case ScreenArtists:
		return m.session.Artists
	case ScreenPlaylist:
		return m.session.Playlist
	case ScreenDetail:
		return m.session.Detail
	}
	return m.session.Songs
}

func (m Model) selectedSong() *core.Song {
	var p *session.SongPane
	switch {
	case m.barFocused:
		p = m.session.Bar
	case m.screen == ScreenLibrary:
		p = m.session.Songs
	case m.screen == ScreenPlaylist:
		p = m.session.Playlist
	case m.screen == ScreenDetail:
		p = m.session.Detail
	default:
		return nil
	}
	song, ok := p.Selected()
	if !ok {
		return nil
	}
	return song
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (always work)
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	// Search input
	if m.searching {
		return m.handleSearchKeyPress(msg)
	}

	if !m.session.Ready() {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Search):
		return m.openSearch()

	case key.Matches(msg, m.keys.Back):
		if m.barFocused {
			m.barFocused = false
		} else if m.screen == ScreenDetail {
			m.screen = m.listScreen
		}

	case key.Matches(msg, m.keys.NextScreen):
		m.cycleScreen(1)

	case key.Matches(msg, m.keys.PrevScreen):
		m.cycleScreen(-1)

	case key.Matches(msg, m.keys.FocusBar):
		m.barFocused = !m.barFocused

	case key.Matches(msg, m.keys.Up):
		m.focusedPane().Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.focusedPane().Move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.focusedPane().Move(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.focusedPane().Move(m.pageSize())
	case key.Matches(msg, m.keys.Top):
		m.focusedPane().MoveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		p := m.focusedPane()
		p.MoveTo(p.Len() - 1)

	case key.Matches(msg, m.keys.Select):
		cmd = m.selectItem()
	case key.Matches(msg, m.keys.PlayAll):
		cmd = m.playAll()
	case key.Matches(msg, m.keys.Queue):
		cmd = m.withSong(m.session.QueueSong)
	case key.Matches(msg, m.keys.PlayNext):
		cmd = m.withSong(m.session.PlaySongNext)
	case key.Matches(msg, m.keys.Yank):
		m.yank()
	case key.Matches(msg, m.keys.Sort):
		m.sort(int(msg.String()[0] - '1'))

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.RaiseTab):
		if tab := m.session.Player.Tab(); tab != 0 {
			cmd = m.send(uamp.RaiseTab(tab))
		}
	case key.Matches(msg, m.keys.PopTab):
		if m.session.Player.StackLen() == 0 {
			m.setNotice("No playlist to pop")
		} else {
			cmd = m.send(uamp.PopPlaylist(1))
		}

	case key.Matches(msg, m.keys.TogglePlay):
		cmd = m.send(uamp.TogglePlay())
	case key.Matches(msg, m.keys.Next):
		cmd = m.send(uamp.Next(1))
	case key.Matches(msg, m.keys.Prev):
		cmd = m.send(uamp.Prev())
	case key.Matches(msg, m.keys.Stop):
		cmd = m.send(uamp.Stop())
	case key.Matches(msg, m.keys.SeekBack):
		cmd = m.seek(-seekStep)
	case key.Matches(msg, m.keys.SeekAhead):
		cmd = m.seek(seekStep)
	case key.Matches(msg, m.keys.VolumeUp):
		cmd = m.send(uamp.VolumeUp())
	case key.Matches(msg, m.keys.VolumeDown):
		cmd = m.send(uamp.VolumeDown())
	case key.Matches(msg, m.keys.Mute):
		cmd = m.send(uamp.ToggleMute())
	}

	return m, tea.Batch(cmd, m.flush())
}

func (m Model) pageSize() int {
	if m.barFocused {
		return max(1, m.session.Bar.Scroller.ClientHeight())
	}
	return max(1, m.session.Songs.Scroller.ClientHeight())
}

func (m *Model) cycleScreen(delta int) {
	n := len(listScreens)
	current := m.screen
	if current == ScreenDetail {
		current = m.listScreen
	}
	m.screen = Screen((int(current) + delta + n) % n)
	m.barFocused = false
}

func (m *Model) selectItem() tea.Cmd {
	s := m.session
	var (
		intent uamp.Intent
		err    error
	)
	switch {
	case m.barFocused:
		intent, err = s.ClickBar(s.Bar.Cursor())
	case m.screen == ScreenLibrary:
		intent, err = s.ClickLibrary(s.Songs.Cursor())
	case m.screen == ScreenPlaylist:
		intent, err = s.ClickPlaylist(s.Playlist.Cursor())
	case m.screen == ScreenDetail:
		intent, err = s.ClickDetail(s.Detail.Cursor())
	case m.screen == ScreenAlbums:
		if album, ok := s.Albums.Selected(); ok {
			s.OpenAlbum(album)
			m.listScreen, m.screen = ScreenAlbums, ScreenDetail
		}
		return nil
	case m.screen == ScreenArtists:
		if artist, ok := s.Artists.Selected(); ok {
			s.OpenArtist(artist)
			m.listScreen, m.screen = ScreenArtists, ScreenDetail
		}
		return nil
	}
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.send(intent)
}

func (m *Model) playAll() tea.Cmd {
	s := m.session
	switch {
	case m.barFocused:
		return nil
	case m.screen == ScreenAlbums:
		if album, ok := s.Albums.Selected(); ok {
			return m.send(s.PlayAlbum(album, 0))
		}
	case m.screen == ScreenArtists:
		if artist, ok := s.Artists.Selected(); ok {
			return m.send(s.PushArtist(artist))
		}
	case m.screen == ScreenDetail && s.Album != nil:
		return m.send(s.PlayAlbum(s.Album, s.Detail.Cursor()))
	case m.screen == ScreenDetail && s.Artist != nil:
		return m.send(s.PushArtist(s.Artist))
	}
	return nil
}

func (m *Model) withSong(fn func(*core.Song) uamp.Intent) tea.Cmd {
	song := m.selectedSong()
	if song == nil {
		return nil
	}
	return m.send(fn(song))
}

func (m *Model) yank() {
	song := m.selectedSong()
	if song == nil {
		return
	}
	if err := m.copy(song.Query()); err != nil {
		m.setError(fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	m.setNotice("Copied query for " + song.Title)
}

// sortTarget names the view and column keys that the sort keys act on.
func (m Model) sortTarget() (session.View, []sorter.Key, bool) {
	if m.barFocused {
		return 0, nil, false
	}
	switch m.screen {
	case ScreenLibrary:
		return session.ViewSongs, library.SongColumns, true
	case ScreenAlbums:
		return session.ViewAlbums, columnKeys(components.AlbumColumns), true
	case ScreenArtists:
		return session.ViewArtists, columnKeys(components.ArtistColumns), true
	case ScreenDetail:
		if m.session.Album != nil {
			return session.ViewAlbumSongs, library.SongColumns, true
		}
		return session.ViewArtistSongs, library.SongColumns, true
	}
	return 0, nil, false
}

func columnKeys[T any](cols []components.Column[T]) []sorter.Key {
	var keys []sorter.Key
	for _, c := range cols {
		if c.Key != "" {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

func (m *Model) sort(column int) {
	view, keys, ok := m.sortTarget()
	if !ok {
		m.setNotice("Playlists keep the server's order")
		return
	}
	if column < 0 || column >= len(keys) {
		return
	}
	if err := m.session.ToggleSort(view, keys[column]); err != nil {
		m.setError(err)
	}
}

func (m *Model) switchTab(delta int) {
	if m.screen != ScreenPlaylist {
		m.screen = ScreenPlaylist
		m.barFocused = false
	}
	n := m.session.Player.Tabs()
	tab := (m.session.Player.Tab() + delta + n) % n
	if err := m.session.SetPlaylistTab(tab); err != nil {
		m.setError(err)
	}
}

func (m *Model) seek(delta float64) tea.Cmd {
	cur, total, _ := m.session.Progress()
	if total.Seconds() <= 0 {
		m.setError(session.ErrNothingPlaying)
		return nil
	}
	intent, err := m.session.SeekPercent((cur.Seconds() + delta) / total.Seconds())
	if err != nil {
		m.setError(err)
		return nil
	}
	return m.send(intent)
}

func (m Model) searchView() (session.View, bool) {
	if m.barFocused {
		return 0, false
	}
	switch m.screen {
	case ScreenLibrary:
		return session.ViewSongs, true
	case ScreenAlbums:
		return session.ViewAlbums, true
	case ScreenArtists:
		return session.ViewArtists, true
	}
	return 0, false
}

func (m Model) currentQuery() string {
	songs, albums, artists := m.session.Library.Queries()
	switch m.screen {
	case ScreenAlbums:
		return albums
	case ScreenArtists:
		return artists
	}
	return songs
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	if _, ok := m.searchView(); !ok {
		m.setNotice("Search works in the library, albums and artists")
		return m, nil
	}
	m.searching = true
	m.lastQuery = m.currentQuery()
	m.searchInput.SetValue(m.lastQuery)
	m.searchInput.CursorEnd()
	m.searchInput.Focus()
	return m, textinput.Blink
}

func (m *Model) applySearch(query string) {
	view, ok := m.searchView()
	if !ok {
		return
	}
	m.lastQuery = query
	if err := m.session.Search(view, query); err != nil {
		m.setError(err)
		return
	}
	m.focusedPane().MoveTo(0)
}

func (m Model) handleSearchKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.lastQuery != "" {
			m.applySearch("")
		}
		return m, m.flush()

	case "enter":
		m.searching = false
		m.searchInput.Blur()
		if q := m.searchInput.Value(); q != m.lastQuery {
			m.applySearch(q)
		}
		return m, m.flush()
	}

	var cmds []tea.Cmd
	var inputCmd tea.Cmd
	m.searchInput, inputCmd = m.searchInput.Update(msg)
	cmds = append(cmds, inputCmd)

	// Debounce search
	if query := m.searchInput.Value(); query != m.lastQuery {
		cmds = append(cmds, tea.Tick(m.opts.SearchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{query: query}
		}))
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if !m.session.Ready() {
		return m.renderConnecting()
	}

	mainH, barH := m.layout()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderMain(mainH),
		m.nowPlaying.Render(m.session, m.width, barH, m.barFocused),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	labels := listScreens
	selected := int(m.screen)
	if m.screen == ScreenDetail {
		labels = append(labels[:len(labels):len(labels)], m.detailTitle())
	}
	header := m.tabs.Render(labels, selected, -1)
	if m.screen == ScreenPlaylist {
		header += "   " + m.tabs.Render(m.session.Tabs(), m.session.Player.Tab(), 0)
	}
	return header
}

func (m Model) detailTitle() string {
	switch {
	case m.session.Album != nil:
		return m.session.Album.Name
	case m.session.Artist != nil:
		return m.session.Artist.Name
	}
	return ""
}

func (m Model) renderMain(height int) string {
	s := m.session
	lib := s.Library
	focused := !m.barFocused
	switch m.screen {
	case ScreenAlbums:
		return m.albums.Render(s.Albums, lib.Albums.Key(), lib.Albums.Ascending(), m.width, height, focused)
	case ScreenArtists:
		return m.artists.Render(s.Artists, lib.Artists.Key(), lib.Artists.Ascending(), m.width, height, focused)
	case ScreenPlaylist:
		m.playlist.Title = fmt.Sprintf("Playlist %s", s.Tabs()[s.Player.Tab()])
		return m.playlist.Render(s.Playlist, "", false, m.width, height, focused)
	case ScreenDetail:
		var songs *sorter.Sorter[*core.Song]
		switch {
		case s.Album != nil:
			songs = s.Album.Songs
			m.detail.Title = fmt.Sprintf("%s - %s (%s, %s)", s.Album.Name, s.Album.Artist, s.Album.YearString(), s.Album.Length().Format())
		case s.Artist != nil:
			songs = s.Artist.Songs
			m.detail.Title = s.Artist.Name + " - " + s.Artist.Details()
		}
		if songs == nil {
			return m.detail.Render(s.Detail, "", false, m.width, height, focused)
		}
		return m.detail.Render(s.Detail, songs.Key(), songs.Ascending(), m.width, height, focused)
	}
	return m.songs.Render(s.Songs, lib.Songs.Key(), lib.Songs.Ascending(), m.width, height, focused)
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.searching:
		left = m.searchInput.View()
	case m.lastError != nil:
		left = styles.ErrorText.Render("Error: " + m.lastError.Error())
	case m.notice != "":
		left = styles.Highlight.Render(m.notice)
	default:
		left = styles.Dim.Render("q:quit  ?:help  /:search  tab:screen  enter:play  space:play/pause  n/p:next/prev")
	}

	conn := styles.Playing.Render("●")
	if !m.connected {
		conn = styles.ErrorText.Render("○")
	}
	right := styles.Dim.Render(humanize.Comma(int64(len(m.session.Library.AllSongs())))+" songs ") + conn

	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		MaxHeight(1).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderConnecting() string {
	lines := []string{styles.Title.Render("Connecting to " + m.opts.Server + "...")}
	if m.connErr != nil {
		lines = append(lines, "", styles.ErrorText.Render(m.connErr.Error()))
	}
	lines = append(lines, "", styles.Dim.Render("q to quit"))
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderHelp() string {
	title := "uampc - Keyboard Shortcuts"
	var b strings.Builder
	b.WriteString("\n  " + title + "\n  " + strings.Repeat("═", len(title)) + "\n")
	for _, group := range m.keys.helpGroups() {
		b.WriteString("\n  " + group.name + "\n  " + strings.Repeat("─", len(group.name)) + "\n")
		for _, binding := range group.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString("\n  Sort columns: 1 title, 2 artist, 3 album, 4 year, 5 length,\n  6 genre, 7 track, 8 disc, 9 library order\n")
	b.WriteString("\n  Press ? or Esc to close\n")

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Render(b.String()))
}

// Run starts the TUI application
func Run(ctx context.Context, source Source, sender Sender, opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	styles.Use(opts.Theme)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan uamp.Event, 64)
	status := make(chan uamp.Status, 4)
	go func() {
		err := source.Run(ctx, events, status)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("event stream stopped", zap.Error(err))
		}
		close(events)
		close(status)
	}()

	s := session.New(session.Options{BarAutoscroll: opts.BarAutoscroll}, log)
	model := NewModel(s, sender, events, status, opts, log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
