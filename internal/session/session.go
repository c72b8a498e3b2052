// Package session holds the client state mirrored from the server: the
// library, the player with its playlist stack, the playback position and
// the list panes showing them.
//
// A Session is driven from a single goroutine. Events from the server go
// through Apply; user actions produce uamp.Intent values that the caller
// sends. The session itself never performs I/O.
package session

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/sorter"
	"github.com/tessro/uampc/internal/vtable"
)

// View names a sortable, searchable list.
type View int

const (
	ViewSongs View = iota
	ViewAlbums
	ViewArtists
	ViewAlbumSongs
	ViewArtistSongs
)

// SongPane lists songs.
type SongPane = Pane[*core.Song, core.SongID]

// Options configures a Session.
type Options struct {
	// BarAutoscroll keeps the bar playlist centered on the current song.
	BarAutoscroll bool
}

// Session is the mirrored client state.
type Session struct {
	log *zap.Logger

	Library  *library.Library
	Player   *core.Player
	Position *core.Timestamp
	// Config is the server configuration as last sent.
	Config json.RawMessage

	// Album and Artist are the opened detail pages, if any.
	Album  *library.Album
	Artist *library.Artist

	Frames *vtable.FrameQueue

	Songs    *SongPane
	Playlist *SongPane
	Bar      *SongPane
	Detail   *SongPane
	Albums   *Pane[*library.Album, string]
	Artists  *Pane[*library.Artist, string]

	ready   bool
	movedTo string
}

// New creates an empty session. It is filled by the first set-all event.
func New(opts Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		log:    log.With(zap.String("module", "session")),
		Frames: &vtable.FrameQueue{},
	}
	s.Library = library.New(library.Data{})
	s.Player = core.NewPlayerWith(core.NewPlaylist(core.PlaylistData{}, s.Library))

	songID := func(song *core.Song) core.SongID { return song.ID }
	playing := func() (core.SongID, bool) { return s.Player.PlayingID() }

	s.Songs = newPane(s.Frames, func() []*core.Song { return s.Library.Songs.Get() }, songID, playing, false)
	s.Playlist = newPane(s.Frames, func() []*core.Song { return s.Player.Viewed().Songs }, songID,
		func() (core.SongID, bool) { return s.Player.Viewed().PlayingID() }, true)
	s.Bar = newPane(s.Frames, func() []*core.Song { return s.Player.Active().Songs }, songID, playing, opts.BarAutoscroll)
	s.Detail = newPane(s.Frames, s.detailSongs, songID, playing, false)
	s.Albums = newPane(s.Frames, func() []*library.Album { return s.Library.Albums.Get() },
		(*library.Album).Key, noCurrent[string], false)
	s.Artists = newPane(s.Frames, func() []*library.Artist { return s.Library.Artists.Get() },
		func(a *library.Artist) string { return a.Name }, noCurrent[string], false)
	return s
}

func noCurrent[K any]() (K, bool) {
	var zero K
	return zero, false
}

// Ready reports whether the full state has arrived.
func (s *Session) Ready() bool {
	return s.ready
}

// MovedTo returns the address announced by the last new-server event.
func (s *Session) MovedTo() string {
	return s.movedTo
}

// Tabs returns the playlist tab labels, the playing playlist first.
func (s *Session) Tabs() []string {
	labels := make([]string, s.Player.Tabs())
	labels[0] = "Playing"
	for i := 1; i < len(labels); i++ {
		labels[i] = "-" + strconv.Itoa(i)
	}
	return labels
}

// SetPlaylistTab switches the playlist pane to tab.
func (s *Session) SetPlaylistTab(tab int) error {
	if err := s.Player.SetTab(tab); err != nil {
		return err
	}
	s.Playlist.Render()
	return nil
}

// OpenAlbum shows the songs of album in the detail pane.
func (s *Session) OpenAlbum(album *library.Album) {
	s.Album, s.Artist = album, nil
	s.Detail.MoveTo(0)
	s.Detail.Render()
}

// OpenArtist shows the songs of artist in the detail pane.
func (s *Session) OpenArtist(artist *library.Artist) {
	s.Album, s.Artist = nil, artist
	s.Detail.MoveTo(0)
	s.Detail.Render()
}

func (s *Session) detailSongs() []*core.Song {
	switch {
	case s.Album != nil:
		return s.Album.Songs.Get()
	case s.Artist != nil:
		return s.Artist.Songs.Get()
	}
	return nil
}

// ToggleSort cycles the sort of a view by key.
func (s *Session) ToggleSort(view View, key sorter.Key) error {
	var err error
	switch view {
	case ViewSongs:
		if err = s.Library.Songs.ToggleSort(key); err == nil {
			s.Songs.Render()
		}
	case ViewAlbums:
		if err = s.Library.Albums.ToggleSort(key); err == nil {
			s.Albums.Render()
		}
	case ViewArtists:
		if err = s.Library.Artists.ToggleSort(key); err == nil {
			s.Artists.Render()
		}
	case ViewAlbumSongs:
		if s.Album == nil {
			return ErrNoDetail
		}
		if err = s.Album.Songs.ToggleSort(key); err == nil {
			s.Detail.Render()
		}
	case ViewArtistSongs:
		if s.Artist == nil {
			return ErrNoDetail
		}
		if err = s.Artist.Songs.ToggleSort(key); err == nil {
			s.Detail.Render()
		}
	default:
		return fmt.Errorf("sort view %d: %w", view, ErrUnknownView)
	}
	return err
}

// Search filters a library view.
func (s *Session) Search(view View, query string) error {
	switch view {
	case ViewSongs:
		s.Library.SearchSongs(query)
		s.Songs.Render()
	case ViewAlbums:
		s.Library.SearchAlbums(query)
		s.Albums.Render()
	case ViewArtists:
		s.Library.SearchArtists(query)
		s.Artists.Render()
	default:
		return fmt.Errorf("search view %d: %w", view, ErrUnknownView)
	}
	return nil
}

// Tick advances the position estimate by delta seconds while playing.
func (s *Session) Tick(delta float64) {
	if !s.Player.IsPlaying() || s.Position == nil || s.Player.Playing() == nil {
		return
	}
	s.Position.Advance(delta)
}

// Progress returns the playback position and the playing song length.
func (s *Session) Progress() (current, total core.Duration, percent float64) {
	song := s.Player.Playing()
	if song == nil {
		return core.Duration{}, core.Duration{}, 0
	}
	if s.Position == nil {
		return core.Duration{}, song.Length, 0
	}
	ts := core.Timestamp{Current: s.Position.Current, Total: s.playingLength(song)}
	return ts.Current, ts.Total, ts.ProgressPercent()
}

// playingLength prefers the total the server reported for the playing
// song over the library length.
func (s *Session) playingLength(song *core.Song) core.Duration {
	if s.Position != nil && !s.Position.Total.IsZero() {
		return s.Position.Total
	}
	return song.Length
}

// RenderAll rebuilds every pane.
func (s *Session) RenderAll() {
	s.Songs.Render()
	s.Albums.Render()
	s.Artists.Render()
	s.Playlist.Render()
	s.Bar.Render()
	s.Detail.Render()
}

// highlight re-marks the playing song in every song pane.
func (s *Session) highlight() {
	s.Songs.Table.Highlight()
	s.Playlist.Table.Highlight()
	s.Bar.Table.Highlight()
	s.Detail.Table.Highlight()
}
