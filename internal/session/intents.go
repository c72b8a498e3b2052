package session

import (
	"fmt"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/uamp"
)

// ClickLibrary plays the library songs as shown, starting at index i.
func (s *Session) ClickLibrary(i int) (uamp.Intent, error) {
	return playSongs(s.Library.Songs.Get(), i)
}

// ClickDetail plays the songs of the opened album or artist as shown,
// starting at index i.
func (s *Session) ClickDetail(i int) (uamp.Intent, error) {
	if s.Album == nil && s.Artist == nil {
		return uamp.Intent{}, ErrNoDetail
	}
	return playSongs(s.detailSongs(), i)
}

// ClickPlaylist plays the song at index i of the viewed tab. A suspended
// tab is raised to the top first.
func (s *Session) ClickPlaylist(i int) (uamp.Intent, error) {
	viewed := s.Player.Viewed()
	if i < 0 || i >= viewed.Len() {
		return uamp.Intent{}, fmt.Errorf("playlist row %d of %d: %w", i, viewed.Len(), core.ErrIndexOutOfRange)
	}
	intent := uamp.Jump(i).Then(uamp.Play())
	if tab := s.Player.Tab(); tab != 0 {
		intent = uamp.RaiseTab(tab).Then(intent)
	}
	return intent, nil
}

// ClickBar jumps to index i of the active playlist.
func (s *Session) ClickBar(i int) (uamp.Intent, error) {
	active := s.Player.Active()
	if i < 0 || i >= active.Len() {
		return uamp.Intent{}, fmt.Errorf("bar row %d of %d: %w", i, active.Len(), core.ErrIndexOutOfRange)
	}
	return uamp.Jump(i), nil
}

// SeekPercent seeks to percent (0..1) of the playing song.
func (s *Session) SeekPercent(percent float64) (uamp.Intent, error) {
	song := s.Player.Playing()
	if song == nil {
		return uamp.Intent{}, ErrNothingPlaying
	}
	return uamp.Seek(s.playingLength(song).FromPercent(percent)), nil
}

// PlayAlbum replaces the playlist with the album's songs, resolved by the
// server from the album query, and plays song i.
func (s *Session) PlayAlbum(album *library.Album, i int) uamp.Intent {
	return uamp.SetQuery(album.Query(), "").Then(uamp.Jump(max(0, i))).Then(uamp.Play())
}

// PushArtist pushes a playlist with every song of artist.
func (s *Session) PushArtist(artist *library.Artist) uamp.Intent {
	return uamp.PushQuery(artist.Query())
}

// QueueSong appends song to the active playlist.
func (s *Session) QueueSong(song *core.Song) uamp.Intent {
	return uamp.Queue(song.Query())
}

// PlaySongNext inserts song after the current one.
func (s *Session) PlaySongNext(song *core.Song) uamp.Intent {
	return uamp.PlayNext(song.Query())
}

func playSongs(songs []*core.Song, i int) (uamp.Intent, error) {
	if i < 0 || i >= len(songs) {
		return uamp.Intent{}, fmt.Errorf("song row %d of %d: %w", i, len(songs), core.ErrIndexOutOfRange)
	}
	ids := make([]core.SongID, len(songs))
	for j, song := range songs {
		ids[j] = song.ID
	}
	return uamp.SetPlaylist(ids, i, true), nil
}
