package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when a position does not address a
	// song in the playlist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Resolver looks up songs by id. It returns nil for unknown ids.
type Resolver interface {
	Song(id SongID) *Song
}

// PlaylistData is the server's playlist payload.
type PlaylistData struct {
	Songs     []SongID  `json:"songs"`
	Current   *int      `json:"current"`
	PlayPos   *Duration `json:"play_pos"`
	OnEnd     *Alias    `json:"on_end"`
	AddPolicy AddPolicy `json:"add_policy"`
}

// Playlist is an ordered list of songs with an optional current song.
// All positions are indices into Songs after unresolved ids were dropped.
type Playlist struct {
	Songs     []*Song
	PlayPos   *Duration
	OnEnd     *Alias
	AddPolicy AddPolicy

	current int
}

// NewPlaylist materializes a playlist payload. Ids that do not resolve or
// that refer to deleted songs are skipped; a current position that no
// longer addresses a song is cleared.
func NewPlaylist(data PlaylistData, r Resolver) *Playlist {
	p := &Playlist{
		Songs:     ResolveSongs(data.Songs, r),
		PlayPos:   data.PlayPos,
		OnEnd:     data.OnEnd,
		AddPolicy: data.AddPolicy,
		current:   -1,
	}
	if data.Current != nil && *data.Current >= 0 && *data.Current < len(p.Songs) {
		p.current = *data.Current
	}
	return p
}

// ResolveSongs resolves ids, dropping missing and deleted songs.
func ResolveSongs(ids []SongID, r Resolver) []*Song {
	songs := make([]*Song, 0, len(ids))
	for _, id := range ids {
		s := r.Song(id)
		if s == nil || s.Deleted {
			continue
		}
		songs = append(songs, s)
	}
	return songs
}

// Current returns the current position, if any.
func (p *Playlist) Current() (int, bool) {
	if p == nil || p.current < 0 {
		return 0, false
	}
	return p.current, true
}

// SetCurrent sets the current position.
func (p *Playlist) SetCurrent(i int) error {
	if i < 0 || i >= len(p.Songs) {
		return fmt.Errorf("set current %d of %d: %w", i, len(p.Songs), ErrIndexOutOfRange)
	}
	p.current = i
	return nil
}

// ClearCurrent marks the playlist as having no current song.
func (p *Playlist) ClearCurrent() {
	p.current = -1
}

// Playing returns the current song, or nil.
func (p *Playlist) Playing() *Song {
	if i, ok := p.Current(); ok {
		return p.Songs[i]
	}
	return nil
}

// PlayingID returns the id of the current song.
func (p *Playlist) PlayingID() (SongID, bool) {
	if s := p.Playing(); s != nil {
		return s.ID, true
	}
	return 0, false
}

// Upcoming returns songs after the current position.
func (p *Playlist) Upcoming() []*Song {
	i, ok := p.Current()
	if !ok || i >= len(p.Songs)-1 {
		return nil
	}
	return p.Songs[i+1:]
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Songs)
}

// IsEmpty returns true if the playlist has no songs.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}

// Append adds songs to the end. The current position is unchanged.
func (p *Playlist) Append(songs ...*Song) {
	p.Songs = append(p.Songs, songs...)
}

// Insert adds songs before position at (at == Len appends). The current
// position is not shifted; callers that need it shifted call SetCurrent.
func (p *Playlist) Insert(at int, songs ...*Song) error {
	if at < 0 || at > len(p.Songs) {
		return fmt.Errorf("insert at %d of %d: %w", at, len(p.Songs), ErrIndexOutOfRange)
	}
	out := make([]*Song, 0, len(p.Songs)+len(songs))
	out = append(out, p.Songs[:at]...)
	out = append(out, songs...)
	out = append(out, p.Songs[at:]...)
	p.Songs = out
	return nil
}

// Remove deletes the song at position at. Removing the current song
// clears the current position; otherwise the position is left as is and
// a current position past the new end is cleared.
func (p *Playlist) Remove(at int) error {
	if at < 0 || at >= len(p.Songs) {
		return fmt.Errorf("remove %d of %d: %w", at, len(p.Songs), ErrIndexOutOfRange)
	}
	p.Songs = append(p.Songs[:at:at], p.Songs[at+1:]...)
	if p.current == at || p.current >= len(p.Songs) {
		p.current = -1
	}
	return nil
}
