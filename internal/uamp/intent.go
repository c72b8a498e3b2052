package uamp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tessro/uampc/internal/core"
)

// Param is one control message. A param without a value uses the
// server's default for that message (toggle, one step).
type Param struct {
	Key      string
	Value    string
	HasValue bool
}

// PlaylistRequest replaces the active playlist with explicit songs.
type PlaylistRequest struct {
	Songs    []core.SongID `json:"songs"`
	Position int           `json:"position"`
	Play     bool          `json:"play"`
}

// Intent is a control request for the server. Query intents are sent as
// GET parameters and run in order; a playlist intent is sent as JSON.
type Intent struct {
	Params   []Param
	Playlist *PlaylistRequest
}

// Then appends the params of other to i.
func (i Intent) Then(other Intent) Intent {
	out := Intent{
		Params:   append(append([]Param(nil), i.Params...), other.Params...),
		Playlist: i.Playlist,
	}
	if other.Playlist != nil {
		out.Playlist = other.Playlist
	}
	return out
}

// IsZero reports whether the intent asks for nothing.
func (i Intent) IsZero() bool {
	return len(i.Params) == 0 && i.Playlist == nil
}

// Query renders the params as a control query string.
func (i Intent) Query() string {
	parts := make([]string, 0, len(i.Params))
	for _, p := range i.Params {
		if p.HasValue {
			parts = append(parts, p.Key+"="+url.QueryEscape(p.Value))
		} else {
			parts = append(parts, p.Key)
		}
	}
	return strings.Join(parts, "&")
}

func (i Intent) String() string {
	if i.Playlist != nil {
		return fmt.Sprintf("set playlist (%d songs, position %d)", len(i.Playlist.Songs), i.Playlist.Position)
	}
	return i.Query()
}

func flag(key string) Intent {
	return Intent{Params: []Param{{Key: key}}}
}

func param(key, value string) Intent {
	return Intent{Params: []Param{{Key: key, Value: value, HasValue: true}}}
}

// TogglePlay toggles between playing and paused.
func TogglePlay() Intent { return flag("pp") }

// Play resumes playback.
func Play() Intent { return param("pp", "play") }

// Pause pauses playback.
func Pause() Intent { return param("pp", "pause") }

// Stop stops playback.
func Stop() Intent { return flag("stop") }

// Next skips n songs forward.
func Next(n int) Intent {
	if n <= 1 {
		return flag("ns")
	}
	return param("ns", strconv.Itoa(n))
}

// Prev goes back one song.
func Prev() Intent { return flag("ps") }

// Jump plays the song at position in the active playlist.
func Jump(position int) Intent { return param("pj", strconv.Itoa(position)) }

// RaiseTab makes the playlist at tab the active one.
func RaiseTab(tab int) Intent { return param("rps", strconv.Itoa(tab)) }

// ReorderStack reorders the playlist stack. order lists old tabs in their
// new order; missing tabs keep their relative order after it.
func ReorderStack(order []int) Intent {
	parts := make([]string, len(order))
	for i, t := range order {
		parts[i] = strconv.Itoa(t)
	}
	return param("rps", strings.Join(parts, ","))
}

// Seek moves playback to pos.
func Seek(pos core.Duration) Intent { return param("seek", Clock(pos)) }

// Volume sets the volume in 0..1.
func Volume(v float64) Intent {
	v = max(0, min(1, v))
	return param("v", strconv.FormatFloat(v, 'f', -1, 64))
}

// VolumeUp raises the volume by the server's step.
func VolumeUp() Intent { return flag("vu") }

// VolumeDown lowers the volume by the server's step.
func VolumeDown() Intent { return flag("vd") }

// ToggleMute toggles mute.
func ToggleMute() Intent { return flag("mute") }

// Mute sets mute.
func Mute(mute bool) Intent { return param("mute", strconv.FormatBool(mute)) }

// SetQuery replaces the active playlist with songs matching a filter
// query, optionally ordered by sort.
func SetQuery(query, sort string) Intent {
	i := param("sp", query)
	if sort != "" {
		i = i.Then(param("sort", sort))
	}
	return i
}

// PushQuery pushes a new playlist of songs matching query.
func PushQuery(query string) Intent { return param("push", query) }

// Queue appends songs matching query to the active playlist.
func Queue(query string) Intent { return param("q", query) }

// PlayNext inserts songs matching query after the current song.
func PlayNext(query string) Intent { return param("qn", query) }

// PopPlaylist pops count playlists; 0 pops all but the last.
func PopPlaylist(count int) Intent {
	if count == 1 {
		return flag("pop")
	}
	return param("pop", strconv.Itoa(count))
}

// SetPlaylist replaces the active playlist with songs and starts at
// position.
func SetPlaylist(songs []core.SongID, position int, play bool) Intent {
	return Intent{Playlist: &PlaylistRequest{Songs: songs, Position: position, Play: play}}
}

// Clock renders a duration as m:ss for control messages.
func Clock(d core.Duration) string {
	return fmt.Sprintf("%d:%02d", d.Secs/60, d.Secs%60)
}
