package uamp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
)

// Server event names.
const (
	EventSetAll               = "set-all"
	EventSetPlaylist          = "set-playlist"
	EventPlayback             = "playback"
	EventPlaylistJump         = "playlist-jump"
	EventSeek                 = "seek"
	EventSetVolume            = "set-volume"
	EventSetMute              = "set-mute"
	EventPopPlaylist          = "pop-playlist"
	EventPopSetPlaylist       = "pop-set-playlist"
	EventSetAddPolicy         = "set-playlist-add-policy"
	EventSetEndAction         = "set-playlist-end-action"
	EventPushPlaylist         = "push-playlist"
	EventPushPlaylistWithCur  = "push-playlist-with-cur"
	EventQueue                = "queue"
	EventPlayNext             = "play-next"
	EventReorderPlaylistStack = "reorder-playlist-stack"
	EventPlayTmp              = "play-tmp"
	EventNewServer            = "new-server"
	EventClientChanged        = "client-changed"
	EventConfigChanged        = "config-changed"
	EventQuitting             = "quitting"
	EventRestarting           = "restarting"
)

// Event is one server-sent event with its raw JSON payload.
type Event struct {
	Name string
	Data json.RawMessage
}

// SetAll replaces the whole client state.
type SetAll struct {
	Library  library.Data    `json:"library"`
	Player   core.PlayerData `json:"player"`
	Position *core.Timestamp `json:"position"`
	Config   json.RawMessage `json:"config"`
}

// SetPlaylistEvent replaces the active playlist.
type SetPlaylistEvent struct {
	Playlist  core.PlaylistData `json:"playlist"`
	Timestamp *core.Timestamp   `json:"timestamp"`
	Playback  core.Playback     `json:"playback"`
}

// PlaylistJump moves the current position of the active playlist.
type PlaylistJump struct {
	Position  *int            `json:"position"`
	Playback  core.Playback   `json:"playback"`
	Timestamp *core.Timestamp `json:"timestamp"`
}

// PopPlaylistEvent pops the stack and then jumps in the restored playlist.
type PopPlaylistEvent struct {
	PopCount int          `json:"pop_cnt"`
	Playlist PlaylistJump `json:"playlist"`
}

// PopSetPlaylist pops the stack and then replaces the restored playlist.
type PopSetPlaylist struct {
	PopCount int              `json:"pop_cnt"`
	Playlist SetPlaylistEvent `json:"playlist"`
}

// ReorderPlaylistStack reorders the tabs. Order may be partial.
type ReorderPlaylistStack struct {
	Order    []int        `json:"order"`
	Position PlaylistJump `json:"position"`
}

// PlayTmp plays temporary songs that are not part of the library.
type PlayTmp struct {
	Songs     []TmpSong         `json:"songs"`
	Playlist  core.PlaylistData `json:"playlist"`
	Playback  core.Playback     `json:"playback"`
	Timestamp *core.Timestamp   `json:"timestamp"`
}

// TmpSong is encoded as a [song, id] pair.
type TmpSong library.TmpSong

func (t *TmpSong) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("tmp song: expected [song, id], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &t.Song); err != nil {
		return fmt.Errorf("tmp song: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.ID); err != nil {
		return fmt.Errorf("tmp song id: %w", err)
	}
	return nil
}

// NewServer announces that the server moved.
type NewServer struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// ErrUnknownEvent is returned for event names this client does not know.
var ErrUnknownEvent = errors.New("unknown event")

// Decode parses the payload of a known event into its typed value.
// Events without a payload decode to nil.
func Decode(ev Event) (any, error) {
	switch ev.Name {
	case EventSetAll:
		return decode[SetAll](ev)
	case EventSetPlaylist, EventPushPlaylist, EventPushPlaylistWithCur:
		return decode[SetPlaylistEvent](ev)
	case EventPlayback:
		return decode[core.Playback](ev)
	case EventPlaylistJump:
		return decode[PlaylistJump](ev)
	case EventSeek:
		return decode[*core.Timestamp](ev)
	case EventSetVolume:
		return decode[float64](ev)
	case EventSetMute:
		return decode[bool](ev)
	case EventPopPlaylist:
		return decode[PopPlaylistEvent](ev)
	case EventPopSetPlaylist:
		return decode[PopSetPlaylist](ev)
	case EventSetAddPolicy:
		return decode[core.AddPolicy](ev)
	case EventSetEndAction:
		return decode[*core.Alias](ev)
	case EventQueue, EventPlayNext:
		return decode[[]core.SongID](ev)
	case EventReorderPlaylistStack:
		return decode[ReorderPlaylistStack](ev)
	case EventPlayTmp:
		return decode[PlayTmp](ev)
	case EventNewServer:
		return decode[NewServer](ev)
	case EventConfigChanged:
		return ev.Data, nil
	case EventClientChanged, EventQuitting, EventRestarting:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
}

// Payload decodes an event payload as T.
func Payload[T any](ev Event) (T, error) {
	var v T
	if err := json.Unmarshal(ev.Data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", ev.Name, err)
	}
	return v, nil
}

func decode[T any](ev Event) (any, error) {
	v, err := Payload[T](ev)
	if err != nil {
		return nil, err
	}
	return v, nil
}
