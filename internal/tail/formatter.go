package tail

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Detail:    e.Detail,
	}

	if s := subject(e); s != nil && s.HasSong {
		data.Title = s.Title
		data.Artist = s.Artist
		data.Album = s.Album
		data.Length = s.Length.Format()
	}

	if e.Current != nil {
		data.Volume = volumePercent(e.Current.Volume)
		data.Songs = e.Current.Songs
		data.Tabs = e.Current.Tabs
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	Album     string
	Length    string
	Volume    int
	Songs     int
	Tabs      int
	Detail    string
}

// subject is the snapshot whose song an event is about.
func subject(e Event) *Snapshot {
	switch e.Type {
	case EventSongComplete, EventSongSkip:
		return e.Previous
	}
	return e.Current
}

func volumePercent(v float64) int {
	return int(math.Round(v * 100))
}

func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventSongChange:
		if e.Current != nil && e.Current.HasSong {
			return fmt.Sprintf("Now playing: %s - %s", e.Current.Artist, e.Current.Title)
		}
		return "Song changed"

	case EventSongComplete:
		if e.Previous != nil && e.Previous.HasSong {
			return fmt.Sprintf("Finished: %s - %s", e.Previous.Artist, e.Previous.Title)
		}
		return "Song completed"

	case EventSongSkip:
		if e.Previous != nil && e.Previous.HasSong {
			return fmt.Sprintf("Skipped: %s - %s", e.Previous.Artist, e.Previous.Title)
		}
		return "Song skipped"

	case EventPause:
		return "Paused"

	case EventResume:
		return "Resumed"

	case EventStop:
		return "Stopped"

	case EventVolumeChange:
		if e.Current != nil {
			return fmt.Sprintf("Volume: %d%%", volumePercent(e.Current.Volume))
		}
		return "Volume changed"

	case EventMuteChange:
		if e.Current != nil && !e.Current.Mute {
			return "Unmuted"
		}
		return "Muted"

	case EventPlaylistPush:
		if e.Current != nil {
			return fmt.Sprintf("Pushed playlist: %s songs, %d tabs",
				humanize.Comma(int64(e.Current.Songs)), e.Current.Tabs)
		}
		return "Pushed playlist"

	case EventPlaylistPop:
		if e.Current != nil {
			return fmt.Sprintf("Popped playlist: %d tabs left", e.Current.Tabs)
		}
		return "Popped playlist"

	case EventPlaylistChange:
		if e.Current != nil {
			return fmt.Sprintf("Playlist: %s songs", humanize.Comma(int64(e.Current.Songs)))
		}
		return "Playlist changed"

	case EventConnected:
		return "Connected"

	case EventDisconnected:
		if e.Detail != "" {
			return "Disconnected: " + e.Detail
		}
		return "Disconnected"

	case EventServerQuit:
		return "Server quitting"

	case EventServerRestart:
		return "Server restarting"

	case EventServerMoved:
		return "Server moved to " + e.Detail

	default:
		return "Unknown event"
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventSongChange:
		return "🎵"
	case EventSongComplete:
		return "✅"
	case EventSongSkip:
		return "⏭️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventStop:
		return "⏹️"
	case EventVolumeChange:
		return "🔊"
	case EventMuteChange:
		return "🔇"
	case EventPlaylistPush:
		return "📥"
	case EventPlaylistPop:
		return "📤"
	case EventPlaylistChange:
		return "📝"
	case EventConnected:
		return "🔌"
	case EventDisconnected:
		return "⚠️"
	case EventServerQuit, EventServerRestart, EventServerMoved:
		return "🖥️"
	default:
		return "❓"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventSongChange:
		return "song_change"
	case EventSongComplete:
		return "song_complete"
	case EventSongSkip:
		return "song_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventStop:
		return "stop"
	case EventVolumeChange:
		return "volume_change"
	case EventMuteChange:
		return "mute_change"
	case EventPlaylistPush:
		return "playlist_push"
	case EventPlaylistPop:
		return "playlist_pop"
	case EventPlaylistChange:
		return "playlist_change"
	case EventConnected:
		return "connected"
	case EventDisconnected:
		return "disconnected"
	case EventServerQuit:
		return "server_quit"
	case EventServerRestart:
		return "server_restart"
	case EventServerMoved:
		return "server_moved"
	default:
		return "unknown"
	}
}
