package tail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-test/deep"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/uamp"
)

// scriptSource replays a fixed list of events and then waits.
type scriptSource struct {
	events []uamp.Event
}

func (s *scriptSource) Run(ctx context.Context, events chan<- uamp.Event, _ chan<- uamp.Status) error {
	for _, ev := range s.events {
		select {
		case events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	<-ctx.Done()
	return ctx.Err()
}

func setAll() string {
	var list []string
	for i := 0; i < 8; i++ {
		list = append(list, fmt.Sprintf(
			`{"path":"/m/%d.flac","title":"Song %d","artists":["Artist %d"],"album":"Album","track":%d,"length":{"secs":180,"nanos":0},"deleted":false}`,
			i, i, i, i))
	}
	return fmt.Sprintf(`{
		"library": {"songs": [%s], "tmp_songs": []},
		"player": {
			"playlist": {"songs": [0, 1, 2, 3, 4], "current": 1, "play_pos": null, "on_end": null, "add_policy": "End"},
			"playlist_stack": [
				{"songs": [5, 6], "current": 0, "play_pos": null, "on_end": null, "add_policy": "End"}
			],
			"volume": 0.5,
			"mute": false,
			"state": "Playing"
		},
		"position": {"current": {"secs": 10, "nanos": 0}, "total": {"secs": 200, "nanos": 0}},
		"config": null
	}`, strings.Join(list, ","))
}

func ev(name, data string) uamp.Event {
	return uamp.Event{Name: name, Data: json.RawMessage(data)}
}

func collect(t *testing.T, w *Watcher, n int) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case e, ok := <-w.Events():
			if !ok {
				t.Fatalf("events closed after %d events", len(out))
			}
			out = append(out, e)
		case <-timeout:
			t.Fatalf("got %d events, want %d", len(out), n)
		}
	}
	return out
}

func TestWatcher(t *testing.T) {
	src := &scriptSource{events: []uamp.Event{
		ev(uamp.EventSetAll, setAll()),
		ev(uamp.EventSetAll, setAll()),
		ev(uamp.EventPlayback, `"Paused"`),
		ev(uamp.EventSetVolume, `0.8`),
		ev(uamp.EventPlaylistJump, `{"position":2,"playback":"Playing","timestamp":{"current":{"secs":0,"nanos":0},"total":{"secs":180,"nanos":0}}}`),
		ev(uamp.EventSeek, `{"current":{"secs":175,"nanos":0},"total":{"secs":180,"nanos":0}}`),
		ev(uamp.EventPlaylistJump, `{"position":3,"playback":"Playing","timestamp":null}`),
		ev(uamp.EventSetMute, `true`),
		ev(uamp.EventPopPlaylist, `{"pop_cnt":1,"playlist":{"position":0,"playback":"Playing","timestamp":null}}`),
		ev(uamp.EventRestarting, ``),
	}}

	w := NewWatcher(src, nil)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Start(ctx) }()

	want := []EventType{
		EventSongChange,
		EventPause,
		EventVolumeChange,
		EventSongSkip,
		EventResume,
		EventSongComplete,
		EventMuteChange,
		EventPlaylistPop,
		EventSongSkip,
		EventServerRestart,
	}
	got := collect(t, w, len(want))
	types := make([]EventType, len(got))
	for i, e := range got {
		types[i] = e.Type
		if !e.Timestamp.Equal(fixed) {
			t.Errorf("event %d Timestamp = %v, want %v", i, e.Timestamp, fixed)
		}
	}
	if diff := deep.Equal(types, want); diff != nil {
		t.Fatal(diff)
	}

	if got[0].Current.Title != "Song 1" || got[0].Current.Artist != "Artist 1" {
		t.Errorf("first song = %q by %q", got[0].Current.Title, got[0].Current.Artist)
	}
	if got[2].Current.Volume != 0.8 {
		t.Errorf("volume = %v, want 0.8", got[2].Current.Volume)
	}
	if got[5].Previous.SongID != 2 || got[5].Current.SongID != 3 {
		t.Errorf("complete = %d -> %d, want 2 -> 3", got[5].Previous.SongID, got[5].Current.SongID)
	}
	if got[7].Current.Tabs != 1 || got[7].Current.Songs != 2 {
		t.Errorf("after pop: %d tabs, %d songs", got[7].Current.Tabs, got[7].Current.Songs)
	}

	w.Stop()
	if err := <-errc; err != nil {
		t.Errorf("Start() = %v", err)
	}
}

func TestStatusEvent(t *testing.T) {
	now := time.Now()
	if e := statusEvent(uamp.Status{Connected: true}, now); e.Type != EventConnected {
		t.Errorf("connected status = %v", e.Type)
	}
	e := statusEvent(uamp.Status{Attempt: 2, Err: errors.New("refused")}, now)
	if e.Type != EventDisconnected || e.Detail != "refused" {
		t.Errorf("disconnected status = %v %q", e.Type, e.Detail)
	}
}

func TestDiffStates(t *testing.T) {
	now := time.Now()
	base := Snapshot{
		SongID:  1,
		HasSong: true,
		Title:   "A",
		Length:  core.NewDuration(200, 0),
		State:   core.Playing,
		Volume:  0.5,
		Tabs:    1,
		Songs:   3,
	}

	tests := []struct {
		name   string
		modify func(prev, curr *Snapshot)
		want   []EventType
	}{
		{"no change", func(prev, curr *Snapshot) {}, nil},
		{"stop", func(prev, curr *Snapshot) { curr.State = core.Stopped }, []EventType{EventStop}},
		{"skip", func(prev, curr *Snapshot) { curr.SongID = 2 }, []EventType{EventSongSkip}},
		{"complete", func(prev, curr *Snapshot) {
			prev.Progress = 99
			curr.SongID = 2
		}, []EventType{EventSongComplete}},
		{"unknown length never completes", func(prev, curr *Snapshot) {
			prev.Length = core.Duration{}
			prev.Progress = 99
			curr.SongID = 2
		}, []EventType{EventSongSkip}},
		{"start", func(prev, curr *Snapshot) {
			prev.HasSong = false
			prev.SongID = 0
		}, []EventType{EventSongChange}},
		{"end of playlist", func(prev, curr *Snapshot) {
			curr.HasSong = false
			curr.SongID = 0
			curr.State = core.Stopped
		}, []EventType{EventSongSkip, EventStop}},
		{"push", func(prev, curr *Snapshot) {
			curr.Tabs = 2
			curr.Songs = 10
		}, []EventType{EventPlaylistPush}},
		{"queue", func(prev, curr *Snapshot) { curr.Songs = 4 }, []EventType{EventPlaylistChange}},
		{"mute", func(prev, curr *Snapshot) { curr.Mute = true }, []EventType{EventMuteChange}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, curr := base, base
			tt.modify(&prev, &curr)
			var got []EventType
			for _, e := range diffStates(&prev, &curr, now) {
				got = append(got, e.Type)
			}
			if diff := deep.Equal(got, tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestDiffStatesFirstSnapshot(t *testing.T) {
	if got := diffStates(nil, &Snapshot{}, time.Now()); len(got) != 0 {
		t.Errorf("idle first snapshot = %d events, want 0", len(got))
	}
	got := diffStates(nil, &Snapshot{HasSong: true}, time.Now())
	if len(got) != 1 || got[0].Type != EventSongChange {
		t.Errorf("first snapshot = %+v", got)
	}
}

// burstSource queues its events and returns at once.
type burstSource struct {
	events []uamp.Event
	err    error
}

func (s *burstSource) Run(_ context.Context, events chan<- uamp.Event, _ chan<- uamp.Status) error {
	for _, ev := range s.events {
		events <- ev
	}
	return s.err
}

func TestWatcherHandlesQueuedEventsOnSourceEnd(t *testing.T) {
	gone := errors.New("stream gone")
	src := &burstSource{
		events: []uamp.Event{
			ev(uamp.EventSetAll, setAll()),
			ev(uamp.EventPlayback, `"Paused"`),
			ev(uamp.EventSetVolume, `0.3`),
		},
		err: gone,
	}
	w := NewWatcher(src, nil)

	if err := w.Start(context.Background()); !errors.Is(err, gone) {
		t.Fatalf("Start() error = %v, want %v", err, gone)
	}

	var types []EventType
	for e := range w.Events() {
		types = append(types, e.Type)
	}
	want := []EventType{EventSongChange, EventPause, EventVolumeChange}
	if diff := deep.Equal(types, want); diff != nil {
		t.Error(diff)
	}
}
