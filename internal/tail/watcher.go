package tail

import (
	"context"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/uamp"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventSongChange EventType = iota
	EventSongComplete
	EventSongSkip
	EventPause
	EventResume
	EventStop
	EventVolumeChange
	EventMuteChange
	EventPlaylistPush
	EventPlaylistPop
	EventPlaylistChange
	EventConnected
	EventDisconnected
	EventServerQuit
	EventServerRestart
	EventServerMoved
)

// Event represents a playback state change or a server notice.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *Snapshot
	Current   *Snapshot
	// Detail carries the text of notices (new address, connection error).
	Detail string
}

// Snapshot is the part of the player state that tail reports on.
type Snapshot struct {
	SongID  core.SongID
	HasSong bool
	Title   string
	Artist  string
	Album   string
	Length  core.Duration
	State   core.Playback
	Volume  float64
	Mute    bool
	Tabs    int
	Songs   int

	// Progress is the estimated position in percent. It changes on every
	// seek and is not part of the identity of a snapshot.
	Progress float64 `hash:"ignore"`
}

// Capture takes a snapshot of a session.
func Capture(s *session.Session) *Snapshot {
	snap := &Snapshot{
		State:  s.Player.State,
		Volume: s.Player.Volume,
		Mute:   s.Player.Mute,
		Tabs:   s.Player.Tabs(),
		Songs:  s.Player.Active().Len(),
	}
	if song := s.Player.Playing(); song != nil {
		snap.SongID = song.ID
		snap.HasSong = true
		snap.Title = song.Title
		snap.Artist = song.Artist()
		snap.Album = song.Album
	}
	_, snap.Length, snap.Progress = s.Progress()
	return snap
}

// Source delivers server events, as uamp.Stream does.
type Source interface {
	Run(ctx context.Context, events chan<- uamp.Event, status chan<- uamp.Status) error
}

// Watcher follows the server event stream and emits playback events.
type Watcher struct {
	source  Source
	session *session.Session
	log     *zap.Logger
	events  chan Event
	done    chan struct{}
	now     func() time.Time

	prev     *Snapshot
	prevHash uint64
	lastTick time.Time
}

// NewWatcher creates a new state watcher.
func NewWatcher(source Source, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		source:  source,
		session: session.New(session.Options{}, log),
		log:     log.With(zap.String("module", "tail")),
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start follows the stream until ctx is done, Stop is called or the
// stream gives up.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.events)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	raw := make(chan uamp.Event, 16)
	status := make(chan uamp.Status, 4)
	errc := make(chan error, 1)
	go func() {
		errc <- w.source.Run(ctx, raw, status)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case err := <-errc:
			w.drain(raw)
			return err
		case st := <-status:
			w.emit(statusEvent(st, w.now()))
		case ev := <-raw:
			w.handle(ev)
		}
	}
}

// drain handles the events the source queued before it returned.
func (w *Watcher) drain(raw <-chan uamp.Event) {
	for {
		select {
		case ev := <-raw:
			w.handle(ev)
		default:
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) handle(ev uamp.Event) {
	now := w.now()
	if !w.lastTick.IsZero() {
		w.session.Tick(now.Sub(w.lastTick).Seconds())
	}
	w.lastTick = now
	if w.prev != nil {
		_, _, w.prev.Progress = w.session.Progress()
	}

	notice, err := w.session.Apply(ev)
	if err != nil {
		w.log.Warn("skipping event", zap.String("event", ev.Name), zap.Error(err))
		return
	}
	switch notice {
	case session.NoticeQuitting:
		w.emit(Event{Type: EventServerQuit, Timestamp: now})
	case session.NoticeRestarting:
		w.emit(Event{Type: EventServerRestart, Timestamp: now})
	case session.NoticeServerMoved:
		w.emit(Event{Type: EventServerMoved, Timestamp: now, Detail: w.session.MovedTo()})
	}
	if !w.session.Ready() {
		return
	}

	curr := Capture(w.session)
	hash, err := hashstructure.Hash(curr, hashstructure.FormatV2, nil)
	if err != nil {
		w.log.Error("hash snapshot", zap.Error(err))
	} else if w.prev != nil && hash == w.prevHash {
		return
	}

	for _, e := range diffStates(w.prev, curr, now) {
		w.emit(e)
	}
	w.prev, w.prevHash = curr, hash
}

func (w *Watcher) emit(e Event) {
	select {
	case w.events <- e:
	default:
		w.log.Warn("dropping event", zap.Int("type", int(e.Type)))
	}
}

func statusEvent(st uamp.Status, now time.Time) Event {
	if st.Connected {
		return Event{Type: EventConnected, Timestamp: now}
	}
	e := Event{Type: EventDisconnected, Timestamp: now}
	if st.Err != nil {
		e.Detail = st.Err.Error()
	}
	return e
}

// diffStates compares two snapshots and returns detected events.
func diffStates(prev, curr *Snapshot, now time.Time) []Event {
	if curr == nil {
		return nil
	}

	var events []Event

	// First snapshot - no previous state
	if prev == nil {
		if curr.HasSong {
			events = append(events, Event{
				Type:      EventSongChange,
				Timestamp: now,
				Current:   curr,
			})
		}
		return events
	}

	switch {
	case curr.Tabs > prev.Tabs:
		events = append(events, Event{Type: EventPlaylistPush, Timestamp: now, Previous: prev, Current: curr})
	case curr.Tabs < prev.Tabs:
		events = append(events, Event{Type: EventPlaylistPop, Timestamp: now, Previous: prev, Current: curr})
	case curr.Songs != prev.Songs:
		events = append(events, Event{Type: EventPlaylistChange, Timestamp: now, Previous: prev, Current: curr})
	}

	if songChanged(prev, curr) {
		eventType := EventSongChange
		if prev.HasSong && wasCompleted(prev) {
			eventType = EventSongComplete
		} else if prev.HasSong {
			eventType = EventSongSkip
		}
		events = append(events, Event{
			Type:      eventType,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	if prev.State != curr.State {
		eventType := EventResume
		switch curr.State {
		case core.Paused:
			eventType = EventPause
		case core.Stopped:
			eventType = EventStop
		}
		events = append(events, Event{Type: eventType, Timestamp: now, Previous: prev, Current: curr})
	}

	if prev.Volume != curr.Volume {
		events = append(events, Event{Type: EventVolumeChange, Timestamp: now, Previous: prev, Current: curr})
	}

	if prev.Mute != curr.Mute {
		events = append(events, Event{Type: EventMuteChange, Timestamp: now, Previous: prev, Current: curr})
	}

	return events
}

func songChanged(prev, curr *Snapshot) bool {
	if prev.HasSong != curr.HasSong {
		return true
	}
	return curr.HasSong && prev.SongID != curr.SongID
}

// wasCompleted reports whether the song likely ended on its own.
func wasCompleted(s *Snapshot) bool {
	if s.Length.IsZero() {
		return false
	}
	return s.Progress >= 95
}
