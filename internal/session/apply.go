package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/uamp"
)

var (
	// ErrNotReady is returned for partial updates before the full state
	// arrived.
	ErrNotReady = errors.New("no state received yet")
	// ErrNoDetail is returned when no album or artist page is open.
	ErrNoDetail = errors.New("no album or artist opened")
	// ErrUnknownView is returned for an unknown view.
	ErrUnknownView = errors.New("unknown view")
	// ErrNothingPlaying is returned by actions that need a playing song.
	ErrNothingPlaying = errors.New("nothing is playing")
)

// Notice tells the caller about server lifecycle events.
type Notice int

const (
	NoticeNone Notice = iota
	NoticeQuitting
	NoticeRestarting
	// NoticeServerMoved means the server will be reachable at MovedTo.
	NoticeServerMoved
	NoticeClientChanged
)

// Apply updates the session with a server event. The payload is decoded
// and validated before anything changes; on error the session is left as
// it was.
func (s *Session) Apply(ev uamp.Event) (Notice, error) {
	notice, err := s.apply(ev)
	if err != nil {
		s.log.Error("event rejected", zap.String("event", ev.Name), zap.Error(err))
		return NoticeNone, err
	}
	s.log.Debug("event applied", zap.String("event", ev.Name))
	return notice, nil
}

func (s *Session) apply(ev uamp.Event) (Notice, error) {
	payload, err := uamp.Decode(ev)
	if err != nil {
		return NoticeNone, err
	}

	switch p := payload.(type) {
	case uamp.SetAll:
		s.setAll(p)
		return NoticeNone, nil
	case nil:
		switch ev.Name {
		case uamp.EventQuitting:
			return NoticeQuitting, nil
		case uamp.EventRestarting:
			return NoticeRestarting, nil
		case uamp.EventClientChanged:
			return NoticeClientChanged, nil
		}
		return NoticeNone, nil
	case uamp.NewServer:
		s.movedTo = fmt.Sprintf("http://%s", net.JoinHostPort(p.Address, strconv.Itoa(p.Port)))
		return NoticeServerMoved, nil
	case json.RawMessage:
		s.Config = p
		return NoticeNone, nil
	}

	if !s.ready {
		return NoticeNone, fmt.Errorf("%s: %w", ev.Name, ErrNotReady)
	}

	switch ev.Name {
	case uamp.EventSetPlaylist:
		s.setPlaylist(payload.(uamp.SetPlaylistEvent))
	case uamp.EventPushPlaylist:
		s.pushPlaylist(payload.(uamp.SetPlaylistEvent))
	case uamp.EventPushPlaylistWithCur:
		s.pushPlaylistWithCur(payload.(uamp.SetPlaylistEvent))
	case uamp.EventPlayback:
		s.setPlayback(payload.(core.Playback))
	case uamp.EventPlaylistJump:
		p := payload.(uamp.PlaylistJump)
		if err := checkJump(s.Player.Active(), p); err != nil {
			return NoticeNone, err
		}
		s.jump(p)
	case uamp.EventSeek:
		s.setTimestamp(payload.(*core.Timestamp))
	case uamp.EventSetVolume:
		s.Player.Volume = payload.(float64)
	case uamp.EventSetMute:
		s.Player.Mute = payload.(bool)
	case uamp.EventPopPlaylist:
		p := payload.(uamp.PopPlaylistEvent)
		if err := checkJump(s.afterPop(p.PopCount), p.Playlist); err != nil {
			return NoticeNone, err
		}
		s.pop(p.PopCount)
		s.jump(p.Playlist)
	case uamp.EventPopSetPlaylist:
		p := payload.(uamp.PopSetPlaylist)
		s.pop(p.PopCount)
		s.setPlaylist(p.Playlist)
	case uamp.EventSetAddPolicy:
		s.Player.Active().AddPolicy = payload.(core.AddPolicy)
	case uamp.EventSetEndAction:
		s.Player.Active().OnEnd = payload.(*core.Alias)
	case uamp.EventQueue:
		s.queue(payload.([]core.SongID))
	case uamp.EventPlayNext:
		s.playNext(payload.([]core.SongID))
	case uamp.EventReorderPlaylistStack:
		if err := s.reorder(payload.(uamp.ReorderPlaylistStack)); err != nil {
			return NoticeNone, err
		}
	case uamp.EventPlayTmp:
		p := payload.(uamp.PlayTmp)
		tmp := make([]library.TmpSong, len(p.Songs))
		for i, t := range p.Songs {
			tmp[i] = library.TmpSong(t)
		}
		s.Library.PushTmpSongs(tmp)
		s.setPlaylist(uamp.SetPlaylistEvent{Playlist: p.Playlist, Playback: p.Playback, Timestamp: p.Timestamp})
	default:
		return NoticeNone, fmt.Errorf("%w: %q", uamp.ErrUnknownEvent, ev.Name)
	}
	return NoticeNone, nil
}

func (s *Session) setAll(p uamp.SetAll) {
	prev := s.Library
	s.Library = library.New(p.Library)
	s.Library.Restore(prev)
	s.Player = core.NewPlayer(p.Player, s.Library)
	if len(p.Config) > 0 {
		s.Config = p.Config
	}
	if s.Album != nil {
		s.Album = s.Library.AlbumByKey(s.Album.Artist, s.Album.Name)
	}
	if s.Artist != nil {
		s.Artist = s.Library.ArtistByName(s.Artist.Name)
	}
	s.ready = true
	s.setTimestamp(p.Position)
	s.RenderAll()
}

func (s *Session) setPlaylist(p uamp.SetPlaylistEvent) {
	s.Player.SetActive(core.NewPlaylist(p.Playlist, s.Library))
	s.setTimestamp(p.Timestamp)
	s.setPlayback(p.Playback)
	s.refreshActive()
}

func (s *Session) pushPlaylist(p uamp.SetPlaylistEvent) {
	s.Player.Push(core.NewPlaylist(p.Playlist, s.Library))
	s.setTimestamp(p.Timestamp)
	s.setPlayback(p.Playback)
	s.Playlist.Render()
	s.Bar.Render()
	s.highlight()
}

// pushPlaylistWithCur drops the current song from the playlist being
// suspended. The position stays, now addressing the following song.
func (s *Session) pushPlaylistWithCur(p uamp.SetPlaylistEvent) {
	active := s.Player.Active()
	if cur, ok := active.Current(); ok {
		// cur is in range, so neither call can fail.
		_ = active.Remove(cur)
		if cur < active.Len() {
			_ = active.SetCurrent(cur)
		}
	}
	s.pushPlaylist(p)
}

func (s *Session) setPlayback(state core.Playback) {
	s.Player.State = state
}

// setTimestamp records the position. Its total is kept on the position;
// library songs are shared with the sorters and keep their own length.
func (s *Session) setTimestamp(ts *core.Timestamp) {
	if ts == nil {
		s.Position = nil
		return
	}
	pos := *ts
	s.Position = &pos
}

func checkJump(pl *core.Playlist, p uamp.PlaylistJump) error {
	if p.Position == nil {
		return nil
	}
	if *p.Position < 0 || *p.Position >= pl.Len() {
		return fmt.Errorf("jump to %d of %d: %w", *p.Position, pl.Len(), core.ErrIndexOutOfRange)
	}
	return nil
}

// jump applies a checked playlist jump to the active playlist.
func (s *Session) jump(p uamp.PlaylistJump) {
	active := s.Player.Active()
	if p.Position == nil {
		active.ClearCurrent()
	} else {
		_ = active.SetCurrent(*p.Position)
	}
	s.setPlayback(p.Playback)
	s.setTimestamp(p.Timestamp)
	s.highlight()
	s.Bar.Render()
	if s.Player.Tab() == 0 {
		s.Playlist.Render()
	}
}

// afterPop returns the playlist that becomes active after popping count.
func (s *Session) afterPop(count int) *core.Playlist {
	n := s.Player.StackLen()
	if count == 0 || count > n {
		count = n
	}
	pl, _ := s.Player.ByTab(count)
	return pl
}

func (s *Session) pop(count int) {
	s.Player.Pop(count)
	s.refreshActive()
	s.Playlist.Render()
}

func (s *Session) queue(ids []core.SongID) {
	s.Player.Active().Append(core.ResolveSongs(ids, s.Library)...)
	s.refreshActive()
}

// playNext inserts songs after the current one. Without a current song
// there is no "next" and the event is ignored.
func (s *Session) playNext(ids []core.SongID) {
	active := s.Player.Active()
	cur, ok := active.Current()
	if !ok {
		return
	}
	_ = active.Insert(cur+1, core.ResolveSongs(ids, s.Library)...)
	s.refreshActive()
}

func (s *Session) reorder(p uamp.ReorderPlaylistStack) error {
	perm := core.CompleteOrder(p.Order, s.Player.StackLen())
	if len(perm) == 0 {
		return fmt.Errorf("empty order: %w", core.ErrInvalidPermutation)
	}
	target, err := s.Player.ByTab(perm[0])
	if err != nil {
		return fmt.Errorf("reorder: %w", core.ErrInvalidPermutation)
	}
	if err := checkJump(target, p.Position); err != nil {
		return err
	}
	if err := s.Player.Reorder(perm); err != nil {
		return err
	}
	s.Playlist.Render()
	s.jump(p.Position)
	return nil
}

// refreshActive redraws what shows the active playlist.
func (s *Session) refreshActive() {
	if s.Player.Tab() == 0 {
		s.Playlist.Render()
	}
	s.Bar.Render()
	s.highlight()
}
