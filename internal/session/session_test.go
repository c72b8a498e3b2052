package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"go.uber.org/zap"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/uamp"
	"github.com/tessro/uampc/internal/vtable"
)

// testSetAll builds a set-all payload with n library songs, song 3
// deleted. The active playlist is [0 1 2 3 4] playing song 1 and one
// suspended playlist [5 6] is on the stack.
func testSetAll(n int) string {
	var list []string
	for i := 0; i < n; i++ {
		list = append(list, fmt.Sprintf(
			`{"path":"/m/%d.flac","title":"Song %03d","artists":["Artist %d"],"album":"Album %d","track":%d,"year":2000,"length":{"secs":180,"nanos":0},"deleted":%t}`,
			i, i, i%2, i%3, i, i == 3))
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
		"config": {"port": 8267}
	}`, strings.Join(list, ","))
}

func playlistJSON(current string, songs ...int) string {
	parts := make([]string, len(songs))
	for i, id := range songs {
		parts[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf(`{"songs":[%s],"current":%s,"play_pos":null,"on_end":null,"add_policy":"End"}`,
		strings.Join(parts, ","), current)
}

func event(name, data string) uamp.Event {
	return uamp.Event{Name: name, Data: json.RawMessage(data)}
}

func newTestSession(t *testing.T, songs int) *Session {
	t.Helper()
	s := New(Options{BarAutoscroll: true}, zap.NewNop())
	s.Songs.Resize(5)
	s.Playlist.Resize(5)
	s.Bar.Resize(3)
	s.Detail.Resize(5)
	apply(t, s, uamp.EventSetAll, testSetAll(songs))
	return s
}

func apply(t *testing.T, s *Session, name, data string) {
	t.Helper()
	if _, err := s.Apply(event(name, data)); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

func ids(songs []*core.Song) []core.SongID {
	out := make([]core.SongID, len(songs))
	for i, s := range songs {
		out[i] = s.ID
	}
	return out
}

func rowIDs(rows []vtable.Row[*core.Song, core.SongID]) []core.SongID {
	out := make([]core.SongID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func tabSongs(t *testing.T, s *Session, tab int) []core.SongID {
	t.Helper()
	pl, err := s.Player.ByTab(tab)
	if err != nil {
		t.Fatal(err)
	}
	return ids(pl.Songs)
}

func TestSetAll(t *testing.T) {
	s := newTestSession(t, 8)

	if !s.Ready() {
		t.Fatal("Ready() = false")
	}
	// The deleted song is dropped from the playlist.
	if diff := deep.Equal(tabSongs(t, s, 0), []core.SongID{0, 1, 2, 4}); diff != nil {
		t.Error(diff)
	}
	if id, ok := s.Player.PlayingID(); !ok || id != 1 {
		t.Errorf("PlayingID() = %d, %v, want 1", id, ok)
	}
	if diff := deep.Equal(s.Tabs(), []string{"Playing", "-1"}); diff != nil {
		t.Error(diff)
	}
	// The position's total is the playing length; the library keeps its own.
	if _, total, _ := s.Progress(); total != core.NewDuration(200, 0) {
		t.Errorf("playing length = %v, want 3:20", total)
	}
	if got := s.Library.Song(1).Length; got != core.NewDuration(180, 0) {
		t.Errorf("library length = %v, want 3:00", got)
	}
	if diff := deep.Equal(rowIDs(s.Bar.Rows.All()), []core.SongID{0, 1, 2, 4}); diff != nil {
		t.Errorf("bar rows: %v", diff)
	}
	if string(s.Config) != `{"port": 8267}` {
		t.Errorf("Config = %s", s.Config)
	}
}

func TestApplyBeforeSetAll(t *testing.T) {
	s := New(Options{}, nil)
	if _, err := s.Apply(event(uamp.EventPlayback, `"Paused"`)); !errors.Is(err, ErrNotReady) {
		t.Errorf("Apply() = %v, want ErrNotReady", err)
	}
	if _, err := s.Apply(event(uamp.EventConfigChanged, `{"a":1}`)); err != nil {
		t.Errorf("config-changed before set-all: %v", err)
	}
	if string(s.Config) != `{"a":1}` {
		t.Errorf("Config = %s", s.Config)
	}
}

func TestSetAllKeepsSearchAndSort(t *testing.T) {
	s := newTestSession(t, 8)
	if err := s.ToggleSort(ViewSongs, library.KeyTitle); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleSort(ViewSongs, library.KeyTitle); err != nil {
		t.Fatal(err)
	}
	if err := s.Search(ViewSongs, "zzzz"); err != nil {
		t.Fatal(err)
	}
	if s.Songs.Rows.Len() != 0 {
		t.Errorf("rows after empty search = %d", s.Songs.Rows.Len())
	}
	if err := s.Search(ViewSongs, ""); err != nil {
		t.Fatal(err)
	}

	apply(t, s, uamp.EventSetAll, testSetAll(8))
	if s.Library.Songs.Key() != library.KeyTitle || s.Library.Songs.Ascending() {
		t.Errorf("sort = (%s, %v), want title descending", s.Library.Songs.Key(), s.Library.Songs.Ascending())
	}
	if got := ids(s.Library.Songs.Get())[0]; got != 7 {
		t.Errorf("first song = %d, want 7", got)
	}
}

func TestPushPop(t *testing.T) {
	s := newTestSession(t, 8)
	before := s.Player.Active()

	apply(t, s, uamp.EventPushPlaylist, `{"playlist":`+playlistJSON("0", 7, 6)+`,"timestamp":null,"playback":"Playing"}`)
	if diff := deep.Equal(s.Tabs(), []string{"Playing", "-1", "-2"}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(rowIDs(s.Bar.Rows.All()), []core.SongID{7, 6}); diff != nil {
		t.Errorf("bar rows: %v", diff)
	}
	if s.Position != nil {
		t.Errorf("Position = %+v, want nil", s.Position)
	}

	apply(t, s, uamp.EventPopPlaylist, `{"pop_cnt":1,"playlist":{"position":2,"playback":"Paused","timestamp":null}}`)
	if s.Player.Active() != before {
		t.Error("pop did not restore the previous playlist")
	}
	if id, _ := s.Player.PlayingID(); id != 2 {
		t.Errorf("PlayingID() = %d, want 2", id)
	}
	if s.Player.State != core.Paused {
		t.Errorf("State = %v, want Paused", s.Player.State)
	}
	if len(s.Tabs()) != 2 {
		t.Errorf("Tabs() = %v", s.Tabs())
	}
}

func TestPushWhileViewingSuspendedTab(t *testing.T) {
	s := newTestSession(t, 8)
	if err := s.SetPlaylistTab(1); err != nil {
		t.Fatal(err)
	}
	apply(t, s, uamp.EventPushPlaylist, `{"playlist":`+playlistJSON("null", 7)+`,"timestamp":null,"playback":"Stopped"}`)

	if s.Player.Tab() != 2 {
		t.Errorf("Tab() = %d, want 2", s.Player.Tab())
	}
	if diff := deep.Equal(ids(s.Player.Viewed().Songs), []core.SongID{5, 6}); diff != nil {
		t.Errorf("viewed: %v", diff)
	}
	if diff := deep.Equal(rowIDs(s.Playlist.Rows.All()), []core.SongID{5, 6}); diff != nil {
		t.Errorf("playlist rows: %v", diff)
	}

	apply(t, s, uamp.EventPopPlaylist, `{"pop_cnt":0,"playlist":{"position":null,"playback":"Stopped","timestamp":null}}`)
	if s.Player.Tab() != 0 || s.Player.StackLen() != 0 {
		t.Errorf("after pop all: tab %d, stack %d", s.Player.Tab(), s.Player.StackLen())
	}
	if diff := deep.Equal(tabSongs(t, s, 0), []core.SongID{5, 6}); diff != nil {
		t.Error(diff)
	}
	if _, ok := s.Player.PlayingID(); ok {
		t.Error("null jump position left a current song")
	}
}

func TestPushPlaylistWithCur(t *testing.T) {
	s := newTestSession(t, 8)
	apply(t, s, uamp.EventPushPlaylistWithCur, `{"playlist":`+playlistJSON("0", 1)+`,"timestamp":null,"playback":"Playing"}`)

	if diff := deep.Equal(tabSongs(t, s, 1), []core.SongID{0, 2, 4}); diff != nil {
		t.Error(diff)
	}
	suspended, _ := s.Player.ByTab(1)
	if id, ok := suspended.PlayingID(); !ok || id != 2 {
		t.Errorf("suspended PlayingID() = %d, %v, want the following song 2", id, ok)
	}
	if id, _ := s.Player.PlayingID(); id != 1 {
		t.Errorf("PlayingID() = %d, want 1", id)
	}
}

func TestQueueAndPlayNext(t *testing.T) {
	s := newTestSession(t, 8)

	// Deleted and unknown ids are dropped.
	apply(t, s, uamp.EventQueue, `[5, 3, 99]`)
	apply(t, s, uamp.EventPlayNext, `[7]`)
	if diff := deep.Equal(tabSongs(t, s, 0), []core.SongID{0, 1, 7, 2, 4, 5}); diff != nil {
		t.Error(diff)
	}
	if cur, _ := s.Player.Active().Current(); cur != 1 {
		t.Errorf("current = %d, want 1", cur)
	}

	apply(t, s, uamp.EventPlaylistJump, `{"position":null,"playback":"Stopped","timestamp":null}`)
	apply(t, s, uamp.EventPlayNext, `[6]`)
	if n := s.Player.Active().Len(); n != 6 {
		t.Errorf("play-next without current changed the playlist: len %d", n)
	}
}

func TestInvalidEventsLeaveState(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		data    string
		wantErr error
	}{
		{"jump", uamp.EventPlaylistJump, `{"position":9,"playback":"Playing","timestamp":null}`, core.ErrIndexOutOfRange},
		{"pop", uamp.EventPopPlaylist, `{"pop_cnt":1,"playlist":{"position":5,"playback":"Playing","timestamp":null}}`, core.ErrIndexOutOfRange},
		{"reorder", uamp.EventReorderPlaylistStack, `{"order":[0,0],"position":{"position":null,"playback":"Playing","timestamp":null}}`, core.ErrInvalidPermutation},
		{"reorder tab", uamp.EventReorderPlaylistStack, `{"order":[4],"position":{"position":null,"playback":"Playing","timestamp":null}}`, core.ErrInvalidPermutation},
		{"reorder jump", uamp.EventReorderPlaylistStack, `{"order":[1],"position":{"position":2,"playback":"Playing","timestamp":null}}`, core.ErrIndexOutOfRange},
		{"payload", uamp.EventSetVolume, `"loud"`, nil},
		{"unknown", "dance", `{}`, uamp.ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 8)
			active := s.Player.Active()

			_, err := s.Apply(event(tt.event, tt.data))
			if err == nil {
				t.Fatal("Apply() = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Apply() = %v, want %v", err, tt.wantErr)
			}
			if s.Player.Active() != active || s.Player.StackLen() != 1 {
				t.Error("player changed")
			}
			if id, _ := s.Player.PlayingID(); id != 1 {
				t.Errorf("PlayingID() = %d, want 1", id)
			}
			if s.Player.State != core.Playing || s.Player.Volume != 0.5 {
				t.Errorf("state = %v, volume %v", s.Player.State, s.Player.Volume)
			}
		})
	}
}

func TestReorder(t *testing.T) {
	s := newTestSession(t, 8)
	apply(t, s, uamp.EventPushPlaylist, `{"playlist":`+playlistJSON("0", 7)+`,"timestamp":null,"playback":"Playing"}`)
	// Tabs: 0 = [7], 1 = [0 1 2 4], 2 = [5 6].
	if err := s.SetPlaylistTab(1); err != nil {
		t.Fatal(err)
	}

	apply(t, s, uamp.EventReorderPlaylistStack, `{"order":[2],"position":{"position":1,"playback":"Playing","timestamp":null}}`)

	want := [][]core.SongID{{5, 6}, {7}, {0, 1, 2, 4}}
	for tab, songs := range want {
		if diff := deep.Equal(tabSongs(t, s, tab), songs); diff != nil {
			t.Errorf("tab %d: %v", tab, diff)
		}
	}
	if s.Player.Tab() != 2 {
		t.Errorf("Tab() = %d, want 2 (the viewed playlist moved there)", s.Player.Tab())
	}
	if id, _ := s.Player.PlayingID(); id != 6 {
		t.Errorf("PlayingID() = %d, want 6", id)
	}
	if diff := deep.Equal(rowIDs(s.Playlist.Rows.All()), []core.SongID{0, 1, 2, 4}); diff != nil {
		t.Errorf("playlist rows: %v", diff)
	}
}

func TestPlayTmp(t *testing.T) {
	s := newTestSession(t, 8)
	apply(t, s, uamp.EventPlayTmp, `{
		"songs": [[{"path": "/tmp/x.mp3", "title": "Scratch", "artists": ["Someone"]}, -2]],
		"playlist": `+playlistJSON("0", -2)+`,
		"playback": "Playing",
		"timestamp": {"current": {"secs": 0, "nanos": 0}, "total": {"secs": 42, "nanos": 0}}
	}`)

	song := s.Player.Playing()
	if song == nil || song.Title != "Scratch" || song.ID != -2 {
		t.Fatalf("Playing() = %+v", song)
	}
	if _, total, _ := s.Progress(); total != core.NewDuration(42, 0) {
		t.Errorf("playing length = %v, want 0:42", total)
	}
	if gap := s.Library.Song(-1); gap == nil || !gap.Deleted {
		t.Errorf("Song(-1) = %+v, want placeholder", gap)
	}
}

func TestSeekAndTick(t *testing.T) {
	s := newTestSession(t, 8)
	apply(t, s, uamp.EventSeek, `{"current":{"secs":5,"nanos":0},"total":{"secs":80,"nanos":0}}`)

	s.Tick(2.5)
	current, total, percent := s.Progress()
	if current != core.NewDuration(7, 500_000_000) || total != core.NewDuration(80, 0) {
		t.Errorf("Progress() = %v / %v", current, total)
	}
	if percent != 9.375 {
		t.Errorf("percent = %v, want 9.375", percent)
	}

	apply(t, s, uamp.EventPlayback, `"Paused"`)
	s.Tick(10)
	if current, _, _ := s.Progress(); current != core.NewDuration(7, 500_000_000) {
		t.Errorf("paused Tick moved to %v", current)
	}

	apply(t, s, uamp.EventSeek, `null`)
	if s.Position != nil {
		t.Errorf("Position = %+v, want nil", s.Position)
	}
}

func TestPlayerSettings(t *testing.T) {
	s := newTestSession(t, 8)
	apply(t, s, uamp.EventSetVolume, `0.8`)
	apply(t, s, uamp.EventSetMute, `true`)
	apply(t, s, uamp.EventSetAddPolicy, `"Next"`)
	apply(t, s, uamp.EventSetEndAction, `{"name":"repeat","args":[]}`)

	if s.Player.Volume != 0.8 || !s.Player.Mute {
		t.Errorf("volume %v, mute %v", s.Player.Volume, s.Player.Mute)
	}
	active := s.Player.Active()
	if active.AddPolicy != core.AddNext || active.OnEnd == nil || active.OnEnd.Name != "repeat" {
		t.Errorf("policy %v, end action %v", active.AddPolicy, active.OnEnd)
	}
}

func TestNotices(t *testing.T) {
	s := newTestSession(t, 8)
	tests := []struct {
		ev   uamp.Event
		want Notice
	}{
		{event(uamp.EventQuitting, ``), NoticeQuitting},
		{event(uamp.EventRestarting, ``), NoticeRestarting},
		{event(uamp.EventClientChanged, ``), NoticeClientChanged},
		{event(uamp.EventNewServer, `{"address":"10.0.0.2","port":9000}`), NoticeServerMoved},
		{event(uamp.EventPlayback, `"Playing"`), NoticeNone},
	}
	for _, tt := range tests {
		got, err := s.Apply(tt.ev)
		if err != nil {
			t.Fatalf("%s: %v", tt.ev.Name, err)
		}
		if got != tt.want {
			t.Errorf("%s: notice = %v, want %v", tt.ev.Name, got, tt.want)
		}
	}
	if got := s.MovedTo(); got != "http://10.0.0.2:9000" {
		t.Errorf("MovedTo() = %q", got)
	}
}

func TestIntents(t *testing.T) {
	s := newTestSession(t, 8)

	query := func(i uamp.Intent, err error) string {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return i.Query()
	}

	if got := query(s.ClickPlaylist(1)); got != "pj=1&pp=play" {
		t.Errorf("ClickPlaylist(1) = %q", got)
	}
	if got := query(s.ClickBar(2)); got != "pj=2" {
		t.Errorf("ClickBar(2) = %q", got)
	}
	if got := query(s.SeekPercent(0.5)); got != "seek=1%3A40" {
		t.Errorf("SeekPercent(0.5) = %q", got)
	}

	if err := s.SetPlaylistTab(1); err != nil {
		t.Fatal(err)
	}
	if got := query(s.ClickPlaylist(0)); got != "rps=1&pj=0&pp=play" {
		t.Errorf("ClickPlaylist(0) on tab 1 = %q", got)
	}
	if _, err := s.ClickPlaylist(2); !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Errorf("ClickPlaylist(2) = %v, want ErrIndexOutOfRange", err)
	}

	intent, err := s.ClickLibrary(1)
	if err != nil {
		t.Fatal(err)
	}
	want := &uamp.PlaylistRequest{Songs: []core.SongID{0, 1, 2, 4, 5, 6, 7}, Position: 1, Play: true}
	if diff := deep.Equal(intent.Playlist, want); diff != nil {
		t.Error(diff)
	}

	if _, err := s.ClickDetail(0); !errors.Is(err, ErrNoDetail) {
		t.Errorf("ClickDetail() = %v, want ErrNoDetail", err)
	}
	album := s.Library.AlbumByKey("Artist 1", "Album 1")
	if album == nil {
		t.Fatal("AlbumByKey(Artist 1, Album 1) = nil")
	}
	s.OpenAlbum(album)
	intent, err = s.ClickDetail(0)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(intent.Playlist.Songs, []core.SongID{1, 7}); diff != nil {
		t.Errorf("album songs: %v", diff)
	}
	if got := s.PlayAlbum(album, 1).Query(); got != "sp=p%3D%2FArtist+1%2F.a%3D%2FAlbum+1%2F%40%2Ft&pj=1&pp=play" {
		t.Errorf("PlayAlbum() = %q", got)
	}

	apply(t, s, uamp.EventPlaylistJump, `{"position":null,"playback":"Stopped","timestamp":null}`)
	if _, err := s.SeekPercent(0.5); !errors.Is(err, ErrNothingPlaying) {
		t.Errorf("SeekPercent() = %v, want ErrNothingPlaying", err)
	}
}

func TestBarCentersOnPlaying(t *testing.T) {
	s := newTestSession(t, 120)
	songs := make([]int, 100)
	for i := range songs {
		songs[i] = i
	}
	// Song 3 is deleted, so position 60 is song 61.
	apply(t, s, uamp.EventSetPlaylist, `{"playlist":`+playlistJSON("60", songs...)+`,"timestamp":null,"playback":"Playing"}`)

	if got := s.Bar.Table.Window(); got != (vtable.Window{Start: 58, End: 63}) {
		t.Errorf("Window() = %+v, want {58 63}", got)
	}
	if got := s.Bar.Scroller.ScrollTop(); got != 60 {
		t.Errorf("ScrollTop() = %d, want 60", got)
	}
	if !s.Bar.Table.Suppressed() {
		t.Error("scroll updates not suppressed after centering")
	}

	var active []core.SongID
	s.Bar.Visible(func(line int, row vtable.Row[*core.Song, core.SongID], ok bool) {
		if !ok {
			t.Errorf("line %d not materialized", line)
		}
		if row.Active {
			active = append(active, row.ID)
		}
	})
	if diff := deep.Equal(active, []core.SongID{61}); diff != nil {
		t.Errorf("active rows: %v", diff)
	}

	s.Frames.Flush()
	if s.Bar.Table.Suppressed() {
		t.Error("still suppressed after a frame")
	}
	s.Bar.Scroller.ScrollBy(10)
	if got := s.Bar.Table.Window(); got.Start != 68 {
		t.Errorf("Window() after scroll = %+v, want start 68", got)
	}
}

func TestBarCenterKeepsFirstSongVisible(t *testing.T) {
	s := newTestSession(t, 120)
	songs := make([]int, 50)
	for i := range songs {
		songs[i] = i
	}
	apply(t, s, uamp.EventSetPlaylist, `{"playlist":`+playlistJSON("0", songs...)+`,"timestamp":null,"playback":"Playing"}`)

	if got := s.Bar.Scroller.ScrollTop(); got != 0 {
		t.Errorf("ScrollTop() = %d, want 0", got)
	}
	lines := 0
	s.Bar.Visible(func(line int, row vtable.Row[*core.Song, core.SongID], ok bool) {
		if !ok {
			t.Errorf("line %d not materialized", line)
		}
		lines++
	})
	if lines != 3 {
		t.Errorf("visible lines = %d, want 3", lines)
	}
}

func TestPaneCursor(t *testing.T) {
	s := newTestSession(t, 120)
	s.Songs.MoveTo(30)
	if got := s.Songs.Scroller.ScrollTop(); got != 26 {
		t.Errorf("ScrollTop() = %d, want 26", got)
	}
	song, ok := s.Songs.Selected()
	if !ok || song.ID != 31 {
		t.Errorf("Selected() = %+v, want song 31", song)
	}

	// Every visible line is materialized after the scroll.
	s.Songs.Visible(func(line int, row vtable.Row[*core.Song, core.SongID], ok bool) {
		if !ok {
			t.Errorf("line %d not materialized", line)
		}
	})

	s.Songs.Move(-100)
	if s.Songs.Cursor() != 0 || s.Songs.Scroller.ScrollTop() != 0 {
		t.Errorf("cursor %d, top %d", s.Songs.Cursor(), s.Songs.Scroller.ScrollTop())
	}
	if err := s.ToggleSort(ViewAlbumSongs, library.KeyTrack); !errors.Is(err, ErrNoDetail) {
		t.Errorf("ToggleSort(album songs) = %v, want ErrNoDetail", err)
	}
}

func TestSeekKeepsLengthOrder(t *testing.T) {
	s := New(Options{BarAutoscroll: true}, zap.NewNop())
	s.Songs.Resize(5)
	s.Bar.Resize(3)
	var list []string
	for i := 0; i < 4; i++ {
		list = append(list, fmt.Sprintf(
			`{"path":"/m/%d.flac","title":"Song %d","artists":["A"],"album":"B","length":{"secs":%d,"nanos":0}}`,
			i, i, 100+i*10))
	}
	apply(t, s, uamp.EventSetAll, fmt.Sprintf(`{
		"library": {"songs": [%s], "tmp_songs": []},
		"player": {
			"playlist": {"songs": [0, 1, 2, 3], "current": 0, "play_pos": null, "on_end": null, "add_policy": "End"},
			"playlist_stack": [],
			"volume": 1,
			"mute": false,
			"state": "Playing"
		},
		"position": null,
		"config": null
	}`, strings.Join(list, ",")))

	if err := s.ToggleSort(ViewSongs, library.KeyLength); err != nil {
		t.Fatal(err)
	}
	// The server reports a longer total for song 0 than any library length.
	apply(t, s, uamp.EventSeek, `{"current":{"secs":1,"nanos":0},"total":{"secs":500,"nanos":0}}`)

	var lengths []int64
	for _, song := range s.Library.Songs.Get() {
		lengths = append(lengths, song.Length.Secs)
	}
	if diff := deep.Equal(lengths, []int64{100, 110, 120, 130}); diff != nil {
		t.Errorf("length order: %v", diff)
	}
	if _, total, _ := s.Progress(); total != core.NewDuration(500, 0) {
		t.Errorf("Progress() total = %v, want 8:20", total)
	}
	intent, err := s.SeekPercent(0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := intent.Params[0].Value; got != "4:10" {
		t.Errorf("SeekPercent(0.5) = %q, want 4:10", got)
	}
}
