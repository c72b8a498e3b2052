package core

import (
	"encoding/json"
	"testing"
)

func TestDurationFormat(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Duration{}, "-"},
		{Duration{Secs: 5}, "0:05"},
		{Duration{Secs: 65, Nanos: 999}, "1:05"},
		{Duration{Secs: 3600}, "60:00"},
	}
	for _, tt := range tests {
		if got := tt.d.Format(); got != tt.want {
			t.Errorf("Format(%+v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDurationCmp(t *testing.T) {
	a := NewDuration(1, 500)
	b := NewDuration(0, 1_000_000_600)
	if a.Cmp(b) != -1 || b.Cmp(a) != 1 || a.Cmp(a) != 0 {
		t.Errorf("Cmp: a=%+v b=%+v", a, b)
	}
	if b.Secs != 1 || b.Nanos != 600 {
		t.Errorf("NewDuration did not normalize: %+v", b)
	}
}

func TestDurationFromPercent(t *testing.T) {
	d := Duration{Secs: 200}
	if got := d.FromPercent(0.25); got != (Duration{Secs: 50}) {
		t.Errorf("FromPercent(0.25) = %+v", got)
	}
	if got := d.FromPercent(2); got != d {
		t.Errorf("FromPercent(2) = %+v, want %+v", got, d)
	}
	if got := d.FromPercent(-1); !got.IsZero() {
		t.Errorf("FromPercent(-1) = %+v, want zero", got)
	}
}

func TestTimestampAdvance(t *testing.T) {
	ts := &Timestamp{Current: Duration{Secs: 9}, Total: Duration{Secs: 10}}
	ts.Advance(0.5)
	if ts.Current != (Duration{Secs: 9, Nanos: 500_000_000}) {
		t.Errorf("Current = %+v", ts.Current)
	}
	ts.Advance(5)
	if ts.Current != ts.Total {
		t.Errorf("Current = %+v, want clamped to %+v", ts.Current, ts.Total)
	}
	if p := ts.ProgressPercent(); p != 100 {
		t.Errorf("ProgressPercent() = %v, want 100", p)
	}

	var none *Timestamp
	if none.ProgressPercent() != 0 {
		t.Error("nil ProgressPercent() != 0")
	}
}

func TestPlaybackJSON(t *testing.T) {
	for _, raw := range []string{`"Playing"`, `"playing"`} {
		var p Playback
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatal(err)
		}
		if p != Playing {
			t.Errorf("Unmarshal(%s) = %v, want Playing", raw, p)
		}
	}
	var p Playback
	if err := json.Unmarshal([]byte(`"Rewinding"`), &p); err == nil {
		t.Error("Unmarshal(Rewinding) error = nil")
	}
	out, err := json.Marshal(Paused)
	if err != nil || string(out) != `"Paused"` {
		t.Errorf("Marshal(Paused) = %s, %v", out, err)
	}
}

func TestSongJSON(t *testing.T) {
	var s Song
	raw := `{"path":"/m/a.flac","title":"A/B","artists":["X","Y"],"album":"Al","track":3,"year":2001,"length":{"secs":120,"nanos":0},"genres":["rock"]}`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	if s.AlbumArtist != "X" {
		t.Errorf("AlbumArtist = %q, want %q", s.AlbumArtist, "X")
	}
	if s.Artist() != "X, Y" {
		t.Errorf("Artist() = %q", s.Artist())
	}
	want := "n=/A//B/.p=/X/.a=/Al/.t=3.d=.y=2001.g=/rock/"
	if got := s.Query(); got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
}

func TestTmpSongID(t *testing.T) {
	id := TmpSongID(0)
	if id != -1 || !id.IsTmp() || id.TmpIndex() != 0 {
		t.Errorf("TmpSongID(0) = %d", id)
	}
	if TmpSongID(4).TmpIndex() != 4 {
		t.Error("TmpIndex round trip failed")
	}
	if SongID(0).IsTmp() {
		t.Error("SongID(0).IsTmp() = true")
	}
}
