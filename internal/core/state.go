package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Playback is the server's playback state.
type Playback int

const (
	Stopped Playback = iota
	Playing
	Paused
)

func (p Playback) String() string {
	switch p {
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// MarshalJSON encodes the state by name.
func (p Playback) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts the state name in any case.
func (p *Playback) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "playing":
		*p = Playing
	case "paused":
		*p = Paused
	case "stopped", "":
		*p = Stopped
	default:
		return fmt.Errorf("unknown playback state %q", s)
	}
	return nil
}

// AddPolicy describes where the server places newly added songs.
type AddPolicy string

const (
	AddEnd   AddPolicy = "End"
	AddNext  AddPolicy = "Next"
	AddMixIn AddPolicy = "MixIn"
)

// Alias is a named server action, used as a playlist end action.
type Alias struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

func (a Alias) String() string {
	if len(a.Args) == 0 {
		return a.Name
	}
	return a.Name + "{" + strings.Join(a.Args, ",") + "}"
}

// Timestamp is a playback position within the playing song.
type Timestamp struct {
	Current Duration `json:"current"`
	Total   Duration `json:"total"`
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (t *Timestamp) ProgressPercent() float64 {
	if t == nil || t.Total.TotalNanos() == 0 {
		return 0
	}
	p := float64(t.Current.TotalNanos()) / float64(t.Total.TotalNanos()) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Advance moves the position forward by delta seconds, clamped to the total.
func (t *Timestamp) Advance(delta float64) {
	if t == nil {
		return
	}
	current := t.Current.Seconds() + delta
	if total := t.Total.Seconds(); current > total {
		current = total
	}
	if current < 0 {
		current = 0
	}
	whole := int64(current)
	t.Current = NewDuration(whole, int64((current-float64(whole))*float64(nanosPerSec)))
}
