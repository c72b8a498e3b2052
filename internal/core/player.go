package core

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidPermutation is returned when a reorder does not describe
	// a bijection over all tabs.
	ErrInvalidPermutation = errors.New("invalid playlist stack permutation")
	// ErrInvalidTab is returned when a tab index addresses no playlist.
	ErrInvalidTab = errors.New("invalid playlist tab")
)

// PlayerData is the server's player payload.
type PlayerData struct {
	Playlist      PlaylistData   `json:"playlist"`
	PlaylistStack []PlaylistData `json:"playlist_stack"`
	Volume        float64        `json:"volume"`
	Mute          bool           `json:"mute"`
	State         Playback       `json:"state"`
}

// Player mirrors the server player: the active playlist, a stack of
// suspended playlists and the tab the user is looking at. The viewed tab
// is independent of which playlist is playing; the active one (tab 0)
// is always the one playing.
type Player struct {
	Volume float64
	Mute   bool
	State  Playback

	active *Playlist
	// stack is bottom first: stack[0] is the oldest suspended playlist.
	stack []*Playlist
	tab   int
}

// NewPlayer materializes a player payload.
func NewPlayer(data PlayerData, r Resolver) *Player {
	p := &Player{
		Volume: data.Volume,
		Mute:   data.Mute,
		State:  data.State,
		active: NewPlaylist(data.Playlist, r),
		stack:  make([]*Playlist, 0, len(data.PlaylistStack)),
	}
	for _, pl := range data.PlaylistStack {
		p.stack = append(p.stack, NewPlaylist(pl, r))
	}
	return p
}

// NewPlayerWith creates a player with an active playlist and no stack.
func NewPlayerWith(active *Playlist) *Player {
	return &Player{active: active}
}

// Active returns the active (playing) playlist.
func (p *Player) Active() *Playlist {
	return p.active
}

// SetActive replaces the active playlist without touching the stack.
func (p *Player) SetActive(pl *Playlist) {
	p.active = pl
}

// StackLen returns the number of suspended playlists.
func (p *Player) StackLen() int {
	return len(p.stack)
}

// Tabs returns the number of addressable tabs (active included).
func (p *Player) Tabs() int {
	return len(p.stack) + 1
}

// Tab returns the tab the user is viewing.
func (p *Player) Tab() int {
	return p.tab
}

// SetTab changes the viewed tab.
func (p *Player) SetTab(tab int) error {
	if tab < 0 || tab > len(p.stack) {
		return fmt.Errorf("tab %d of %d: %w", tab, p.Tabs(), ErrInvalidTab)
	}
	p.tab = tab
	return nil
}

// ByTab returns the playlist at the given tab index.
func (p *Player) ByTab(tab int) (*Playlist, error) {
	if tab < 0 || tab > len(p.stack) {
		return nil, fmt.Errorf("tab %d of %d: %w", tab, p.Tabs(), ErrInvalidTab)
	}
	if tab == 0 {
		return p.active, nil
	}
	return p.stack[TabToStorage(tab, p.Tabs())], nil
}

// Viewed returns the playlist at the viewed tab.
func (p *Player) Viewed() *Playlist {
	pl, err := p.ByTab(p.tab)
	if err != nil {
		return p.active
	}
	return pl
}

// Playing returns the song playing in the active playlist.
func (p *Player) Playing() *Song {
	return p.active.Playing()
}

// PlayingID returns the id of the song playing in the active playlist.
func (p *Player) PlayingID() (SongID, bool) {
	return p.active.PlayingID()
}

// IsPlaying reports whether the server is playing.
func (p *Player) IsPlaying() bool {
	return p.State == Playing
}

// Push suspends the active playlist and makes pl active. A user viewing
// a suspended tab keeps viewing the same playlist, which is now one tab
// further from the top.
func (p *Player) Push(pl *Playlist) {
	p.stack = append(p.stack, p.active)
	p.active = pl
	if p.tab != 0 {
		p.tab++
	}
}

// Pop restores suspended playlists. A count of 0 pops everything. It
// returns the playlist left on the last pop step, or nil when the stack
// was already empty.
func (p *Player) Pop(count int) *Playlist {
	if count == 0 {
		count = len(p.stack)
	}

	var prev *Playlist
	popped := 0
	for ; count > 0 && len(p.stack) > 0; count-- {
		prev = p.active
		last := len(p.stack) - 1
		p.active = p.stack[last]
		p.stack[last] = nil
		p.stack = p.stack[:last]
		popped++
	}

	p.tab = max(0, p.tab-popped)
	return prev
}

// Reorder rearranges all tabs. perm[newTab] is the old tab that moves to
// newTab. The viewed tab follows its playlist.
func (p *Player) Reorder(perm []int) error {
	n := p.Tabs()
	if err := validatePermutation(perm, n); err != nil {
		return err
	}

	all := make([]*Playlist, 0, n)
	all = append(all, p.stack...)
	all = append(all, p.active)

	reordered := make([]*Playlist, n)
	for newTab, oldTab := range perm {
		reordered[TabToStorage(newTab, n)] = all[TabToStorage(oldTab, n)]
	}

	p.active = reordered[TabToStorage(0, n)]
	p.stack = reordered[:n-1]
	if p.tab != 0 {
		p.tab = slices.Index(perm, p.tab)
	}
	return nil
}

func validatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("got %d entries for %d tabs: %w", len(perm), n, ErrInvalidPermutation)
	}
	seen := make([]bool, n)
	for _, t := range perm {
		if t < 0 || t >= n || seen[t] {
			return fmt.Errorf("entry %d: %w", t, ErrInvalidPermutation)
		}
		seen[t] = true
	}
	return nil
}

// CompleteOrder extends a partial server order over stackLen+1 tabs by
// appending every missing tab in ascending order.
func CompleteOrder(order []int, stackLen int) []int {
	present := make(map[int]bool, len(order))
	for _, t := range order {
		present[t] = true
	}
	out := slices.Clone(order)
	for t := 0; t <= stackLen; t++ {
		if !present[t] {
			out = append(out, t)
		}
	}
	return out
}

// Inverse returns the inverse of a valid permutation.
func Inverse(perm []int) []int {
	inv := make([]int, len(perm))
	for i, t := range perm {
		inv[t] = i
	}
	return inv
}
