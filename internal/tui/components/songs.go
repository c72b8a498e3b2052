package components

import (
	"strconv"
	"strings"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/sorter"
)

func optInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// SongColumns are the song list columns in display order.
var SongColumns = []Column[*core.Song]{
	{Key: library.KeyTrack, Title: "#", Width: 3, Right: true, Value: func(s *core.Song) string { return optInt(s.Track) }},
	{Key: library.KeyTitle, Title: "Title", Flex: 3, Width: 8, Value: func(s *core.Song) string { return s.Title }},
	{Key: library.KeyArtists, Title: "Artist", Flex: 2, Width: 6, Value: (*core.Song).Artist},
	{Key: library.KeyAlbum, Title: "Album", Flex: 2, Width: 6, MinTotal: 60, Value: func(s *core.Song) string { return s.Album }},
	{Key: library.KeyYear, Title: "Year", Width: 4, MinTotal: 80, Value: (*core.Song).YearString},
	{Key: library.KeyLength, Title: "Length", Width: 6, Right: true, Value: func(s *core.Song) string { return s.Length.Format() }},
	{Key: library.KeyGenres, Title: "Genre", Flex: 1, Width: 5, MinTotal: 110, Value: func(s *core.Song) string { return strings.Join(s.Genres, ", ") }},
}

// SongList renders a pane of songs as a table.
type SongList struct {
	Title string
}

// NewSongList creates a song list with a panel title.
func NewSongList(title string) *SongList {
	return &SongList{Title: title}
}

// Render renders the list at the given outer size. An empty key hides
// the sort marker.
func (l *SongList) Render(pane *session.SongPane, key sorter.Key, ascending bool, width, height int, focused bool) string {
	inner := width - 4
	cols := Layout(SongColumns, inner)
	content := []string{Header(cols, key, ascending)}
	if pane.Len() == 0 {
		content = append(content, "", "No songs")
	} else {
		content = append(content, Lines(pane, inner, focused, func(s *core.Song) string {
			return Line(cols, s)
		})...)
	}
	return Box(l.Title, content, width, height, focused)
}

// BarLine renders a compact song line for the bar playlist.
func BarLine(s *core.Song, width int) string {
	length := s.Length.Format()
	left := s.Title + " - " + s.Artist()
	return cell(left, max(0, width-len(length)-1), false) + " " + length
}
