package components

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/tessro/uampc/internal/library"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/sorter"
)

// AlbumColumns are the album list columns in display order.
var AlbumColumns = []Column[*library.Album]{
	{Key: library.AlbumKeyName, Title: "Album", Flex: 3, Width: 8, Value: func(a *library.Album) string { return a.Name }},
	{Key: library.AlbumKeyArtist, Title: "Artist", Flex: 2, Width: 6, Value: func(a *library.Album) string { return a.Artist }},
	{Key: library.AlbumKeyYear, Title: "Year", Width: 4, MinTotal: 50, Value: (*library.Album).YearString},
	{Key: library.AlbumKeySongs, Title: "Songs", Width: 5, Right: true, Value: func(a *library.Album) string {
		return strconv.Itoa(a.Songs.Len())
	}},
	{Title: "Length", Width: 7, Right: true, MinTotal: 70, Value: func(a *library.Album) string { return a.Length().Format() }},
}

// ArtistColumns are the artist list columns in display order.
var ArtistColumns = []Column[*library.Artist]{
	{Key: library.ArtistKeyName, Title: "Artist", Flex: 1, Width: 8, Value: func(a *library.Artist) string { return a.Name }},
	{Key: library.ArtistKeyAlbums, Title: "Albums", Width: 6, Right: true, Value: func(a *library.Artist) string {
		return humanize.Comma(int64(len(a.Albums)))
	}},
	{Key: library.ArtistKeySongs, Title: "Songs", Width: 6, Right: true, Value: func(a *library.Artist) string {
		return humanize.Comma(int64(a.Songs.Len()))
	}},
}

// AlbumList renders the album pane.
type AlbumList struct{}

// NewAlbumList creates an album list.
func NewAlbumList() *AlbumList {
	return &AlbumList{}
}

// Render renders the albums at the given outer size.
func (l *AlbumList) Render(pane *session.Pane[*library.Album, string], key sorter.Key, ascending bool, width, height int, focused bool) string {
	inner := width - 4
	cols := Layout(AlbumColumns, inner)
	content := []string{Header(cols, key, ascending)}
	if pane.Len() == 0 {
		content = append(content, "", "No albums")
	} else {
		content = append(content, Lines(pane, inner, focused, func(a *library.Album) string {
			return Line(cols, a)
		})...)
	}
	return Box("Albums", content, width, height, focused)
}

// ArtistList renders the artist pane.
type ArtistList struct{}

// NewArtistList creates an artist list.
func NewArtistList() *ArtistList {
	return &ArtistList{}
}

// Render renders the artists at the given outer size.
func (l *ArtistList) Render(pane *session.Pane[*library.Artist, string], key sorter.Key, ascending bool, width, height int, focused bool) string {
	inner := width - 4
	cols := Layout(ArtistColumns, inner)
	content := []string{Header(cols, key, ascending)}
	if pane.Len() == 0 {
		content = append(content, "", "No artists")
	} else {
		content = append(content, Lines(pane, inner, focused, func(a *library.Artist) string {
			return Line(cols, a)
		})...)
	}
	return Box("Artists", content, width, height, focused)
}
