package library

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/sorter"
)

// Album groups the songs sharing an album name and album artist.
type Album struct {
	Name   string
	Artist string
	Year   int
	// Songs defaults to track order.
	Songs *sorter.Sorter[*core.Song]

	key   string
	order int
	songs []*core.Song
}

func newAlbum(name, artist string, year int) *Album {
	return &Album{Name: name, Artist: artist, Year: year}
}

// Key returns the case-insensitive album identity.
func (a *Album) Key() string {
	return a.key
}

// YearString returns the release year or "-".
func (a *Album) YearString() string {
	if a.Year == 0 {
		return "-"
	}
	return strconv.Itoa(a.Year)
}

// Length returns the summed length of the album songs.
func (a *Album) Length() core.Duration {
	var total int64
	for _, s := range a.songs {
		total += s.Length.TotalNanos()
	}
	return core.NewDuration(0, total)
}

// Query returns the server filter query playing the album in track order.
func (a *Album) Query() string {
	return "p=/" + core.EscapeQuery(a.Artist) + "/.a=/" + core.EscapeQuery(a.Name) + "/@/t"
}

// Artist groups every song an artist appears on.
type Artist struct {
	Name string
	// Songs defaults to library order.
	Songs *sorter.Sorter[*core.Song]
	// Albums are ordered newest first.
	Albums []*Album

	key   string
	songs []*core.Song
}

// Details summarizes the artist's albums and songs.
func (a *Artist) Details() string {
	return fmt.Sprintf("%s albums  •  %s songs",
		humanize.Comma(int64(len(a.Albums))), humanize.Comma(int64(len(a.songs))))
}

// Query returns the server filter query matching the artist.
func (a *Artist) Query() string {
	return "p=/" + core.EscapeQuery(a.Name) + "/"
}
