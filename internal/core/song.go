package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SongID identifies a song for the whole session. Library songs have
// non-negative ids; temporary songs have negative ids.
type SongID int

// TmpSongID returns the id of the temporary song at index i.
func TmpSongID(i int) SongID {
	return SongID(-i - 1)
}

// IsTmp reports whether the id refers to a temporary song.
func (id SongID) IsTmp() bool {
	return id < 0
}

// TmpIndex returns the index of a temporary song id.
func (id SongID) TmpIndex() int {
	return int(-id - 1)
}

// Song represents a playable library entry. Absent attributes from the
// server decode to their zero value.
type Song struct {
	ID          SongID   `json:"-"`
	Path        string   `json:"path"`
	Title       string   `json:"title"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	AlbumArtist string   `json:"album_artist"`
	Track       int      `json:"track"`
	Disc        int      `json:"disc"`
	Year        int      `json:"year"`
	Length      Duration `json:"length"`
	Genres      []string `json:"genres"`
	Deleted     bool     `json:"deleted"`
}

// UnmarshalJSON decodes a song, defaulting the album artist to the
// first artist.
func (s *Song) UnmarshalJSON(data []byte) error {
	type raw Song
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = Song(r)
	if s.AlbumArtist == "" && len(s.Artists) > 0 {
		s.AlbumArtist = s.Artists[0]
	}
	return nil
}

// EmptySong returns a deleted placeholder with the given id.
func EmptySong(id SongID) *Song {
	return &Song{ID: id, Deleted: true}
}

// Artist returns the joined artist names.
func (s *Song) Artist() string {
	return strings.Join(s.Artists, ", ")
}

// YearString returns the release year or "-".
func (s *Song) YearString() string {
	if s.Year == 0 {
		return "-"
	}
	return strconv.Itoa(s.Year)
}

// Query returns the server filter query matching this song.
func (s *Song) Query() string {
	genre := ""
	if len(s.Genres) > 0 {
		genre = s.Genres[0]
	}
	var b strings.Builder
	b.WriteString("n=/" + EscapeQuery(s.Title) + "/")
	b.WriteString(".p=/" + EscapeQuery(s.AlbumArtist) + "/")
	b.WriteString(".a=/" + EscapeQuery(s.Album) + "/")
	b.WriteString(".t=" + optInt(s.Track))
	b.WriteString(".d=" + optInt(s.Disc))
	b.WriteString(".y=" + optInt(s.Year))
	b.WriteString(".g=/" + EscapeQuery(genre) + "/")
	return b.String()
}

// EscapeQuery escapes a literal for use between slashes in a filter query.
func EscapeQuery(text string) string {
	return strings.ReplaceAll(text, "/", "//")
}

func optInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
