// Package library holds the server's song library and its browsable
// album and artist views.
package library

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/sorter"
)

// Data is the server's library payload.
type Data struct {
	Songs    []core.Song `json:"songs"`
	TmpSongs []core.Song `json:"tmp_songs"`
}

// TmpSong is a temporary song pushed by the server together with its id.
type TmpSong struct {
	Song core.Song
	ID   core.SongID
}

// Library is the client's view of the server library.
type Library struct {
	all []*core.Song
	tmp []*core.Song

	allAlbums  []*Album
	allArtists []*Artist

	// Songs, Albums and Artists are the searched and sorted views.
	Songs   *sorter.Sorter[*core.Song]
	Albums  *sorter.Sorter[*Album]
	Artists *sorter.Sorter[*Artist]

	songQuery   string
	albumQuery  string
	artistQuery string
}

// New builds a library from the server payload. Library songs get their
// index as id, temporary songs get negative ids.
func New(data Data) *Library {
	l := &Library{
		all: make([]*core.Song, len(data.Songs)),
		tmp: make([]*core.Song, len(data.TmpSongs)),
	}
	for i := range data.Songs {
		s := data.Songs[i]
		s.ID = core.SongID(i)
		l.all[i] = &s
	}
	for i := range data.TmpSongs {
		s := data.TmpSongs[i]
		s.ID = core.TmpSongID(i)
		l.tmp[i] = &s
	}

	l.group()
	l.Songs = sorter.MustNew(SongFields, KeyID, l.visibleSongs())
	l.Albums = sorter.MustNew(AlbumFields, AlbumKeyOrder, l.allAlbums)
	l.Artists = sorter.MustNew(ArtistFields, ArtistKeyName, l.allArtists)
	return l
}

// Song resolves a library or temporary song id. It returns nil for
// unknown ids.
func (l *Library) Song(id core.SongID) *core.Song {
	if id.IsTmp() {
		i := id.TmpIndex()
		if i < len(l.tmp) {
			return l.tmp[i]
		}
		return nil
	}
	if int(id) < len(l.all) {
		return l.all[id]
	}
	return nil
}

// AllSongs returns every library song, deleted ones included.
func (l *Library) AllSongs() []*core.Song {
	return l.all
}

// TmpSongs returns the temporary songs.
func (l *Library) TmpSongs() []*core.Song {
	return l.tmp
}

// AllAlbums returns every album in canonical order.
func (l *Library) AllAlbums() []*Album {
	return l.allAlbums
}

// AllArtists returns every artist by name.
func (l *Library) AllArtists() []*Artist {
	return l.allArtists
}

// PushTmpSongs stores temporary songs at their ids. Gaps are filled with
// deleted placeholders.
func (l *Library) PushTmpSongs(songs []TmpSong) {
	for _, ts := range songs {
		if !ts.ID.IsTmp() {
			continue
		}
		i := ts.ID.TmpIndex()
		for len(l.tmp) <= i {
			l.tmp = append(l.tmp, core.EmptySong(core.TmpSongID(len(l.tmp))))
		}
		s := ts.Song
		s.ID = ts.ID
		l.tmp[i] = &s
	}
}

// ArtistByName finds an artist ignoring case.
func (l *Library) ArtistByName(name string) *Artist {
	key := normalize(name)
	for _, a := range l.allArtists {
		if a.key == key {
			return a
		}
	}
	return nil
}

// AlbumByKey finds an album by its artist and name, ignoring case.
func (l *Library) AlbumByKey(artist, name string) *Album {
	key := albumKey(name, artist)
	for _, a := range l.allAlbums {
		if a.key == key {
			return a
		}
	}
	return nil
}

// Queries returns the active song, album and artist search queries.
func (l *Library) Queries() (songs, albums, artists string) {
	return l.songQuery, l.albumQuery, l.artistQuery
}

// SearchSongs filters the song view. An empty query shows every song.
func (l *Library) SearchSongs(query string) {
	l.songQuery = strings.TrimSpace(query)
	if l.songQuery == "" {
		l.Songs.Set(l.visibleSongs())
		return
	}
	var out []*core.Song
	for _, s := range l.all {
		if s.Deleted {
			continue
		}
		if matches(l.songQuery, s.Title, s.Artist(), s.Album) {
			out = append(out, s)
		}
	}
	l.Songs.Set(out)
}

// SearchAlbums filters the album view by album name or artist.
func (l *Library) SearchAlbums(query string) {
	l.albumQuery = strings.TrimSpace(query)
	if l.albumQuery == "" {
		l.Albums.Set(l.allAlbums)
		return
	}
	var out []*Album
	for _, a := range l.allAlbums {
		if matches(l.albumQuery, a.Name, a.Artist) {
			out = append(out, a)
		}
	}
	l.Albums.Set(out)
}

// SearchArtists filters the artist view by name.
func (l *Library) SearchArtists(query string) {
	l.artistQuery = strings.TrimSpace(query)
	if l.artistQuery == "" {
		l.Artists.Set(l.allArtists)
		return
	}
	var out []*Artist
	for _, a := range l.allArtists {
		if matches(l.artistQuery, a.Name) {
			out = append(out, a)
		}
	}
	l.Artists.Set(out)
}

// Restore reapplies the searches and sort orders of a previous library,
// used when the server replaces the whole state.
func (l *Library) Restore(prev *Library) {
	if prev == nil {
		return
	}
	l.SearchSongs(prev.songQuery)
	l.SearchAlbums(prev.albumQuery)
	l.SearchArtists(prev.artistQuery)
	_ = l.Songs.SortBy(prev.Songs.Key(), prev.Songs.Ascending())
	_ = l.Albums.SortBy(prev.Albums.Key(), prev.Albums.Ascending())
	_ = l.Artists.SortBy(prev.Artists.Key(), prev.Artists.Ascending())
}

func (l *Library) visibleSongs() []*core.Song {
	out := make([]*core.Song, 0, len(l.all))
	for _, s := range l.all {
		if !s.Deleted {
			out = append(out, s)
		}
	}
	return out
}

// group builds the album and artist lists from the library songs.
func (l *Library) group() {
	albums := make(map[string]*Album)
	artists := make(map[string]*Artist)
	var albumList []*Album

	for _, s := range l.all {
		if s.Deleted {
			continue
		}

		key := albumKey(s.Album, s.AlbumArtist)
		album, ok := albums[key]
		if !ok {
			album = newAlbum(s.Album, s.AlbumArtist, s.Year)
			album.key = key
			albums[key] = album
			albumList = append(albumList, album)
		}
		album.songs = append(album.songs, s)

		names := s.Artists
		if len(names) == 0 {
			names = []string{s.AlbumArtist}
		}
		for _, name := range names {
			akey := normalize(name)
			artist, ok := artists[akey]
			if !ok {
				artist = &Artist{Name: strings.TrimSpace(name), key: akey}
				artists[akey] = artist
			}
			artist.songs = append(artist.songs, s)
			if !slices.Contains(artist.Albums, album) {
				artist.Albums = append(artist.Albums, album)
			}
		}
	}

	for _, a := range albumList {
		a.Songs = sorter.MustNew(SongFields, KeyTrack, a.songs)
	}
	// Year descending, then name: sort by name and stably by year.
	canonical := sorter.MustNew(AlbumFields, AlbumKeyName, albumList)
	_ = canonical.SortBy(AlbumKeyYear, false)
	l.allAlbums = canonical.Get()
	for i, a := range l.allAlbums {
		a.order = i
	}

	artistList := make([]*Artist, 0, len(artists))
	for _, a := range artists {
		a.Songs = sorter.MustNew(SongFields, KeyID, a.songs)
		slices.SortStableFunc(a.Albums, func(x, y *Album) int {
			return y.Year - x.Year
		})
		artistList = append(artistList, a)
	}
	// Map order is random; fix it before collating.
	slices.SortFunc(artistList, func(x, y *Artist) int {
		return strings.Compare(x.key, y.key)
	})
	l.allArtists = sorter.MustNew(ArtistFields, ArtistKeyName, artistList).Get()
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if fuzzy.MatchNormalizedFold(query, f) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func albumKey(name, artist string) string {
	return normalize(name) + "::" + normalize(artist)
}
