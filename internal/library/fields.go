package library

import (
	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/sorter"
)

// Song sort keys.
const (
	KeyID          sorter.Key = "id"
	KeyTitle       sorter.Key = "title"
	KeyArtists     sorter.Key = "artists"
	KeyAlbum       sorter.Key = "album"
	KeyAlbumArtist sorter.Key = "album_artist"
	KeyTrack       sorter.Key = "track"
	KeyDisc        sorter.Key = "disc"
	KeyYear        sorter.Key = "year"
	KeyLength      sorter.Key = "length"
	KeyGenres      sorter.Key = "genres"
)

// SongColumns lists the song keys in display column order.
var SongColumns = []sorter.Key{
	KeyTitle, KeyArtists, KeyAlbum, KeyYear, KeyLength, KeyGenres, KeyTrack, KeyDisc, KeyID,
}

// SongFields are the sortable song attributes.
var SongFields = sorter.Fields[*core.Song]{
	KeyID:          func(s *core.Song) sorter.Value { return sorter.Int(int(s.ID)) },
	KeyTitle:       func(s *core.Song) sorter.Value { return sorter.String(s.Title) },
	KeyArtists:     func(s *core.Song) sorter.Value { return sorter.List(s.Artists) },
	KeyAlbum:       func(s *core.Song) sorter.Value { return sorter.String(s.Album) },
	KeyAlbumArtist: func(s *core.Song) sorter.Value { return sorter.String(s.AlbumArtist) },
	KeyTrack:       func(s *core.Song) sorter.Value { return sorter.Int(s.Track) },
	KeyDisc:        func(s *core.Song) sorter.Value { return sorter.Int(s.Disc) },
	KeyYear:        func(s *core.Song) sorter.Value { return sorter.Int(s.Year) },
	KeyLength:      func(s *core.Song) sorter.Value { return sorter.Duration(s.Length) },
	KeyGenres:      func(s *core.Song) sorter.Value { return sorter.List(s.Genres) },
}

// Album sort keys.
const (
	AlbumKeyOrder  sorter.Key = "order"
	AlbumKeyName   sorter.Key = "name"
	AlbumKeyArtist sorter.Key = "artist"
	AlbumKeyYear   sorter.Key = "year"
	AlbumKeySongs  sorter.Key = "songs"
)

// AlbumFields are the sortable album attributes. The default order is
// newest first, then by name.
var AlbumFields = sorter.Fields[*Album]{
	AlbumKeyOrder:  func(a *Album) sorter.Value { return sorter.Int(a.order) },
	AlbumKeyName:   func(a *Album) sorter.Value { return sorter.String(a.Name) },
	AlbumKeyArtist: func(a *Album) sorter.Value { return sorter.String(a.Artist) },
	AlbumKeyYear:   func(a *Album) sorter.Value { return sorter.Int(a.Year) },
	AlbumKeySongs:  func(a *Album) sorter.Value { return sorter.List(a.songs) },
}

// Artist sort keys.
const (
	ArtistKeyName   sorter.Key = "name"
	ArtistKeyAlbums sorter.Key = "albums"
	ArtistKeySongs  sorter.Key = "songs"
)

// ArtistFields are the sortable artist attributes.
var ArtistFields = sorter.Fields[*Artist]{
	ArtistKeyName:   func(a *Artist) sorter.Value { return sorter.String(a.Name) },
	ArtistKeyAlbums: func(a *Artist) sorter.Value { return sorter.List(a.Albums) },
	ArtistKeySongs:  func(a *Artist) sorter.Value { return sorter.List(a.songs) },
}
