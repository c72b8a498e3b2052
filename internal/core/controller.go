package core

import "context"

// Controller defines the remote playback controls a server exposes.
type Controller interface {
	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	TogglePlay(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Seek(ctx context.Context, pos Duration) error

	// Volume control
	Volume(ctx context.Context, volume float64) error
	Mute(ctx context.Context, mute bool) error

	// Playlist manipulation
	Jump(ctx context.Context, position int) error
	SetPlaylist(ctx context.Context, songs []SongID, position int, play bool) error
	PopPlaylist(ctx context.Context, count int) error
}
