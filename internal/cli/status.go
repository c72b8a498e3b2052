package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current playback status",
	Long:  `Shows the playing song, its progress, the volume and the playlist stack.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusSong struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Year   string `json:"year,omitempty"`
	Length string `json:"length"`
}

type statusResult struct {
	Server   string      `json:"server"`
	State    string      `json:"state"`
	Song     *statusSong `json:"song,omitempty"`
	Position string      `json:"position,omitempty"`
	Progress float64     `json:"progress_percent"`
	Volume   int         `json:"volume"`
	Mute     bool        `json:"mute"`
	// Index is the 1-based position of the song in the playlist.
	Index     int `json:"index,omitempty"`
	Playlist  int `json:"playlist_songs"`
	Playlists int `json:"playlists"`
	Library   int `json:"library_songs"`
}

func newStatusResult(s *session.Session) statusResult {
	player := s.Player
	active := player.Active()
	res := statusResult{
		Server:    cfg.Server.URL(),
		State:     player.State.String(),
		Volume:    int(math.Round(player.Volume * 100)),
		Mute:      player.Mute,
		Playlist:  active.Len(),
		Playlists: player.Tabs(),
		Library:   len(s.Library.AllSongs()),
	}
	if i, ok := active.Current(); ok {
		res.Index = i + 1
	}
	if song := player.Playing(); song != nil {
		res.Song = &statusSong{
			ID:     int(song.ID),
			Title:  song.Title,
			Artist: song.Artist(),
			Album:  song.Album,
			Year:   song.YearString(),
			Length: song.Length.Format(),
		}
		cur, _, percent := s.Progress()
		res.Position = cur.Format()
		res.Progress = math.Round(percent*10) / 10
	}
	return res
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}

	res := newStatusResult(s)
	if JSONOutput() {
		return printJSON(res)
	}
	printStatus(s, res)
	return nil
}

func printStatus(s *session.Session, res statusResult) {
	if res.Song == nil {
		fmt.Printf("%s Nothing playing\n", PlaybackIcon(s.Player.State))
	} else {
		cur, total, percent := s.Progress()
		position := cur.Format()
		if cur.IsZero() {
			position = "0:00"
		}

		fmt.Printf("%s %s\n", PlaybackIcon(s.Player.State), res.Song.Title)
		fmt.Printf("    %s — %s", res.Song.Artist, res.Song.Album)
		if res.Song.Year != "" {
			fmt.Printf(" (%s)", res.Song.Year)
		}
		fmt.Println()
		fmt.Printf("    %s %s / %s\n", FormatProgress(percent, 30), position, total.Format())
	}

	volume := fmt.Sprintf("🔊 %d%%", res.Volume)
	if res.Mute {
		volume = "🔇 muted"
	}
	fmt.Printf("    %s", volume)
	if res.Index > 0 {
		fmt.Printf("  ·  song %d of %s", res.Index, Songs(res.Playlist))
	} else {
		fmt.Printf("  ·  %s queued", Songs(res.Playlist))
	}
	if res.Playlists > 1 {
		fmt.Printf("  ·  %d playlists stacked", res.Playlists)
	}
	fmt.Println()

	if Verbose() {
		fmt.Printf("    %s in library on %s\n", Songs(res.Library), res.Server)
	}
}
