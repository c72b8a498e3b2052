package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/core"
	errs "github.com/tessro/uampc/internal/errors"
	"github.com/tessro/uampc/internal/uamp"
	"github.com/tessro/uampc/internal/wizard"
)

var (
	queueLimit int
	queueTab   int
	queueAll   bool
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show and manage the playlist stack",
	Long: `Show the playing playlist, or another playlist of the stack with --tab.

Tab 0 is the playing playlist; tabs 1 and up are the suspended playlists
below it, which resume when the ones above are popped.`,
	RunE: runQueueList,
}

var queueAddCmd = &cobra.Command{
	Use:   "add <query>...",
	Short: "Append the songs matching each query to the playlist",
	Long: `Append the songs matching each filter query to the playing playlist.

Examples:
  uampc queue add 'a:"Joni Mitchell"'
  uampc queue add 'n:blue' 'n:river'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQueueAdd,
}

var queueNextCmd = &cobra.Command{
	Use:   "next <query>",
	Short: "Play the songs matching a query after the current song",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runQueueNext,
}

var queuePushCmd = &cobra.Command{
	Use:   "push <query>",
	Short: "Push a new playlist of the songs matching a query",
	Long: `Push a new playlist on top of the stack and play it. The playing
playlist is suspended and resumes when the new one ends or is popped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQueuePush,
}

var queuePickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a song of the playlist to play",
	RunE:  runQueuePick,
}

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "l", 20, "maximum number of songs to show")
	queueCmd.Flags().IntVarP(&queueTab, "tab", "t", 0, "playlist tab to show")
	queueCmd.Flags().BoolVar(&queueAll, "all", false, "show the whole playlist, including played songs")

	queueCmd.AddCommand(queueAddCmd, queueNextCmd, queuePushCmd, queuePickCmd)
	rootCmd.AddCommand(queueCmd)
}

type queueSong struct {
	Position int    `json:"position"`
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Length   string `json:"length"`
	Current  bool   `json:"current,omitempty"`
}

func runQueueList(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}

	pl, err := s.Player.ByTab(queueTab)
	if err != nil {
		return fmt.Errorf("tab %d: %w", queueTab, err)
	}
	labels := s.Tabs()
	cur, hasCur := pl.Current()

	// Without --all the list starts at the current song.
	start := 0
	if hasCur && !queueAll {
		start = cur
	}
	end := pl.Len()
	if queueLimit > 0 && end-start > queueLimit {
		end = start + queueLimit
	}

	songs := make([]queueSong, 0, end-start)
	for i := start; i < end; i++ {
		song := pl.Songs[i]
		songs = append(songs, queueSong{
			Position: i + 1,
			ID:       int(song.ID),
			Title:    song.Title,
			Artist:   song.Artist(),
			Album:    song.Album,
			Length:   song.Length.Format(),
			Current:  hasCur && i == cur,
		})
	}

	if JSONOutput() {
		return printJSON(map[string]any{
			"tab":       queueTab,
			"label":     labels[queueTab],
			"songs":     songs,
			"total":     pl.Len(),
			"playlists": len(labels),
		})
	}

	if pl.Len() == 0 {
		fmt.Printf("Playlist %s is empty\n", labels[queueTab])
		return nil
	}

	fmt.Printf("Playlist %s (%s", labels[queueTab], Songs(pl.Len()))
	if len(labels) > 1 {
		fmt.Printf(", %d playlists stacked", len(labels))
	}
	fmt.Println("):")

	t := NewTable()
	for _, song := range songs {
		prefix := "  "
		if song.Current {
			prefix = PlaybackIcon(s.Player.State) + " "
			if queueTab != 0 {
				prefix = "▷ "
			}
		}
		t.Row(fmt.Sprintf("%s%d.", prefix, song.Position),
			TruncateString(song.Title, 40),
			TruncateString(song.Artist, 30),
			song.Length)
	}
	t.Flush()

	if rest := pl.Len() - end; rest > 0 {
		fmt.Printf("\n... and %s more\n", Songs(rest))
	}
	return nil
}

func runQueueAdd(cmd *cobra.Command, args []string) error {
	result := &errs.PartialResult[[]string]{}
	for _, query := range args {
		if err := send(cmd.Context(), uamp.Queue(query)); err != nil {
			result.AddError(err)
			continue
		}
		result.Data = append(result.Data, query)
	}

	if JSONOutput() {
		out := map[string]any{"status": "queued", "queries": result.Data}
		if result.HasErrors() {
			out["errors"] = result.ErrorSummary()
		}
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		for _, query := range result.Data {
			fmt.Printf("Queued: %s\n", query)
		}
	}

	if result.HasErrors() {
		return fmt.Errorf("queued %d of %d queries: %w", len(result.Data), len(args), result.Err())
	}
	return nil
}

func runQueueNext(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if err := send(cmd.Context(), uamp.PlayNext(query)); err != nil {
		return err
	}
	return printResult("Playing next: "+query, map[string]any{"status": "queued_next", "query": query})
}

func runQueuePush(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	if err := send(cmd.Context(), uamp.PushQuery(query)); err != nil {
		return err
	}
	return printResult("Pushed playlist: "+query, map[string]any{"status": "pushed", "query": query})
}

func runQueuePick(cmd *cobra.Command, args []string) error {
	if !wizard.IsTerminal() {
		return errs.ErrNotInteractive
	}

	s, err := loadSession(cmd.Context())
	if err != nil {
		return err
	}
	pl := s.Player.Active()
	if pl.Len() == 0 {
		return fmt.Errorf("pick: %w", core.ErrIndexOutOfRange)
	}

	cur, _ := pl.Current()
	options := make([]huh.Option[int], pl.Len())
	for i, song := range pl.Songs {
		label := fmt.Sprintf("%d. %s - %s (%s)", i+1, song.Title, song.Artist(), song.Length.Format())
		options[i] = huh.NewOption(label, i)
	}

	selected := cur
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Play song").
				Description(Songs(pl.Len()) + " in the playing playlist").
				Options(options...).
				Height(15).
				Value(&selected),
		),
	)
	if err := form.RunWithContext(cmd.Context()); err != nil {
		return fmt.Errorf("selection cancelled: %w", err)
	}

	if err := send(cmd.Context(), uamp.Jump(selected).Then(uamp.Play())); err != nil {
		return err
	}
	song := pl.Songs[selected]
	return printResult(fmt.Sprintf("▶ %s - %s", song.Title, song.Artist()), map[string]any{
		"status":   "playing",
		"position": selected + 1,
	})
}
