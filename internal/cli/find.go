package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	errs "github.com/tessro/uampc/internal/errors"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/uamp"
	"github.com/tessro/uampc/internal/wizard"
)

var (
	findType   string
	findLimit  int
	findAction string
)

var findCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search the library",
	Long: `Search the library for songs, albums and artists.

With a query, prints the matches. Without one, opens an interactive search
and plays, queues or pushes the selected result.

Examples:
  uampc find blue                  # List matches
  uampc find blue --type albums    # List matching albums
  uampc find                       # Search interactively and play
  uampc find --action queue        # Search interactively and queue`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&findType, "type", "t", "all", "result kind: all, songs, albums or artists")
	findCmd.Flags().IntVarP(&findLimit, "limit", "l", 20, "maximum number of matches to list")
	findCmd.Flags().StringVar(&findAction, "action", "play", "what to do with the selection: play, queue, next or push")
	rootCmd.AddCommand(findCmd)
}

func parseSearchType(s string) (wizard.SearchType, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return wizard.SearchAll, nil
	case "songs", "song":
		return wizard.SearchSongs, nil
	case "albums", "album":
		return wizard.SearchAlbums, nil
	case "artists", "artist":
		return wizard.SearchArtists, nil
	}
	return 0, fmt.Errorf("unknown result kind %q", s)
}

func kindName(t wizard.SearchType) string {
	switch t {
	case wizard.SearchSongs:
		return "song"
	case wizard.SearchAlbums:
		return "album"
	case wizard.SearchArtists:
		return "artist"
	}
	return ""
}

// resultQuery returns the filter query selecting the songs of r.
func resultQuery(r *wizard.SearchResult) string {
	switch {
	case r.Song != nil:
		return r.Song.Query()
	case r.Album != nil:
		return r.Album.Query()
	case r.Artist != nil:
		return r.Artist.Query()
	}
	return ""
}

// resultIntent returns the intent performing action on r.
func resultIntent(s *session.Session, r *wizard.SearchResult, action string) (uamp.Intent, error) {
	query := resultQuery(r)
	switch action {
	case "play":
		switch {
		case r.Album != nil:
			return s.PlayAlbum(r.Album, 0), nil
		case r.Artist != nil:
			return s.PushArtist(r.Artist), nil
		}
		return uamp.SetQuery(query, "").Then(uamp.Play()), nil
	case "queue":
		return uamp.Queue(query), nil
	case "next":
		return uamp.PlayNext(query), nil
	case "push":
		return uamp.PushQuery(query), nil
	}
	return uamp.Intent{}, fmt.Errorf("unknown action %q", action)
}

func runFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	searchType, err := parseSearchType(findType)
	if err != nil {
		return err
	}
	switch findAction {
	case "play", "queue", "next", "push":
	default:
		return fmt.Errorf("unknown action %q", findAction)
	}

	s, err := loadSession(ctx)
	if err != nil {
		return err
	}
	search := wizard.LibrarySearch(s.Library)

	if !wizard.NeedsQuery(args) {
		results, err := search(strings.Join(args, " "), searchType)
		if err != nil {
			return err
		}
		return printResults(results)
	}

	interactive := wizard.NewInteractive()
	if !interactive.CanInteract() {
		return errs.WithSuggestion(errs.ErrNotInteractive, "Pass a query to list matches, for example 'uampc find blue'")
	}
	interactive.SetSearchFunc(search, time.Duration(cfg.TUI.SearchDebounce)*time.Millisecond)
	picked, err := interactive.PromptSearch()
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	intent, err := resultIntent(s, picked, findAction)
	if err != nil {
		return err
	}
	if err := send(ctx, intent); err != nil {
		return err
	}
	return printResult(fmt.Sprintf("%s %s: %s", findVerb(findAction), kindName(picked.Type), picked.Title), map[string]any{
		"status": findAction,
		"kind":   kindName(picked.Type),
		"title":  picked.Title,
		"query":  resultQuery(picked),
	})
}

func findVerb(action string) string {
	switch action {
	case "queue":
		return "Queued"
	case "next":
		return "Playing next"
	case "push":
		return "Pushed"
	}
	return "▶ Playing"
}

func printResults(results []wizard.SearchResult) error {
	if findLimit > 0 && len(results) > findLimit {
		results = results[:findLimit]
	}

	if JSONOutput() {
		out := make([]map[string]any, len(results))
		for i, r := range results {
			out[i] = map[string]any{
				"kind":     kindName(r.Type),
				"title":    r.Title,
				"subtitle": r.Subtitle,
				"query":    resultQuery(&r),
			}
		}
		return printJSON(out)
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}
	t := NewTable("KIND", "TITLE", "DETAILS")
	for _, r := range results {
		t.Row(kindName(r.Type), TruncateString(r.Title, 50), TruncateString(r.Subtitle, 50))
	}
	t.Flush()
	return nil
}
