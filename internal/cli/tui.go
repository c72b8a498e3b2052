package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/tui"
)

var (
	tuiTheme        string
	tuiNoAutoscroll bool
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive player",
	Long: `Launch the interactive terminal player.

Screens:
  • Library  - every song, sortable and searchable
  • Albums   - albums, opening to their songs
  • Artists  - artists, opening to their songs
  • Playlist - the playlist stack, one tab per playlist

The bar at the bottom shows the playing song and the playing playlist.

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  /            Search
  Tab          Next screen
  Enter        Play / open
  Space        Play/Pause
  n / p        Next / previous song
  +/-          Volume up/down
  [ / ]        Previous / next playlist tab`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme: auto, dark or light")
	tuiCmd.Flags().BoolVar(&tuiNoAutoscroll, "no-autoscroll", false, "do not keep the bar on the playing song")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts := tui.OptionsFromConfig(cfg)
	if tuiTheme != "" {
		opts.Theme = tuiTheme
	}
	if tuiNoAutoscroll {
		opts.BarAutoscroll = false
	}
	return tui.Run(cmd.Context(), newStream(), newClient(), opts, logger)
}
