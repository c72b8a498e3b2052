package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/uamp"
)

var (
	playSort   string
	volumeUp   bool
	volumeDown bool
	popAll     bool
)

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Start or resume playback",
	Long: `Resume playback, or replace the playlist with the songs matching a
filter query and play them.

Examples:
  uampc play                         # Resume playback
  uampc play 'a:"Joni Mitchell"'     # Play everything by an artist
  uampc play blue --sort track       # Play matching songs in track order`,
	RunE: runPlay,
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	RunE:  runControl("pause", core.Controller.Pause, "⏸ Paused", "paused"),
}

var toggleCmd = &cobra.Command{
	Use:     "toggle",
	Aliases: []string{"pp"},
	Short:   "Toggle between playing and paused",
	RunE:    runControl("toggle", core.Controller.TogglePlay, "⏯ Toggled playback", "toggled"),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	RunE:  runIntent(uamp.Stop(), "⏹ Stopped", "stopped"),
}

var nextCmd = &cobra.Command{
	Use:   "next [count]",
	Short: "Skip to the next song",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runNext,
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go back to the previous song",
	RunE:  runControl("prev", core.Controller.Prev, "⏮ Previous song", "previous"),
}

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the playing song",
	Long: `Seek to an absolute position, a relative offset or a percentage.

Examples:
  uampc seek 1:30    # Seek to 1:30
  uampc seek 90      # Seek to 1:30
  uampc seek +10     # Ten seconds ahead
  uampc seek -- -10  # Ten seconds back
  uampc seek 50%     # Halfway through`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Show, set or adjust the volume",
	Long: `Show the volume, set it (0-100) or step it up or down.

Examples:
  uampc volume        # Show the volume
  uampc volume 50     # Set volume to 50%
  uampc volume --up   # One step up`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVolume,
}

var muteCmd = &cobra.Command{
	Use:   "mute [on|off]",
	Short: "Toggle or set mute",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMute,
}

var jumpCmd = &cobra.Command{
	Use:   "jump <position>",
	Short: "Play the song at a position of the playlist",
	Long:  `Play the song at a 1-based position of the playing playlist, as listed by 'uampc queue'.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runJump,
}

var popCmd = &cobra.Command{
	Use:   "pop [count]",
	Short: "Pop playlists off the stack",
	Long: `Drop the playing playlist and resume the one below it.

Examples:
  uampc pop         # Pop one playlist
  uampc pop 2       # Pop two playlists
  uampc pop --all   # Pop back to the bottom playlist`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPop,
}

func init() {
	playCmd.Flags().StringVarP(&playSort, "sort", "s", "", "sort the matched songs by a field")
	volumeCmd.Flags().BoolVar(&volumeUp, "up", false, "raise the volume one step")
	volumeCmd.Flags().BoolVar(&volumeDown, "down", false, "lower the volume one step")
	volumeCmd.MarkFlagsMutuallyExclusive("up", "down")
	popCmd.Flags().BoolVar(&popAll, "all", false, "pop all playlists but the bottom one")

	rootCmd.AddCommand(playCmd, pauseCmd, toggleCmd, stopCmd, nextCmd, prevCmd,
		seekCmd, volumeCmd, muteCmd, jumpCmd, popCmd)
}

// runIntent returns a command that sends intent and reports status.
func runIntent(intent uamp.Intent, message, status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := send(cmd.Context(), intent); err != nil {
			return err
		}
		return printResult(message, map[string]any{"status": status})
	}
}

// control calls fn with the configured server's controller.
func control(ctx context.Context, name string, fn func(core.Controller, context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout())
	defer cancel()
	if err := fn(newClient(), ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// runControl returns a command that calls fn and reports status.
func runControl(name string, fn func(core.Controller, context.Context) error, message, status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := control(cmd.Context(), name, fn); err != nil {
			return err
		}
		return printResult(message, map[string]any{"status": status})
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runControl("play", core.Controller.Play, "▶ Playing", "playing")(cmd, args)
	}

	query := strings.Join(args, " ")
	if err := send(cmd.Context(), uamp.SetQuery(query, playSort).Then(uamp.Play())); err != nil {
		return err
	}
	return printResult(fmt.Sprintf("▶ Playing %q", query), map[string]any{
		"status": "playing",
		"query":  query,
	})
}

func runNext(cmd *cobra.Command, args []string) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}
	if err := send(cmd.Context(), uamp.Next(n)); err != nil {
		return err
	}
	message := "⏭ Skipped to next song"
	if n > 1 {
		message = fmt.Sprintf("⏭ Skipped %d songs", n)
	}
	return printResult(message, map[string]any{"status": "skipped", "count": n})
}

// parseClock parses "90", "1:30" or "1:02:03" into a duration.
func parseClock(s string) (core.Duration, error) {
	var secs float64
	for _, part := range strings.Split(s, ":") {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return core.Duration{}, fmt.Errorf("invalid position: %s", s)
		}
		secs = secs*60 + v
	}
	whole, frac := math.Modf(secs)
	return core.NewDuration(int64(whole), int64(frac*1e9)), nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	arg := args[0]
	ctx := cmd.Context()

	var intent uamp.Intent
	switch {
	case strings.HasSuffix(arg, "%"):
		percent, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
		if err != nil {
			return fmt.Errorf("invalid percentage: %s", arg)
		}
		s, err := loadSession(ctx)
		if err != nil {
			return err
		}
		if intent, err = s.SeekPercent(percent / 100); err != nil {
			return err
		}

	case strings.HasPrefix(arg, "+"), strings.HasPrefix(arg, "-"):
		delta, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid offset: %s", arg)
		}
		s, err := loadSession(ctx)
		if err != nil {
			return err
		}
		cur, total, _ := s.Progress()
		if total.IsZero() {
			return fmt.Errorf("seek: playing song has no length")
		}
		if intent, err = s.SeekPercent((cur.Seconds() + delta) / total.Seconds()); err != nil {
			return err
		}

	default:
		pos, err := parseClock(arg)
		if err != nil {
			return err
		}
		intent = uamp.Seek(pos)
	}

	if err := send(ctx, intent); err != nil {
		return err
	}
	position := intent.Params[0].Value
	return printResult("⏩ Seeked to "+position, map[string]any{"status": "seeked", "position": position})
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	switch {
	case volumeUp:
		return runIntent(uamp.VolumeUp(), "🔊 Volume up", "volume_up")(cmd, args)
	case volumeDown:
		return runIntent(uamp.VolumeDown(), "🔉 Volume down", "volume_down")(cmd, args)
	case len(args) == 0:
		s, err := loadSession(ctx)
		if err != nil {
			return err
		}
		volume := int(math.Round(s.Player.Volume * 100))
		message := fmt.Sprintf("🔊 Volume: %d%%", volume)
		if s.Player.Mute {
			message += " (muted)"
		}
		return printResult(message, map[string]any{"volume": volume, "mute": s.Player.Mute})
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid volume level: %s", args[0])
	}
	if level < 0 || level > 100 {
		return fmt.Errorf("volume must be between 0 and 100")
	}
	err = control(ctx, "volume", func(c core.Controller, ctx context.Context) error {
		return c.Volume(ctx, float64(level)/100)
	})
	if err != nil {
		return err
	}
	return printResult(fmt.Sprintf("🔊 Volume: %d%%", level), map[string]any{"volume": level})
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(s)
}

func runMute(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runIntent(uamp.ToggleMute(), "🔇 Toggled mute", "toggled")(cmd, args)
	}
	mute, err := parseSwitch(args[0])
	if err != nil {
		return fmt.Errorf("invalid mute value %q: use on or off", args[0])
	}
	err = control(cmd.Context(), "mute", func(c core.Controller, ctx context.Context) error {
		return c.Mute(ctx, mute)
	})
	if err != nil {
		return err
	}
	message := "🔊 Unmuted"
	if mute {
		message = "🔇 Muted"
	}
	return printResult(message, map[string]any{"mute": mute})
}

func runJump(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil || pos < 1 {
		return fmt.Errorf("invalid position: %s", args[0])
	}
	if err := send(cmd.Context(), uamp.Jump(pos-1).Then(uamp.Play())); err != nil {
		return err
	}
	return printResult(fmt.Sprintf("▶ Jumped to %d", pos), map[string]any{"status": "playing", "position": pos})
}

func runPop(cmd *cobra.Command, args []string) error {
	count := 1
	switch {
	case popAll:
		count = 0
	case len(args) > 0:
		var err error
		if count, err = strconv.Atoi(args[0]); err != nil || count < 1 {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}
	err := control(cmd.Context(), "pop", func(c core.Controller, ctx context.Context) error {
		return c.PopPlaylist(ctx, count)
	})
	if err != nil {
		return err
	}
	message := "⏏ Popped playlist"
	switch {
	case count == 0:
		message = "⏏ Popped to the bottom playlist"
	case count > 1:
		message = fmt.Sprintf("⏏ Popped %d playlists", count)
	}
	return printResult(message, map[string]any{"status": "popped", "count": count})
}
