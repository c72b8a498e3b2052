package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow playback changes in real-time",
	Long: `Watch the server's event stream and print playback changes as they happen.

Events tracked:
  - Song changes, completions and skips
  - Pause, resume and stop
  - Volume and mute changes
  - Playlists pushed, popped or replaced
  - Connection loss and server restarts

Format templates use Go template syntax with the fields .Type, .Emoji,
.Timestamp, .Time, .Title, .Artist, .Album, .Length, .Volume, .Songs, .Tabs
and .Detail, for example:
  uampc tail --format '{{.Time}} {{.Artist}} - {{.Title}}'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	emoji := cfg.Tail.Emoji && !tailNoEmoji
	timestamp := cfg.Tail.Timestamp || tailTimestamp
	formatter := tail.NewFormatter(
		tail.WithEmoji(emoji),
		tail.WithTimestamp(timestamp),
		tail.WithTemplate(tailFormat),
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	watcher := tail.NewWatcher(newStream(), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	// Print events until the watcher closes the channel.
	for event := range watcher.Events() {
		fmt.Println(formatter.Format(event))
	}

	err := <-errCh
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
