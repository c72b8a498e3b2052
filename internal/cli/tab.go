package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/tessro/uampc/internal/errors"
	"github.com/tessro/uampc/internal/uamp"
	"github.com/tessro/uampc/internal/wizard"
)

var tabCmd = &cobra.Command{
	Use:   "tab [tab]",
	Short: "Resume a suspended playlist of the stack",
	Long: `Raise a playlist of the stack to the top so it plays.

Without an argument, shows a picker of the playlists when run in a terminal.
Tab numbers match 'uampc queue --tab'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTab,
}

func init() {
	rootCmd.AddCommand(tabCmd)
}

func runTab(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var tab int
	if len(args) > 0 {
		var err error
		if tab, err = strconv.Atoi(args[0]); err != nil || tab < 0 {
			return fmt.Errorf("invalid tab: %s", args[0])
		}
	} else {
		s, err := loadSession(ctx)
		if err != nil {
			return err
		}
		tabs := wizard.TabItems(s)
		if !wizard.NeedsTab(args, tabs) {
			return printResult("Only the playing playlist is on the stack", map[string]any{"status": "unchanged"})
		}

		interactive := wizard.NewInteractive()
		if !interactive.CanInteract() {
			return errs.ErrNotInteractive
		}
		interactive.SetTabs(tabs)
		picked, err := interactive.PromptTab()
		if err != nil {
			return err
		}
		if picked == nil {
			return nil
		}
		tab = picked.Index
	}

	if tab == 0 {
		return printResult("Playlist is already playing", map[string]any{"status": "unchanged", "tab": 0})
	}
	if err := send(ctx, uamp.RaiseTab(tab)); err != nil {
		return err
	}
	return printResult(fmt.Sprintf("▶ Resumed playlist -%d", tab), map[string]any{"status": "raised", "tab": tab})
}
