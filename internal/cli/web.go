package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/uampc/internal/browser"
)

var (
	webWith  string
	webPrint bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Open the server's web player",
	Long: `Open the web player served by the uamp server in a browser.

The browser is the system default unless --with or web.command names a
command. ${ADDRESS} in its arguments is replaced by the player address,
which is appended otherwise.

Examples:
  uampc web
  uampc web --with 'chromium --app=${ADDRESS}'
  uampc web --print`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&webWith, "with", "", "command to open the player with")
	webCmd.Flags().BoolVar(&webPrint, "print", false, "print the address instead of opening it")
	rootCmd.AddCommand(webCmd)
}

func runWeb(cmd *cobra.Command, args []string) error {
	address := cfg.Server.AppURL()
	if webPrint {
		return printResult(address, map[string]any{"url": address})
	}

	command := webWith
	if command == "" {
		command = cfg.Web.Command
	}
	if err := browser.OpenWith(command, address); err != nil {
		return fmt.Errorf("open web player: %w", err)
	}
	return printResult("Opened "+address, map[string]any{"status": "opened", "url": address})
}
