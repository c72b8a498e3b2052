package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the uampc version. With --verbose the build details are shown
and the configured server is checked.`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Server    string `json:"server"`
	// Reachable is only filled in for verbose runs.
	Reachable *bool `json:"server_reachable,omitempty"`
}

// pingServer reports whether a uamp server answers at the configured
// address.
func pingServer(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RequestTimeout())
	defer cancel()
	return newClient().Ping(ctx)
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := versionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Server:    cfg.Server.URL(),
	}

	var pingErr error
	if Verbose() {
		pingErr = pingServer(cmd.Context())
		reachable := pingErr == nil
		info.Reachable = &reachable
	}

	if JSONOutput() {
		return printJSON(info)
	}

	fmt.Printf("uampc %s\n", info.Version)
	if !Verbose() {
		return nil
	}
	fmt.Printf("  commit:     %s\n", info.Commit)
	fmt.Printf("  built:      %s\n", info.BuildDate)
	fmt.Printf("  go version: %s\n", info.GoVersion)
	fmt.Printf("  platform:   %s\n", info.Platform)
	if pingErr != nil {
		fmt.Printf("  server:     %s %s (%v)\n", StatusIcon(false), info.Server, pingErr)
	} else {
		fmt.Printf("  server:     %s %s\n", StatusIcon(true), info.Server)
	}
	return nil
}
