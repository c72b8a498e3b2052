// Package browser opens addresses in the user's web browser.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// AddressVar is replaced by the address in the arguments of a custom command.
const AddressVar = "${ADDRESS}"

// ErrUnsupported is returned when no browser launcher is known for the
// platform.
var ErrUnsupported = errors.New("opening a browser is not supported on this platform")

// OpenWith opens url with command, or the default browser when command is
// empty. The process is started but not waited for.
func OpenWith(command, url string) error {
	cmd, err := Command(command, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	return cmd.Process.Release()
}

// Command builds the command opening url. A custom command is split on
// whitespace; when none of its arguments mention AddressVar the url is
// appended.
func Command(command, url string) (*exec.Cmd, error) {
	if command == "" {
		return defaultCommand(url)
	}

	fields := strings.Fields(command)
	args := make([]string, 0, len(fields))
	substituted := false
	for _, arg := range fields[1:] {
		if strings.Contains(arg, AddressVar) {
			arg = strings.ReplaceAll(arg, AddressVar, url)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted {
		args = append(args, url)
	}
	return exec.Command(fields[0], args...), nil
}

func defaultCommand(url string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, runtime.GOOS)
}
