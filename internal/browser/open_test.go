package browser

import (
	"runtime"
	"testing"

	"github.com/go-test/deep"
)

func TestCommandDefault(t *testing.T) {
	cmd, err := Command("", "http://127.0.0.1:8267/app")
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
	default:
		t.Skipf("Unsupported platform: %s", runtime.GOOS)
	}
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if got := cmd.Args[len(cmd.Args)-1]; got != "http://127.0.0.1:8267/app" {
		t.Errorf("last arg = %q, want the address", got)
	}
}

func TestCommandCustom(t *testing.T) {
	const url = "http://host:1/app"
	tests := []struct {
		command string
		want    []string
	}{
		{"firefox", []string{"firefox", url}},
		{"firefox --new-window", []string{"firefox", "--new-window", url}},
		{"chromium --app=${ADDRESS} --incognito", []string{"chromium", "--app=" + url, "--incognito"}},
		{"  surf   ${ADDRESS} ", []string{"surf", url}},
	}

	for _, tt := range tests {
		cmd, err := Command(tt.command, url)
		if err != nil {
			t.Errorf("Command(%q) error = %v", tt.command, err)
			continue
		}
		if diff := deep.Equal(cmd.Args, tt.want); diff != nil {
			t.Errorf("Command(%q) args: %v", tt.command, diff)
		}
	}
}
