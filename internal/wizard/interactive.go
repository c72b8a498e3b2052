package wizard

import (
	"os"
	"time"

	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled    bool
	searchFunc SearchFunc
	debounce   time.Duration
	tabs       []TabItem
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// SetSearchFunc sets the search function for the search wizard.
func (i *Interactive) SetSearchFunc(fn SearchFunc, debounce time.Duration) {
	i.searchFunc = fn
	i.debounce = debounce
}

// SetTabs sets the playlists offered by the tab picker.
func (i *Interactive) SetTabs(tabs []TabItem) {
	i.tabs = tabs
}

// IsTerminal returns true if stdout is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptSearch launches the search wizard if interactive mode is available.
// Returns the selected result, or nil if cancelled or not interactive.
func (i *Interactive) PromptSearch() (*SearchResult, error) {
	if !i.CanInteract() || i.searchFunc == nil {
		return nil, nil
	}
	return RunSearch(i.searchFunc, i.debounce)
}

// PromptTab launches the tab picker if interactive mode is available.
// Returns the selected tab, or nil if cancelled or not interactive.
func (i *Interactive) PromptTab() (*TabItem, error) {
	if !i.CanInteract() || len(i.tabs) == 0 {
		return nil, nil
	}
	return RunTabPicker(i.tabs)
}

// NeedsQuery returns true if a query argument is required but missing.
func NeedsQuery(args []string) bool {
	return len(args) == 0
}

// NeedsTab returns true if there is a choice of playlist to make. A stack
// holding only the playing playlist leaves nothing to pick.
func NeedsTab(args []string, tabs []TabItem) bool {
	return len(args) == 0 && len(tabs) > 1
}
