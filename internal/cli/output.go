package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/tessro/uampc/internal/core"
)

// Table provides a simple table formatter.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return NewTableWriter(os.Stdout, headers...)
}

// NewTableWriter creates a table writing to a specific writer.
func NewTableWriter(out io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)}
	if len(headers) > 0 {
		t.Row(headers...)
	}
	return t
}

// Row adds a row to the table.
func (t *Table) Row(values ...string) {
	_, _ = t.w.Write([]byte(strings.Join(values, "\t") + "\n"))
}

// Flush writes the table output.
func (t *Table) Flush() {
	_ = t.w.Flush()
}

// printJSON writes v to stdout as one JSON document.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult prints a short status: the message for humans, the fields
// for --json.
func printResult(message string, fields map[string]any) error {
	if JSONOutput() {
		return printJSON(fields)
	}
	fmt.Println(message)
	return nil
}

// StatusIcon returns an icon for the given boolean status.
func StatusIcon(active bool) string {
	if active {
		return "●"
	}
	return "○"
}

// PlaybackIcon returns the icon for a playback state.
func PlaybackIcon(state core.Playback) string {
	switch state {
	case core.Playing:
		return "▶"
	case core.Paused:
		return "⏸"
	}
	return "⏹"
}

// TruncateString truncates a string to maxLen runes, adding "..." if truncated.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatProgress formats a progress bar for a percentage in 0..100.
func FormatProgress(percent float64, width int) string {
	filled := max(0, min(int(percent/100*float64(width)), width))
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// Songs formats a song count, "1 song" or "1,234 songs".
func Songs(n int) string {
	if n == 1 {
		return "1 song"
	}
	return humanize.Comma(int64(n)) + " songs"
}
