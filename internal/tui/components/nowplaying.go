package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/uampc/internal/core"
	"github.com/tessro/uampc/internal/session"
	"github.com/tessro/uampc/internal/tui/styles"
)

// NowPlaying displays the playing song and the bar playlist.
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// HeaderLines is the number of lines above the bar playlist.
const HeaderLines = 3

// Render renders the bar at the given outer size.
func (n *NowPlaying) Render(s *session.Session, width, height int, focused bool) string {
	inner := width - 4
	content := n.renderSong(s, inner)
	content = append(content, Lines(s.Bar, inner, focused, func(song *core.Song) string {
		return BarLine(song, inner)
	})...)
	return Box("Now Playing", content, width, height, focused)
}

func (n *NowPlaying) renderSong(s *session.Session, width int) []string {
	player := s.Player
	icon := styles.StatusIcon(player.State == core.Playing, player.State == core.Paused)
	volume := n.renderVolume(player)

	song := player.Playing()
	if song == nil {
		return []string{
			icon + " " + styles.Muted.Render("Nothing playing") + "  " + volume,
			"",
			"",
		}
	}

	titleWidth := max(0, width-lipgloss.Width(volume)-4)
	title := styles.Title.Render(styles.Truncate(song.Title, titleWidth))
	gap := max(1, width-2-lipgloss.Width(title)-lipgloss.Width(volume))
	first := icon + " " + title + fmt.Sprintf("%*s", gap, "") + volume

	second := "  " + styles.Subtitle.Render(styles.Truncate(song.Artist(), width/2)) +
		styles.Dim.Render(" · "+styles.Truncate(song.Album, width/2-3))

	cur, total, percent := s.Progress()
	times := cur.Format()
	if cur.IsZero() {
		times = "0:00"
	}
	end := total.Format()
	barWidth := max(10, width-len(times)-len(end)-2)
	third := fmt.Sprintf("%s %s %s", times, styles.ProgressBar(percent, barWidth), end)

	return []string{first, second, third}
}

func (n *NowPlaying) renderVolume(p *core.Player) string {
	if p.Mute {
		return styles.Dim.Render("🔇 muted")
	}
	return styles.Muted.Render(fmt.Sprintf("🔊 %d%%", int(math.Round(p.Volume*100))))
}
