package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Summary describes a finished run.
type Summary struct {
	Program string
	Bodies  int
	Steps   int
	Workers int
	Kernel  string
	Elapsed time.Duration
	Metrics map[string]float64
}

// Interactions returns the number of body pairs evaluated per second.
// Every step evaluates all n² ordered pairs, self pairs included.
func (s Summary) Interactions() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	pairs := float64(s.Bodies) * float64(s.Bodies) * float64(s.Steps)
	return pairs / s.Elapsed.Seconds()
}

func RenderSummary(s Summary) string {
	rows := []string{
		Title.Render(s.Program),
		"",
		row("bodies", humanize.Comma(int64(s.Bodies))),
		row("steps", humanize.Comma(int64(s.Steps))),
		row("workers", fmt.Sprintf("%d", s.Workers)),
		row("kernel", s.Kernel),
		row("elapsed", s.Elapsed.Round(time.Millisecond).String()),
		row("pairs/s", humanize.SIWithDigits(s.Interactions(), 2, "")),
	}

	if len(s.Metrics) > 0 {
		names := make([]string, 0, len(s.Metrics))
		for name := range s.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)

		rows = append(rows, "")
		for _, name := range names {
			rows = append(rows, row(name, fmt.Sprintf("%.6g", s.Metrics[name])))
		}
	}

	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RecordLine formats the one-line summary printed after a run:
// "program bodies elapsedMillis".
func RecordLine(program string, bodies int, elapsed time.Duration) string {
	return strings.Join([]string{program, fmt.Sprint(bodies), fmt.Sprint(elapsed.Milliseconds())}, " ")
}
