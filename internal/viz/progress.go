package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/gravsim/internal/galaxy"
)

// StepMsg reports a completed engine step (zero based).
type StepMsg struct {
	Step int
}

// DoneMsg ends the progress view.
type DoneMsg struct {
	Err     error
	Elapsed time.Duration
}

const barWidth = 40

// Progress is a bubbletea model showing how far a run has advanced.
type Progress struct {
	title    string
	total    int
	done     int
	start    time.Time
	finished bool
	detached bool
	err      error
	elapsed  time.Duration
}

func NewProgress(title string, total int) *Progress {
	return &Progress{title: title, total: total, start: time.Now()}
}

func (p *Progress) Init() tea.Cmd { return nil }

func (p *Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StepMsg:
		p.done = msg.Step + 1
	case DoneMsg:
		p.finished = true
		p.err = msg.Err
		p.elapsed = msg.Elapsed
		return p, tea.Quit
	case tea.KeyMsg:
		// a run cannot be cancelled; leaving only stops the display
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			p.detached = true
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p *Progress) View() string {
	var b strings.Builder

	b.WriteString(Title.Render(p.title))
	b.WriteString("\n\n")

	frac := 0.0
	if p.total > 0 {
		frac = float64(p.done) / float64(p.total)
	}
	b.WriteString(ProgressBar(frac, barWidth))
	b.WriteString(fmt.Sprintf("  %d/%d steps\n", p.done, p.total))

	switch {
	case p.err != nil:
		b.WriteString(StatusFailed.Render("failed: " + p.err.Error()))
	case p.finished:
		b.WriteString(StatusDone.Render("done in " + p.elapsed.Round(time.Millisecond).String()))
	default:
		b.WriteString(StatusRunning.Render("running "+time.Since(p.start).Round(time.Second).String()) +
			Subtle.Render("  (q detaches the view)"))
	}
	b.WriteString("\n")
	return b.String()
}

func (p *Progress) Steps() int { return p.done }

// Detached reports whether the user left the view before the run ended.
func (p *Progress) Detached() bool { return p.detached }

// Sender is the part of *tea.Program the tracker needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Tracker forwards engine steps to a running program. It satisfies
// sim.Observer.
type Tracker struct {
	prog Sender
}

func NewTracker(prog Sender) *Tracker {
	return &Tracker{prog: prog}
}

func (t *Tracker) OnStep(step int, g *galaxy.Galaxy) {
	t.prog.Send(StepMsg{Step: step})
}
