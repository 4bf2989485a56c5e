package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressBar reports advancement through a fixed number of steps.
type ProgressBar interface {
	// Advance marks one step finished, labelled for the operator.
	Advance(label string)
	// Done finalizes the bar. It must be called exactly once.
	Done()
}

// NewProgress creates a progress bar for total steps. Interactive mode
// renders an animated bar; otherwise plain log lines go to w.
func NewProgress(total int, w io.Writer, interactive bool) ProgressBar {
	if !interactive {
		return &headlessBar{total: total, w: w}
	}
	return newInteractiveBar(total)
}

// --- headlessBar ---

// headlessBar prints one line per step, suitable for logs and CI.
type headlessBar struct {
	total int
	count int
	w     io.Writer
}

func (b *headlessBar) Advance(label string) {
	b.count++
	_, _ = fmt.Fprintf(b.w, "[%d/%d] %s\n", b.count, b.total, label)
}

func (b *headlessBar) Done() {}

// --- interactiveBar ---

// advanceMsg advances the animated bar by one step.
type advanceMsg string

// stopMsg finalizes the animated bar.
type stopMsg struct{}

// barModel is the bubbletea Model for the animated progress bar.
type barModel struct {
	bar   progress.Model
	total int
	count int
	label string
}

func (m barModel) Init() tea.Cmd { return nil }

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.count++
		m.label = string(msg)
		return m, m.bar.SetPercent(float64(m.count) / float64(m.total))
	case stopMsg:
		return m, tea.Quit
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m barModel) View() string {
	return fmt.Sprintf("%s %s\n", m.bar.View(), m.label)
}

// interactiveBar drives a bubbletea program from Advance/Done calls.
type interactiveBar struct {
	prog *tea.Program
	done chan struct{}
}

func newInteractiveBar(total int) *interactiveBar {
	model := barModel{bar: progress.New(progress.WithDefaultGradient()), total: total}
	b := &interactiveBar{
		prog: tea.NewProgram(model),
		done: make(chan struct{}),
	}
	go func() {
		defer close(b.done)
		_, _ = b.prog.Run()
	}()
	return b
}

func (b *interactiveBar) Advance(label string) {
	b.prog.Send(advanceMsg(label))
}

func (b *interactiveBar) Done() {
	b.prog.Send(stopMsg{})
	<-b.done
}
