package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Progress drives the in-place counter line for a batch run.
type Progress struct {
	out     io.Writer
	program *tea.Program
	updates chan ProgressUpdate
	done    chan struct{}
}

func NewProgress(out io.Writer) *Progress {
	return &Progress{out: out}
}

// Start launches the renderer. Calling Start on a running Progress is a no-op.
// Interrupts are left to the default process handling so Ctrl+C ends the run.
func (p *Progress) Start() {
	if p == nil || p.updates != nil {
		return
	}

	p.updates = make(chan ProgressUpdate, 64)
	p.done = make(chan struct{})
	p.program = tea.NewProgram(NewModel(p.updates),
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	done := p.done
	program := p.program
	go func() {
		_, _ = program.Run()
		close(done)
	}()
}

func (p *Progress) Step(current, total int, name string) {
	p.send(ProgressUpdate{Current: current, Total: total, Name: name})
}

// Println prints line above the counter. It reports false when the renderer
// is not running and the caller must print the line itself.
func (p *Progress) Println(line string) bool {
	return p.send(ProgressUpdate{Line: line})
}

// send never blocks once the renderer has exited.
func (p *Progress) send(update ProgressUpdate) bool {
	if p == nil || p.updates == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.updates <- update:
		return true
	case <-p.done:
		return false
	}
}

// Stop clears the counter line and waits for the renderer to exit.
func (p *Progress) Stop() {
	if p == nil || p.updates == nil {
		return
	}
	close(p.updates)
	<-p.done
	p.updates = nil
	p.done = nil
	p.program = nil
}
