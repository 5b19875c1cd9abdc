package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/crxbuild/internal/core/domain"
)

// Renderer runs the watch view as a Bubble Tea program and observes builds for it.
type Renderer struct {
	program *tea.Program
	model   *Model
	done    chan struct{}
	err     error
	now     func() time.Time
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		done:    make(chan struct{}),
		now:     time.Now,
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		defer close(r.done)
		_, r.err = r.program.Run()
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	<-r.done
	return r.err
}

// Done is closed once the TUI has terminated, including when the user quit it.
func (r *Renderer) Done() <-chan struct{} {
	return r.done
}

// WatchStarted forwards the watched root to the TUI.
func (r *Renderer) WatchStarted(root string) {
	r.program.Send(MsgWatchStart{Root: root})
}

// BuildStarted forwards the start of a build to the TUI.
func (r *Renderer) BuildStarted() {
	r.program.Send(MsgBuildStart{Time: r.now()})
}

// BuildFinished forwards a finished build to the TUI.
func (r *Renderer) BuildFinished(report domain.BuildReport) {
	r.program.Send(MsgBuildFinish{Report: report, Time: r.now()})
}

// LogWriter returns a writer that prints complete lines above the view.
func (r *Renderer) LogWriter() io.Writer {
	return newLineWriter(func(line string) {
		r.program.Send(MsgLog{Line: line})
	})
}

// Program returns the underlying tea.Program for testing.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
