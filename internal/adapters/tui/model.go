// Package tui provides the interactive status view of a watch session.
package tui

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/crxbuild/internal/ui/output"
)

// DefaultHistorySize is the number of finished builds the view keeps.
const DefaultHistorySize = 5

// Status represents the state of the watch session.
type Status string

const (
	// StatusWaiting indicates no build has started yet.
	StatusWaiting Status = "Waiting"
	// StatusBuilding indicates a build is in progress.
	StatusBuilding Status = "Building"
	// StatusDone indicates the last build succeeded.
	StatusDone Status = "Done"
	// StatusError indicates the last build failed.
	StatusError Status = "Error"
)

// BuildRecord is one finished build shown in the history.
type BuildRecord struct {
	Entry    string
	Bundle   string
	Err      string
	Duration time.Duration
	Finished time.Time
}

// Failed reports whether the build failed.
func (r BuildRecord) Failed() bool {
	return r.Err != ""
}

// Model represents the watch view state.
type Model struct {
	Root        string
	Status      Status
	Started     time.Time
	History     []BuildRecord
	HistorySize int
	Builds      int
	Failures    int
	Width       int
	Quitting    bool
}

// NewModel creates a model for a session watching root. Colours follow the
// profile of w, which defaults to os.Stdout.
func NewModel(root string, w io.Writer) *Model {
	if w == nil {
		w = os.Stdout
	}
	lipgloss.SetColorProfile(output.New(w).Profile)

	return &Model{
		Root:        root,
		Status:      StatusWaiting,
		HistorySize: DefaultHistorySize,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quitting = true
			return m, tea.Quit
		case "c":
			m.History = nil
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case MsgWatchStart:
		m.Root = msg.Root

	case MsgBuildStart:
		m.Status = StatusBuilding
		m.Started = msg.Time

	case MsgBuildFinish:
		m.record(msg)

	case MsgLog:
		return m, tea.Println(msg.Line)
	}

	return m, nil
}

func (m *Model) record(msg MsgBuildFinish) {
	m.Builds++
	rec := BuildRecord{
		Duration: msg.Report.Duration,
		Finished: msg.Time,
	}

	switch {
	case msg.Report.Err != nil:
		m.Status = StatusError
		m.Failures++
		rec.Err = msg.Report.Err.Error()
	case msg.Report.Result != nil:
		m.Status = StatusDone
		rec.Entry = msg.Report.Result.Entry
		rec.Bundle = msg.Report.Result.Bundle
	default:
		m.Status = StatusDone
	}

	m.History = append(m.History, rec)
	if size := m.HistorySize; size > 0 && len(m.History) > size {
		m.History = m.History[len(m.History)-size:]
	}
}

// Last returns the most recent finished build.
func (m *Model) Last() (BuildRecord, bool) {
	if len(m.History) == 0 {
		return BuildRecord{}, false
	}
	return m.History[len(m.History)-1], true
}
