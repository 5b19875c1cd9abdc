package tui

import (
	"fmt"
	"strings"
	"time"

	"go.trai.ch/crxbuild/internal/ui/style"
)

const timeLayout = "15:04:05"

// View renders the UI.
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(m.header() + "\n\n")
	s.WriteString(m.statusLine() + "\n")

	if len(m.History) > 1 {
		s.WriteString("\n")
		for _, rec := range m.History[:len(m.History)-1] {
			s.WriteString("  " + mutedStyle.Render(rec.Finished.Format(timeLayout)) + " " + m.recordLine(rec) + "\n")
		}
	}

	s.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("%d builds, %d failed · q quit · c clear", m.Builds, m.Failures)) + "\n")
	return s.String()
}

func (m *Model) header() string {
	title := titleStyle.Render("CRXBUILD")
	if m.Status == StatusError {
		title = failureTitleStyle.Render("CRXBUILD")
	}
	return title + " watching " + m.Root
}

func (m *Model) statusLine() string {
	switch m.Status {
	case StatusBuilding:
		return buildingStyle.Render(style.Dot + " building")
	case StatusDone, StatusError:
		if rec, ok := m.Last(); ok {
			return m.recordLine(rec)
		}
	}
	return idleStyle.Render(style.Dot + " waiting for changes")
}

func (m *Model) recordLine(rec BuildRecord) string {
	took := mutedStyle.Render("(" + rec.Duration.Round(time.Millisecond).String() + ")")
	switch {
	case rec.Failed():
		return errorStyle.Render(style.Cross+" build failed: "+firstLine(rec.Err)) + " " + took
	case rec.Bundle == "":
		return doneStyle.Render(style.Check) + " no popup declared " + took
	default:
		return doneStyle.Render(style.Check) + " " + rec.Entry + " " + style.Arrow + " " + rec.Bundle + " " + took
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
