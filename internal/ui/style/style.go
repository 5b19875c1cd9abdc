// Package style holds the CLI's colours and icons.
package style

import "github.com/charmbracelet/lipgloss"

// Colours.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	White  = lipgloss.Color("#FFFFFF")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Arrow   = "→"
)

// Accent renders s in the brand colour for summaries printed to stdout.
func Accent(s string) string {
	return lipgloss.NewStyle().Foreground(Iris).Render(s)
}
