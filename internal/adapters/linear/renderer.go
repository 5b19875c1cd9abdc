// Package linear prints command results one line at a time, for pipes, CI and JSON consumers.
package linear

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/crxbuild/internal/core/domain"
	"go.trai.ch/crxbuild/internal/ui/output"
	"go.trai.ch/crxbuild/internal/ui/style"
)

// Renderer writes results to w, either styled or as one JSON document per line.
// It observes watch sessions as well as printing the results of single commands.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
	json   bool
}

// NewRenderer creates a Renderer writing to w, which defaults to os.Stdout.
func NewRenderer(w io.Writer, jsonOutput bool) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{
		w:      w,
		output: output.New(w),
		json:   jsonOutput,
	}
}

// Built prints the result of a build. A nil result means the manifest declares no popup.
func (r *Renderer) Built(result *domain.ResolvedModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builtLocked(result, 0)
}

// Modules prints the modules of a popup, one per line.
func (r *Renderer) Modules(modules []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.json {
		if modules == nil {
			modules = []string{}
		}
		return r.encodeLocked(modules)
	}
	for _, m := range modules {
		if _, err := fmt.Fprintln(r.w, m); err != nil {
			return err
		}
	}
	return nil
}

// Cleaned reports that the output directory was removed.
func (r *Renderer) Cleaned() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.json {
		return r.encodeLocked(map[string]bool{"cleaned": true})
	}
	_, err := fmt.Fprintf(r.w, "%s output directory removed\n", r.color(style.Check, style.Green))
	return err
}

// WatchStarted prints the watched root.
func (r *Renderer) WatchStarted(root string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.json {
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s watching %s\n", r.color(style.Dot, style.Slate), root)
}

// BuildStarted does nothing; only finished builds are printed.
func (r *Renderer) BuildStarted() {}

// BuildFinished prints one line per build attempt. Error details are left to the logger.
func (r *Renderer) BuildFinished(report domain.BuildReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.Err == nil {
		_ = r.builtLocked(report.Result, report.Duration)
		return
	}
	if r.json {
		_ = r.encodeLocked(map[string]string{"error": report.Err.Error()})
		return
	}
	_, _ = fmt.Fprintf(r.w, "%s build failed %s\n",
		r.color(style.Cross, style.Red),
		r.took(report.Duration),
	)
}

func (r *Renderer) builtLocked(result *domain.ResolvedModule, took time.Duration) error {
	if r.json {
		return r.encodeLocked(result)
	}
	if result == nil {
		_, err := fmt.Fprintln(r.w, r.output.String("manifest declares no popup, nothing to build").Faint().String())
		return err
	}

	line := fmt.Sprintf("%s %s %s %s",
		r.color(style.Check, style.Green),
		result.Entry,
		r.color(style.Arrow, style.Slate),
		r.output.String(result.Bundle).Foreground(r.output.Color(string(style.Iris))).Bold().String(),
	)
	if took > 0 {
		line += " " + r.took(took)
	}
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func (r *Renderer) took(d time.Duration) string {
	return r.output.String("(" + d.Round(time.Millisecond).String() + ")").Faint().String()
}

func (r *Renderer) color(s string, c lipgloss.Color) string {
	return r.output.String(s).Foreground(r.output.Color(string(c))).String()
}

func (r *Renderer) encodeLocked(v any) error {
	return json.NewEncoder(r.w).Encode(v)
}
