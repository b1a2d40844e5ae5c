package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar shows a simple progress bar. Increment is safe for concurrent
// use.
type ProgressBar struct {
	mu      sync.Mutex
	total   int
	current int
	width   int
	writer  io.Writer
	label   string
}

// NewProgressBar creates a new progress bar
func NewProgressBar(w io.Writer, total int, label string) *ProgressBar {
	return &ProgressBar{
		total:  total,
		width:  40,
		writer: w,
		label:  label,
	}
}

// Update updates the progress bar
func (p *ProgressBar) Update(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = min(current, p.total)
	p.render()
}

// Increment increments the progress by 1
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = min(p.current+1, p.total)
	p.render()
}

func (p *ProgressBar) render() {
	if p.total <= 0 {
		return
	}
	percent := float64(p.current) / float64(p.total) * 100

	if !IsTerminal() {
		// Non-terminal: just print percentage
		fmt.Fprintf(p.writer, "\r%s: %d/%d (%.1f%%)", p.label, p.current, p.total, percent)
	} else {
		filled := p.width * p.current / p.total
		bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
		fmt.Fprintf(p.writer, "\r%s [%s] %d/%d (%.1f%%)", p.label, bar, p.current, p.total, percent)
	}

	if p.current >= p.total {
		fmt.Fprintln(p.writer)
	}
}
