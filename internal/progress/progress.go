// Package progress renders a linear console progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 40

var (
	filledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Option configures a Bar.
type Option func(*Bar)

// WithWidth sets the bar width in cells. Default: 40.
func WithWidth(cells int) Option {
	return func(b *Bar) { b.width = cells }
}

// Bar is a single-line progress bar redrawn in place with carriage returns.
type Bar struct {
	w     io.Writer
	width int
}

// New creates a Bar writing to w.
func New(w io.Writer, opts ...Option) *Bar {
	b := &Bar{w: w, width: defaultWidth}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render redraws the bar at the given percentage, clamped to 0-100.
func (b *Bar) Render(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	left := b.width * percent / 100
	right := b.width - left

	fmt.Fprintf(b.w, "\r%s%s %3d%%",
		filledStyle.Render(strings.Repeat("#", left)),
		emptyStyle.Render(strings.Repeat("-", right)),
		percent)
}

// Done terminates the bar's line so subsequent output starts fresh.
func (b *Bar) Done() {
	fmt.Fprintln(b.w)
}
