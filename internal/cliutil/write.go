// Package cliutil provides write helpers shared by the CLI and its reporters.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Colorf is Writef through c. A nil c writes plain text.
func Colorf(w io.Writer, c *color.Color, format string, args ...any) {
	if c == nil {
		Writef(w, format, args...)
		return
	}
	if _, err := c.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Palette holds the colors of text output.
type Palette struct {
	Marker  *color.Color
	Error   *color.Color
	Warning *color.Color
	Info    *color.Color
	Success *color.Color
}

// NewPalette returns the palette. With enabled false every color is
// disabled; otherwise fatih/color decides from the terminal and NO_COLOR.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Marker:  color.New(color.Bold),
		Error:   color.New(color.FgRed),
		Warning: color.New(color.FgYellow),
		Info:    color.New(color.FgCyan),
		Success: color.New(color.FgGreen, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.Marker, p.Error, p.Warning, p.Info, p.Success} {
			c.DisableColor()
		}
	}
	return p
}
