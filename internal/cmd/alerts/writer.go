package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Writer prints alerts to an io.Writer, colored when it is a terminal.
type Writer struct {
	w        io.Writer
	useColor bool
}

// NewWriter creates a Writer. noColor disables color even on a terminal.
func NewWriter(w io.Writer, noColor bool) *Writer {
	return &Writer{w: w, useColor: !noColor && isTerminal(w)}
}

// Write prints each alert followed by its details.
func (aw *Writer) Write(alerts ...*Alert) error {
	for _, a := range alerts {
		line := a.String()
		if aw.useColor {
			line = a.Level.color() + line + "\033[0m"
		}
		if _, err := fmt.Fprintln(aw.w, line); err != nil {
			return err
		}
		for _, detail := range a.Details {
			if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
