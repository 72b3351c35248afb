package render

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
)

// TextSink writes frames as plain text, for headless runs and pipes
type TextSink struct {
	w io.Writer
}

// NewTextSink writes frames to w
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// Draw writes the matrix rows, the status line and a blank separator line
func (s *TextSink) Draw(m *Matrix, status string) error {
	if _, err := fmt.Fprintf(s.w, "%s\n%s\n\n", m.String(), status); err != nil {
		return eris.Wrap(err, "write frame")
	}
	return nil
}
