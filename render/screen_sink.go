package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/grove/constant"
)

// ScreenSink draws frames on a tcell screen.
// Glyphs sit on even columns so the square board keeps its aspect ratio.
type ScreenSink struct {
	screen      tcell.Screen
	statusStyle tcell.Style
}

// NewScreenSink wraps an initialized screen; the caller owns Init and Fini
func NewScreenSink(screen tcell.Screen) *ScreenSink {
	return &ScreenSink{
		screen:      screen,
		statusStyle: tcell.StyleDefault.Foreground(constant.StatusColor),
	}
}

// Draw replaces the screen contents with the frame and shows it
func (s *ScreenSink) Draw(m *Matrix, status string) error {
	s.screen.Clear()

	size := m.Size()
	for row := 0; row < size; row++ {
		for x := 0; x < size; x++ {
			cell, _ := m.Get(x, row)
			s.screen.SetContent(x*2, row, cell.Rune, nil, cell.Style)
		}
	}

	statusRow := size + constant.StatusLineOffset
	col := 0
	for _, r := range status {
		s.screen.SetContent(col, statusRow, r, nil, s.statusStyle)
		col++
	}

	s.screen.Show()
	return nil
}
