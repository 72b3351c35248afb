package component

import "github.com/gdamore/tcell/v2"

// RendererComponent is the glyph drawn at the entity's cell
type RendererComponent struct {
	Symbol rune
	Color  tcell.Color
}

// Style returns the terminal style for the glyph
func (r RendererComponent) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(r.Color)
}
