package constant

import "github.com/gdamore/tcell/v2"

// Glyph colors
var (
	PlayerColor = tcell.ColorRed
	TreeColor   = tcell.ColorGreen
	EmptyColor  = tcell.ColorDarkGray
	StatusColor = tcell.ColorSilver
)

// StatusLineOffset is the number of blank rows between the matrix and the status line
const StatusLineOffset = 1
