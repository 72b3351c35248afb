package constant

import "time"

// Board
const (
	// MatrixSize is the side length of the square play field in cells
	MatrixSize = 24

	// TreeCount is the number of trees scattered at startup
	TreeCount = 10

	// DefaultSeed drives tree placement when no seed is configured
	DefaultSeed = 1
)

// Player
const (
	// PlayerSpeed is movement in cells per second
	PlayerSpeed = 6.0

	// KeyHoldWindow keeps a key pressed after its last terminal event.
	// Terminals report key repeats but never key release.
	KeyHoldWindow = 150 * time.Millisecond
)

// Glyphs
const (
	PlayerGlyph = '@'
	TreeGlyph   = '↟'
	EmptyGlyph  = '.'
)
