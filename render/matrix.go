package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Cell is one character slot of the matrix
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Matrix is a square character grid addressed in screen rows: row 0 is the top.
// Backed by a flat slice for reuse across frames.
type Matrix struct {
	cells []Cell
	size  int
	blank Cell
}

// NewMatrix creates a size x size matrix filled with blank
func NewMatrix(size int, blank Cell) *Matrix {
	m := &Matrix{
		cells: make([]Cell, size*size),
		size:  size,
		blank: blank,
	}
	m.Reset()
	return m
}

// Size returns the side length
func (m *Matrix) Size() int {
	return m.size
}

// Reset fills every cell with the blank cell using exponential copy
func (m *Matrix) Reset() {
	if len(m.cells) == 0 {
		return
	}
	m.cells[0] = m.blank
	for filled := 1; filled < len(m.cells); filled *= 2 {
		copy(m.cells[filled:], m.cells[:filled])
	}
}

// Set writes a cell at column x, row; out of bounds writes are dropped
func (m *Matrix) Set(x, row int, r rune, style tcell.Style) bool {
	if !m.inBounds(x, row) {
		return false
	}
	m.cells[row*m.size+x] = Cell{Rune: r, Style: style}
	return true
}

// Get returns the cell at column x, row
func (m *Matrix) Get(x, row int) (Cell, bool) {
	if !m.inBounds(x, row) {
		return Cell{}, false
	}
	return m.cells[row*m.size+x], true
}

// Row returns one row as space separated glyphs
func (m *Matrix) Row(row int) string {
	if row < 0 || row >= m.size {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < m.size; x++ {
		if x > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(m.cells[row*m.size+x].Rune)
	}
	return sb.String()
}

// String renders all rows top to bottom, newline separated
func (m *Matrix) String() string {
	rows := make([]string, m.size)
	for row := range rows {
		rows[row] = m.Row(row)
	}
	return strings.Join(rows, "\n")
}

func (m *Matrix) inBounds(x, row int) bool {
	return x >= 0 && x < m.size && row >= 0 && row < m.size
}
