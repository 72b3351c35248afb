package core

// Area represents a rectangular region of cells
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// Contains reports whether the cell (x, y) lies inside the area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Clamp pins v to the closed range [X, X+Width-1] x [Y, Y+Height-1]
func (a Area) Clamp(v Vec2) Vec2 {
	return Vec2{
		X: clamp(v.X, float64(a.X), float64(a.X+a.Width-1)),
		Y: clamp(v.Y, float64(a.Y), float64(a.Y+a.Height-1)),
	}
}

// Cells returns the number of cells in the area
func (a Area) Cells() int {
	return a.Width * a.Height
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
