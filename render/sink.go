package render

// Sink presents a finished frame: the matrix plus a one-line status
type Sink interface {
	Draw(m *Matrix, status string) error
}
