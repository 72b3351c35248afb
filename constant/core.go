package constant

import "time"

// Game Loop Timing
const (
	// FrameUpdateInterval is the loop driver tick interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxFrameDelta caps a single tick's delta so a stalled terminal does not teleport entities
	MaxFrameDelta = 33 * time.Millisecond

	// InputEventBuffer is the capacity of the terminal event channel feeding the keyboard state
	InputEventBuffer = 64
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "grove.log"

	// MaxLogSize triggers rotation of the debug log on startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)

// Benchmark Defaults
const (
	BenchEntities   = 100000
	BenchIterations = 200
)
