package component

import "github.com/lixenwraith/grove/core"

// InputComponent is the singleton snapshot of player intent, refreshed once per tick
type InputComponent struct {
	// Axis: x -1 left / +1 right, y -1 down / +1 up
	Axis   core.Vec2
	Quit   bool
	Paused bool
	// Muted silences collision cues
	Muted bool
	// Reset requests a fresh board at the end of the tick
	Reset bool
}
