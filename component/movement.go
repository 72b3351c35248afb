package component

import "github.com/lixenwraith/grove/core"

// PlayerMovementComponent holds player-controlled motion
type PlayerMovementComponent struct {
	// Direction is the last applied input axis, each coordinate in {-1, 0, 1}
	Direction core.Vec2
	// Speed in cells per second
	Speed float64
}
