package component

import "github.com/lixenwraith/grove/core"

// TransformComponent places an entity on the board in cell units.
// Origin is the bottom-left cell, y grows upwards.
type TransformComponent struct {
	Position core.Vec2
}
