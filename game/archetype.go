package game

import (
	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/constant"
	"github.com/lixenwraith/grove/core"
)

// PlayerArchetype is the initial component set of the player
func PlayerArchetype(pos core.Vec2, speed float64) []any {
	return []any{
		&component.TransformComponent{Position: pos},
		&component.RendererComponent{Symbol: constant.PlayerGlyph, Color: constant.PlayerColor},
		&component.PlayerMovementComponent{Speed: speed},
		component.PlayerComponent{},
	}
}

// TreeArchetype is the initial component set of a tree
func TreeArchetype(pos core.Vec2) []any {
	return []any{
		&component.TransformComponent{Position: pos},
		&component.RendererComponent{Symbol: constant.TreeGlyph, Color: constant.TreeColor},
		component.TreeComponent{},
	}
}

// componentTypes lists every game component for eager registration
var componentTypes = []any{
	component.TransformComponent{},
	component.RendererComponent{},
	component.PlayerMovementComponent{},
	component.InputComponent{},
	component.PlayerComponent{},
	component.TreeComponent{},
}
