package system

import (
	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/engine"
)

// PlayerMovementSystem steers player entities by the input axis and integrates their position
type PlayerMovementSystem struct {
	engine.SystemBase
	clock *engine.DeltaClock
}

func NewPlayerMovementSystem(em *engine.EntityManager, clock *engine.DeltaClock) *PlayerMovementSystem {
	return &PlayerMovementSystem{
		SystemBase: engine.NewSystemBase(em),
		clock:      clock,
	}
}

func (*PlayerMovementSystem) Group() engine.SystemGroup {
	return engine.GroupLogic
}

func (s *PlayerMovementSystem) OnUpdate() {
	input, ok := engine.First[component.InputComponent](s.Entities)
	if !ok {
		return
	}
	dt := s.clock.DeltaSeconds()

	for _, r := range engine.Search[component.PlayerMovementComponent](s.Entities, false) {
		transform, ok := engine.Get[component.TransformComponent](s.Entities, r.Entity)
		if !ok {
			continue
		}
		movement := r.Component
		movement.Direction = input.Component.Axis
		transform.Position = transform.Position.Add(movement.Direction.Scale(movement.Speed * dt))
	}
}
