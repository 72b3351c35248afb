package system

import (
	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/engine"
)

// TransformSystem keeps every active transform inside the board
type TransformSystem struct {
	engine.SystemBase
	bounds core.Area
}

func NewTransformSystem(em *engine.EntityManager, bounds core.Area) *TransformSystem {
	return &TransformSystem{
		SystemBase: engine.NewSystemBase(em),
		bounds:     bounds,
	}
}

func (*TransformSystem) Group() engine.SystemGroup {
	return engine.GroupPostLogic
}

func (s *TransformSystem) OnUpdate() {
	for _, r := range engine.Search[component.TransformComponent](s.Entities, false) {
		r.Component.Position = s.bounds.Clamp(r.Component.Position)
	}
}
