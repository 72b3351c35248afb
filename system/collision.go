package system

import (
	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/engine"
)

// BumpListener is notified when a player is pushed out of a tree
type BumpListener interface {
	OnBump(player, tree core.Entity)
}

// PlayerTreeCollisionSystem stops players from walking through trees.
// Every player is checked against every tree; a player whose position falls inside a
// tree's cell is moved back one step against its direction.
type PlayerTreeCollisionSystem struct {
	engine.SystemBase
	listeners []BumpListener
}

func NewPlayerTreeCollisionSystem(em *engine.EntityManager, listeners ...BumpListener) *PlayerTreeCollisionSystem {
	return &PlayerTreeCollisionSystem{
		SystemBase: engine.NewSystemBase(em),
		listeners:  listeners,
	}
}

func (*PlayerTreeCollisionSystem) Group() engine.SystemGroup {
	return engine.GroupGamePhysics
}

func (s *PlayerTreeCollisionSystem) OnUpdate() {
	trees := engine.Search[component.TreeComponent](s.Entities, false)
	if len(trees) == 0 {
		return
	}

	for _, player := range s.Entities.SearchEntitiesByComponents(
		engine.TypeOf[component.PlayerComponent](),
		engine.TypeOf[component.TransformComponent](),
	) {
		if !s.Entities.IsEntityEnabled(player) {
			continue
		}
		transform, _ := engine.Get[component.TransformComponent](s.Entities, player)

		for _, tree := range trees {
			treeTransform, ok := engine.Get[component.TransformComponent](s.Entities, tree.Entity)
			if !ok || !overlaps(transform.Position, treeTransform.Position) {
				continue
			}

			var direction core.Vec2
			if movement, ok := engine.Get[component.PlayerMovementComponent](s.Entities, player); ok {
				direction = movement.Direction
			}
			transform.Position = treeTransform.Position.Sub(direction)

			for _, l := range s.listeners {
				l.OnBump(player, tree.Entity)
			}
			break
		}
	}
}

// overlaps reports whether p lies in the unit cell whose lower-left corner is cell
func overlaps(p, cell core.Vec2) bool {
	return p.X >= cell.X && p.X < cell.X+1 &&
		p.Y >= cell.Y && p.Y < cell.Y+1
}
