package system

import (
	"time"

	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/engine"
)

// ClockSystem advances the delta clock once per tick, after InputSystem has applied
// this tick's pause toggles, so a pause freezes the same tick it was pressed in
type ClockSystem struct {
	engine.SystemBase
	clock *engine.DeltaClock
	now   func() time.Time
}

func NewClockSystem(em *engine.EntityManager, clock *engine.DeltaClock, now func() time.Time) *ClockSystem {
	return &ClockSystem{
		SystemBase: engine.NewSystemBase(em),
		clock:      clock,
		now:        now,
	}
}

func (*ClockSystem) Group() engine.SystemGroup {
	return engine.GroupPreLogic
}

func (s *ClockSystem) OnUpdate() {
	if input, ok := engine.First[component.InputComponent](s.Entities); ok {
		if input.Component.Paused {
			s.clock.Pause()
		} else {
			s.clock.Resume()
		}
	}
	s.clock.Tick(s.now())
}
