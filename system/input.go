package system

import (
	"time"

	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/engine"
)

// InputSystem copies held keyboard state into every InputComponent once per tick
type InputSystem struct {
	engine.SystemBase
	keyboard *Keyboard
	now      func() time.Time
}

// NewInputSystem reads keyboard at the tick time reported by now
func NewInputSystem(em *engine.EntityManager, keyboard *Keyboard, now func() time.Time) *InputSystem {
	return &InputSystem{
		SystemBase: engine.NewSystemBase(em),
		keyboard:   keyboard,
		now:        now,
	}
}

func (*InputSystem) Group() engine.SystemGroup {
	return engine.GroupPreLogic
}

func (s *InputSystem) OnUpdate() {
	now := s.now()
	left := s.keyboard.Held(KeyLeft, now)
	right := s.keyboard.Held(KeyRight, now)
	down := s.keyboard.Held(KeyDown, now)
	up := s.keyboard.Held(KeyUp, now)
	quit := s.keyboard.QuitRequested()
	togglePause := s.keyboard.TakePauseToggles()%2 == 1
	toggleMute := s.keyboard.TakeMuteToggles()%2 == 1
	reset := s.keyboard.TakeResets() > 0

	for _, r := range engine.Search[component.InputComponent](s.Entities, false) {
		input := r.Component
		input.Axis.X = axis(left, right)
		input.Axis.Y = axis(down, up)
		input.Quit = input.Quit || quit
		input.Reset = reset
		if togglePause {
			input.Paused = !input.Paused
		}
		if toggleMute {
			input.Muted = !input.Muted
		}
	}
}

// axis resolves a negative/positive key pair; negative wins if both are held
func axis(negative, positive bool) float64 {
	switch {
	case negative:
		return -1
	case positive:
		return 1
	default:
		return 0
	}
}
