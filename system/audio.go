package system

import (
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/engine"
)

// CuePlayer plays the collision cue, reporting whether it was queued
type CuePlayer interface {
	PlayBump() bool
	SetMuted(muted bool)
}

// AudioSystem turns the collisions of the current tick into at most one bump cue
type AudioSystem struct {
	engine.SystemBase
	player  CuePlayer
	pending int
}

func NewAudioSystem(em *engine.EntityManager, player CuePlayer) *AudioSystem {
	return &AudioSystem{
		SystemBase: engine.NewSystemBase(em),
		player:     player,
	}
}

func (*AudioSystem) Group() engine.SystemGroup {
	return engine.GroupPreRender
}

// OnBump implements BumpListener
func (s *AudioSystem) OnBump(player, tree core.Entity) {
	s.pending++
}

// OnEnabled unmutes the player
func (s *AudioSystem) OnEnabled() {
	s.player.SetMuted(false)
}

// OnDisabled mutes the player and drops collisions collected while the cue could not play
func (s *AudioSystem) OnDisabled() {
	s.pending = 0
	s.player.SetMuted(true)
}

func (s *AudioSystem) OnUpdate() {
	if s.pending == 0 {
		return
	}
	s.pending = 0
	s.player.PlayBump()
}
