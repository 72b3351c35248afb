package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/config"
	"github.com/lixenwraith/grove/constant"
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/engine"
	"github.com/lixenwraith/grove/render"
	"github.com/lixenwraith/grove/status"
	"github.com/lixenwraith/grove/system"
)

// Options wires a game to its environment
type Options struct {
	Config config.Config
	Sink   render.Sink

	// Cue plays collision sounds; nil runs silently
	Cue system.CuePlayer
	// Keyboard is fed by the caller's input goroutine; nil creates an idle one
	Keyboard *system.Keyboard
	// Time supplies tick timestamps to Run; nil uses the monotonic clock
	Time engine.TimeProvider
	// MaxTicks stops Run after that many ticks; 0 runs until quit
	MaxTicks int64
	// Metrics receives per-tick counters; nil creates a private registry
	Metrics *status.Registry
}

// Game owns the world and drives the per-tick group schedule
type Game struct {
	cfg      config.Config
	registry *core.TypeRegistry
	entities *engine.EntityManager
	systems  *engine.SystemManager
	clock    *engine.DeltaClock
	time     engine.TimeProvider
	keyboard *system.Keyboard
	renderer *system.RenderSystem
	rng      *rand.Rand

	tickTime time.Time
	maxTicks int64
	metrics  *status.Registry

	// Cached metric pointers, written once per tick
	ticks   *atomic.Int64
	bumps   *atomic.Int64
	resets  *atomic.Int64
	count   *atomic.Int64
	epoch   *atomic.Int64
	last    *atomic.Int64
	paused  *atomic.Bool
	muted   *atomic.Bool
	playerX *status.AtomicFloat
	playerY *status.AtomicFloat
	deltaMs *status.AtomicFloat
}

// silentCue drops every cue
type silentCue struct{}

func (silentCue) PlayBump() bool { return false }
func (silentCue) SetMuted(bool)   {}

// countedCue tallies the cues the wrapped player accepted
type countedCue struct {
	system.CuePlayer
	played *atomic.Int64
}

func (c countedCue) PlayBump() bool {
	if !c.CuePlayer.PlayBump() {
		return false
	}
	c.played.Add(1)
	return true
}

// New validates the configuration, registers every system and populates the board
func New(opts Options) (*Game, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, eris.Wrap(err, "new game")
	}
	if opts.Sink == nil {
		return nil, eris.New("new game: nil render sink")
	}
	cfg := opts.Config

	g := &Game{
		cfg:      cfg,
		registry: core.NewTypeRegistry(),
		systems:  engine.NewSystemManager(),
		clock:    engine.NewDeltaClock(cfg.Loop.MaxDelta),
		time:     opts.Time,
		keyboard: opts.Keyboard,
		rng:      rand.New(rand.NewSource(cfg.Board.Seed)),
		maxTicks: opts.MaxTicks,
		metrics:  opts.Metrics,
	}
	if g.metrics == nil {
		g.metrics = status.NewRegistry()
	}
	g.bindMetrics()
	if g.time == nil {
		g.time = engine.NewMonotonicTimeProvider()
	}
	if g.keyboard == nil {
		g.keyboard = system.NewKeyboard(cfg.Player.KeyHold)
	}
	cue := opts.Cue
	if cue == nil {
		cue = silentCue{}
	}

	types := make([]reflect.Type, len(componentTypes))
	for i, c := range componentTypes {
		types[i] = reflect.TypeOf(c)
	}
	g.registry.Register(types...)
	g.entities = engine.NewEntityManager(g.registry)

	size := cfg.Board.Size
	matrix := render.NewMatrix(size, system.EmptyCell(constant.EmptyColor))
	audioSystem := system.NewAudioSystem(g.entities, countedCue{CuePlayer: cue, played: g.metrics.Ints.Get(status.KeyCuesPlayed)})
	g.renderer = system.NewRenderSystem(g.entities, matrix, opts.Sink, g.Status)

	systems := []engine.System{
		system.NewInputSystem(g.entities, g.keyboard, g.TickTime),
		system.NewClockSystem(g.entities, g.clock, g.TickTime),
		system.NewTransformSystem(g.entities, core.Area{Width: size, Height: size}),
		g.renderer,
		system.NewPlayerMovementSystem(g.entities, g.clock),
		system.NewPlayerTreeCollisionSystem(g.entities, audioSystem, bumpCounter{g}),
		audioSystem,
	}
	for _, s := range systems {
		if err := g.systems.AddSystem(s); err != nil {
			return nil, eris.Wrap(err, "register systems")
		}
	}
	for _, s := range g.systems.Systems() {
		if err := g.systems.EnableSystem(reflect.TypeOf(s)); err != nil {
			return nil, eris.Wrap(err, "enable systems")
		}
	}

	if err := g.populate(component.InputComponent{}); err != nil {
		return nil, err
	}
	return g, nil
}

var audioSystemType = engine.SystemType[*system.AudioSystem]()

// bumpCounter tallies collisions for the status line
type bumpCounter struct {
	g *Game
}

func (b bumpCounter) OnBump(player, tree core.Entity) {
	b.g.bumps.Add(1)
}

func (g *Game) bindMetrics() {
	g.ticks = g.metrics.Ints.Get(status.KeyTicks)
	g.bumps = g.metrics.Ints.Get(status.KeyBumps)
	g.resets = g.metrics.Ints.Get(status.KeyResets)
	g.count = g.metrics.Ints.Get(status.KeyEntities)
	g.epoch = g.metrics.Ints.Get(status.KeyEpoch)
	g.last = g.metrics.Ints.Get(status.KeyLastEntity)
	g.paused = g.metrics.Bools.Get(status.KeyPaused)
	g.muted = g.metrics.Bools.Get(status.KeyMuted)
	g.playerX = g.metrics.Floats.Get(status.KeyPlayerX)
	g.playerY = g.metrics.Floats.Get(status.KeyPlayerY)
	g.deltaMs = g.metrics.Floats.Get(status.KeyDeltaMs)
}

// publish copies world state into the metrics registry after the tick's updates
func (g *Game) publish() {
	g.count.Store(int64(g.entities.EntityCount()))
	g.epoch.Store(int64(g.entities.Epoch()))
	g.last.Store(int64(g.entities.LastEntity()))
	g.paused.Store(g.clock.IsPaused())
	g.muted.Store(!g.systems.IsEnabled(audioSystemType))
	g.deltaMs.Set(float64(g.clock.Delta()) / float64(time.Millisecond))
	if player, ok := g.playerTransform(); ok {
		g.playerX.Set(player.Position.X)
		g.playerY.Set(player.Position.Y)
	}
}

// populate creates the input singleton from carried, scatters trees on distinct cells
// and places the player at the centre
func (g *Game) populate(carried component.InputComponent) error {
	if _, err := g.entities.CreateEntity(&carried); err != nil {
		return eris.Wrap(err, "create input")
	}

	size := g.cfg.Board.Size
	centre := core.Point{X: size / 2, Y: size / 2}
	if size == 1 {
		centre = core.Point{}
	}

	taken := map[core.Point]bool{centre: true}
	for placed := 0; placed < g.cfg.Board.Trees; {
		p := core.Point{X: g.rng.Intn(size), Y: g.rng.Intn(size)}
		if taken[p] {
			continue
		}
		taken[p] = true
		if _, err := g.entities.CreateEntity(TreeArchetype(core.Vec2{X: float64(p.X), Y: float64(p.Y)})...); err != nil {
			return eris.Wrap(err, "create tree")
		}
		placed++
	}

	pos := core.Vec2{X: float64(centre.X), Y: float64(centre.Y)}
	if _, err := g.entities.CreateEntity(PlayerArchetype(pos, g.cfg.Player.Speed)...); err != nil {
		return eris.Wrap(err, "create player")
	}
	return nil
}

// Reset discards every entity and builds a fresh board from the next random layout.
// Pause, mute and quit state survive the reset.
func (g *Game) Reset() error {
	var carried component.InputComponent
	if input, ok := g.input(); ok {
		carried = component.InputComponent{Quit: input.Quit, Paused: input.Paused, Muted: input.Muted}
	}

	g.entities.RemoveAllEntities()
	g.bumps.Store(0)
	g.resets.Add(1)
	if err := g.populate(carried); err != nil {
		return err
	}
	g.publish()
	log.Printf("game: board reset (epoch %d)", g.entities.Epoch())
	return nil
}

// Step runs one tick at now: every group in order, then end-of-tick requests
func (g *Game) Step(now time.Time) error {
	g.tickTime = now
	tick := g.ticks.Add(1)

	if err := g.systems.UpdateAll(); err != nil {
		return eris.Wrapf(err, "tick %d", tick)
	}
	if err := g.renderer.Err(); err != nil {
		return eris.Wrapf(err, "tick %d", tick)
	}
	if err := g.syncMute(); err != nil {
		return eris.Wrapf(err, "tick %d", tick)
	}
	g.publish()

	if input, ok := g.input(); ok && input.Reset {
		return g.Reset()
	}
	return nil
}

// syncMute disables the audio system while the input is muted; pending cues are dropped
func (g *Game) syncMute() error {
	input, ok := g.input()
	if !ok {
		return nil
	}
	enabled := g.systems.IsEnabled(audioSystemType)
	switch {
	case input.Muted && enabled:
		return g.systems.DisableSystem(audioSystemType)
	case !input.Muted && !enabled:
		return g.systems.EnableSystem(audioSystemType)
	}
	return nil
}

// Run steps the game at the configured frame interval until quit, MaxTicks or cancellation.
// Quit and MaxTicks return nil; cancellation returns the context error.
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.cfg.Loop.FrameInterval)
	defer ticker.Stop()

	for !g.Done() {
		if err := g.Step(g.time.Now()); err != nil {
			return err
		}
		if g.Done() {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	log.Printf("game: stopped after %d ticks: %s", g.ticks.Load(), g.metrics.Summary())
	return nil
}

// Done reports whether the player quit or the tick limit was reached
func (g *Game) Done() bool {
	if g.maxTicks > 0 && g.ticks.Load() >= g.maxTicks {
		return true
	}
	input, ok := g.input()
	return ok && input.Quit
}

// Status is the one-line summary drawn under the board
func (g *Game) Status() string {
	line := fmt.Sprintf("tick %d", g.ticks.Load())
	if player, ok := g.playerTransform(); ok {
		line += fmt.Sprintf("  pos %.1f,%.1f", player.Position.X, player.Position.Y)
	}
	line += fmt.Sprintf("  bumps %d", g.bumps.Load())
	if g.clock.IsPaused() {
		line += "  [paused]"
	}
	if !g.systems.IsEnabled(audioSystemType) {
		line += "  [muted]"
	}
	return line
}

// TickTime returns the timestamp of the current tick
func (g *Game) TickTime() time.Time {
	return g.tickTime
}

func (g *Game) Entities() *engine.EntityManager { return g.entities }
func (g *Game) Systems() *engine.SystemManager  { return g.systems }
func (g *Game) Clock() *engine.DeltaClock       { return g.clock }
func (g *Game) Keyboard() *system.Keyboard      { return g.keyboard }
func (g *Game) Metrics() *status.Registry       { return g.metrics }
func (g *Game) Ticks() int64                    { return g.ticks.Load() }
func (g *Game) Bumps() int                      { return int(g.bumps.Load()) }

// Player returns the player entity
func (g *Game) Player() (core.Entity, bool) {
	players := g.entities.SearchEntitiesByComponents(engine.TypeOf[component.PlayerComponent]())
	if len(players) == 0 {
		return 0, false
	}
	return players[0], true
}

func (g *Game) playerTransform() (*component.TransformComponent, bool) {
	player, ok := g.Player()
	if !ok {
		return nil, false
	}
	return engine.Get[component.TransformComponent](g.entities, player)
}

func (g *Game) input() (*component.InputComponent, bool) {
	r, ok := engine.First[component.InputComponent](g.entities)
	return r.Component, ok
}
