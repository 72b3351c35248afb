package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys published by the game loop
const (
	KeyTicks      = "game.ticks"
	KeyBumps      = "game.bumps"
	KeyResets     = "game.resets"
	KeyPaused     = "game.paused"
	KeyMuted      = "game.muted"
	KeyEntities   = "world.entities"
	KeyEpoch      = "world.epoch"
	KeyLastEntity = "world.last_entity"
	KeyPlayerX    = "player.x"
	KeyPlayerY    = "player.y"
	KeyDeltaMs    = "clock.delta_ms"
	KeyCuesPlayed = "audio.cues"
)

// Registry is the metrics facade shared between the tick loop and observers.
// Writers cache the pointers returned by Get once; readers may run on any goroutine.
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Summary renders every metric as sorted key=value pairs, ints first
func (r *Registry) Summary() string {
	var parts []string
	r.Ints.Range(func(key string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.2f", key, v.Get()))
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", key, v.Load()))
	})
	return strings.Join(parts, " ")
}
