package status

import (
	"sync"
	"testing"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	a := m.Get("x")
	b := m.Get("x")
	if a != b {
		t.Error("Expected the same pointer for repeated Get")
	}
	if !m.Has("x") || m.Has("y") {
		t.Error("Expected Has to report only registered keys")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestMetricMap_RangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}

	var keys []string
	m.Range(func(key string, _ *AtomicFloat) {
		keys = append(keys, key)
	})
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected sorted keys [a b c], got %v", keys)
	}
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get(KeyTicks).Add(1)
			}
		}()
	}
	wg.Wait()

	if got := r.Ints.Get(KeyTicks).Load(); got != 800 {
		t.Errorf("Expected 800, got %d", got)
	}
}

func TestRegistry_Summary(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyTicks).Store(3)
	r.Ints.Get(KeyBumps).Store(1)
	r.Floats.Get(KeyPlayerX).Set(2.5)
	r.Bools.Get(KeyPaused).Store(true)

	want := "game.bumps=1 game.ticks=3 player.x=2.50 game.paused=true"
	if got := r.Summary(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if r.TotalCount() != 4 {
		t.Errorf("Expected 4 metrics, got %d", r.TotalCount())
	}
}
