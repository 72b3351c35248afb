// Profiling:
// go build ./cmd/ecs-bench
// ./ecs-bench -profile mem
// go tool pprof -http=":8000" -nodefraction=0.001 ./ecs-bench mem.pprof

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"

	"github.com/lixenwraith/grove/component"
	"github.com/lixenwraith/grove/constant"
	"github.com/lixenwraith/grove/core"
	"github.com/lixenwraith/grove/engine"
)

var (
	entitiesFlag   = flag.Int("entities", constant.BenchEntities, "Number of entities to populate")
	iterationsFlag = flag.Int("iterations", constant.BenchIterations, "Query rounds per measurement")
	profileFlag    = flag.String("profile", "", "Profile mode: cpu, mem, or empty for none")
)

func main() {
	os.Exit(bench())
}

// bench returns the exit code so deferred profile writers run before exit
func bench() int {
	flag.Parse()

	switch *profileFlag {
	case "":
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	case "mem":
		p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *profileFlag)
		return 2
	}

	if err := run(*entitiesFlag, *iterationsFlag); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		return 1
	}
	return 0
}

func run(numEntities, iters int) error {
	em := engine.NewEntityManager(nil)

	start := time.Now()
	if err := populate(em, numEntities); err != nil {
		return err
	}
	fmt.Printf("populate  %8d entities  %v\n", em.EntityCount(), time.Since(start))

	transform := engine.TypeOf[component.TransformComponent]()
	renderer := engine.TypeOf[component.RendererComponent]()
	movement := engine.TypeOf[component.PlayerMovementComponent]()

	start = time.Now()
	var found int
	for range iters {
		for _, r := range engine.Search[component.TransformComponent](em, false) {
			r.Component.Position = r.Component.Position.Add(core.Vec2{X: 1})
			found++
		}
	}
	report("search", found, iters, time.Since(start))

	start = time.Now()
	found = 0
	for range iters {
		found += len(em.SearchEntitiesByComponents(transform, renderer, movement))
	}
	report("intersect", found, iters, time.Since(start))

	start = time.Now()
	em.RemoveAllEntities()
	fmt.Printf("clear     %8d entities  %v\n", em.EntityCount(), time.Since(start))
	return nil
}

// populate mixes trees and movers so intersections filter a real share of candidates
func populate(em *engine.EntityManager, n int) error {
	for i := range n {
		pos := core.Vec2{X: float64(i % 1000), Y: float64(i / 1000)}
		initial := []any{
			&component.TransformComponent{Position: pos},
			&component.RendererComponent{Symbol: constant.TreeGlyph, Color: constant.TreeColor},
		}
		if i%4 == 0 {
			initial = append(initial, &component.PlayerMovementComponent{Speed: constant.PlayerSpeed})
		}
		if _, err := em.CreateEntity(initial...); err != nil {
			return eris.Wrapf(err, "create entity %d", i)
		}
	}
	return nil
}

func report(name string, found, iters int, elapsed time.Duration) {
	per := time.Duration(0)
	if iters > 0 {
		per = elapsed / time.Duration(iters)
	}
	fmt.Printf("%-9s %8d hits      %v total  %v/iter\n", name, found, elapsed, per)
}
