// Command ecs-stress churns entities through a headless app and reports frame
// timings and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/render"
	"github.com/plus3/platform/vmath"
	"go.uber.org/zap"
)

const frameDelta = float32(1.0 / 60.0)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities destroyed and spawned every frame.")
	maxComponents := flag.Int("components", 5, "Maximum components per entity.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Profile the run: cpu, mem or trace.")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "trace":
		defer profile.Start(profile.TraceProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Println("Starting ECS stress test...")

	// 1. Headless app with an empty input table.
	mappings, err := input.Compile(input.Config{}, input.KeyNames{})
	if err != nil {
		log.Fatalf("compile input: %v", err)
	}
	a := app.New(zap.NewNop(), input.NewMapper(mappings, nil), nil, app.DefaultOptions())
	kb := input.PressedKeys{}

	// 2. Populate the spawner.
	log.Printf("Populating spawner with %d entities...\n", *entityCount)
	live := make([]ecs.EntityID, 0, *entityCount)
	for range *entityCount {
		live = append(live, a.Spawn(RandomEntity(*maxComponents)))
	}
	a.Step(0, kb)
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:   *duration,
		Entities:   *entityCount,
		Churn:      *churn,
		Components: *maxComponents,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemBefore)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			for range min(*churn, len(live)) {
				i := rand.IntN(len(live))
				a.Destroy(live[i])
				live[i] = live[len(live)-1]
				live = live[:len(live)-1]
			}
			for range *churn {
				live = append(live, a.Spawn(RandomEntity(*maxComponents)))
			}

			frameStart := time.Now()
			a.Step(frameDelta, kb)
			report.Frames.Add(time.Since(frameStart))
			report.Draws += int64(a.Queue.Len())
		}
	}

	report.Elapsed = time.Since(startTime)
	report.Frames.Finalize()
	report.Phases = a.Stats().Phases
	report.Spawner = a.Spawner.CollectStats()
	runtime.ReadMemStats(&report.MemAfter)

	a.Shutdown()
	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// RandomEntity builds an entity with one to maxComponents load components.
func RandomEntity(maxComponents int) *ecs.Entity {
	e := ecs.NewEntity()
	for range rand.IntN(maxComponents) + 1 {
		e.AddComponent(newLoad(rand.IntN(len(loadPriorities))))
	}
	return e
}

var loadPriorities = []int{ecs.PriorityInput, ecs.PriorityTransform, ecs.PriorityDefault, ecs.PriorityRender}

// load does a little arithmetic in every hook so the fan-out is measured
// with realistic call overhead.
type load struct {
	priority int
	pos, vel vmath.Vec2
	draws    bool
}

func newLoad(kind int) *load {
	return &load{
		priority: loadPriorities[kind],
		vel:      vmath.V(rand.Float32()-0.5, rand.Float32()-0.5).Scale(100),
		draws:    loadPriorities[kind] == ecs.PriorityRender,
	}
}

func (l *load) Priority() int { return l.priority }

func (l *load) Tick(e *ecs.Entity, dt float32) {
	l.pos = l.pos.Add(l.vel.Scale(dt))
}

func (l *load) PhysicsTick(e *ecs.Entity, fixedDt float32) {
	l.vel = l.vel.Scale(0.999)
}

func (l *load) RenderTick(e *ecs.Entity, dt float32, q *render.Queue) {
	if l.draws {
		q.Enqueue(render.Data{TextureID: 1, Position: l.pos, PrevPosition: l.pos, Scale: vmath.One()})
	}
}
