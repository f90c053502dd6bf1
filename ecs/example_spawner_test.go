package ecs_test

import (
	"fmt"

	"github.com/plus3/platform/ecs"
)

type greeter struct {
	name string
}

func (g *greeter) Priority() int { return ecs.PriorityDefault }

func (g *greeter) EnterPlay(e *ecs.Entity) {
	fmt.Printf("%s entered play as %d\n", g.name, e.ID())
}

func (g *greeter) ExitPlay(e *ecs.Entity) {
	fmt.Printf("%s left play\n", g.name)
}

// ExampleSpawner shows the request/resolve cycle. Spawn hands out an id
// immediately but the entity only enters play when requests are resolved,
// and destroying a pending spawn cancels it before any hook runs.
func ExampleSpawner() {
	spawner := ecs.NewSpawner(nil)

	hero := spawner.Spawn(ecs.NewEntity(&greeter{name: "hero"}))
	ghost := spawner.Spawn(ecs.NewEntity(&greeter{name: "ghost"}))
	spawner.Destroy(ghost)

	fmt.Println("live before resolve:", spawner.Len())
	spawner.ResolveRequests()
	fmt.Println("live after resolve:", spawner.Len())

	spawner.Destroy(hero)
	spawner.ResolveRequests()
	fmt.Println("live at end:", spawner.Len())

	// Output:
	// live before resolve: 0
	// hero entered play as 1
	// live after resolve: 1
	// hero left play
	// live at end: 0
}
