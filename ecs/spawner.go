package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/platform/render"
	"go.uber.org/zap"
)

// Spawner owns the live entity set and buffers structural changes to it.
// Spawn and Destroy only record requests; ResolveRequests applies them at a
// single point in the frame so hooks and ticks never observe a live set that
// is changing underneath them.
type Spawner struct {
	log *zap.Logger

	nextID   EntityID
	entities []*Entity
	index    *intmap.Map[EntityID, *Entity]

	spawnRequests []*Entity
	// destroyRequests keeps request order; destroySet dedupes it.
	destroyRequests []EntityID
	destroySet      *intmap.Map[EntityID, struct{}]
	defers          []func()

	resolving bool
	// iterating counts fan-outs and Entities loops in progress over the
	// live set.
	iterating  int
	generation uint64
	revision   uint64
}

func NewSpawner(log *zap.Logger) *Spawner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Spawner{
		log:        log,
		index:      intmap.New[EntityID, *Entity](64),
		destroySet: intmap.New[EntityID, struct{}](16),
	}
}

// Spawn assigns e a fresh id and queues it for the next resolution. The id
// is valid immediately, so the caller may store it or pass it to Destroy
// before the entity enters play.
func (s *Spawner) Spawn(e *Entity) EntityID {
	if e.spawner != nil {
		panic("ecs: entity " + e.id.String() + " is already owned by a spawner")
	}
	s.nextID++
	e.id = s.nextID
	e.spawner = s
	s.spawnRequests = append(s.spawnRequests, e)
	return e.id
}

// Destroy queues the entity with the given id for removal. A still pending
// spawn is cancelled outright: that entity never enters play and none of its
// hooks run. Unknown ids are reported when the request is resolved.
func (s *Spawner) Destroy(id EntityID) {
	if id == InvalidEntityID {
		s.log.Warn("destroy requested for invalid entity id")
		return
	}

	if i := slices.IndexFunc(s.spawnRequests, func(e *Entity) bool { return e.id == id }); i >= 0 {
		e := s.spawnRequests[i]
		s.spawnRequests = slices.Delete(s.spawnRequests, i, i+1)
		e.spawner = nil
		s.log.Debug("pending spawn cancelled", zap.Uint32("entity", uint32(id)))
		return
	}

	s.requestDestroy(id)
}

func (s *Spawner) requestDestroy(id EntityID) {
	if _, dup := s.destroySet.Get(id); dup {
		return
	}
	s.destroySet.Put(id, struct{}{})
	s.destroyRequests = append(s.destroyRequests, id)
}

// Defer queues fn to run after the next resolution completes.
func (s *Spawner) Defer(fn func()) {
	s.defers = append(s.defers, fn)
}

// ResolveRequests applies pending spawns, then pending destroys.
//
// Each phase takes ownership of its request buffer before running any hook,
// so requests made by EnterPlay or ExitPlay hooks land in fresh buffers. A
// destroy requested during the spawn phase is applied by the destroy phase
// of the same call; a spawn requested during the destroy phase waits for the
// next call. Calling ResolveRequests from inside a hook, a tick fan-out or
// an Entities loop panics.
func (s *Spawner) ResolveRequests() {
	if s.resolving {
		panic("ecs: ResolveRequests called while already resolving")
	}
	if s.iterating > 0 {
		panic("ecs: ResolveRequests called while iterating the live set")
	}
	if len(s.spawnRequests) == 0 && len(s.destroyRequests) == 0 && len(s.defers) == 0 {
		return
	}

	s.resolving = true
	defer func() { s.resolving = false }()
	s.generation++
	s.revision++

	s.resolveSpawns()
	s.resolveDestroys()

	if len(s.defers) > 0 {
		defers := s.defers
		s.defers = nil
		for _, fn := range defers {
			fn()
		}
	}
}

func (s *Spawner) resolveSpawns() {
	if len(s.spawnRequests) == 0 {
		return
	}

	pending := s.spawnRequests
	s.spawnRequests = nil

	for _, e := range pending {
		s.entities = append(s.entities, e)
		s.index.Put(e.id, e)
	}
	for _, e := range pending {
		e.EnterPlay()
	}
}

func (s *Spawner) resolveDestroys() {
	if len(s.destroyRequests) == 0 {
		return
	}

	requests, doomed := s.destroyRequests, s.destroySet
	s.destroyRequests = nil
	s.destroySet = intmap.New[EntityID, struct{}](16)

	for _, id := range requests {
		if _, ok := s.index.Get(id); !ok {
			s.log.Warn("destroy requested for unknown entity", zap.Uint32("entity", uint32(id)))
		}
	}

	isDoomed := func(e *Entity) bool {
		_, ok := doomed.Get(e.id)
		return ok
	}

	for _, e := range s.entities {
		if isDoomed(e) {
			e.ExitPlay()
		}
	}

	s.entities = slices.DeleteFunc(s.entities, func(e *Entity) bool {
		if !isDoomed(e) {
			return false
		}
		s.index.Del(e.id)
		e.spawner = nil
		return true
	})
}

// Shutdown cancels every pending spawn and destroys every live entity, so
// ExitPlay runs for everything that entered play.
func (s *Spawner) Shutdown() {
	for _, e := range s.spawnRequests {
		e.spawner = nil
	}
	s.spawnRequests = nil
	for _, e := range s.entities {
		s.requestDestroy(e.id)
	}
	s.ResolveRequests()
}

// Entities yields the live set in spawn order.
func (s *Spawner) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		s.iterating++
		defer func() { s.iterating-- }()
		for _, e := range s.entities {
			if !yield(e) {
				return
			}
		}
	}
}

// Entity looks up a live entity.
func (s *Spawner) Entity(id EntityID) (*Entity, bool) {
	return s.index.Get(id)
}

// Len returns the size of the live set.
func (s *Spawner) Len() int { return len(s.entities) }

func (s *Spawner) PendingSpawns() int { return len(s.spawnRequests) }

func (s *Spawner) PendingDestroys() int { return len(s.destroyRequests) }

// Generation counts resolutions that had work to do.
func (s *Spawner) Generation() uint64 { return s.generation }

// Revision changes whenever the live set or a live entity's shape changes:
// every resolution, components added to an owned entity and ticking toggles.
func (s *Spawner) Revision() uint64 { return s.revision }

func (s *Spawner) touch() { s.revision++ }

// Tick dispatches Tick to every ticking live entity.
func (s *Spawner) Tick(dt float32) {
	s.iterating++
	defer func() { s.iterating-- }()
	for _, e := range s.entities {
		if e.ticking {
			e.Tick(dt)
		}
	}
}

func (s *Spawner) PhysicsTick(fixedDt float32) {
	s.iterating++
	defer func() { s.iterating-- }()
	for _, e := range s.entities {
		e.PhysicsTick(fixedDt)
	}
}

func (s *Spawner) RenderTick(dt float32, q *render.Queue) {
	s.iterating++
	defer func() { s.iterating-- }()
	for _, e := range s.entities {
		e.RenderTick(dt, q)
	}
}
