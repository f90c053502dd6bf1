package input

import (
	"slices"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// HandlerID identifies a registered event handler.
type HandlerID uint32

const InvalidHandlerID HandlerID = 0

type handler struct {
	id HandlerID
	fn func(Event)
}

// historySize bounds the recent edge-event trace kept for the debug UI.
const historySize = 32

// Mapper advances the input state once per frame and dispatches events.
type Mapper struct {
	log      *zap.Logger
	mappings *Mappings

	current  *intmap.Map[Key, struct{}]
	previous *intmap.Map[Key, struct{}]
	axes     []float32

	nextHandlerID HandlerID
	handlers      []handler

	history    [historySize]Event
	historyLen int
	historyPos int
	frames     uint64
}

func NewMapper(mappings *Mappings, log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	n := len(mappings.relevant)
	log.Debug("input mapper ready",
		zap.Int("actions", len(mappings.Actions)),
		zap.Int("axes", len(mappings.Axes)),
		zap.Int("keys", n),
	)
	return &Mapper{
		log:      log,
		mappings: mappings,
		current:  intmap.New[Key, struct{}](max(n, 8)),
		previous: intmap.New[Key, struct{}](max(n, 8)),
		axes:     make([]float32, len(mappings.Axes)),
	}
}

func (m *Mapper) Mappings() *Mappings { return m.mappings }

// AddHandler registers fn for every event. Handlers run in registration order.
func (m *Mapper) AddHandler(fn func(Event)) HandlerID {
	m.nextHandlerID++
	m.handlers = append(m.handlers, handler{id: m.nextHandlerID, fn: fn})
	return m.nextHandlerID
}

// RemoveHandler unregisters a handler. It is safe to call from inside a
// handler; the removal takes effect from the next event.
func (m *Mapper) RemoveHandler(id HandlerID) bool {
	i := slices.IndexFunc(m.handlers, func(h handler) bool { return h.id == id })
	if i < 0 {
		return false
	}
	m.handlers = slices.Delete(slices.Clone(m.handlers), i, i+1)
	return true
}

func (m *Mapper) HandlerCount() int { return len(m.handlers) }

// Tick polls kb for the relevant keys, emits Pressed and Released for every
// key edge of every action, then integrates and emits every axis.
//
// Two keys bound to one action that change state in the same frame each emit
// their own event.
func (m *Mapper) Tick(dt float32, kb KeyboardState) {
	m.frames++
	m.previous, m.current = m.current, m.previous
	m.current.Clear()
	for _, k := range m.mappings.relevant {
		if kb.IsKeyPressed(k) {
			m.current.Put(k, struct{}{})
		}
	}

	for _, action := range m.mappings.Actions {
		for _, k := range action.Keys {
			now, before := m.isDown(m.current, k), m.isDown(m.previous, k)
			switch {
			case now && !before:
				m.emit(Event{Type: Pressed, Name: action.Name})
			case before && !now:
				m.emit(Event{Type: Released, Name: action.Name})
			}
		}
	}

	for i, axis := range m.mappings.Axes {
		pos := m.anyDown(axis.Positive)
		neg := m.anyDown(axis.Negative)
		m.axes[i] = stepAxis(m.axes[i], axis, pos, neg, dt)
		m.emit(Event{Type: Axis, Name: axis.Name, Value: m.axes[i]})
	}
}

func stepAxis(v float32, axis AxisMapping, pos, neg bool, dt float32) float32 {
	switch {
	case pos == neg:
		step := axis.Deceleration * dt
		if v > 0 {
			return max(0, v-step)
		}
		if v < 0 {
			return min(0, v+step)
		}
		return 0
	case pos:
		return min(1, max(-1, v+axis.Acceleration*dt))
	default:
		return min(1, max(-1, v-axis.Acceleration*dt))
	}
}

func (m *Mapper) emit(ev Event) {
	if ev.Type != Axis {
		m.history[m.historyPos] = ev
		m.historyPos = (m.historyPos + 1) % historySize
		m.historyLen = min(m.historyLen+1, historySize)
	}

	handlers := m.handlers
	for _, h := range handlers {
		h.fn(ev)
	}
}

func (m *Mapper) isDown(set *intmap.Map[Key, struct{}], k Key) bool {
	_, ok := set.Get(k)
	return ok
}

func (m *Mapper) anyDown(keys []Key) bool {
	for _, k := range keys {
		if m.isDown(m.current, k) {
			return true
		}
	}
	return false
}

// AxisValue returns the current analog value of the named axis.
func (m *Mapper) AxisValue(name string) (float32, bool) {
	i, ok := m.mappings.axisIndex(name)
	if !ok {
		return 0, false
	}
	return m.axes[i], true
}

// IsActionDown reports whether any key bound to the named action is held.
func (m *Mapper) IsActionDown(name string) bool {
	action, ok := m.mappings.Action(name)
	if !ok {
		return false
	}
	return m.anyDown(action.Keys)
}

func (m *Mapper) IsKeyDown(k Key) bool {
	return m.isDown(m.current, k)
}

// RecentEvents returns the latest Pressed and Released events, oldest first.
func (m *Mapper) RecentEvents() []Event {
	out := make([]Event, 0, m.historyLen)
	start := (m.historyPos - m.historyLen + historySize) % historySize
	for i := range m.historyLen {
		out = append(out, m.history[(start+i)%historySize])
	}
	return out
}

// Frames counts calls to Tick.
func (m *Mapper) Frames() uint64 { return m.frames }

// Reset zeroes every axis and forgets all pressed keys without emitting events.
func (m *Mapper) Reset() {
	m.current.Clear()
	m.previous.Clear()
	clear(m.axes)
	m.log.Debug("input state reset")
}
