package input

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

type ActionMapping struct {
	Name string
	Keys []Key
}

type AxisMapping struct {
	Name         string
	Acceleration float32
	Deceleration float32
	Positive     []Key
	Negative     []Key
}

// Mappings is a compiled, immutable input table. Actions and axes are sorted
// by name so event order within a frame is deterministic.
type Mappings struct {
	Actions []ActionMapping
	Axes    []AxisMapping

	relevant []Key
}

// Compile resolves every key name in cfg. Any unresolvable name fails the
// whole compilation.
func Compile(cfg Config, resolver KeyResolver) (*Mappings, error) {
	m := &Mappings{}
	seen := make(map[Key]struct{})

	resolve := func(owner string, names []string) ([]Key, error) {
		keys := make([]Key, 0, len(names))
		for _, name := range names {
			k, ok := resolver.ResolveKey(name)
			if !ok {
				return nil, fmt.Errorf("%s: %w %q", owner, ErrUnknownKey, name)
			}
			keys = append(keys, k)
			seen[k] = struct{}{}
		}
		return keys, nil
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.ActionMappings)) {
		keys, err := resolve("action "+name, cfg.ActionMappings[name])
		if err != nil {
			return nil, err
		}
		m.Actions = append(m.Actions, ActionMapping{Name: name, Keys: keys})
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.AxisMappings)) {
		ac := cfg.AxisMappings[name]
		if ac.Acceleration < 0 || ac.Deceleration < 0 {
			return nil, fmt.Errorf("axis %s: %w: acceleration and deceleration must not be negative", name, ErrInvalidAxis)
		}
		pos, err := resolve("axis "+name, ac.Positive)
		if err != nil {
			return nil, err
		}
		neg, err := resolve("axis "+name, ac.Negative)
		if err != nil {
			return nil, err
		}
		m.Axes = append(m.Axes, AxisMapping{
			Name:         name,
			Acceleration: ac.Acceleration,
			Deceleration: ac.Deceleration,
			Positive:     pos,
			Negative:     neg,
		})
	}

	m.relevant = slices.Sorted(maps.Keys(seen))
	return m, nil
}

// RelevantKeys is the union of every key referenced by an action or axis.
// Only these keys are polled each frame.
func (m *Mappings) RelevantKeys() []Key {
	return m.relevant
}

func (m *Mappings) Action(name string) (ActionMapping, bool) {
	i, ok := slices.BinarySearchFunc(m.Actions, name, func(a ActionMapping, name string) int {
		return cmp.Compare(a.Name, name)
	})
	if !ok {
		return ActionMapping{}, false
	}
	return m.Actions[i], true
}

func (m *Mappings) Axis(name string) (AxisMapping, bool) {
	i, ok := m.axisIndex(name)
	if !ok {
		return AxisMapping{}, false
	}
	return m.Axes[i], true
}

func (m *Mappings) axisIndex(name string) (int, bool) {
	return slices.BinarySearchFunc(m.Axes, name, func(a AxisMapping, name string) int {
		return cmp.Compare(a.Name, name)
	})
}
