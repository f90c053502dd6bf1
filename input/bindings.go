package input

import "slices"

// BindingID identifies one callback in a Bindings registry.
type BindingID int

const InvalidBindingID BindingID = 0

type axisBinding struct {
	id BindingID
	fn func(value float32)
}

type actionBinding struct {
	id BindingID
	fn func()
}

// Bindings routes mapper events to callbacks registered per axis or action
// name. Callbacks for one name run in bind order. Unbinding replaces the
// per-name list, so a callback may unbind itself or a sibling mid-dispatch.
type Bindings struct {
	nextID   BindingID
	axes     map[string][]axisBinding
	pressed  map[string][]actionBinding
	released map[string][]actionBinding
}

func NewBindings() *Bindings {
	return &Bindings{
		axes:     make(map[string][]axisBinding),
		pressed:  make(map[string][]actionBinding),
		released: make(map[string][]actionBinding),
	}
}

func (b *Bindings) BindAxis(name string, fn func(value float32)) BindingID {
	b.nextID++
	b.axes[name] = append(b.axes[name], axisBinding{id: b.nextID, fn: fn})
	return b.nextID
}

// BindAction registers fn for the Pressed or Released edge of an action.
// Binding the Axis type is meaningless and returns InvalidBindingID.
func (b *Bindings) BindAction(name string, t EventType, fn func()) BindingID {
	var table map[string][]actionBinding
	switch t {
	case Pressed:
		table = b.pressed
	case Released:
		table = b.released
	default:
		return InvalidBindingID
	}
	b.nextID++
	table[name] = append(table[name], actionBinding{id: b.nextID, fn: fn})
	return b.nextID
}

func (b *Bindings) UnbindAxis(name string, id BindingID) {
	unbind(b.axes, name, func(a axisBinding) bool { return a.id == id })
}

// UnbindAction removes id from both the Pressed and Released lists of name.
func (b *Bindings) UnbindAction(name string, id BindingID) {
	match := func(a actionBinding) bool { return a.id == id }
	unbind(b.pressed, name, match)
	unbind(b.released, name, match)
}

func unbind[T any](table map[string][]T, name string, match func(T) bool) {
	list, ok := table[name]
	if !ok {
		return
	}
	list = slices.DeleteFunc(slices.Clone(list), match)
	if len(list) == 0 {
		delete(table, name)
		return
	}
	table[name] = list
}

func (b *Bindings) Clear() {
	clear(b.axes)
	clear(b.pressed)
	clear(b.released)
}

// Len returns the number of registered callbacks.
func (b *Bindings) Len() int {
	n := 0
	for _, l := range b.axes {
		n += len(l)
	}
	for _, l := range b.pressed {
		n += len(l)
	}
	for _, l := range b.released {
		n += len(l)
	}
	return n
}

// Dispatch delivers ev to every callback bound to its name and type.
func (b *Bindings) Dispatch(ev Event) {
	switch ev.Type {
	case Axis:
		for _, a := range b.axes[ev.Name] {
			a.fn(ev.Value)
		}
	case Pressed:
		for _, a := range b.pressed[ev.Name] {
			a.fn()
		}
	case Released:
		for _, a := range b.released[ev.Name] {
			a.fn()
		}
	}
}
