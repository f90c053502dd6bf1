package debugui

import (
	"fmt"
	"reflect"

	"github.com/plus3/platform/ecs"
)

// Field is one inspectable struct field.
type Field struct {
	Name  string
	Index int
	// Type is the element type for pointer fields.
	Type     reflect.Type
	Indirect bool
	Exported bool
}

// Layout is the inspectable shape of one component type.
type Layout struct {
	TypeName string
	Fields   []Field
}

// Layouts memoizes component layouts by concrete type and by the type name
// the spawner reports in its statistics. It is only used from the render
// phase and is not safe for concurrent use.
type Layouts struct {
	byType map[reflect.Type][]Field
	byName map[string]*Layout
}

func NewLayouts() *Layouts {
	return &Layouts{
		byType: make(map[reflect.Type][]Field),
		byName: make(map[string]*Layout),
	}
}

// Of returns the layout of c's concrete type.
func (l *Layouts) Of(c ecs.Component) *Layout {
	name := fmt.Sprintf("%T", c)
	if layout, ok := l.byName[name]; ok {
		return layout
	}
	layout := &Layout{TypeName: name, Fields: l.Fields(reflect.TypeOf(c))}
	l.byName[name] = layout
	return layout
}

// ByName looks up a layout by component type name, as listed in
// ecs.ComponentTypeStats.
func (l *Layouts) ByName(typeName string) (*Layout, bool) {
	layout, ok := l.byName[typeName]
	return layout, ok
}

// Warm builds layouts for every component type in the live set and returns
// the number of known types.
func (l *Layouts) Warm(spawner *ecs.Spawner) int {
	for e := range spawner.Entities() {
		for c := range e.Components() {
			l.Of(c)
		}
	}
	return len(l.byName)
}

// Fields lists the fields of struct type t, or of the struct t points to.
// Unexported fields are listed so they can be shown read-only; unexported
// embedded fields are skipped.
func (l *Layouts) Fields(t reflect.Type) []Field {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if fields, ok := l.byType[t]; ok {
		return fields
	}

	var fields []Field
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if sf.Anonymous && !sf.IsExported() {
				continue
			}
			f := Field{Name: sf.Name, Index: i, Type: sf.Type, Exported: sf.IsExported()}
			if f.Type.Kind() == reflect.Pointer {
				f.Type = f.Type.Elem()
				f.Indirect = true
			}
			fields = append(fields, f)
		}
	}
	l.byType[t] = fields
	return fields
}

var layouts = NewLayouts()
