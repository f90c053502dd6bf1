package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/platform/ecs"
)

// maxInspectDepth bounds nested struct expansion; components may point at
// shared services such as the input mapper.
const maxInspectDepth = 4

func NewComponentInspector(spawner *ecs.Spawner, browser *EntityBrowser) *ComponentInspector {
	return &ComponentInspector{spawner: spawner, browser: browser}
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	selected := ci.browser.Selected()
	if selected == ecs.InvalidEntityID {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	e, ok := ci.spawner.Entity(selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d is no longer in play", selected))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.ID()))
	imgui.Text("Name: " + e.Name())
	ticking := e.IsTicking()
	if imgui.Checkbox("Ticking", &ticking) {
		e.SetTicking(ticking)
	}
	if imgui.Button("Destroy") {
		e.Destroy()
	}
	imgui.Separator()

	i := 0
	for comp := range e.Components() {
		label := fmt.Sprintf("%T (priority %d)##%d", comp, comp.Priority(), i)
		if imgui.TreeNodeStr(label) {
			ci.renderComponent(comp)
			imgui.TreePop()
		}
		i++
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(comp ecs.Component) {
	val := reflect.ValueOf(comp)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			imgui.Text("nil")
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val))
		return
	}
	ci.renderFields(val, layouts.Of(comp).Fields, "", 0)
}

func (ci *ComponentInspector) renderFields(val reflect.Value, fields []Field, idPrefix string, depth int) {
	for _, field := range fields {
		ci.renderField(field.Name, val.Field(field.Index), field, idPrefix+"."+field.Name, depth)
	}
}

// renderField draws one field. Exported fields of addressable values are
// editable in place; everything else is shown read-only.
func (ci *ComponentInspector) renderField(name string, val reflect.Value, field Field, id string, depth int) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.Indirect {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	if !(field.Exported && val.CanSet()) && !isContainer(val.Kind()) {
		imgui.Text(fmt.Sprintf("%s: %v", name, val))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) {
			val.SetString(v)
		}

	case reflect.Struct:
		if depth >= maxInspectDepth {
			imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))
			return
		}
		if imgui.TreeNodeStr(name + "##" + id) {
			ci.renderFields(val, layouts.Fields(val.Type()), id, depth+1)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val))
	}
}

func isContainer(k reflect.Kind) bool {
	return k == reflect.Struct || k == reflect.Slice || k == reflect.Map
}
