package components

import (
	"fmt"

	"github.com/plus3/platform/ecs"
	"github.com/plus3/platform/input"
	"github.com/plus3/platform/vmath"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Script runs Lua behaviour for its entity. The chunk may define any of the
// globals enter_play(), tick(dt), physics_tick(dt) and exit_play(). Each
// script gets its own VM, created on EnterPlay and closed on ExitPlay.
//
// The chunk sees an "entity" table with id, position(), set_position(x, y),
// translate(dx, dy), destroy() and log(msg). When an input mapper is
// attached an "input" table offers axis(name) and down(action).
type Script struct {
	name   string
	source string
	mapper *input.Mapper

	vm  *lua.LState
	log *zap.Logger
}

func NewScript(name string, source []byte) *Script {
	return &Script{name: name, source: string(source)}
}

// UseInput exposes mapper to the script.
func (s *Script) UseInput(mapper *input.Mapper) *Script {
	s.mapper = mapper
	return s
}

func (s *Script) Priority() int { return ecs.PriorityDefault }

func (s *Script) Name() string { return s.name }

// Running reports whether the script loaded and has not exited.
func (s *Script) Running() bool { return s.vm != nil }

func (s *Script) EnterPlay(e *ecs.Entity) {
	s.log = e.Logger().With(zap.String("script", s.name))

	vm := lua.NewState()
	vm.SetGlobal("entity", s.entityTable(vm, e))
	if s.mapper != nil {
		vm.SetGlobal("input", s.inputTable(vm))
	}

	if err := vm.DoString(s.source); err != nil {
		s.log.Error("load lua script", zap.Error(err))
		vm.Close()
		return
	}
	s.vm = vm
	s.call("enter_play")
}

func (s *Script) Tick(e *ecs.Entity, dt float32) {
	s.call("tick", lua.LNumber(dt))
}

func (s *Script) PhysicsTick(e *ecs.Entity, fixedDt float32) {
	s.call("physics_tick", lua.LNumber(fixedDt))
}

func (s *Script) ExitPlay(e *ecs.Entity) {
	if s.vm == nil {
		return
	}
	s.call("exit_play")
	s.vm.Close()
	s.vm = nil
}

// call invokes a global function if the chunk defined it. Errors are logged
// and the frame goes on.
func (s *Script) call(name string, args ...lua.LValue) {
	if s.vm == nil {
		return
	}
	fn, ok := s.vm.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return
	}
	if err := s.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		s.log.Error("lua "+name+" error", zap.Error(err))
	}
}

func (s *Script) entityTable(vm *lua.LState, e *ecs.Entity) *lua.LTable {
	transform := func(L *lua.LState) *Transform {
		t, ok := ecs.GetComponent[*Transform](e)
		if !ok {
			L.RaiseError("entity %d has no transform", e.ID())
		}
		return t
	}

	t := vm.NewTable()
	t.RawSetString("id", lua.LNumber(e.ID()))
	t.RawSetString("position", vm.NewFunction(func(L *lua.LState) int {
		p := transform(L).Position()
		L.Push(lua.LNumber(p.X))
		L.Push(lua.LNumber(p.Y))
		return 2
	}))
	t.RawSetString("set_position", vm.NewFunction(func(L *lua.LState) int {
		x, y := L.CheckNumber(1), L.CheckNumber(2)
		transform(L).SetPosition(vmath.V(float32(x), float32(y)))
		return 0
	}))
	t.RawSetString("translate", vm.NewFunction(func(L *lua.LState) int {
		dx, dy := L.CheckNumber(1), L.CheckNumber(2)
		transform(L).Translate(vmath.V(float32(dx), float32(dy)))
		return 0
	}))
	t.RawSetString("destroy", vm.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(e.Destroy()))
		return 1
	}))
	t.RawSetString("log", vm.NewFunction(func(L *lua.LState) int {
		s.log.Info(L.CheckString(1))
		return 0
	}))
	return t
}

func (s *Script) inputTable(vm *lua.LState) *lua.LTable {
	t := vm.NewTable()
	t.RawSetString("axis", vm.NewFunction(func(L *lua.LState) int {
		v, _ := s.mapper.AxisValue(L.CheckString(1))
		L.Push(lua.LNumber(v))
		return 1
	}))
	t.RawSetString("down", vm.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(s.mapper.IsActionDown(L.CheckString(1))))
		return 1
	}))
	return t
}

func (s *Script) String() string {
	return fmt.Sprintf("Script(%s)", s.name)
}
