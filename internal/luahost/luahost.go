// Package luahost embeds a Lua interpreter as a dispatch host. Scripts
// spawn actors (named tables of callback functions), build emitters over
// them, and drive broadcasts; each delivery calls back into the actor's
// table.
//
// The Lua surface is a single `slotcast` global:
//
//	local door = slotcast.spawn("door", { _OnOpened = function(self) ... end })
//	local e = slotcast.emitter(2, "door-events")
//	e:register(0, door, "_OnOpened")
//	e:emit(0)
//	slotcast.destroy(door)
//
// A Host and everything spawned from it is confined to one goroutine;
// gopher-lua's LState is not goroutine-safe.
package luahost

import (
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/slotcast/slotcast"
	"github.com/slotcast/slotcast/internal/logging"
)

const (
	actorType   = "slotcast.actor"
	emitterType = "slotcast.emitter"
)

// Actor is a Lua-side handler: a named table whose fields are callback
// functions. Destroying an actor marks it dead; the table stays alive on
// the Lua side but the dispatcher treats the actor as stale.
type Actor struct {
	name string
	tbl  *lua.LTable
	dead bool
}

// Name returns the name the actor was spawned with.
func (a *Actor) Name() string { return a.name }

// String returns the actor's name for logs and errors.
func (a *Actor) String() string {
	if a == nil {
		return "<nil>"
	}
	return a.name
}

// Host owns a Lua state and implements slotcast.Host over actors.
type Host struct {
	L   *lua.LState
	log *slog.Logger
}

var _ slotcast.Host[*Actor] = (*Host)(nil)

// New returns a Host with a fresh Lua state and the slotcast module
// registered. Callers must Close it.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{L: lua.NewState(), log: logger}
	h.register()
	return h
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.L.Close()
}

// Spawn creates a live actor named name backed by tbl.
func (h *Host) Spawn(name string, tbl *lua.LTable) *Actor {
	a := &Actor{name: name, tbl: tbl}
	h.log.Debug("spawned actor", "actor", a)
	return a
}

// Destroy marks a dead. Destroying nil or an already-dead actor is a
// no-op.
func (h *Host) Destroy(a *Actor) {
	if a == nil || a.dead {
		return
	}
	a.dead = true
	h.log.Debug("destroyed actor", "actor", a)
}

// Valid implements slotcast.Host.
func (h *Host) Valid(a *Actor) bool {
	return a != nil && !a.dead
}

// Deliver implements slotcast.Host: it resolves callback in the actor's
// table and calls it with the table as self. A missing or non-function
// field, and any error raised by the callback, comes back as an error.
func (h *Host) Deliver(a *Actor, callback string) error {
	if a == nil || a.dead {
		return fmt.Errorf("deliver to dead actor %v", a)
	}
	fn := h.L.GetField(a.tbl, callback)
	lf, ok := fn.(*lua.LFunction)
	if !ok {
		return fmt.Errorf("actor %s has no callback %q", a.name, callback)
	}
	h.L.Push(lf)
	h.L.Push(a.tbl)
	if err := h.L.PCall(1, 0, nil); err != nil {
		return fmt.Errorf("actor %s: %s: %w", a.name, callback, err)
	}
	return nil
}

// RunFile executes the Lua script at path. A panic escaping the Lua
// bindings is logged and returned as an error.
func (h *Host) RunFile(path string) (err error) {
	defer logging.LogPanic("lua-run", func(r any) {
		err = fmt.Errorf("lua: panic: %v", r)
	})
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// RunString executes src as a Lua chunk.
func (h *Host) RunString(src string) (err error) {
	defer logging.LogPanic("lua-run", func(r any) {
		err = fmt.Errorf("lua: panic: %v", r)
	})
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// register installs the slotcast module and the actor/emitter metatables
// into the host's Lua state.
func (h *Host) register() {
	L := h.L

	mtActor := L.NewTypeMetatable(actorType)
	L.SetField(mtActor, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(checkActor(L, 1).name))
		return 1
	}))
	L.SetField(mtActor, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"name": func(L *lua.LState) int {
			L.Push(lua.LString(checkActor(L, 1).name))
			return 1
		},
		"alive": func(L *lua.LState) int {
			L.Push(lua.LBool(!checkActor(L, 1).dead))
			return 1
		},
	}))

	mtEmitter := L.NewTypeMetatable(emitterType)
	L.SetField(mtEmitter, "__index", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"slots":      h.luaSlots,
		"registered": h.luaRegistered,
		"register":   h.luaRegister,
		"unregister": h.luaUnregister,
		"drop":       h.luaDrop,
		"emit":       h.luaEmit,
	}))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"spawn":   h.luaSpawn,
		"destroy": h.luaDestroy,
		"emitter": h.luaEmitter,
	})
	L.SetGlobal("slotcast", mod)
}

// slotcast.spawn(name, table) -> actor
func (h *Host) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	tbl := L.CheckTable(2)
	ud := L.NewUserData()
	ud.Value = h.Spawn(name, tbl)
	L.SetMetatable(ud, L.GetTypeMetatable(actorType))
	L.Push(ud)
	return 1
}

// slotcast.destroy(actor)
func (h *Host) luaDestroy(L *lua.LState) int {
	h.Destroy(checkActor(L, 1))
	return 0
}

// slotcast.emitter(slots [, name]) -> emitter
func (h *Host) luaEmitter(L *lua.LState) int {
	slots := L.CheckInt(1)
	name := L.OptString(2, "")
	opts := []slotcast.Option{slotcast.WithLogger(h.log)}
	if name != "" {
		opts = append(opts, slotcast.WithName(name))
	}
	ud := L.NewUserData()
	ud.Value = slotcast.New[*Actor](h, slots, opts...)
	L.SetMetatable(ud, L.GetTypeMetatable(emitterType))
	L.Push(ud)
	return 1
}

// emitter:slots() -> number
func (h *Host) luaSlots(L *lua.LState) int {
	L.Push(lua.LNumber(checkEmitter(L, 1).Slots()))
	return 1
}

// emitter:registered(slot) -> number
func (h *Host) luaRegistered(L *lua.LState) int {
	em := checkEmitter(L, 1)
	L.Push(lua.LNumber(em.Registered(L.CheckInt(2))))
	return 1
}

// emitter:register(slot, actor, callback)
func (h *Host) luaRegister(L *lua.LState) int {
	em := checkEmitter(L, 1)
	em.Register(L.CheckInt(2), checkActor(L, 3), L.CheckString(4))
	return 0
}

// emitter:unregister(slot, actor, callback)
func (h *Host) luaUnregister(L *lua.LState) int {
	em := checkEmitter(L, 1)
	em.Unregister(L.CheckInt(2), checkActor(L, 3), L.CheckString(4))
	return 0
}

// emitter:drop(actor)
func (h *Host) luaDrop(L *lua.LState) int {
	checkEmitter(L, 1).Drop(checkActor(L, 2))
	return 0
}

// emitter:emit(slot)
func (h *Host) luaEmit(L *lua.LState) int {
	if err := checkEmitter(L, 1).Emit(L.CheckInt(2)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func checkActor(L *lua.LState, n int) *Actor {
	ud := L.CheckUserData(n)
	if a, ok := ud.Value.(*Actor); ok {
		return a
	}
	L.ArgError(n, "actor expected")
	return nil
}

func checkEmitter(L *lua.LState, n int) *slotcast.Emitter[*Actor] {
	ud := L.CheckUserData(n)
	if em, ok := ud.Value.(*slotcast.Emitter[*Actor]); ok {
		return em
	}
	L.ArgError(n, "emitter expected")
	return nil
}
