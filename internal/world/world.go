// Package world provides a small entity registry that acts as the default
// dispatch host: entities are spawned with a name and a receiver object,
// destroyed to invalidate them, and callbacks are delivered to receiver
// methods by name.
package world

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
)

// Receiver is the fast path for delivery. If an entity's receiver
// implements it, callbacks are handed to Receive instead of being resolved
// by reflection.
type Receiver interface {
	Receive(callback string) error
}

// Entity is a handle to a spawned object. The handle itself is the
// identity: two entities with the same name are still distinct, and a
// destroyed entity's handle never becomes valid again.
type Entity struct {
	id   string
	name string
	recv any
}

// ID returns the entity's unique id.
func (e *Entity) ID() string { return e.id }

// Name returns the name the entity was spawned with.
func (e *Entity) Name() string { return e.name }

// String returns "name#id" for logs and transcripts.
func (e *Entity) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.name + "#" + e.id
}

// World tracks live entities and delivers callbacks to them. It is
// confined to a single goroutine, like the emitters it hosts.
type World struct {
	log    *slog.Logger
	live   map[*Entity]struct{}
	byName map[string]*Entity
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for spawn/destroy debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(w *World) {
		w.log = logger
	}
}

// New returns an empty World.
func New(opts ...Option) *World {
	w := &World{
		log:    slog.Default(),
		live:   make(map[*Entity]struct{}),
		byName: make(map[string]*Entity),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Spawn creates a live entity named name whose callbacks are delivered to
// recv. Spawning a name that is already bound rebinds the name to the new
// entity; the old entity stays live until destroyed.
func (w *World) Spawn(name string, recv any) *Entity {
	e := &Entity{id: newID(), name: name, recv: recv}
	w.live[e] = struct{}{}
	w.byName[name] = e
	w.log.Debug("spawned entity", "entity", e)
	return e
}

// Destroy removes e from the world. Its handle stays usable for identity
// checks but is no longer valid. Destroying nil or an already-destroyed
// entity is a no-op.
func (w *World) Destroy(e *Entity) {
	if e == nil {
		return
	}
	if _, ok := w.live[e]; !ok {
		return
	}
	delete(w.live, e)
	if w.byName[e.name] == e {
		delete(w.byName, e.name)
	}
	w.log.Debug("destroyed entity", "entity", e)
}

// Valid reports whether e is live.
func (w *World) Valid(e *Entity) bool {
	if e == nil {
		return false
	}
	_, ok := w.live[e]
	return ok
}

// Lookup returns the live entity currently bound to name.
func (w *World) Lookup(name string) (*Entity, bool) {
	e, ok := w.byName[name]
	return e, ok
}

// Count returns the number of live entities.
func (w *World) Count() int {
	return len(w.live)
}

// Entities returns the live entities sorted by name, then id.
func (w *World) Entities() []*Entity {
	out := make([]*Entity, 0, len(w.live))
	for e := range w.live {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].name != out[j].name {
			return out[i].name < out[j].name
		}
		return out[i].id < out[j].id
	})
	return out
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Deliver runs the named callback on e's receiver. Receivers implementing
// Receiver get the name directly; otherwise the callback is resolved by
// reflection to an exported method taking no arguments and returning
// nothing or an error. Receivers should be pointers so pointer-receiver
// methods resolve.
func (w *World) Deliver(e *Entity, callback string) error {
	if !w.Valid(e) {
		return fmt.Errorf("deliver to dead entity %v", e)
	}
	if r, ok := e.recv.(Receiver); ok {
		if err := r.Receive(callback); err != nil {
			return fmt.Errorf("%v: %q: %w", e, callback, err)
		}
		return nil
	}
	rv := reflect.ValueOf(e.recv)
	if !rv.IsValid() {
		return fmt.Errorf("entity %v has no receiver", e)
	}
	m := rv.MethodByName(callback)
	if !m.IsValid() {
		return fmt.Errorf("entity %v has no callback %q", e, callback)
	}
	t := m.Type()
	if t.NumIn() != 0 {
		return fmt.Errorf("callback %q on %v must take no arguments", callback, e)
	}
	switch {
	case t.NumOut() == 0:
		m.Call(nil)
		return nil
	case t.NumOut() == 1 && t.Out(0) == errType:
		out := m.Call(nil)
		if err, _ := out[0].Interface().(error); err != nil {
			return fmt.Errorf("%v: %q: %w", e, callback, err)
		}
		return nil
	default:
		return fmt.Errorf("callback %q on %v has unsupported signature", callback, e)
	}
}

// newID returns a random 6-character hex id for an entity.
func newID() string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
