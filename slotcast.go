// Package slotcast provides a per-object event dispatcher. An Emitter owns
// a fixed range of integer slots; handlers register against a slot with the
// name of a callback to run, and Emit walks one slot's registrations in
// order, asking the host to deliver each callback.
//
// The emitter never calls handlers itself. A Host supplies the two
// capabilities the emitter lacks: deciding whether a handler reference is
// still valid, and delivering a named callback to it. This keeps the
// dispatcher independent of how handlers are represented, whether they are
// world entities, Lua actors, or plain test doubles.
//
// An Emitter is confined to a single goroutine; it holds no locks. It is
// safe to call Emit from inside a delivery, and the emitter tracks the
// broadcast depth so that structural changes (Register, Unregister, Drop)
// arriving while any broadcast is running are rejected with a diagnostic
// instead of corrupting the iteration.
//
// Misuse is fail-soft throughout: bad slots, invalid handler references and
// empty callback names are logged and ignored rather than returned as
// errors. The only error surfaced to callers is a delivery failure from the
// host, which aborts the remainder of that broadcast.
package slotcast

import (
	"fmt"
	"log/slog"

	"github.com/slotcast/slotcast/seq"
)

// Host connects an Emitter to the object system it dispatches into. H is
// the handler reference type; it must support == so registrations can be
// matched for removal.
type Host[H comparable] interface {
	// Valid reports whether h still refers to a live handler. The zero
	// value of H is never valid.
	Valid(h H) bool

	// Deliver runs the named callback on h. The emitter only calls Deliver
	// for handlers that passed Valid moments before, but a host must still
	// tolerate a handler dying between the two calls.
	Deliver(h H, callback string) error
}

// entries holds one slot's registrations as two index-aligned sequences.
// Position i of names is the callback for position i of handlers; every
// edit changes both in lockstep, so the pairing can never skew.
type entries[H comparable] struct {
	handlers []H
	names    []string
}

// Emitter dispatches named callbacks to handlers registered on integer
// slots. Create one with New. All methods must be called from the same
// goroutine.
type Emitter[H comparable] struct {
	host  Host[H]
	log   *slog.Logger
	count int

	// depth counts nested broadcasts. Structural changes are rejected
	// whenever it is nonzero.
	depth int

	// table is nil until the first Register, so emitters on objects that
	// never gain a subscriber cost two words.
	table []entries[H]
}

// Option configures an Emitter created by New.
type Option func(*options)

type options struct {
	logger *slog.Logger
	name   string
}

// WithLogger sets the logger used for diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithName attaches a name to the emitter's log lines, useful when many
// emitters share one logger.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// New returns an Emitter dispatching into host across slots consecutive
// slots numbered from 0. A negative slot count is logged and treated as
// zero. New panics if host is nil.
func New[H comparable](host Host[H], slots int, opts ...Option) *Emitter[H] {
	if host == nil {
		panic("slotcast: New called with nil host")
	}
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if o.name != "" {
		log = log.With("emitter", o.name)
	}
	if slots < 0 {
		log.Error("negative slot count, using zero", "slots", slots)
		slots = 0
	}
	return &Emitter[H]{host: host, log: log, count: slots}
}

// Slots returns the number of slots the emitter was created with.
func (e *Emitter[H]) Slots() int {
	return e.count
}

// Registered returns the number of registrations currently held for slot.
// Out-of-range slots report zero.
func (e *Emitter[H]) Registered(slot int) int {
	if e.table == nil || slot < 0 || slot >= e.count {
		return 0
	}
	return len(e.table[slot].handlers)
}

// init allocates the registry on first use.
func (e *Emitter[H]) init() {
	if e.table == nil {
		e.table = make([]entries[H], e.count)
	}
}

// Register adds a registration for callback on h against slot. Duplicates
// are allowed and each fires separately, in registration order. Invalid
// arguments are logged and ignored, and registration is rejected while a
// broadcast is running. Stale registrations across all slots are swept
// before the new one is added.
func (e *Emitter[H]) Register(slot int, h H, callback string) {
	e.init()
	if !e.host.Valid(h) {
		e.log.Error("register rejected: invalid handler", "slot", slot, "callback", callback, "handler", h)
		return
	}
	if slot < 0 || slot >= e.count {
		e.log.Error("register rejected: slot out of range", "slot", slot, "slots", e.count, "callback", callback)
		return
	}
	if callback == "" {
		e.log.Error("register rejected: empty callback name", "slot", slot, "handler", h)
		return
	}
	if e.depth > 0 {
		e.log.Error("register rejected: broadcast in progress", "slot", slot, "callback", callback, "handler", h)
		return
	}
	e.sweep()
	s := &e.table[slot]
	s.handlers = seq.Append(s.handlers, h)
	s.names = seq.Append(s.names, callback)
}

// Unregister removes the oldest registration matching (h, callback) on
// slot, leaving any later duplicates in place. Removing a registration that
// does not exist is a silent no-op, as is unregistering before anything was
// ever registered. Invalid arguments are logged and ignored, and removal is
// rejected while a broadcast is running. Stale registrations are swept
// before the match is searched for.
func (e *Emitter[H]) Unregister(slot int, h H, callback string) {
	if e.table == nil {
		return
	}
	if !e.host.Valid(h) {
		e.log.Error("unregister rejected: invalid handler", "slot", slot, "callback", callback, "handler", h)
		return
	}
	if slot < 0 || slot >= e.count {
		e.log.Error("unregister rejected: slot out of range", "slot", slot, "slots", e.count, "callback", callback)
		return
	}
	if callback == "" {
		e.log.Error("unregister rejected: empty callback name", "slot", slot, "handler", h)
		return
	}
	if e.depth > 0 {
		e.log.Error("unregister rejected: broadcast in progress", "slot", slot, "callback", callback, "handler", h)
		return
	}
	e.sweep()
	s := &e.table[slot]
	for i := seq.Find(s.handlers, h, 0); i != seq.NotFound; i = seq.Find(s.handlers, h, i+1) {
		if s.names[i] == callback {
			s.handlers = seq.RemoveAt(s.handlers, i)
			s.names = seq.RemoveAt(s.names, i)
			return
		}
	}
}

// Drop removes every registration h holds, on every slot and under every
// callback name. Unlike Unregister it works on handlers that are no longer
// valid, so hosts can call it while tearing a handler down. Only the zero
// reference is rejected. Removal is rejected while a broadcast is running.
func (e *Emitter[H]) Drop(h H) {
	var zero H
	if h == zero {
		e.log.Error("drop rejected: zero handler reference")
		return
	}
	if e.table == nil {
		return
	}
	if e.depth > 0 {
		e.log.Error("drop rejected: broadcast in progress", "handler", h)
		return
	}
	for si := range e.table {
		s := &e.table[si]
		for i := seq.Find(s.handlers, h, 0); i != seq.NotFound; i = seq.Find(s.handlers, h, i) {
			s.handlers = seq.RemoveAt(s.handlers, i)
			s.names = seq.RemoveAt(s.names, i)
		}
	}
}

// Emit broadcasts slot: every registration is visited in order and its
// callback handed to the host for delivery. Registrations whose handler is
// no longer valid are logged and skipped, but stay in the registry until
// the next structural change sweeps them.
//
// Emit is meant to be called by the component that owns the emitter.
// Emitting from inside a delivery is allowed and nests; emitting before
// anything was registered, or on an out-of-range slot, is a no-op. The
// first delivery error aborts the broadcast and is returned.
func (e *Emitter[H]) Emit(slot int) error {
	if e.table == nil {
		return nil
	}
	if slot < 0 || slot >= e.count {
		e.log.Error("emit rejected: slot out of range", "slot", slot, "slots", e.count)
		return nil
	}
	e.depth++
	defer func() { e.depth-- }()
	s := &e.table[slot]
	for i := 0; i < len(s.handlers); i++ {
		h := s.handlers[i]
		if !e.host.Valid(h) {
			e.log.Warn("skipping stale handler", "slot", slot, "callback", s.names[i], "handler", h)
			continue
		}
		if err := e.host.Deliver(h, s.names[i]); err != nil {
			return fmt.Errorf("deliver %q on slot %d: %w", s.names[i], slot, err)
		}
	}
	return nil
}

// sweep removes registrations whose handler the host no longer considers
// valid, across all slots. Runs only between broadcasts.
func (e *Emitter[H]) sweep() {
	var zero H
	dropped := 0
	for si := range e.table {
		s := &e.table[si]
		keep := 0
		for i := range s.handlers {
			if e.host.Valid(s.handlers[i]) {
				s.handlers[keep] = s.handlers[i]
				s.names[keep] = s.names[i]
				keep++
			} else {
				dropped++
			}
		}
		// Zero the tail so stale references are released.
		for i := keep; i < len(s.handlers); i++ {
			s.handlers[i] = zero
			s.names[i] = ""
		}
		s.handlers = s.handlers[:keep]
		s.names = s.names[:keep]
	}
	if dropped > 0 {
		e.log.Debug("swept stale registrations", "dropped", dropped)
	}
}
