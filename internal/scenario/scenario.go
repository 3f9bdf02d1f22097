// Package scenario loads and runs scripted dispatch scenarios. A scenario
// is a TOML file declaring a slot count, a cast of entities, and a step
// list (spawn, destroy, register, unregister, drop, emit); running it
// replays the steps against a fresh world and emitter and records every
// delivery. An optional expect list turns a scenario into a checked
// fixture.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/slotcast/slotcast"
	"github.com/slotcast/slotcast/internal/world"
)

// MaxSlots caps the emitter size a scenario file may request. Scenario
// files are demo rigs, not production sizing.
const MaxSlots = 64

// Validation and run errors.
var (
	ErrSlotsRange      = errors.New("slots must be between 1 and 64")
	ErrEmptyEntityName = errors.New("entity name cannot be empty")
	ErrDuplicateEntity = errors.New("duplicate entity name")
	ErrUnknownOp       = errors.New("unknown step op")
	ErrUnknownEntity   = errors.New("step references unknown entity")
	ErrExpectMismatch  = errors.New("deliveries did not match expect")
)

// Scenario is a parsed scenario file.
type Scenario struct {
	// Name labels log lines and the run summary. Defaults to the file
	// name when loaded from disk.
	Name string `toml:"name"`

	// Slots is the emitter's slot count.
	Slots int `toml:"slots"`

	// Expect, when non-empty, is the exact delivery transcript
	// ("entity.callback" per line) the run must produce.
	Expect []string `toml:"expect"`

	// Entities spawned before the first step runs.
	Entities []EntityDef `toml:"entities"`

	// Steps run in order.
	Steps []Step `toml:"steps"`
}

// EntityDef declares an entity spawned at scenario start.
type EntityDef struct {
	Name string `toml:"name"`
}

// Step is one scripted operation.
type Step struct {
	// Op is one of: spawn, destroy, register, unregister, drop, emit.
	Op string `toml:"op"`

	// Slot for register, unregister and emit.
	Slot int `toml:"slot"`

	// Entity for spawn, destroy, register, unregister and drop.
	Entity string `toml:"entity"`

	// Callback for register and unregister.
	Callback string `toml:"callback"`
}

// Load reads and validates the scenario at path. An empty name defaults
// to the file's base name.
func Load(path string) (*Scenario, error) {
	var sc Scenario
	if _, err := toml.DecodeFile(path, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

// Parse decodes and validates scenario data, for callers holding bytes
// (embedded files, tests).
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := toml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks scenario structure: the slot count, the entity
// declarations, the op names, and that every step references a declared or
// previously spawned entity. Slot numbers and callback names inside steps
// are deliberately not range-checked; out-of-range and empty values flow
// through to the dispatcher so scenarios can demonstrate its diagnostics.
func (sc *Scenario) Validate() error {
	if sc.Slots < 1 || sc.Slots > MaxSlots {
		return fmt.Errorf("%w: got %d", ErrSlotsRange, sc.Slots)
	}
	known := make(map[string]bool, len(sc.Entities))
	for _, def := range sc.Entities {
		if def.Name == "" {
			return ErrEmptyEntityName
		}
		if known[def.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateEntity, def.Name)
		}
		known[def.Name] = true
	}
	for i, st := range sc.Steps {
		switch st.Op {
		case "spawn":
			if st.Entity == "" {
				return fmt.Errorf("step %d: %w", i+1, ErrEmptyEntityName)
			}
			known[st.Entity] = true
		case "destroy", "drop", "register", "unregister":
			if !known[st.Entity] {
				return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownEntity, st.Entity)
			}
		case "emit":
		default:
			return fmt.Errorf("step %d: %w: %q", i+1, ErrUnknownOp, st.Op)
		}
	}
	return nil
}

// Report is the outcome of a run.
type Report struct {
	// Deliveries lists every callback delivery as "entity.callback", in
	// order.
	Deliveries []string
}

// probe receives deliveries for one scenario entity.
type probe struct {
	entity string
	report *Report
	out    io.Writer
}

func (p *probe) Receive(callback string) error {
	line := p.entity + "." + callback
	p.report.Deliveries = append(p.report.Deliveries, line)
	if p.out != nil {
		fmt.Fprintln(p.out, line)
	}
	return nil
}

var _ slotcast.Host[*world.Entity] = (*world.World)(nil)

// Run replays the scenario against a fresh world and emitter. Each
// delivery is appended to the report and written to out (if non-nil) as
// "entity.callback". Dispatcher diagnostics go to logger. A delivery error
// or an expect mismatch fails the run; the report is returned either way.
func Run(sc *Scenario, out io.Writer, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	report := &Report{}
	w := world.New(world.WithLogger(logger))
	em := slotcast.New[*world.Entity](w, sc.Slots,
		slotcast.WithLogger(logger),
		slotcast.WithName(sc.Name),
	)

	bind := make(map[string]*world.Entity)
	spawn := func(name string) {
		bind[name] = w.Spawn(name, &probe{entity: name, report: report, out: out})
	}
	for _, def := range sc.Entities {
		spawn(def.Name)
	}

	for i, st := range sc.Steps {
		switch st.Op {
		case "spawn":
			spawn(st.Entity)
		case "destroy":
			w.Destroy(bind[st.Entity])
		case "register":
			em.Register(st.Slot, bind[st.Entity], st.Callback)
		case "unregister":
			em.Unregister(st.Slot, bind[st.Entity], st.Callback)
		case "drop":
			em.Drop(bind[st.Entity])
		case "emit":
			if err := em.Emit(st.Slot); err != nil {
				return report, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}

	if len(sc.Expect) > 0 {
		if err := report.check(sc.Expect); err != nil {
			return report, err
		}
	}
	return report, nil
}

// check compares the recorded deliveries against the expect list.
func (r *Report) check(expect []string) error {
	if len(r.Deliveries) != len(expect) {
		return fmt.Errorf("%w: expected %d deliveries, got %d (%v)",
			ErrExpectMismatch, len(expect), len(r.Deliveries), r.Deliveries)
	}
	for i := range expect {
		if r.Deliveries[i] != expect[i] {
			return fmt.Errorf("%w: delivery %d: expected %q, got %q",
				ErrExpectMismatch, i+1, expect[i], r.Deliveries[i])
		}
	}
	return nil
}
