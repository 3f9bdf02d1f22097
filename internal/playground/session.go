package playground

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/slotcast/slotcast"
	"github.com/slotcast/slotcast/internal/logging"
	"github.com/slotcast/slotcast/internal/world"
)

// session owns the playground's world and emitter and turns typed commands
// into dispatcher calls. Dispatcher diagnostics are routed back into the
// transcript through a FuncHandler, so misuse shows up right where the
// offending command was typed.
type session struct {
	world   *world.World
	emitter *slotcast.Emitter[*world.Entity]
	slots   int
	history int // max transcript lines kept; <= 0 means unlimited
	lines   []string
}

// newSession creates a session with a fresh world and a single emitter.
func newSession(slots, history int) *session {
	s := &session{slots: slots, history: history}

	// Info keeps rejection and stale-skip diagnostics visible without the
	// debug-level sweep chatter.
	logger := slog.New(logging.NewFuncHandler(slog.LevelInfo, s.appendRecord))
	s.world = world.New(world.WithLogger(logger))
	s.emitter = slotcast.New[*world.Entity](s.world, slots,
		slotcast.WithLogger(logger),
		slotcast.WithName("playground"),
	)

	s.append(noticeStyle.Render(fmt.Sprintf("playground ready with %d slots", s.emitter.Slots())))
	s.append(noticeStyle.Render("type help for commands"))
	return s
}

// probe is the receiver behind every playground entity. Deliveries render
// as entity.callback lines in the transcript.
type probe struct {
	name string
	s    *session
}

func (p *probe) Receive(callback string) error {
	p.s.append(deliveryStyle.Render(p.name + "." + callback))
	return nil
}

// append adds a line to the transcript, trimming the oldest lines once the
// history cap is exceeded.
func (s *session) append(line string) {
	s.lines = append(s.lines, line)
	if s.history > 0 && len(s.lines) > s.history {
		s.lines = s.lines[len(s.lines)-s.history:]
	}
}

// appendRecord renders a log record into the transcript, colored by level.
func (s *session) appendRecord(r slog.Record) {
	var b strings.Builder
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	})

	line := b.String()
	switch {
	case r.Level >= slog.LevelError:
		line = errorLineStyle.Render(line)
	case r.Level >= slog.LevelWarn:
		line = warnLineStyle.Render(line)
	default:
		line = noticeStyle.Render(line)
	}
	s.append(line)
}

// exec runs a single command line. It returns true when the session should
// end. All failures render as transcript lines rather than errors; the
// playground never exits because of a bad command.
func (s *session) exec(input string) (quit bool) {
	defer logging.LogPanic("playground", func(r any) {
		s.append(errorLineStyle.Render(fmt.Sprintf("command panicked: %v", r)))
	})

	args := strings.Fields(input)
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "quit", "exit":
		return true

	case "help":
		s.printHelp()

	case "spawn":
		if len(args) != 2 {
			s.usage("spawn <name>")
			return false
		}
		name := args[1]
		if _, ok := s.world.Lookup(name); ok {
			s.fail("entity %q already exists", name)
			return false
		}
		e := s.world.Spawn(name, &probe{name: name, s: s})
		s.append(noticeStyle.Render(e.String() + " is live"))

	case "destroy":
		if len(args) != 2 {
			s.usage("destroy <name>")
			return false
		}
		e, ok := s.world.Lookup(args[1])
		if !ok {
			s.fail("no entity named %q", args[1])
			return false
		}
		s.world.Destroy(e)
		s.append(noticeStyle.Render(e.String() + " destroyed"))

	case "reg", "register":
		if len(args) != 4 {
			s.usage("reg <slot> <entity> <callback>")
			return false
		}
		slot, ok := s.slotArg(args[1])
		if !ok {
			return false
		}
		e, ok := s.world.Lookup(args[2])
		if !ok {
			s.fail("no entity named %q", args[2])
			return false
		}
		s.emitter.Register(slot, e, args[3])

	case "unreg", "unregister":
		if len(args) != 4 {
			s.usage("unreg <slot> <entity> <callback>")
			return false
		}
		slot, ok := s.slotArg(args[1])
		if !ok {
			return false
		}
		e, ok := s.world.Lookup(args[2])
		if !ok {
			s.fail("no entity named %q", args[2])
			return false
		}
		s.emitter.Unregister(slot, e, args[3])

	case "drop":
		if len(args) != 2 {
			s.usage("drop <name>")
			return false
		}
		e, ok := s.world.Lookup(args[1])
		if !ok {
			s.fail("no entity named %q", args[1])
			return false
		}
		s.emitter.Drop(e)

	case "emit":
		if len(args) != 2 {
			s.usage("emit <slot>")
			return false
		}
		slot, ok := s.slotArg(args[1])
		if !ok {
			return false
		}
		if err := s.emitter.Emit(slot); err != nil {
			s.fail("emit failed: %v", err)
		}

	case "entities", "ls":
		s.printEntities()

	default:
		s.fail("unknown command %q (try help)", args[0])
	}

	return false
}

// slotArg parses a slot number argument.
func (s *session) slotArg(arg string) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.fail("slot must be a number, got %q", arg)
		return 0, false
	}
	return n, true
}

func (s *session) usage(u string) {
	s.append(noticeStyle.Render("usage: " + u))
}

func (s *session) fail(format string, args ...any) {
	s.append(errorLineStyle.Render(fmt.Sprintf(format, args...)))
}

func (s *session) printEntities() {
	ents := s.world.Entities()
	if len(ents) == 0 {
		s.append(noticeStyle.Render("no live entities"))
		return
	}
	for _, e := range ents {
		s.append(noticeStyle.Render("  " + e.String()))
	}
}

func (s *session) printHelp() {
	help := []string{
		"  spawn <name>                  create an entity",
		"  destroy <name>                destroy an entity",
		"  reg <slot> <entity> <cb>      register a callback on a slot",
		"  unreg <slot> <entity> <cb>    remove one matching registration",
		"  drop <name>                   remove an entity from every slot",
		"  emit <slot>                   broadcast a slot",
		"  entities                      list live entities",
		"  quit                          leave the playground",
	}
	for _, line := range help {
		s.append(noticeStyle.Render(line))
	}
}
