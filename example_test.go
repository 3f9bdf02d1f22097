package slotcast_test

import (
	"fmt"

	"github.com/slotcast/slotcast"
)

// roomHost delivers callbacks to named members of a room. Validity is
// membership: once a member leaves, their registrations go stale.
type roomHost struct {
	online map[string]bool
}

func (h *roomHost) Valid(member string) bool { return h.online[member] }

func (h *roomHost) Deliver(member, callback string) error {
	fmt.Printf("%s <- %s\n", member, callback)
	return nil
}

func Example() {
	const (
		slotJoined = iota
		slotLeft
	)

	host := &roomHost{online: map[string]bool{"ana": true, "bo": true}}
	em := slotcast.New[string](host, 2)

	em.Register(slotJoined, "ana", "_OnJoin")
	em.Register(slotJoined, "bo", "_OnJoin")
	em.Register(slotLeft, "ana", "_OnLeave")

	em.Emit(slotJoined)

	em.Unregister(slotJoined, "bo", "_OnJoin")
	em.Emit(slotJoined)
	em.Emit(slotLeft)

	// Output:
	// ana <- _OnJoin
	// bo <- _OnJoin
	// ana <- _OnJoin
	// ana <- _OnLeave
}
