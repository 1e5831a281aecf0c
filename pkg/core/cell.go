package core

import (
	"weak"

	"github.com/go-drift/crossview/pkg/errors"
)

// Identifier distinguishes several registrations of the same observer on one
// cell. Observers switch on it in Receive to tell which source changed.
type Identifier string

// DefaultIdentifier is used when Register is called without an identifier.
const DefaultIdentifier Identifier = ""

// Observer receives change notifications from a Cell.
//
// Concrete observers embed ObserverBase, which supplies the anchor a cell
// references weakly:
//
//	type badge struct {
//	    core.ObserverBase
//	    count *core.Cell[int]
//	}
//
//	func (b *badge) Receive(id core.Identifier) { ... }
type Observer interface {
	Receive(id Identifier)
	observerBase() *ObserverBase
}

// ObserverBase makes a struct usable as an Observer. It must be embedded by
// value in a struct that is always used through a pointer.
type ObserverBase struct {
	anchor *anchor
}

func (b *ObserverBase) observerBase() *ObserverBase { return b }

// anchor is the only object a cell references, and only weakly. The observer
// and its anchor point at each other, so the anchor lives exactly as long as
// the observer does.
type anchor struct {
	target Observer
}

func anchorOf(o Observer) *anchor {
	b := o.observerBase()
	if b.anchor == nil {
		b.anchor = &anchor{target: o}
	}
	return b.anchor
}

// ObserverFunc adapts a function to the Observer interface.
// The cell does not keep it alive; the caller must hold the returned pointer
// for as long as notifications are wanted.
type ObserverFunc struct {
	ObserverBase
	fn func(Identifier)
}

// NewObserverFunc wraps fn as an Observer.
func NewObserverFunc(fn func(id Identifier)) *ObserverFunc {
	return &ObserverFunc{fn: fn}
}

// Receive calls the wrapped function.
func (f *ObserverFunc) Receive(id Identifier) {
	if f.fn != nil {
		f.fn(id)
	}
}

type registration struct {
	ref       weak.Pointer[anchor]
	id        Identifier
	cancelled bool
}

// Cell holds one piece of mutable state and notifies registered observers
// whenever it is written.
//
// Cell is NOT thread-safe. Every read, write and notification happens on the
// UI thread. Writes notify synchronously: Set returns only after every live
// observer has handled the change, in registration order.
//
// Cell does not compare old and new values; callers that want to skip no-op
// writes check before calling Set.
type Cell[V any] struct {
	value      V
	regs       []*registration
	notifying  bool
	pruneStale bool
}

// NewCell creates a cell holding initial.
func NewCell[V any](initial V) *Cell[V] {
	return &Cell[V]{value: initial}
}

// Value returns the current value.
func (c *Cell[V]) Value() V {
	return c.value
}

// Set stores value and notifies every live observer exactly once per
// registration before returning.
//
// Writing a cell from inside one of its own notifications is a programmer
// error and fails fast. Writing other cells from a handler is allowed.
func (c *Cell[V]) Set(value V) {
	if c.notifying {
		errors.Fail("core.Cell.Set", errors.KindReentrant,
			"cell written from inside its own notification")
	}
	c.value = value
	c.notify()
}

// Update applies transform to the current value and stores the result.
func (c *Cell[V]) Update(transform func(V) V) {
	c.Set(transform(c.value))
}

func (c *Cell[V]) notify() {
	c.notifying = true
	defer func() {
		c.notifying = false
		if c.pruneStale {
			c.prune()
		}
	}()

	// Registrations added by a handler wait for the next write.
	snapshot := c.regs
	for _, reg := range snapshot {
		if reg.cancelled {
			continue
		}
		a := reg.ref.Value()
		if a == nil {
			reg.cancelled = true
			c.pruneStale = true
			continue
		}
		a.target.Receive(reg.id)
	}
}

// Register adds observer under id, or under DefaultIdentifier when id is
// omitted. Registering the same (observer, identifier) pair again is a no-op.
// The cell holds observer weakly: once nothing else references it, its
// registrations disappear.
func (c *Cell[V]) Register(observer Observer, id ...Identifier) {
	if observer == nil {
		errors.Fail("core.Cell.Register", errors.KindPrecondition, "nil observer")
	}
	ident := identifierArg(id)
	ref := weak.Make(anchorOf(observer))
	if c.find(ref, ident) >= 0 {
		return
	}
	c.regs = append(c.regs, &registration{ref: ref, id: ident})
}

// Cancel removes the (observer, identifier) registration. Cancelling a pair
// that was never registered does nothing. An observer cancelled while a
// notification is in flight is not notified for the rest of that pass.
func (c *Cell[V]) Cancel(observer Observer, id ...Identifier) {
	if observer == nil || observer.observerBase().anchor == nil {
		return
	}
	ref := weak.Make(observer.observerBase().anchor)
	i := c.find(ref, identifierArg(id))
	if i < 0 {
		return
	}
	c.regs[i].cancelled = true
	if c.notifying {
		c.pruneStale = true
		return
	}
	c.regs = append(c.regs[:i:i], c.regs[i+1:]...)
}

// CancelAll removes every registration held by observer.
func (c *Cell[V]) CancelAll(observer Observer) {
	if observer == nil || observer.observerBase().anchor == nil {
		return
	}
	ref := weak.Make(observer.observerBase().anchor)
	for _, reg := range c.regs {
		if reg.ref == ref {
			reg.cancelled = true
		}
	}
	c.pruneStale = true
	if !c.notifying {
		c.prune()
	}
}

// IsRegistered reports whether the (observer, identifier) pair is live.
func (c *Cell[V]) IsRegistered(observer Observer, id ...Identifier) bool {
	if observer == nil || observer.observerBase().anchor == nil {
		return false
	}
	return c.find(weak.Make(observer.observerBase().anchor), identifierArg(id)) >= 0
}

// ObserverCount returns the number of live registrations.
func (c *Cell[V]) ObserverCount() int {
	n := 0
	for _, reg := range c.regs {
		if !reg.cancelled && reg.ref.Value() != nil {
			n++
		}
	}
	return n
}

func (c *Cell[V]) find(ref weak.Pointer[anchor], id Identifier) int {
	for i, reg := range c.regs {
		if !reg.cancelled && reg.ref == ref && reg.id == id {
			return i
		}
	}
	return -1
}

// prune drops cancelled and collected registrations. A new slice is built so
// a snapshot held by an outer notification pass is never mutated.
func (c *Cell[V]) prune() {
	kept := make([]*registration, 0, len(c.regs))
	for _, reg := range c.regs {
		if reg.cancelled || reg.ref.Value() == nil {
			continue
		}
		kept = append(kept, reg)
	}
	c.regs = kept
	c.pruneStale = false
}

func identifierArg(id []Identifier) Identifier {
	if len(id) == 0 {
		return DefaultIdentifier
	}
	return id[0]
}
