package core

// Scope collects cleanup functions for a widget and runs them when the widget
// is torn down. Embed it in widget structs that register with cells.
//
// Scope is NOT thread-safe. It must only be used from the UI thread.
type Scope struct {
	disposers []func()
	disposed  bool
}

// scoped is satisfied by any struct that embeds Scope.
// Hooks accept scoped so callers can pass their widget directly.
type scoped interface {
	scope() *Scope
}

func (s *Scope) scope() *Scope { return s }

// OnDispose registers a cleanup function to be called when the scope is disposed.
// Returns an unregister function that removes the cleanup without running it.
// If the scope is already disposed the cleanup runs immediately.
func (s *Scope) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}
	if s.disposed {
		cleanup()
		return func() {}
	}

	index := len(s.disposers)
	s.disposers = append(s.disposers, cleanup)

	return func() {
		if index < len(s.disposers) {
			s.disposers[index] = nil
		}
	}
}

// Dispose runs all registered cleanups in reverse order. Calling it again is
// a no-op.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	for i := len(s.disposers) - 1; i >= 0; i-- {
		if s.disposers[i] != nil {
			s.disposers[i]()
		}
	}
	s.disposers = nil
}

// IsDisposed returns true if this scope has been disposed.
func (s *Scope) IsDisposed() bool {
	return s.disposed
}

// UseCell registers observer on cell and cancels the registration when the
// scope is disposed. The returned function cancels early, for widgets that
// swap the cell they display.
//
//	func newBadge(count *core.Cell[int]) *badge {
//	    b := &badge{}
//	    b.cancel = core.UseCell(b, count, b, "count")
//	    return b
//	}
func UseCell[V any](s scoped, cell *Cell[V], observer Observer, id ...Identifier) func() {
	cell.Register(observer, id...)
	ident := identifierArg(id)
	cancelled := false
	cancel := func() {
		if cancelled {
			return
		}
		cancelled = true
		cell.Cancel(observer, ident)
	}
	unregister := s.scope().OnDispose(cancel)
	return func() {
		cancel()
		unregister()
	}
}
