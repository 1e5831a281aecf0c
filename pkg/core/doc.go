// Package core provides the reactive substrate shared by both rendering
// backends: an observable value cell and the registry of observers that react
// to it.
//
// # Cells
//
// A Cell holds one piece of mutable program state. Writing it notifies every
// registered observer synchronously, in registration order:
//
//	count := core.NewCell(0)
//	count.Register(badge, "count")
//	count.Set(count.Value() + 1) // badge.Receive("count") has run
//
// # Observers
//
// Observers embed ObserverBase and implement Receive. A cell references its
// observers weakly, so a forgotten observer that is garbage collected simply
// stops receiving notifications. Explicit Cancel is still expected when a
// widget stops displaying a cell; until then its registration stays live.
//
// One observer can watch several cells, or one cell under several
// identifiers. The identifier passed to Register comes back in Receive.
//
// # Scopes
//
// Scope collects cleanups for a widget. UseCell registers an observer and
// cancels the registration when the scope is disposed.
//
// # Threading
//
// Nothing in this package is thread-safe. All reads, writes and
// notifications happen on the UI thread; work started on another goroutine
// must be dispatched back before touching a cell.
package core
