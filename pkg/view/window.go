package view

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
)

// Window is a displayed top-level root.
type Window struct {
	ID   uuid.UUID
	Root *native.View
	Size graphics.Size
}

// WindowRegistry keeps displayed windows alive until they are closed.
type WindowRegistry struct {
	windows map[uuid.UUID]*Window
	order   []uuid.UUID
	logger  zerolog.Logger
}

// NewWindowRegistry returns an empty registry.
func NewWindowRegistry(logger zerolog.Logger) *WindowRegistry {
	return &WindowRegistry{
		windows: make(map[uuid.UUID]*Window),
		logger:  logger,
	}
}

// Open lays root out at size and keeps it until Close. A root that is
// already displayed or attached to a parent cannot be opened.
func (r *WindowRegistry) Open(root *native.View, size graphics.Size) *Window {
	if root == nil {
		errors.Fail("view.OpenWindow", errors.KindPrecondition, "nil root")
	}
	if root.Parent() != nil {
		errors.Fail("view.OpenWindow", errors.KindPrecondition, "root %q has a parent", root.Tag())
	}
	for _, w := range r.windows {
		if w.Root == root {
			errors.Fail("view.OpenWindow", errors.KindPrecondition, "root %q is already open", root.Tag())
		}
	}

	native.Layout(root, size)
	w := &Window{ID: uuid.New(), Root: root, Size: size}
	r.windows[w.ID] = w
	r.order = append(r.order, w.ID)
	r.logger.Info().Stringer("window", w.ID).Str("root", root.Tag()).Msg("window opened")
	return w
}

// Resize lays the window's root out again at size.
func (r *WindowRegistry) Resize(id uuid.UUID, size graphics.Size) bool {
	w, ok := r.windows[id]
	if !ok {
		return false
	}
	native.Layout(w.Root, size)
	w.Size = size
	return true
}

// Close releases the window. It reports whether the window was open.
func (r *WindowRegistry) Close(id uuid.UUID) bool {
	if _, ok := r.windows[id]; !ok {
		return false
	}
	delete(r.windows, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Info().Stringer("window", id).Msg("window closed")
	return true
}

// Get returns the open window with id.
func (r *WindowRegistry) Get(id uuid.UUID) (*Window, bool) {
	w, ok := r.windows[id]
	return w, ok
}

// Count returns the number of open windows.
func (r *WindowRegistry) Count() int { return len(r.windows) }

// Windows returns the open windows in the order they were opened.
func (r *WindowRegistry) Windows() []*Window {
	out := make([]*Window, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.windows[id])
	}
	return out
}
