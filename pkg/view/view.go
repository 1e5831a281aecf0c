package view

import (
	"fmt"

	"github.com/go-drift/crossview/pkg/declarative"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/native"
)

// Renderer is a widget the selector can materialize. A useful renderer also
// implements NativeRenderer, DeclarativeRenderer or both.
type Renderer interface {
	// Name identifies the widget in logs and failures.
	Name() string
}

// NativeRenderer builds a retained native view. Every target supports it.
type NativeRenderer interface {
	Renderer
	MakeNativeView(ctx *Context) *native.View
}

// DeclarativeRenderer describes a widget as a declarative tree. It is only
// usable on targets with the declarative backend.
type DeclarativeRenderer interface {
	Renderer
	Body(ctx *Context) declarative.Node
}

// MakeNative materializes v as a native view.
//
// When v offers both tiers, the declarative tree is built and hosted if the
// target has the declarative backend and legacy mode is off; otherwise v's
// own native view is used. A declarative-only widget is hosted whenever the
// target allows it, since legacy mode has no native path to force. Views
// already materialized are never converted when the flag changes.
func MakeNative(ctx *Context, v Renderer) *native.View {
	checkContext("view.MakeNative", ctx)
	checkRenderer("view.MakeNative", v)
	nr, isNative := v.(NativeRenderer)
	dr, isDeclarative := v.(DeclarativeRenderer)

	switch {
	case isDeclarative && isNative && ctx.DeclarativeEnabled():
		logChoice(ctx, v, native.BackendDeclarative)
		return Hosted(ctx, dr)
	case isNative:
		logChoice(ctx, v, native.BackendNative)
		return nr.MakeNativeView(ctx)
	case isDeclarative:
		logChoice(ctx, v, native.BackendDeclarative)
		return Hosted(ctx, dr)
	default:
		errors.Fail("view.MakeNative", errors.KindPrecondition, "%s (%T) renders to neither backend", v.Name(), v)
		return nil
	}
}

// MakeDeclarative returns v as a declarative node. Native-only widgets, and
// widgets offering both tiers while legacy mode is on, become a native leaf.
// Targets without the declarative backend cannot build declarative trees.
func MakeDeclarative(ctx *Context, v Renderer) declarative.Node {
	checkContext("view.MakeDeclarative", ctx)
	checkRenderer("view.MakeDeclarative", v)
	if !ctx.Target.DeclarativeAvailable() {
		errors.Fail("view.MakeDeclarative", errors.KindAvailability,
			"declarative backend unavailable on %s", ctx.Target)
	}
	nr, isNative := v.(NativeRenderer)
	dr, isDeclarative := v.(DeclarativeRenderer)

	switch {
	case isDeclarative && !(isNative && ctx.legacy()):
		return dr.Body(ctx)
	case isNative:
		return Leaf(ctx, nr)
	default:
		errors.Fail("view.MakeDeclarative", errors.KindPrecondition, "%s (%T) renders to neither backend", v.Name(), v)
		return nil
	}
}

// Leaf wraps a native-only widget as a single declarative leaf. The native
// view is built when the enclosing tree is hosted.
func Leaf(ctx *Context, r NativeRenderer) declarative.Node {
	return declarative.NativeLeaf{Build: func() *native.View {
		return r.MakeNativeView(ctx)
	}}
}

// Hosted instantiates r's declarative tree off-screen and returns the
// native root. It fails on targets without the declarative backend.
func Hosted(ctx *Context, r DeclarativeRenderer) *native.View {
	checkContext("view.Hosted", ctx)
	if !ctx.Target.DeclarativeAvailable() {
		errors.Fail("view.Hosted", errors.KindAvailability,
			"declarative backend unavailable on %s", ctx.Target)
	}
	return declarative.Host(r.Body(ctx))
}

func checkContext(op string, ctx *Context) {
	if ctx == nil {
		errors.Fail(op, errors.KindPrecondition, "nil context")
	}
}

func checkRenderer(op string, v Renderer) {
	if v == nil {
		errors.Fail(op, errors.KindPrecondition, "nil widget")
	}
}

func logChoice(ctx *Context, v Renderer, backend native.Backend) {
	ctx.Logger.Debug().
		Str("widget", v.Name()).
		Str("type", fmt.Sprintf("%T", v)).
		Stringer("backend", backend).
		Stringer("target", ctx.Target).
		Msg("materialize")
}
