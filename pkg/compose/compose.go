// Package compose provides the layout vocabulary shared by both backends.
//
// Each primitive arranges children inside an invisible native container by
// adding constraint directives to it. The declarative backend compiles its
// modifiers to the same primitives when a declarative tree is hosted, so one
// vocabulary produces either a constraint graph or declarative sizing.
//
// Children passed to a primitive are incorporated into the container if they
// are not already its children. Asking a primitive to arrange nothing is a
// programmer error and fails fast.
package compose

import (
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
)

// StandardSpacing is the platform's standard distance between a view and
// its container edge, used by Automatic margins.
const StandardSpacing = 8.0

// Margin describes how far content sits from its container's edges.
type Margin struct {
	insets    graphics.EdgeInsets
	automatic bool
}

// Uniform returns the same margin on every edge.
func Uniform(v float64) Margin {
	return Margin{insets: graphics.EdgeInsetsAll(v)}
}

// Insets returns a per-edge margin.
func Insets(in graphics.EdgeInsets) Margin {
	return Margin{insets: in}
}

// Automatic uses StandardSpacing on every edge.
var Automatic = Margin{automatic: true}

// Resolve returns the concrete insets.
func (m Margin) Resolve() graphics.EdgeInsets {
	if m.automatic {
		return graphics.EdgeInsetsAll(StandardSpacing)
	}
	return m.insets
}

// incorporate adds any child not yet owned by container and fails if there
// is nothing to arrange.
func incorporate(op string, container *native.View, children []*native.View) []*native.View {
	if container == nil {
		errors.Fail(op, errors.KindPrecondition, "nil container")
	}
	if len(children) == 0 {
		children = container.Children()
	}
	if len(children) == 0 {
		errors.Fail(op, errors.KindLayout, "container %q has no children", container.Tag())
	}
	for _, child := range children {
		if child == nil {
			errors.Fail(op, errors.KindPrecondition, "nil child in container %q", container.Tag())
		}
		if child.Parent() != container {
			container.AddChild(child)
		}
	}
	return children
}

// Fill pins each child's edges to the container's edges inset by margin.
// With no children given it fills every existing child of container.
func Fill(container *native.View, margin Margin, children ...*native.View) {
	children = incorporate("compose.Fill", container, children)
	in := margin.Resolve()
	for _, child := range children {
		container.Activate(
			native.Pin(child, native.AttrLeading, container, in.Leading),
			native.Pin(child, native.AttrTrailing, container, -in.Trailing),
			native.Pin(child, native.AttrTop, container, in.Top),
			native.Pin(child, native.AttrBottom, container, -in.Bottom),
		)
	}
}

// axisAttrs returns the leading, trailing and center attributes of an axis.
func axisAttrs(axis graphics.Axis) (lead, trail, center, extent native.Attribute) {
	if axis == graphics.AxisHorizontal {
		return native.AttrLeading, native.AttrTrailing, native.AttrCenterX, native.AttrWidth
	}
	return native.AttrTop, native.AttrBottom, native.AttrCenterY, native.AttrHeight
}

// Position lays children out one after another along axis with padding
// between neighbours and the given margins at both ends. On the
// perpendicular axis children stay inside the container and are centered
// unless a stronger directive places them elsewhere.
func Position(container *native.View, children []*native.View, axis graphics.Axis, padding, leadingMargin, trailingMargin float64) {
	children = incorporate("compose.Position", container, children)
	lead, trail, _, _ := axisAttrs(axis)
	crossLead, crossTrail, crossCenter, _ := axisAttrs(axis.Perpendicular())

	for i, child := range children {
		if i == 0 {
			container.AddDirective(native.Pin(child, lead, container, leadingMargin))
		} else {
			container.AddDirective(native.Relate(child, lead, native.Equal, children[i-1], trail, padding))
		}
		container.Activate(
			native.Relate(child, crossLead, native.GreaterOrEqual, container, crossLead, 0),
			native.Relate(child, crossTrail, native.LessOrEqual, container, crossTrail, 0),
			native.Pin(child, crossCenter, container, 0).At(native.PriorityDefaultHigh),
		)
	}
	last := children[len(children)-1]
	container.AddDirective(native.Pin(last, trail, container, -trailingMargin))
}

// Align places child inside container at alignment without letting it
// exceed the container.
func Align(container *native.View, child *native.View, alignment graphics.Alignment) {
	incorporate("compose.Align", container, []*native.View{child})
	alignAxis(container, child, graphics.AxisHorizontal, alignment.X)
	alignAxis(container, child, graphics.AxisVertical, alignment.Y)
}

func alignAxis(container, child *native.View, axis graphics.Axis, a float64) {
	lead, trail, center, extent := axisAttrs(axis)
	switch {
	case a < 0:
		container.AddDirective(native.Pin(child, lead, container, 0))
	case a > 0:
		container.AddDirective(native.Pin(child, trail, container, 0))
	default:
		container.AddDirective(native.Pin(child, center, container, 0))
	}
	container.AddDirective(native.Relate(child, extent, native.LessOrEqual, container, extent, 0))
}
