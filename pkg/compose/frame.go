package compose

import (
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
)

// Bounds constrains one dimension of a frame. Nil fields are absent.
type Bounds struct {
	Min   *float64
	Ideal *float64
	Max   *float64
}

// FrameSpec configures Frame.
type FrameSpec struct {
	Width     Bounds
	Height    Bounds
	Alignment graphics.Alignment
}

// Value returns a pointer to v, for filling Bounds literals.
func Value(v float64) *float64 { return &v }

// Frame sizes container around child according to spec and aligns child
// inside it.
//
// Per dimension: with neither min nor max the container equals the child's
// natural size. With only min it is at least min and prefers min. With min
// and max it stays between them and prefers ideal. A weaker preference for
// the child's natural size is always present so unconstrained content still
// influences the result; explicit bounds win on conflict.
//
// The child's natural size is read on every layout pass, so a frame follows
// content that is re-measured after it was built.
func Frame(container, child *native.View, spec FrameSpec) {
	incorporate("compose.Frame", container, []*native.View{child})
	checkBounds(native.AttrWidth, spec.Width)
	checkBounds(native.AttrHeight, spec.Height)
	container.Defer(func() []native.Directive {
		natural := native.NaturalSize(child)
		ds := frameDimension(container, native.AttrWidth, spec.Width, natural.Width)
		return append(ds, frameDimension(container, native.AttrHeight, spec.Height, natural.Height)...)
	})
	Align(container, child, spec.Alignment)
}

func checkBounds(attr native.Attribute, b Bounds) {
	for _, v := range []*float64{b.Min, b.Ideal, b.Max} {
		if v != nil && *v < 0 {
			errors.Fail("compose.Frame", errors.KindPrecondition, "negative %s bound %g", attr, *v)
		}
	}
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		errors.Fail("compose.Frame", errors.KindPrecondition,
			"%s min %g exceeds max %g", attr, *b.Min, *b.Max)
	}
}

func frameDimension(container *native.View, attr native.Attribute, b Bounds, natural float64) []native.Directive {
	var ds []native.Directive
	switch {
	case b.Min == nil && b.Max == nil:
		ds = append(ds, native.Dimension(container, attr, native.Equal, natural))
	case b.Max == nil:
		ds = append(ds,
			native.Dimension(container, attr, native.GreaterOrEqual, *b.Min),
			native.Dimension(container, attr, native.Equal, *b.Min).At(native.PriorityDefaultHigh),
		)
	default:
		if b.Min != nil {
			ds = append(ds, native.Dimension(container, attr, native.GreaterOrEqual, *b.Min))
		}
		ds = append(ds, native.Dimension(container, attr, native.LessOrEqual, *b.Max))
		if b.Ideal != nil {
			ds = append(ds, native.Dimension(container, attr, native.Equal, *b.Ideal).At(native.PriorityDefaultHigh))
		}
	}
	return append(ds, native.Dimension(container, attr, native.Equal, natural).At(native.PriorityDefaultLow))
}

// Background puts background behind foreground inside container. The
// container takes the foreground's bounds; the background stretches to those
// bounds at alignment and never contributes to the container's size.
func Background(container, foreground, background *native.View, alignment graphics.Alignment) {
	if foreground == nil || background == nil {
		errors.Fail("compose.Background", errors.KindPrecondition, "background needs a foreground and a background")
	}
	if background.Parent() != container {
		container.InsertChild(background, 0)
	}
	Fill(container, Uniform(0), foreground)

	for _, axis := range []graphics.Axis{graphics.AxisHorizontal, graphics.AxisVertical} {
		lead, trail, center, extent := axisAttrs(axis)
		anchor := center
		switch a := alignment.Along(axis); {
		case a < 0:
			anchor = lead
		case a > 0:
			anchor = trail
		}
		container.Activate(
			native.Pin(background, anchor, foreground, 0),
			native.Relate(background, extent, native.LessOrEqual, foreground, extent, 0),
			native.Relate(background, extent, native.Equal, foreground, extent, 0).At(native.PriorityDefaultHigh),
		)
	}
}

// AspectRatio keeps child at ratio (width / height) inside container. A nil
// ratio is taken from the child's natural size on every layout pass and
// skipped while either natural dimension is zero, in which case the child
// fills the container. ContentModeFit keeps the child within the container;
// ContentModeFill covers the container and clips the overflow.
func AspectRatio(container, child *native.View, ratio *float64, mode graphics.ContentMode) {
	incorporate("compose.AspectRatio", container, []*native.View{child})
	if ratio != nil && *ratio <= 0 {
		errors.Fail("compose.AspectRatio", errors.KindPrecondition, "non-positive ratio %g", *ratio)
	}
	if mode == graphics.ContentModeFill {
		container.SetClips(true)
	}

	container.Activate(
		native.Pin(child, native.AttrCenterX, container, 0),
		native.Pin(child, native.AttrCenterY, container, 0),
	)
	container.Defer(func() []native.Directive {
		r, ok := resolveRatio(child, ratio)
		if !ok {
			return []native.Directive{
				native.Relate(child, native.AttrWidth, native.Equal, container, native.AttrWidth, 0),
				native.Relate(child, native.AttrHeight, native.Equal, container, native.AttrHeight, 0),
			}
		}
		rel := native.LessOrEqual
		if mode == graphics.ContentModeFill {
			rel = native.GreaterOrEqual
		}
		ds := []native.Directive{{
			Item: child, Attr: native.AttrWidth, Relation: native.Equal,
			Target: child, TargetAttr: native.AttrHeight, Multiplier: r,
			Priority: native.PriorityRequired,
		}}
		for _, attr := range []native.Attribute{native.AttrWidth, native.AttrHeight} {
			ds = append(ds,
				native.Relate(child, attr, rel, container, attr, 0),
				native.Relate(child, attr, native.Equal, container, attr, 0).At(native.PriorityDefaultHigh),
			)
		}
		return ds
	})
}

func resolveRatio(child *native.View, ratio *float64) (float64, bool) {
	if ratio != nil {
		return *ratio, true
	}
	natural := native.NaturalSize(child)
	if natural.Width <= 0 || natural.Height <= 0 {
		return 0, false
	}
	return natural.Width / natural.Height, true
}
