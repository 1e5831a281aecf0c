package native

import (
	"math"
	"testing"

	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func expectFrame(t *testing.T, v *View, want graphics.Rect) {
	t.Helper()
	if !v.Frame().Equal(want) {
		t.Errorf("%s frame = %s, want %s", v.Tag(), v.Frame(), want)
	}
}

func TestLayout_LeafTakesIntrinsicSize(t *testing.T) {
	leaf := NewLeaf("leaf", graphics.Size{Width: 40, Height: 20})
	size := FittingSize(leaf)
	if !near(size.Width, 40) || !near(size.Height, 20) {
		t.Errorf("fitting size = %+v, want 40x20", size)
	}
}

func TestLayout_FixedRootSize(t *testing.T) {
	root := NewView("root")
	Layout(root, graphics.Size{Width: 300, Height: 200})
	expectFrame(t, root, graphics.RectFromXYWH(0, 0, 300, 200))
}

func TestLayout_PinnedChildInsideRoot(t *testing.T) {
	root := NewView("root")
	child := NewView("child")
	root.AddChild(child)
	root.Activate(
		Pin(child, AttrLeading, root, 10),
		Pin(child, AttrTrailing, root, -10),
		Pin(child, AttrTop, root, 5),
		Pin(child, AttrBottom, root, -5),
	)

	Layout(root, graphics.Size{Width: 100, Height: 50})
	expectFrame(t, child, graphics.RectFromXYWH(10, 5, 80, 40))
}

func TestLayout_ContainerHugsChild(t *testing.T) {
	root := NewView("root")
	child := NewLeaf("child", graphics.Size{Width: 40, Height: 20})
	root.AddChild(child)
	root.Activate(
		Pin(child, AttrLeading, root, 0),
		Pin(child, AttrTrailing, root, 0),
		Pin(child, AttrTop, root, 0),
		Pin(child, AttrBottom, root, 0),
	)

	size := FittingSize(root)
	if !near(size.Width, 40) || !near(size.Height, 20) {
		t.Errorf("fitting size = %+v, want 40x20", size)
	}
}

func TestLayout_FramesAreRelativeToParent(t *testing.T) {
	root := NewView("root")
	mid := NewView("mid")
	leaf := NewLeaf("leaf", graphics.Size{Width: 10, Height: 10})
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.Activate(
		Pin(mid, AttrLeading, root, 20),
		Pin(mid, AttrTop, root, 30),
		Dimension(mid, AttrWidth, Equal, 50),
		Dimension(mid, AttrHeight, Equal, 50),
	)
	mid.Activate(
		Pin(leaf, AttrLeading, mid, 5),
		Pin(leaf, AttrTop, mid, 5),
	)

	Layout(root, graphics.Size{Width: 200, Height: 200})
	expectFrame(t, leaf, graphics.RectFromXYWH(5, 5, 10, 10))
	if abs := leaf.AbsoluteFrame(); !abs.Equal(graphics.RectFromXYWH(25, 35, 10, 10)) {
		t.Errorf("absolute frame = %s", abs)
	}
}

func TestLayout_UnpositionedChildFails(t *testing.T) {
	root := NewView("root")
	child := NewView("child")
	root.AddChild(child)
	root.AddDirective(Pin(child, AttrLeading, root, 0))

	expectFailure(t, errors.KindLayout, func() {
		Layout(root, graphics.Size{Width: 10, Height: 10})
	})
}

func TestLayout_ConflictingRequiredFails(t *testing.T) {
	root := NewView("root")
	child := NewView("child")
	root.AddChild(child)
	root.Activate(
		Pin(child, AttrLeading, root, 0),
		Pin(child, AttrTop, root, 0),
		Dimension(child, AttrWidth, Equal, 10),
		Dimension(child, AttrWidth, Equal, 20),
	)

	expectFailure(t, errors.KindLayout, func() {
		Layout(root, graphics.Size{Width: 100, Height: 100})
	})
}

func TestLayout_OnLayoutCallback(t *testing.T) {
	root := NewLeaf("root", graphics.Size{Width: 3, Height: 4})
	var seen graphics.Rect
	root.OnLayout(func(v *View) { seen = v.Frame() })
	FittingSize(root)
	if !seen.Equal(graphics.RectFromXYWH(0, 0, 3, 4)) {
		t.Errorf("callback saw %s", seen)
	}
}

func TestLayout_PanickingCallbackIsReported(t *testing.T) {
	root := NewView("root")
	child := NewLeaf("child", graphics.Size{Width: 2, Height: 2})
	root.AddChild(child)
	root.Activate(Pin(child, AttrLeading, root, 0), Pin(child, AttrTop, root, 0))
	root.OnLayout(func(*View) { panic("boom") })
	childNotified := false
	child.OnLayout(func(*View) { childNotified = true })

	h := &panicRecorder{}
	errors.SetHandler(h)
	defer errors.SetHandler(nil)
	FittingSize(root)

	if len(h.panics) != 1 || h.panics[0].Op != "native.Layout.OnLayout" || h.panics[0].Value != "boom" {
		t.Fatalf("reported panics = %+v", h.panics)
	}
	if !childNotified {
		t.Error("a panicking callback should not skip the others")
	}
}

func TestLayout_CallbackFailureKeepsUnwinding(t *testing.T) {
	root := NewLeaf("root", graphics.Size{Width: 1, Height: 1})
	root.OnLayout(func(*View) {
		errors.Fail("test.callback", errors.KindPrecondition, "bad state")
	})
	expectFailure(t, errors.KindPrecondition, func() {
		FittingSize(root)
	})
}

type panicRecorder struct{ panics []*errors.PanicError }

func (*panicRecorder) HandleError(*errors.ViewError)      {}
func (r *panicRecorder) HandlePanic(p *errors.PanicError) { r.panics = append(r.panics, p) }

func TestNaturalSize_ContainerUsesFittingSize(t *testing.T) {
	container := NewView("container")
	child := NewLeaf("child", graphics.Size{Width: 10, Height: 6})
	container.AddChild(child)
	container.Activate(
		Pin(child, AttrLeading, container, 2),
		Pin(child, AttrTrailing, container, -2),
		Pin(child, AttrTop, container, 2),
		Pin(child, AttrBottom, container, -2),
	)
	calls := 0
	container.OnLayout(func(*View) { calls++ })

	size := NaturalSize(container)
	if !near(size.Width, 14) || !near(size.Height, 10) {
		t.Errorf("natural size = %+v, want 14x10", size)
	}
	if calls != 0 {
		t.Errorf("measuring ran %d layout callbacks", calls)
	}
}

func TestNaturalSize_LeafUsesIntrinsicSize(t *testing.T) {
	leaf := NewLeaf("leaf", graphics.Size{Width: 7, Height: 3})
	if size := NaturalSize(leaf); size != (graphics.Size{Width: 7, Height: 3}) {
		t.Errorf("natural size = %+v", size)
	}
}

func TestLayout_DeferredDirectivesAreResolvedEachPass(t *testing.T) {
	root := NewView("root")
	child := NewView("child")
	root.AddChild(child)
	root.Activate(Pin(child, AttrLeading, root, 0), Pin(child, AttrTop, root, 0))
	width := 10.0
	root.Defer(func() []Directive {
		return []Directive{
			Dimension(child, AttrWidth, Equal, width),
			Dimension(child, AttrHeight, Equal, 5),
			Relate(root, AttrWidth, Equal, child, AttrWidth, 0),
			Relate(root, AttrHeight, Equal, child, AttrHeight, 0),
		}
	})

	if w := FittingSize(root).Width; !near(w, 10) {
		t.Fatalf("width = %v, want 10", w)
	}
	width = 25
	if w := FittingSize(root).Width; !near(w, 25) {
		t.Errorf("width = %v, want 25 after the producer changed", w)
	}
	if len(root.Directives()) != 2 {
		t.Errorf("deferred directives leaked into stored directives: %v", root.Directives())
	}
}

func TestLayout_DeferredDirectiveOutsideContainerFails(t *testing.T) {
	root := NewView("root")
	stranger := NewView("stranger")
	root.Defer(func() []Directive {
		return []Directive{Dimension(stranger, AttrWidth, Equal, 1)}
	})
	expectFailure(t, errors.KindLayout, func() {
		FittingSize(root)
	})
}
