// Package native implements the retained-mode backend: a tree of mutable
// views positioned by constraint directives and resolved by a layout pass.
package native

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
)

// Backend identifies which rendering backend materialized a view.
type Backend int

const (
	// BackendNative marks views built directly by a native renderer.
	BackendNative Backend = iota
	// BackendDeclarative marks views produced by hosting a declarative tree.
	BackendDeclarative
)

// String returns a human-readable representation of the backend.
func (b Backend) String() string {
	switch b {
	case BackendNative:
		return "native"
	case BackendDeclarative:
		return "declarative"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// NoIntrinsicMetric marks a dimension without a natural size.
const NoIntrinsicMetric = -1.0

// View is one node of the native tree. A view owns its children strongly and
// holds the directives that position them.
//
// View is NOT thread-safe. It must only be used from the UI thread.
type View struct {
	id         uuid.UUID
	tag        string
	parent     *View
	children   []*View
	directives []Directive
	intrinsic  graphics.Size
	frame      graphics.Rect
	backend    Backend
	clips      bool
	text       string
	onLayout   func(*View)
	deferred   []func() []Directive
}

// NewView creates a view without intrinsic size. Containers are plain views
// that have children.
func NewView(tag string) *View {
	return &View{
		id:        uuid.New(),
		tag:       tag,
		intrinsic: graphics.Size{Width: NoIntrinsicMetric, Height: NoIntrinsicMetric},
	}
}

// NewLeaf creates a view with a natural size.
func NewLeaf(tag string, intrinsic graphics.Size) *View {
	v := NewView(tag)
	v.intrinsic = intrinsic
	return v
}

// ID returns the view's identity.
func (v *View) ID() uuid.UUID { return v.id }

// Tag returns the lookup tag given at construction.
func (v *View) Tag() string { return v.tag }

// Parent returns the owning view, or nil for a root.
func (v *View) Parent() *View { return v.parent }

// Children returns the child views in insertion order.
func (v *View) Children() []*View { return v.children }

// Directives returns the directives this view owns.
func (v *View) Directives() []Directive { return v.directives }

// Frame returns the frame from the last layout pass, relative to the parent.
func (v *View) Frame() graphics.Rect { return v.frame }

// Backend returns the backend that produced this view.
func (v *View) Backend() Backend { return v.backend }

// SetBackend records the backend that produced this view.
func (v *View) SetBackend(b Backend) { v.backend = b }

// Clips reports whether content outside the frame is cropped.
func (v *View) Clips() bool { return v.clips }

// SetClips enables cropping of overflowing content.
func (v *View) SetClips(clips bool) { v.clips = clips }

// IntrinsicSize returns the natural size; either dimension may be
// NoIntrinsicMetric.
func (v *View) IntrinsicSize() graphics.Size { return v.intrinsic }

// SetIntrinsicSize replaces the natural size.
func (v *View) SetIntrinsicSize(size graphics.Size) { v.intrinsic = size }

// HasIntrinsicWidth reports whether the view has a natural width.
func (v *View) HasIntrinsicWidth() bool { return v.intrinsic.Width >= 0 }

// HasIntrinsicHeight reports whether the view has a natural height.
func (v *View) HasIntrinsicHeight() bool { return v.intrinsic.Height >= 0 }

// OnLayout installs a callback run after each layout pass that moves the view.
func (v *View) OnLayout(fn func(*View)) { v.onLayout = fn }

// AddChild appends child. A child already owned by another view is a
// programmer error.
func (v *View) AddChild(child *View) {
	if child == nil {
		errors.Fail("native.View.AddChild", errors.KindPrecondition, "nil child")
	}
	if child.parent != nil {
		errors.Fail("native.View.AddChild", errors.KindPrecondition,
			"view %q already has parent %q", child.tag, child.parent.tag)
	}
	for p := v; p != nil; p = p.parent {
		if p == child {
			errors.Fail("native.View.AddChild", errors.KindPrecondition,
				"adding %q would create a cycle", child.tag)
		}
	}
	child.parent = v
	v.children = append(v.children, child)
}

// InsertChild inserts child at index, so it is drawn below later siblings.
func (v *View) InsertChild(child *View, index int) {
	v.AddChild(child)
	if index < 0 || index >= len(v.children)-1 {
		return
	}
	copy(v.children[index+1:], v.children[index:len(v.children)-1])
	v.children[index] = child
}

// RemoveFromParent detaches the view and drops every directive of the former
// parent that mentions it.
func (v *View) RemoveFromParent() {
	p := v.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == v {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	kept := p.directives[:0:0]
	for _, d := range p.directives {
		if d.Item != v && d.Target != v {
			kept = append(kept, d)
		}
	}
	p.directives = kept
	v.parent = nil
}

// AddDirective stores d on this view. Both ends must be this view or one of
// its direct children.
func (v *View) AddDirective(d Directive) {
	v.directives = append(v.directives, v.checkDirective("native.View.AddDirective", d))
}

func (v *View) checkDirective(op string, d Directive) Directive {
	if d.Item == nil {
		errors.Fail(op, errors.KindPrecondition, "directive without item")
	}
	if !v.owns(d.Item) || (d.Target != nil && !v.owns(d.Target)) {
		errors.Fail(op, errors.KindLayout,
			"directive %s relates views outside container %q", d, v.tag)
	}
	if d.Multiplier == 0 && d.Target != nil {
		d.Multiplier = 1
	}
	if d.Priority == 0 {
		d.Priority = PriorityRequired
	}
	return d
}

// Defer registers fn to produce directives at the start of every layout
// pass. Use it for directives that depend on state that can change after
// the view is built, such as a child's natural size. The produced directives
// follow the same ownership rules as AddDirective.
func (v *View) Defer(fn func() []Directive) {
	if fn == nil {
		errors.Fail("native.View.Defer", errors.KindPrecondition, "nil directive producer")
	}
	v.deferred = append(v.deferred, fn)
}

// resolveDirectives returns the stored directives followed by those produced
// by deferred producers for this pass.
func (v *View) resolveDirectives() []Directive {
	if len(v.deferred) == 0 {
		return v.directives
	}
	out := append([]Directive(nil), v.directives...)
	for _, fn := range v.deferred {
		for _, d := range fn() {
			out = append(out, v.checkDirective("native.View.Defer", d))
		}
	}
	return out
}

// Activate adds several directives at once.
func (v *View) Activate(ds ...Directive) {
	for _, d := range ds {
		v.AddDirective(d)
	}
}

func (v *View) owns(item *View) bool {
	return item == v || item.parent == v
}

// Walk visits the view and its descendants depth-first, parents first.
func (v *View) Walk(visit func(*View)) {
	visit(v)
	for _, c := range v.children {
		c.Walk(visit)
	}
}

// Find returns the first view in the subtree with the given tag.
func (v *View) Find(tag string) *View {
	var found *View
	v.Walk(func(n *View) {
		if found == nil && n.tag == tag {
			found = n
		}
	})
	return found
}

// AbsoluteFrame returns the frame in root coordinates.
func (v *View) AbsoluteFrame() graphics.Rect {
	f := v.frame
	for p := v.parent; p != nil; p = p.parent {
		f = f.Translate(p.frame.Origin.X, p.frame.Origin.Y)
	}
	return f
}

func (v *View) String() string {
	return fmt.Sprintf("View(%s %s %s)", v.tag, v.backend, v.frame)
}
