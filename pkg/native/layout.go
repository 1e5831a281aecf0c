package native

import (
	"github.com/go-drift/crossview/pkg/constraint"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
)

// Unconstrained lets the root take its fitting size in a dimension.
const Unconstrained = NoIntrinsicMetric

type viewVars struct {
	x, y, w, h *constraint.Variable
}

func (vv viewVars) terms(attr Attribute, coefficient float64) []constraint.Term {
	switch attr {
	case AttrLeading:
		return []constraint.Term{constraint.T(coefficient, vv.x)}
	case AttrTrailing:
		return []constraint.Term{constraint.T(coefficient, vv.x), constraint.T(coefficient, vv.w)}
	case AttrCenterX:
		return []constraint.Term{constraint.T(coefficient, vv.x), constraint.T(coefficient*0.5, vv.w)}
	case AttrTop:
		return []constraint.Term{constraint.T(coefficient, vv.y)}
	case AttrBottom:
		return []constraint.Term{constraint.T(coefficient, vv.y), constraint.T(coefficient, vv.h)}
	case AttrCenterY:
		return []constraint.Term{constraint.T(coefficient, vv.y), constraint.T(coefficient*0.5, vv.h)}
	case AttrWidth:
		return []constraint.Term{constraint.T(coefficient, vv.w)}
	case AttrHeight:
		return []constraint.Term{constraint.T(coefficient, vv.h)}
	default:
		return nil
	}
}

// Layout resolves the frame of root and every descendant. Each dimension of
// size is either a fixed size for root or Unconstrained, in which case root
// shrinks to fit its content.
//
// A child without directives on both axes, or a required directive that
// cannot hold, is a programmer error and fails fast.
func Layout(root *View, size graphics.Size) {
	layout(root, size, true)
}

func layout(root *View, size graphics.Size, notify bool) {
	if root == nil {
		errors.Fail("native.Layout", errors.KindPrecondition, "nil root")
	}

	solver := constraint.NewSolver()
	vars := make(map[*View]viewVars)
	var order []*View
	root.Walk(func(v *View) {
		vars[v] = viewVars{
			x: constraint.NewVariable(v.tag + ".x"),
			y: constraint.NewVariable(v.tag + ".y"),
			w: constraint.NewVariable(v.tag + ".w"),
			h: constraint.NewVariable(v.tag + ".h"),
		}
		order = append(order, v)
	})

	add := func(c *constraint.Constraint) {
		if err := solver.Add(c); err != nil {
			errors.Fail("native.Layout", errors.KindLayout, "%v", err)
		}
	}
	fixed := func(v *constraint.Variable, value float64, op constraint.Operator, p Priority, label string) {
		add(&constraint.Constraint{
			Expression: constraint.Expr(-value, constraint.T(1, v)),
			Op:         op,
			Strength:   constraint.StrengthFromPriority(float64(p)),
			Label:      label,
		})
	}

	fixed(vars[root].x, 0, constraint.EQ, PriorityRequired, "root.x")
	fixed(vars[root].y, 0, constraint.EQ, PriorityRequired, "root.y")
	if size.Width >= 0 {
		fixed(vars[root].w, size.Width, constraint.EQ, PriorityRequired, "root.width")
	}
	if size.Height >= 0 {
		fixed(vars[root].h, size.Height, constraint.EQ, PriorityRequired, "root.height")
	}

	// Deferred producers may measure subtrees, so resolve them all before
	// any constraint of this pass is added.
	directives := make(map[*View][]Directive, len(order))
	for _, v := range order {
		directives[v] = v.resolveDirectives()
	}

	for _, v := range order {
		vv := vars[v]
		fixed(vv.w, 0, constraint.GE, PriorityRequired, v.tag+".width>=0")
		fixed(vv.h, 0, constraint.GE, PriorityRequired, v.tag+".height>=0")
		checkChildren(v, directives[v])
	}

	for _, v := range order {
		for _, d := range directives[v] {
			add(directiveConstraint(d, vars))
		}
	}

	// Natural sizes and the fitting pull go last; they only break ties.
	for _, v := range order {
		vv := vars[v]
		if v.HasIntrinsicWidth() {
			fixed(vv.w, v.intrinsic.Width, constraint.EQ, PriorityDefaultLow, v.tag+".intrinsicWidth")
		} else {
			fixed(vv.w, 0, constraint.EQ, PriorityFittingSize, v.tag+".fitWidth")
		}
		if v.HasIntrinsicHeight() {
			fixed(vv.h, v.intrinsic.Height, constraint.EQ, PriorityDefaultLow, v.tag+".intrinsicHeight")
		} else {
			fixed(vv.h, 0, constraint.EQ, PriorityFittingSize, v.tag+".fitHeight")
		}
	}

	solver.Solve()

	for _, v := range order {
		vv := vars[v]
		abs := graphics.RectFromXYWH(vv.x.Value(), vv.y.Value(), vv.w.Value(), vv.h.Value())
		if v.parent != nil && v != root {
			pv := vars[v.parent]
			abs = abs.Translate(-pv.x.Value(), -pv.y.Value())
		}
		v.frame = abs
	}
	if !notify {
		return
	}
	for _, v := range order {
		if v.onLayout != nil {
			notifyLayout(v)
		}
	}
}

// notifyLayout runs v's layout callback. A panicking callback is reported
// and does not stop the callbacks of other views.
func notifyLayout(v *View) {
	defer errors.Recover("native.Layout.OnLayout")
	v.onLayout(v)
}

// FittingSize lays out root without a size proposal and returns the size it
// settles on.
func FittingSize(root *View) graphics.Size {
	Layout(root, graphics.Size{Width: Unconstrained, Height: Unconstrained})
	return root.frame.Size
}

// NaturalSize returns the size v takes when nothing constrains it: its
// intrinsic size where it has one, its fitting size otherwise. Measuring a
// container lays out its subtree without running layout callbacks; the
// enclosing pass overwrites those frames.
func NaturalSize(v *View) graphics.Size {
	size := v.intrinsic
	if v.HasIntrinsicWidth() && v.HasIntrinsicHeight() {
		return size
	}
	layout(v, graphics.Size{Width: Unconstrained, Height: Unconstrained}, false)
	if !v.HasIntrinsicWidth() {
		size.Width = v.frame.Size.Width
	}
	if !v.HasIntrinsicHeight() {
		size.Height = v.frame.Size.Height
	}
	return size
}

func directiveConstraint(d Directive, vars map[*View]viewVars) *constraint.Constraint {
	terms := vars[d.Item].terms(d.Attr, 1)
	if d.Target != nil && d.TargetAttr != AttrNone {
		terms = append(terms, vars[d.Target].terms(d.TargetAttr, -d.Multiplier)...)
	}
	op := constraint.EQ
	switch d.Relation {
	case GreaterOrEqual:
		op = constraint.GE
	case LessOrEqual:
		op = constraint.LE
	}
	return &constraint.Constraint{
		Expression: constraint.Expr(-d.Constant, terms...),
		Op:         op,
		Strength:   constraint.StrengthFromPriority(float64(d.Priority)),
		Label:      d.String(),
	}
}

// checkChildren fails when a child of v has nothing placing it on one axis.
func checkChildren(v *View, directives []Directive) {
	for _, child := range v.children {
		var horizontal, vertical bool
		for _, d := range directives {
			if d.Item != child && d.Target != child {
				continue
			}
			attr := d.Attr
			if d.Item != child {
				attr = d.TargetAttr
			}
			switch attr {
			case AttrLeading, AttrTrailing, AttrCenterX:
				horizontal = true
			case AttrTop, AttrBottom, AttrCenterY:
				vertical = true
			}
		}
		if !horizontal || !vertical {
			errors.Fail("native.Layout", errors.KindLayout,
				"child %q of %q is not positioned on both axes", child.tag, v.tag)
		}
	}
}
