package native

import "fmt"

// Attribute names one geometric property of a view.
type Attribute int

const (
	AttrNone Attribute = iota
	AttrLeading
	AttrTrailing
	AttrTop
	AttrBottom
	AttrWidth
	AttrHeight
	AttrCenterX
	AttrCenterY
)

// String returns a human-readable representation of the attribute.
func (a Attribute) String() string {
	switch a {
	case AttrLeading:
		return "leading"
	case AttrTrailing:
		return "trailing"
	case AttrTop:
		return "top"
	case AttrBottom:
		return "bottom"
	case AttrWidth:
		return "width"
	case AttrHeight:
		return "height"
	case AttrCenterX:
		return "centerX"
	case AttrCenterY:
		return "centerY"
	default:
		return "none"
	}
}

// Relation compares the two sides of a directive.
type Relation int

const (
	Equal Relation = iota
	GreaterOrEqual
	LessOrEqual
)

// String returns a human-readable representation of the relation.
func (r Relation) String() string {
	switch r {
	case GreaterOrEqual:
		return ">="
	case LessOrEqual:
		return "<="
	default:
		return "=="
	}
}

// Priority separates required directives from preferences. Values follow
// the usual 1–1000 scale; 1000 must hold.
type Priority float64

const (
	PriorityRequired    Priority = 1000
	PriorityDefaultHigh Priority = 750
	PriorityMedium      Priority = 500
	PriorityDefaultLow  Priority = 250
	PriorityFittingSize Priority = 50
)

// IsRequired reports whether the directive must hold.
func (p Priority) IsRequired() bool { return p >= PriorityRequired }

// Directive states item.Attr Relation target.TargetAttr * Multiplier + Constant.
// With a nil Target the right-hand side is Constant alone.
type Directive struct {
	Item       *View
	Attr       Attribute
	Relation   Relation
	Target     *View
	TargetAttr Attribute
	Multiplier float64
	Constant   float64
	Priority   Priority
}

func (d Directive) String() string {
	lhs := fmt.Sprintf("%s.%s", tagOf(d.Item), d.Attr)
	if d.Target == nil {
		return fmt.Sprintf("%s %s %g @%g", lhs, d.Relation, d.Constant, float64(d.Priority))
	}
	return fmt.Sprintf("%s %s %s.%s*%g%+g @%g", lhs, d.Relation,
		tagOf(d.Target), d.TargetAttr, d.Multiplier, d.Constant, float64(d.Priority))
}

func tagOf(v *View) string {
	if v == nil {
		return "<nil>"
	}
	return v.tag
}

// Pin returns item.attr == target.attr + constant.
func Pin(item *View, attr Attribute, target *View, constant float64) Directive {
	return Directive{Item: item, Attr: attr, Relation: Equal, Target: target, TargetAttr: attr, Multiplier: 1, Constant: constant, Priority: PriorityRequired}
}

// Relate returns item.attr rel target.targetAttr + constant.
func Relate(item *View, attr Attribute, rel Relation, target *View, targetAttr Attribute, constant float64) Directive {
	return Directive{Item: item, Attr: attr, Relation: rel, Target: target, TargetAttr: targetAttr, Multiplier: 1, Constant: constant, Priority: PriorityRequired}
}

// Dimension returns item.attr rel constant.
func Dimension(item *View, attr Attribute, rel Relation, constant float64) Directive {
	return Directive{Item: item, Attr: attr, Relation: rel, Constant: constant, Priority: PriorityRequired}
}

// At returns a copy of d with priority p.
func (d Directive) At(p Priority) Directive {
	d.Priority = p
	return d
}
