package widgets

import (
	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/declarative"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
	"github.com/go-drift/crossview/pkg/view"
)

// Flex lays children out one after another along Axis.
type Flex struct {
	Axis     graphics.Axis
	Spacing  float64
	Children []view.Renderer
	Tag      string
}

// RowOf returns a horizontal Flex.
func RowOf(spacing float64, children ...view.Renderer) Flex {
	return Flex{Axis: graphics.AxisHorizontal, Spacing: spacing, Children: children}
}

// ColumnOf returns a vertical Flex.
func ColumnOf(spacing float64, children ...view.Renderer) Flex {
	return Flex{Axis: graphics.AxisVertical, Spacing: spacing, Children: children}
}

// Name returns the flex's tag.
func (f Flex) Name() string { return tagOr(f.Tag, "flex") }

// MakeNativeView materializes each child through the selector and positions
// them in a native container.
func (f Flex) MakeNativeView(ctx *view.Context) *native.View {
	if len(f.Children) == 0 {
		errors.Fail("widgets.Flex", errors.KindLayout, "flex has no children")
	}
	container := native.NewView(tagOr(f.Tag, "flex"))
	children := make([]*native.View, len(f.Children))
	for i, child := range f.Children {
		children[i] = view.MakeNative(ctx, child)
	}
	compose.Position(container, children, f.Axis, f.Spacing, 0, 0)
	return container
}

// Body describes the flex as a declarative stack.
func (f Flex) Body(ctx *view.Context) declarative.Node {
	nodes := make([]declarative.Node, len(f.Children))
	for i, child := range f.Children {
		nodes[i] = view.MakeDeclarative(ctx, child)
	}
	return declarative.Stack{Axis: f.Axis, Spacing: f.Spacing, Children: nodes, Tag: f.Tag}
}

// Padding insets its child by Margin.
type Padding struct {
	Margin compose.Margin
	Child  view.Renderer
	Tag    string
}

// Name returns the padding's tag.
func (p Padding) Name() string { return tagOr(p.Tag, "padding") }

// MakeNativeView wraps the materialized child in an inset container.
func (p Padding) MakeNativeView(ctx *view.Context) *native.View {
	if p.Child == nil {
		errors.Fail("widgets.Padding", errors.KindLayout, "padding has no child")
	}
	container := native.NewView(tagOr(p.Tag, "padding"))
	compose.Fill(container, p.Margin, view.MakeNative(ctx, p.Child))
	return container
}

// Body describes the padding as a declarative modifier.
func (p Padding) Body(ctx *view.Context) declarative.Node {
	if p.Child == nil {
		errors.Fail("widgets.Padding", errors.KindLayout, "padding has no child")
	}
	return declarative.Padding(view.MakeDeclarative(ctx, p.Child), p.Margin)
}

func tagOr(tag, fallback string) string {
	if tag != "" {
		return tag
	}
	return fallback
}
