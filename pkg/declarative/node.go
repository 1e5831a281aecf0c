// Package declarative implements the declarative backend: immutable
// descriptions of a view tree that are hosted into native views on demand.
//
// Nodes are cheap value types. Modifier functions wrap a node in a sizing or
// positioning directive from the shared compose vocabulary:
//
//	card := declarative.Background(
//	    declarative.Padding(declarative.Text{Content: "Hi"}, compose.Automatic),
//	    declarative.Leaf{Tag: "fill", Size: graphics.Size{Width: 1, Height: 1}},
//	    graphics.AlignmentCenter,
//	)
//	root := declarative.Host(card)
package declarative

import (
	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
)

// Node describes one element of a declarative tree.
type Node interface {
	// host builds the native subtree for this node.
	host(h *hoster) *native.View
}

// Text is a single line of text.
type Text struct {
	Content string
	Tag     string
	// OnHost receives the native label once the tree is hosted, so the owner
	// can push later updates into it.
	OnHost func(*native.View)
}

// Leaf is an opaque element with a fixed natural size.
type Leaf struct {
	Tag  string
	Size graphics.Size
}

// NativeLeaf embeds a view built by the native backend as a single leaf.
// Build runs when the tree is hosted, not when the node is created.
type NativeLeaf struct {
	Build func() *native.View
}

// Stack arranges children one after another along Axis.
type Stack struct {
	Axis     graphics.Axis
	Spacing  float64
	Children []Node
	Tag      string
}

// HStack returns a horizontal stack.
func HStack(spacing float64, children ...Node) Stack {
	return Stack{Axis: graphics.AxisHorizontal, Spacing: spacing, Children: children}
}

// VStack returns a vertical stack.
func VStack(spacing float64, children ...Node) Stack {
	return Stack{Axis: graphics.AxisVertical, Spacing: spacing, Children: children}
}

// ZStack overlays children, first at the bottom, each placed at Alignment.
type ZStack struct {
	Alignment graphics.Alignment
	Children  []Node
	Tag       string
}

// Modifier is a sizing or positioning directive applied to a node.
type Modifier interface {
	apply(h *hoster, container, content *native.View)
}

// Modified is a node wrapped in a modifier.
type Modified struct {
	Content  Node
	Modifier Modifier
}

type paddingModifier struct {
	margin compose.Margin
}

type frameModifier struct {
	spec compose.FrameSpec
}

type backgroundModifier struct {
	background Node
	alignment  graphics.Alignment
}

type aspectRatioModifier struct {
	ratio *float64
	mode  graphics.ContentMode
}

// Padding insets content by margin.
func Padding(content Node, margin compose.Margin) Modified {
	return Modified{Content: content, Modifier: paddingModifier{margin: margin}}
}

// Frame sizes content according to spec.
func Frame(content Node, spec compose.FrameSpec) Modified {
	return Modified{Content: content, Modifier: frameModifier{spec: spec}}
}

// Background places background behind content at alignment.
func Background(content, background Node, alignment graphics.Alignment) Modified {
	return Modified{Content: content, Modifier: backgroundModifier{background: background, alignment: alignment}}
}

// AspectRatio keeps content at ratio; nil derives the ratio from content.
func AspectRatio(content Node, ratio *float64, mode graphics.ContentMode) Modified {
	return Modified{Content: content, Modifier: aspectRatioModifier{ratio: ratio, mode: mode}}
}
