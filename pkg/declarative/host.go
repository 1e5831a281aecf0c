package declarative

import (
	"fmt"

	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/native"
)

type hoster struct {
	next        int
	nativeRoots map[*native.View]bool
}

func (h *hoster) tag(explicit, kind string) string {
	if explicit != "" {
		return explicit
	}
	h.next++
	return fmt.Sprintf("%s#%d", kind, h.next)
}

// Host instantiates node off-screen as a native subtree and returns its root.
// Every view in the result except embedded native leaves is marked as
// produced by the declarative backend.
func Host(node Node) *native.View {
	if node == nil {
		errors.Fail("declarative.Host", errors.KindPrecondition, "nil node")
	}
	h := &hoster{nativeRoots: make(map[*native.View]bool)}
	root := node.host(h)
	h.mark(root)
	return root
}

// mark tags hosted views as declarative, leaving embedded native leaves as
// their own backend built them.
func (h *hoster) mark(v *native.View) {
	if h.nativeRoots[v] {
		return
	}
	v.SetBackend(native.BackendDeclarative)
	for _, c := range v.Children() {
		h.mark(c)
	}
}

func (t Text) host(h *hoster) *native.View {
	v := native.NewLabel(h.tag(t.Tag, "text"), t.Content)
	if t.OnHost != nil {
		t.OnHost(v)
	}
	return v
}

func (l Leaf) host(h *hoster) *native.View {
	return native.NewLeaf(h.tag(l.Tag, "leaf"), l.Size)
}

func (n NativeLeaf) host(h *hoster) *native.View {
	if n.Build == nil {
		errors.Fail("declarative.NativeLeaf", errors.KindPrecondition, "native leaf without builder")
	}
	v := n.Build()
	if v == nil {
		errors.Fail("declarative.NativeLeaf", errors.KindPrecondition, "builder returned nil view")
	}
	h.nativeRoots[v] = true
	return v
}

func (s Stack) host(h *hoster) *native.View {
	container := native.NewView(h.tag(s.Tag, "stack"))
	children := make([]*native.View, 0, len(s.Children))
	for _, child := range s.Children {
		children = append(children, child.host(h))
	}
	compose.Position(container, children, s.Axis, s.Spacing, 0, 0)
	return container
}

func (z ZStack) host(h *hoster) *native.View {
	container := native.NewView(h.tag(z.Tag, "zstack"))
	if len(z.Children) == 0 {
		errors.Fail("declarative.ZStack", errors.KindLayout, "zstack has no children")
	}
	for _, child := range z.Children {
		compose.Align(container, child.host(h), z.Alignment)
	}
	return container
}

func (m Modified) host(h *hoster) *native.View {
	if m.Content == nil || m.Modifier == nil {
		errors.Fail("declarative.Modified", errors.KindPrecondition, "modifier without content")
	}
	container := native.NewView(h.tag("", "modifier"))
	content := m.Content.host(h)
	m.Modifier.apply(h, container, content)
	return container
}

func (p paddingModifier) apply(_ *hoster, container, content *native.View) {
	compose.Fill(container, p.margin, content)
}

func (f frameModifier) apply(_ *hoster, container, content *native.View) {
	compose.Frame(container, content, f.spec)
}

func (b backgroundModifier) apply(h *hoster, container, content *native.View) {
	if b.background == nil {
		errors.Fail("declarative.Background", errors.KindPrecondition, "nil background")
	}
	compose.Background(container, content, b.background.host(h), b.alignment)
}

func (a aspectRatioModifier) apply(_ *hoster, container, content *native.View) {
	compose.AspectRatio(container, content, a.ratio, a.mode)
}
