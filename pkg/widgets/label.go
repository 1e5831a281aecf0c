package widgets

import (
	"github.com/go-drift/crossview/pkg/core"
	"github.com/go-drift/crossview/pkg/declarative"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/locale"
	"github.com/go-drift/crossview/pkg/native"
	"github.com/go-drift/crossview/pkg/view"
)

// localeIdentifier is the identifier a Label registers with.
const localeIdentifier core.Identifier = "locale"

// Label shows a localized string and follows the context's locale.
//
// The label observes the locale broadcast from construction until Dispose.
// Each change re-resolves the source and pushes the text into the most
// recently materialized view. The broadcast holds the label weakly, so the
// owner must keep it reachable for as long as updates are wanted.
type Label struct {
	core.ObserverBase
	core.Scope

	ctx     *view.Context
	tag     string
	source  *locale.Tagged[string]
	cancel  func()
	node    *native.View
	updates int
}

// NewLabel returns a label showing source, registered on ctx's locale.
func NewLabel(ctx *view.Context, tag string, source *locale.Tagged[string]) *Label {
	if ctx == nil || ctx.Locale == nil {
		errors.Fail("widgets.NewLabel", errors.KindPrecondition, "context without locale")
	}
	if source == nil {
		errors.Fail("widgets.NewLabel", errors.KindPrecondition, "nil source")
	}
	l := &Label{ctx: ctx, tag: tag, source: source}
	l.cancel = core.UseCell(l, ctx.Locale.Cell(), l, localeIdentifier)
	return l
}

// Receive re-resolves the text after a locale change.
func (l *Label) Receive(id core.Identifier) {
	if id == localeIdentifier {
		l.push()
	}
}

// Text returns the source resolved against the current locale.
func (l *Label) Text() string {
	return l.source.Resolve(l.ctx.Locale.Current())
}

// SetSource switches the displayed source. The old registration is cancelled
// before the new one is made so no notification for the old source arrives
// after the switch.
func (l *Label) SetSource(source *locale.Tagged[string]) {
	if source == nil {
		errors.Fail("widgets.Label.SetSource", errors.KindPrecondition, "nil source")
	}
	l.cancel()
	l.source = source
	l.cancel = core.UseCell(l, l.ctx.Locale.Cell(), l, localeIdentifier)
	l.push()
}

// Updates returns how many times text has been pushed into the view.
func (l *Label) Updates() int { return l.updates }

// View returns the most recently materialized view, or nil.
func (l *Label) View() *native.View { return l.node }

// Name returns the label's tag.
func (l *Label) Name() string { return tagOr(l.tag, "label") }

// MakeNativeView builds a native text leaf.
func (l *Label) MakeNativeView(*view.Context) *native.View {
	l.node = native.NewLabel(l.tag, l.Text())
	return l.node
}

// Body describes the label as declarative text. The hosted view replaces
// the label's current view.
func (l *Label) Body(*view.Context) declarative.Node {
	return declarative.Text{
		Content: l.Text(),
		Tag:     l.tag,
		OnHost:  func(v *native.View) { l.node = v },
	}
}

func (l *Label) push() {
	if l.node == nil || l.IsDisposed() {
		return
	}
	l.node.SetText(l.Text())
	l.updates++
}
