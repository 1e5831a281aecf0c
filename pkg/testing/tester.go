package testing

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/locale"
	"github.com/go-drift/crossview/pkg/native"
	"github.com/go-drift/crossview/pkg/platform"
	"github.com/go-drift/crossview/pkg/view"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// DefaultTarget has the declarative backend.
var DefaultTarget = platform.Target{Name: platform.MacOS, Version: "v14.0.0"}

// Tester materializes views against an isolated context and lays them out
// on a fixed surface without a window.
type Tester struct {
	t    testing.TB
	ctx  *view.Context
	size graphics.Size
	root *native.View
	fit  bool
}

// NewTester creates a tester with the default target and surface size.
// Error reports are silenced until the test ends.
func NewTester(t testing.TB) *Tester {
	errors.SetHandler(silentHandler{})
	t.Cleanup(func() { errors.SetHandler(nil) })
	return &Tester{
		t:    t,
		ctx:  view.NewContext(DefaultTarget),
		size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
	}
}

// Context returns the injected context views are built with.
func (t *Tester) Context() *view.Context { return t.ctx }

// SetTarget switches the target for subsequent materialization.
func (t *Tester) SetTarget(target platform.Target) { t.ctx.Target = target }

// SetLegacy sets the legacy flag. Views already pumped keep their backend.
func (t *Tester) SetLegacy(legacy bool) { t.ctx.Legacy.Set(legacy) }

// SetLocale activates tags in order of preference, notifying localized views.
func (t *Tester) SetLocale(tags ...language.Tag) {
	t.ctx.Locale.Set(locale.NewSetting(tags...))
}

// SetSize sets the surface size used by Pump and Relayout.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
	t.fit = false
}

// FitContent makes Pump and Relayout size the root to its content instead
// of the surface.
func (t *Tester) FitContent() { t.fit = true }

// Pump materializes v through the backend selector and lays it out.
func (t *Tester) Pump(v view.Renderer) *native.View {
	t.t.Helper()
	t.root = view.MakeNative(t.ctx, v)
	t.Relayout()
	return t.root
}

// Relayout lays the current root out again, for instance after a locale
// change re-measured some text.
func (t *Tester) Relayout() {
	t.t.Helper()
	if t.root == nil {
		t.t.Fatal("Relayout called before Pump")
	}
	if t.fit {
		native.FittingSize(t.root)
		return
	}
	native.Layout(t.root, t.size)
}

// Root returns the most recently pumped root.
func (t *Tester) Root() *native.View { return t.root }

// Find evaluates finder against the current root.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{views: finder.Evaluate(t.root), finder: finder}
}

// ExpectFailure runs fn and fails the test unless it fails fast with kind.
func (t *Tester) ExpectFailure(kind errors.ErrorKind, fn func()) {
	t.t.Helper()
	ve := CatchFailure(fn)
	if ve == nil {
		t.t.Fatalf("expected %s failure, call returned normally", kind)
		return
	}
	if ve.Kind != kind {
		t.t.Fatalf("failure kind = %s, want %s (%v)", ve.Kind, kind, ve)
	}
}

// CatchFailure runs fn and returns the fail-fast error it raised, or nil.
// Panics that are not fail-fast errors propagate.
func CatchFailure(fn func()) (ve *errors.ViewError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ok bool
		if ve, ok = errors.AsViewError(r); !ok {
			panic(r)
		}
	}()
	fn()
	return nil
}

type silentHandler struct{}

func (silentHandler) HandleError(*errors.ViewError)  {}
func (silentHandler) HandlePanic(*errors.PanicError) {}
