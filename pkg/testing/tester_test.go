package testing

import (
	"runtime"
	"testing"

	"golang.org/x/text/language"

	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/locale"
	"github.com/go-drift/crossview/pkg/native"
	"github.com/go-drift/crossview/pkg/platform"
	"github.com/go-drift/crossview/pkg/view"
	"github.com/go-drift/crossview/pkg/widgets"
)

func greetings() *locale.Tagged[string] {
	return locale.NewTagged[string]().
		With(language.English, "Hello").
		With(language.French, "Bonjour")
}

// swatch only renders natively.
type swatch struct{ tag string }

func (s swatch) Name() string { return s.tag }

func (s swatch) MakeNativeView(*view.Context) *native.View {
	return native.NewLeaf(s.tag, graphics.Size{Width: 16, Height: 16})
}

func TestTester_PumpUsesDeclarativeBackendByDefault(t *testing.T) {
	tester := NewTester(t)
	label := widgets.NewLabel(tester.Context(), "greeting", greetings())
	root := tester.Pump(label)

	if root.Backend() != native.BackendDeclarative {
		t.Errorf("backend = %v, want declarative", root.Backend())
	}
	if got := root.Frame().Size; got.Width != DefaultTestWidth || got.Height != DefaultTestHeight {
		t.Errorf("root size = %+v, want the surface", got)
	}
	runtime.KeepAlive(label)
}

func TestTester_SetLegacyAffectsNextPumpOnly(t *testing.T) {
	tester := NewTester(t)
	label := widgets.NewLabel(tester.Context(), "greeting", greetings())
	first := tester.Pump(label)

	tester.SetLegacy(true)
	if first.Backend() != native.BackendDeclarative {
		t.Error("legacy toggle converted a pumped view")
	}
	second := tester.Pump(label)
	if second.Backend() != native.BackendNative {
		t.Errorf("backend after SetLegacy = %v", second.Backend())
	}
	runtime.KeepAlive(label)
}

func TestTester_SetLocaleAndRelayout(t *testing.T) {
	tester := NewTester(t)
	tester.FitContent()
	label := widgets.NewLabel(tester.Context(), "greeting", greetings())
	tester.Pump(label)

	tester.SetLocale(language.French)
	tester.Relayout()

	v := tester.Find(ByText("Bonjour")).First()
	if got := v.Frame().Size.Width; got != 7*7 {
		t.Errorf("width after locale change = %v, want 49", got)
	}
	if tester.Find(ByText("Hello")).Exists() {
		t.Error("stale text remained")
	}
	runtime.KeepAlive(label)
}

func TestTester_SetTargetWithoutDeclarativeBackend(t *testing.T) {
	tester := NewTester(t)
	tester.SetTarget(platform.Target{Name: platform.Linux, Version: "v6.8.0"})
	label := widgets.NewLabel(tester.Context(), "greeting", greetings())

	if root := tester.Pump(label); root.Backend() != native.BackendNative {
		t.Errorf("backend = %v, want native", root.Backend())
	}
	tester.ExpectFailure(errors.KindAvailability, func() {
		view.MakeDeclarative(tester.Context(), label)
	})
	runtime.KeepAlive(label)
}

func TestTester_SetSize(t *testing.T) {
	tester := NewTester(t)
	tester.SetSize(graphics.Size{Width: 100, Height: 40})
	root := tester.Pump(widgets.Padding{Margin: compose.Uniform(4), Child: swatch{tag: "swatch"}})

	if got := tester.Find(ByTag("swatch")).First().Frame(); !got.Equal(graphics.RectFromXYWH(4, 4, 92, 32)) {
		t.Errorf("swatch frame = %s", got)
	}
	if tester.Root() != root {
		t.Error("Root() should return the pumped view")
	}
}

func TestCatchFailure(t *testing.T) {
	NewTester(t)
	if ve := CatchFailure(func() {}); ve != nil {
		t.Errorf("CatchFailure of a normal call = %v", ve)
	}
	ve := CatchFailure(func() {
		errors.Fail("test.Op", errors.KindLayout, "boom")
	})
	if ve == nil || ve.Kind != errors.KindLayout || ve.Op != "test.Op" {
		t.Errorf("CatchFailure = %v", ve)
	}

	defer func() {
		if r := recover(); r != "plain" {
			t.Errorf("non fail-fast panic should propagate, got %v", r)
		}
	}()
	CatchFailure(func() { panic("plain") })
}
