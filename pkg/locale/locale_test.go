package locale

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/go-drift/crossview/pkg/core"
	"github.com/go-drift/crossview/pkg/errors"
)

type silentHandler struct{}

func (silentHandler) HandleError(*errors.ViewError)  {}
func (silentHandler) HandlePanic(*errors.PanicError) {}

func greetings() *Tagged[string] {
	return NewTagged[string]().
		With(language.English, "Hello").
		With(language.French, "Bonjour").
		With(language.German, "Hallo")
}

func TestParseSetting_OrdersByWeight(t *testing.T) {
	s, err := ParseSetting("de;q=0.5, fr-CH, en;q=0.8")
	if err != nil {
		t.Fatalf("ParseSetting: %v", err)
	}
	if got := s.String(); got != "fr-CH,en,de" {
		t.Errorf("setting = %q, want fr-CH,en,de", got)
	}
	if s.Primary() != language.MustParse("fr-CH") {
		t.Errorf("Primary() = %v", s.Primary())
	}
}

func TestParseSetting_Errors(t *testing.T) {
	if _, err := ParseSetting(""); err == nil {
		t.Error("expected error for empty setting")
	}
	if _, err := ParseSetting("en;q=nope"); err == nil {
		t.Error("expected error for malformed weight")
	}
}

func TestTagged_Resolve(t *testing.T) {
	g := greetings()
	cases := []struct {
		setting Setting
		want    string
	}{
		{NewSetting(language.French), "Bonjour"},
		{NewSetting(language.MustParse("fr-CA")), "Bonjour"},
		{NewSetting(language.Japanese, language.German), "Hallo"},
		{NewSetting(language.Japanese), "Hello"},
		{Setting{}, "Hello"},
	}
	for _, c := range cases {
		if got := g.Resolve(c.setting); got != c.want {
			t.Errorf("Resolve(%s) = %q, want %q", c.setting, got, c.want)
		}
	}
}

func TestTagged_WithReplacesExisting(t *testing.T) {
	g := greetings()
	g.Resolve(NewSetting(language.French))
	g.With(language.French, "Salut")
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if got := g.Resolve(NewSetting(language.French)); got != "Salut" {
		t.Errorf("Resolve = %q, want Salut", got)
	}
}

func TestTagged_EmptyFails(t *testing.T) {
	errors.SetHandler(silentHandler{})
	defer errors.SetHandler(nil)
	defer func() {
		ve, ok := errors.AsViewError(recover())
		if !ok || ve.Kind != errors.KindPrecondition {
			t.Fatalf("expected precondition failure, got %v", ve)
		}
	}()
	NewTagged[string]().Resolve(NewSetting(language.English))
}

func TestBroadcast_NotifiesObservers(t *testing.T) {
	b := NewBroadcast(NewSetting(language.English))
	var seen []string
	obs := core.NewObserverFunc(func(core.Identifier) {
		seen = append(seen, b.Current().String())
	})
	b.Register(obs)

	b.Set(NewSetting(language.French))
	b.Set(NewSetting(language.German, language.English))

	if len(seen) != 2 || seen[0] != "fr" || seen[1] != "de,en" {
		t.Errorf("seen = %v", seen)
	}

	b.Cancel(obs)
	b.Set(NewSetting(language.English))
	if len(seen) != 2 {
		t.Errorf("cancelled observer notified: %v", seen)
	}
	if b.Cell().ObserverCount() != 0 {
		t.Errorf("ObserverCount() = %d", b.Cell().ObserverCount())
	}
}
