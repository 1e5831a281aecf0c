// Package locale carries the active language ordering through a shared
// cell so localized views can follow it.
//
// A Broadcast is created once per context and injected wherever localized
// views are built. Views register as observers, resolve a Tagged value
// against the current Setting on each notification and push the result
// into their render node.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/go-drift/crossview/pkg/core"
	"github.com/go-drift/crossview/pkg/errors"
)

// Setting is an ordered list of preferred languages, most preferred first.
type Setting struct {
	Preferred []language.Tag
}

// NewSetting returns a setting preferring tags in order.
func NewSetting(tags ...language.Tag) Setting {
	return Setting{Preferred: append([]language.Tag(nil), tags...)}
}

// ParseSetting parses a comma separated preference list such as
// "fr-CH, fr;q=0.9, en;q=0.8". Entries are ordered by weight.
func ParseSetting(s string) (Setting, error) {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil {
		return Setting{}, fmt.Errorf("parse locale %q: %w", s, err)
	}
	if len(tags) == 0 {
		return Setting{}, fmt.Errorf("parse locale %q: no languages", s)
	}
	return Setting{Preferred: tags}, nil
}

// Primary returns the most preferred language, or language.Und.
func (s Setting) Primary() language.Tag {
	if len(s.Preferred) == 0 {
		return language.Und
	}
	return s.Preferred[0]
}

func (s Setting) String() string {
	parts := make([]string, len(s.Preferred))
	for i, t := range s.Preferred {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// Broadcast is the shared cell holding the active Setting.
type Broadcast struct {
	cell *core.Cell[Setting]
}

// NewBroadcast returns a broadcast starting at initial.
func NewBroadcast(initial Setting) *Broadcast {
	return &Broadcast{cell: core.NewCell(initial)}
}

// Current returns the active setting.
func (b *Broadcast) Current() Setting { return b.cell.Value() }

// Set activates s and notifies every registered view before returning.
func (b *Broadcast) Set(s Setting) { b.cell.Set(s) }

// Register subscribes o to setting changes.
func (b *Broadcast) Register(o core.Observer, id ...core.Identifier) { b.cell.Register(o, id...) }

// Cancel unsubscribes o.
func (b *Broadcast) Cancel(o core.Observer, id ...core.Identifier) { b.cell.Cancel(o, id...) }

// Cell exposes the underlying cell, for use with core.UseCell.
func (b *Broadcast) Cell() *core.Cell[Setting] { return b.cell }

// Tagged maps languages to values of T. The first entry is the fallback
// when nothing in a Setting matches.
type Tagged[T any] struct {
	tags    []language.Tag
	values  []T
	matcher language.Matcher
}

// NewTagged returns an empty resolver.
func NewTagged[T any]() *Tagged[T] {
	return &Tagged[T]{}
}

// With adds value for tag and returns the resolver for chaining. A later
// value for the same tag replaces the earlier one.
func (t *Tagged[T]) With(tag language.Tag, value T) *Tagged[T] {
	t.matcher = nil
	for i, existing := range t.tags {
		if existing == tag {
			t.values[i] = value
			return t
		}
	}
	t.tags = append(t.tags, tag)
	t.values = append(t.values, value)
	return t
}

// Len returns the number of entries.
func (t *Tagged[T]) Len() int { return len(t.tags) }

// Resolve returns the value best matching s. Resolving an empty Tagged is a
// programmer error.
func (t *Tagged[T]) Resolve(s Setting) T {
	if len(t.tags) == 0 {
		errors.Fail("locale.Resolve", errors.KindPrecondition, "resolver has no entries")
	}
	if t.matcher == nil {
		t.matcher = language.NewMatcher(t.tags)
	}
	_, index, _ := t.matcher.Match(s.Preferred...)
	return t.values[index]
}
