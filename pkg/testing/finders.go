package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/crossview/pkg/native"
)

// Finder locates views in a materialized tree.
type Finder interface {
	// Evaluate returns all matching views under root (depth-first pre-order).
	Evaluate(root *native.View) []*native.View
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	views  []*native.View
	finder Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *native.View {
	if len(r.views) == 0 {
		panic(fmt.Sprintf("Finder found no views: %s", r.description()))
	}
	return r.views[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *native.View {
	if len(r.views) == 0 {
		return nil
	}
	return r.views[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *native.View {
	if index < 0 || index >= len(r.views) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.views), r.description()))
	}
	return r.views[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*native.View { return r.views }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.views) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.views) > 0 }

type predicateFinder struct {
	fn   func(*native.View) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *native.View) []*native.View {
	var out []*native.View
	root.Walk(func(v *native.View) {
		if f.fn(v) {
			out = append(out, v)
		}
	})
	return out
}

func (f *predicateFinder) Description() string { return f.desc }

// ByTag matches views with the given tag.
func ByTag(tag string) Finder {
	return &predicateFinder{
		fn:   func(v *native.View) bool { return v.Tag() == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// ByText matches text views showing exactly text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn:   func(v *native.View) bool { return v.Text() == text && text != "" },
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining matches text views whose text contains substring.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn:   func(v *native.View) bool { return v.Text() != "" && strings.Contains(v.Text(), substring) },
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByBackend matches views produced by backend.
func ByBackend(backend native.Backend) Finder {
	return &predicateFinder{
		fn:   func(v *native.View) bool { return v.Backend() == backend },
		desc: fmt.Sprintf("ByBackend(%s)", backend),
	}
}

// ByPredicate matches views satisfying fn.
func ByPredicate(fn func(*native.View) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *native.View) []*native.View {
	var results []*native.View
	seen := make(map[*native.View]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant matches views satisfying matching that sit below a view
// matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
