// Package testing provides a test harness for views built with crossview.
//
// # Quick Start
//
// Create a tester, materialize a widget, and make assertions:
//
//	func TestGreeting(t *testing.T) {
//	    tester := cvtest.NewTester(t)
//	    label := widgets.NewLabel(tester.Context(), "greeting", greetings)
//	    tester.Pump(label)
//
//	    tester.SetLocale(language.French)
//	    if !tester.Find(cvtest.ByText("Bonjour")).Exists() {
//	        t.Error("expected 'Bonjour'")
//	    }
//	}
//
// # Backend Selection
//
// The tester targets a platform with the declarative backend by default.
// SetLegacy forces the native path for the next Pump; SetTarget switches
// to a platform without the declarative backend.
//
// # Snapshot Testing
//
// Capture and compare the laid out view tree:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/greeting.snapshot.json")
//
// Update snapshots with:
//
//	CROSSVIEW_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import cvtest "github.com/go-drift/crossview/pkg/testing"
package testing
