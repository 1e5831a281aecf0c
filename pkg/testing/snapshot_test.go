package testing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/widgets"
)

func pumpPadded(t *testing.T, margin float64) *Tester {
	tester := NewTester(t)
	tester.SetSize(graphics.Size{Width: 80, Height: 40})
	tester.Pump(widgets.Padding{Tag: "padding", Margin: compose.Uniform(margin), Child: swatch{tag: "swatch"}})
	return tester
}

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := NewTester(t)
	if snap := tester.CaptureSnapshot(); snap.Root != nil {
		t.Error("snapshot before Pump should be empty")
	}

	snap := pumpPadded(t, 4).CaptureSnapshot()
	root := snap.Root
	if root == nil || root.Backend != "declarative" || len(root.Children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	child := root.Children[0]
	if child.Tag != "swatch" || child.Backend != "native" {
		t.Errorf("child = %+v", child)
	}
	if child.Frame != [4]float64{4, 4, 72, 32} {
		t.Errorf("child frame = %v", child.Frame)
	}
}

func TestSnapshot_Diff(t *testing.T) {
	a := pumpPadded(t, 4).CaptureSnapshot()
	b := pumpPadded(t, 4).CaptureSnapshot()
	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff, got:\n%s", diff)
	}

	c := pumpPadded(t, 6).CaptureSnapshot()
	if diff := a.Diff(c); diff == "" {
		t.Error("expected diff for different margins")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	snap := pumpPadded(t, 4).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "testdata", "padded.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv(updateEnv, "")
	snap := pumpPadded(t, 4).CaptureSnapshot()

	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv(updateEnv, "")
	path := filepath.Join(t.TempDir(), "snap.json")
	if err := pumpPadded(t, 4).CaptureSnapshot().UpdateFile(path); err != nil {
		t.Fatal(err)
	}

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	pumpPadded(t, 10).CaptureSnapshot().MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	snap := pumpPadded(t, 4).CaptureSnapshot()
	path := filepath.Join(t.TempDir(), "update.snapshot.json")

	t.Setenv(updateEnv, "1")
	snap.MatchesFile(t, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
