package declarative

import (
	"math"
	"testing"

	"github.com/go-drift/crossview/pkg/compose"
	"github.com/go-drift/crossview/pkg/errors"
	"github.com/go-drift/crossview/pkg/graphics"
	"github.com/go-drift/crossview/pkg/native"
)

type silentHandler struct{}

func (silentHandler) HandleError(*errors.ViewError)  {}
func (silentHandler) HandlePanic(*errors.PanicError) {}

func expectFailure(t *testing.T, kind errors.ErrorKind, fn func()) {
	t.Helper()
	errors.SetHandler(silentHandler{})
	defer errors.SetHandler(nil)
	defer func() {
		ve, ok := errors.AsViewError(recover())
		if !ok {
			t.Fatal("expected fail-fast panic")
		}
		if ve.Kind != kind {
			t.Fatalf("Kind = %v, want %v (%v)", ve.Kind, kind, ve)
		}
	}()
	fn()
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestHost_VStackPlacesChildrenInOrder(t *testing.T) {
	root := Host(VStack(4,
		Leaf{Tag: "top", Size: graphics.Size{Width: 40, Height: 20}},
		Leaf{Tag: "bottom", Size: graphics.Size{Width: 20, Height: 10}},
	))

	size := native.FittingSize(root)
	if !near(size.Width, 40) || !near(size.Height, 34) {
		t.Fatalf("fitting size = %+v, want 40x34", size)
	}
	bottom := root.Find("bottom")
	if bottom == nil {
		t.Fatal("bottom leaf not hosted")
	}
	if want := graphics.RectFromXYWH(10, 24, 20, 10); !bottom.Frame().Equal(want) {
		t.Errorf("bottom frame = %s, want %s", bottom.Frame(), want)
	}
}

func TestHost_HStackOfText(t *testing.T) {
	root := Host(HStack(0, Text{Content: "ab", Tag: "a"}, Text{Content: "cde", Tag: "b"}))

	size := native.FittingSize(root)
	if !near(size.Width, 5*7) || !near(size.Height, 13) {
		t.Errorf("fitting size = %+v, want 35x13", size)
	}
	if b := root.Find("b"); b == nil || !near(b.Frame().Origin.X, 14) {
		t.Errorf("second label should start after the first")
	}
}

func TestHost_MarksDeclarativeBackend(t *testing.T) {
	root := Host(Padding(Text{Content: "hi"}, compose.Automatic))
	root.Walk(func(v *native.View) {
		if v.Backend() != native.BackendDeclarative {
			t.Errorf("%s backend = %v", v.Tag(), v.Backend())
		}
	})
}

func TestHost_NativeLeafBuiltAtHostTime(t *testing.T) {
	built := 0
	leaf := NativeLeaf{Build: func() *native.View {
		built++
		return native.NewLeaf("embedded", graphics.Size{Width: 12, Height: 8})
	}}
	node := Padding(leaf, compose.Uniform(1))
	if built != 0 {
		t.Fatal("builder ran before hosting")
	}

	root := Host(node)
	if built != 1 {
		t.Fatalf("builder ran %d times, want 1", built)
	}
	embedded := root.Find("embedded")
	if embedded.Backend() != native.BackendNative {
		t.Error("embedded native view should keep its backend")
	}
	size := native.FittingSize(root)
	if !near(size.Width, 14) || !near(size.Height, 10) {
		t.Errorf("fitting size = %+v, want 14x10", size)
	}
}

func TestHost_TextOnHostReceivesLabel(t *testing.T) {
	var label *native.View
	Host(Text{Content: "hello", OnHost: func(v *native.View) { label = v }})
	if label == nil || label.Text() != "hello" {
		t.Fatalf("OnHost label = %v", label)
	}
	label.SetText("hello, world")
	if !near(label.IntrinsicSize().Width, 12*7) {
		t.Errorf("width after SetText = %v", label.IntrinsicSize().Width)
	}
}

func TestHost_FrameWithoutBoundsTakesIntrinsicSize(t *testing.T) {
	root := Host(Frame(Leaf{Size: graphics.Size{Width: 40, Height: 20}}, compose.FrameSpec{}))
	size := native.FittingSize(root)
	if !near(size.Width, 40) || !near(size.Height, 20) {
		t.Errorf("fitting size = %+v, want 40x20", size)
	}
}

func TestHost_ZStackAlignsChildren(t *testing.T) {
	root := Host(ZStack{
		Alignment: graphics.AlignmentTopLeading,
		Children: []Node{
			Leaf{Tag: "big", Size: graphics.Size{Width: 50, Height: 30}},
			Leaf{Tag: "small", Size: graphics.Size{Width: 10, Height: 10}},
		},
	})
	native.FittingSize(root)
	if got := root.Find("small").Frame(); !got.Equal(graphics.RectFromXYWH(0, 0, 10, 10)) {
		t.Errorf("small frame = %s", got)
	}
	if got := root.Frame().Size; !near(got.Width, 50) || !near(got.Height, 30) {
		t.Errorf("zstack size = %+v, want 50x30", got)
	}
}

func TestHost_BackgroundAndAspectRatio(t *testing.T) {
	root := Host(Background(
		AspectRatio(Leaf{Tag: "image", Size: graphics.Size{Width: 40, Height: 20}}, nil, graphics.ContentModeFit),
		Leaf{Tag: "fill", Size: graphics.Size{Width: 1, Height: 1}},
		graphics.AlignmentCenter,
	))
	native.Layout(root, graphics.Size{Width: 100, Height: 50})
	if got := root.Find("fill").Frame(); !got.Equal(graphics.RectFromXYWH(0, 0, 100, 50)) {
		t.Errorf("background frame = %s", got)
	}
	if got := root.Find("image").Frame(); !got.Equal(graphics.RectFromXYWH(0, 0, 100, 50)) {
		t.Errorf("image frame = %s", got)
	}
}

func TestHost_Failures(t *testing.T) {
	t.Run("nil node", func(t *testing.T) {
		expectFailure(t, errors.KindPrecondition, func() { Host(nil) })
	})
	t.Run("empty stack", func(t *testing.T) {
		expectFailure(t, errors.KindLayout, func() { Host(VStack(0)) })
	})
	t.Run("empty zstack", func(t *testing.T) {
		expectFailure(t, errors.KindLayout, func() { Host(ZStack{}) })
	})
	t.Run("native leaf without builder", func(t *testing.T) {
		expectFailure(t, errors.KindPrecondition, func() { Host(NativeLeaf{}) })
	})
	t.Run("nil background", func(t *testing.T) {
		expectFailure(t, errors.KindPrecondition, func() {
			Host(Background(Text{Content: "x"}, nil, graphics.AlignmentCenter))
		})
	})
}
