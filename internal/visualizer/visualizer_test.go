package visualizer

import (
	"reflect"
	"testing"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/input"
	"github.com/matsen/routeviz/internal/render"
	"github.com/matsen/routeviz/internal/scene"
)

func sampleSnapshot() *scene.Snapshot {
	return &scene.Snapshot{
		Cities: []string{"Boston", "New York", "Philadelphia", "Albany"},
		Routes: []scene.Route{
			{From: "Boston", To: "New York", Distance: scene.Number(215)},
			{From: "New York", To: "Philadelphia", Distance: scene.Number(95)},
		},
	}
}

func newTest(t *testing.T, opts ...Option) (*Visualizer, *frameloop.Manual, *render.Recorder) {
	t.Helper()
	loop := frameloop.NewManual()
	rec := render.NewRecorder()
	opts = append([]Option{WithCanvas(rec), WithSeed(42), WithSize(800, 600)}, opts...)
	return New(loop, opts...), loop, rec
}

func TestLoadSnapshot(t *testing.T) {
	v, _, rec := newTest(t)
	v.viewport = geom.Viewport{OffsetX: 30, OffsetY: 40, Scale: 2}

	v.LoadSnapshot(sampleSnapshot())

	if got := v.Scene().Len(); got != 4 {
		t.Errorf("Scene().Len() = %d, want 4", got)
	}
	if got := len(v.Scene().Edges()); got != 2 {
		t.Errorf("%d edges, want 2", got)
	}
	if v.Viewport() != geom.Identity() {
		t.Errorf("Viewport() = %+v after load, want identity", v.Viewport())
	}
	for _, n := range v.Scene().Nodes() {
		if n.X < scene.LayoutPadding || n.X > 800-scene.LayoutPadding ||
			n.Y < scene.LayoutPadding || n.Y > 600-scene.LayoutPadding {
			t.Errorf("%s laid out at (%v, %v), outside the padded canvas", n.ID, n.X, n.Y)
		}
	}
	if n := len(rec.Filter("Clear")); n == 0 {
		t.Error("LoadSnapshot() did not draw")
	}
}

func TestLoadSnapshot_SeededLayoutIsReproducible(t *testing.T) {
	a, _, _ := newTest(t)
	b, _, _ := newTest(t)
	a.LoadSnapshot(sampleSnapshot())
	b.LoadSnapshot(sampleSnapshot())

	for _, n := range a.Scene().Nodes() {
		m, _ := b.Scene().Node(n.ID)
		if n.X != m.X || n.Y != m.Y {
			t.Errorf("%s at (%v, %v) and (%v, %v) with the same seed", n.ID, n.X, n.Y, m.X, m.Y)
		}
	}
}

func TestLoadSnapshot_ClearsHighlights(t *testing.T) {
	v, loop, _ := newTest(t)
	v.LoadSnapshot(sampleSnapshot())
	v.SetHighlightPath([]string{"Boston", "New York"}, anim.Vehicle)

	v.LoadSnapshot(sampleSnapshot())

	if v.Coordinator().State() != anim.Idle {
		t.Errorf("State() = %v after reload, want idle", v.Coordinator().State())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d after reload, want 0", loop.Pending())
	}
}

func TestFrameLoopRedraws(t *testing.T) {
	var painted []int
	v, loop, rec := newTest(t, WithAfterDraw(func(frame int) {
		painted = append(painted, frame)
	}))
	v.LoadSnapshot(sampleSnapshot())
	rec.Reset()

	v.SetHighlightPath([]string{"Boston", "New York", "Philadelphia"}, anim.Pedestrian)
	if n := len(rec.Filter("Clear")); n != 0 {
		t.Errorf("SetHighlightPath() drew %d frames synchronously, want 0", n)
	}

	loop.Step()
	loop.Step()
	loop.Step()

	if !reflect.DeepEqual(painted, []int{0, 1, 2}) {
		t.Errorf("painted frames = %v, want [0 1 2]", painted)
	}
	if n := len(rec.Filter("Clear")); n != 3 {
		t.Errorf("%d frames drawn, want 3", n)
	}
}

func TestFrameLoop_RunsToArrival(t *testing.T) {
	v, loop, rec := newTest(t)
	v.LoadSnapshot(sampleSnapshot())
	v.SetHighlightPath([]string{"Boston", "New York", "Philadelphia"}, anim.Vehicle)

	frames := loop.RunUntilIdle(5000)
	if frames == 0 || loop.Pending() != 0 {
		t.Fatalf("loop ran %d frames and left %d pending", frames, loop.Pending())
	}

	got := v.Coordinator().VisitedNodes()
	want := []string{"Boston", "New York", "Philadelphia"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisitedNodes() = %v, want %v", got, want)
	}
	// One draw per frame plus the arrival frame.
	if n := len(rec.Filter("Clear")); n < frames+1 {
		t.Errorf("%d draws for %d frames, want at least %d", n, frames, frames+1)
	}
}

func TestClear(t *testing.T) {
	v, loop, _ := newTest(t)
	v.LoadSnapshot(sampleSnapshot())
	v.SetHighlightNodes([]string{"Boston"})
	v.Wheel(-1)

	v.Clear()

	if v.Scene().Len() != 0 || len(v.Scene().Edges()) != 0 {
		t.Error("scene not empty after Clear()")
	}
	if v.Coordinator().State() != anim.Idle || loop.Pending() != 0 {
		t.Error("highlights survived Clear()")
	}
	if v.Viewport() != geom.Identity() {
		t.Errorf("Viewport() = %+v, want identity", v.Viewport())
	}
}

func TestResize_RedrawsSynchronously(t *testing.T) {
	v, _, rec := newTest(t)
	v.Resize(1024, 768)

	clears := rec.Filter("Clear")
	if len(clears) != 1 {
		t.Fatalf("%d draws, want 1", len(clears))
	}
	if !reflect.DeepEqual(clears[0].Args, []float64{1024, 768}) {
		t.Errorf("cleared %v, want [1024 768]", clears[0].Args)
	}
	if w, h := v.Size(); w != 1024 || h != 768 {
		t.Errorf("Size() = %v, %v, want 1024, 768", w, h)
	}
}

func TestPointerGestures(t *testing.T) {
	v, _, rec := newTest(t)
	v.AddNode("A", 100, 100)
	v.AddNode("B", 400, 100)
	v.AddEdge("A", "B", scene.Number(3))

	v.PointerMove(105, 100)
	if v.Cursor() != input.CursorGrab {
		t.Errorf("hover Cursor() = %v, want grab", v.Cursor())
	}
	if n := len(rec.Filter("Clear")); n != 0 {
		t.Errorf("hover drew %d frames, want 0", n)
	}

	v.PointerDown(105, 100)
	v.PointerMove(205, 150)
	v.PointerUp()

	if n, _ := v.Scene().Node("A"); n.X != 200 || n.Y != 150 {
		t.Errorf("A dragged to (%v, %v), want (200, 150)", n.X, n.Y)
	}
	if n := len(rec.Filter("Clear")); n != 1 {
		t.Errorf("drag drew %d frames, want 1", n)
	}

	if !v.Wheel(100) {
		t.Error("Wheel() should suppress default scrolling")
	}
	if v.Viewport().Scale != 0.9 {
		t.Errorf("Scale = %v, want 0.9", v.Viewport().Scale)
	}
}

func TestNoCanvas(t *testing.T) {
	v := New(frameloop.NewManual(), WithSeed(1))
	v.LoadSnapshot(sampleSnapshot())
	v.Draw()
	v.Resize(10, 10)
}

func TestAutoLayout_EmptyScene(t *testing.T) {
	v, _, _ := newTest(t)
	v.viewport = geom.Viewport{OffsetX: 5, OffsetY: 5, Scale: 2}
	v.AutoLayout()
	if v.Viewport().Scale != 2 {
		t.Error("AutoLayout() on an empty scene reset the viewport")
	}
}
