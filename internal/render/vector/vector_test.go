package vector

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/render"
	"github.com/matsen/routeviz/internal/scene"
)

func TestCanvas_PathsInDeviceSpace(t *testing.T) {
	var buf bytes.Buffer
	c, err := New(&buf, 200, 200)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Translate(10, 20)
	c.Scale(2)
	c.SetFillColor(color.RGBA{255, 0, 0, 255})
	c.BeginPath()
	c.Arc(5, 5, 10)
	c.Fill()
	c.Close()

	out := buf.String()
	// Centre (5,5) maps to (20,30); radius 10 scales to 20.
	if !strings.Contains(out, `d="M0,30 A20,20 0 1 0 40,30 A20,20 0 1 0 0,30 Z"`) {
		t.Errorf("circle not emitted in device space:\n%s", out)
	}
	if !strings.Contains(out, "fill:#ff0000;fill-opacity:1") {
		t.Errorf("fill style missing:\n%s", out)
	}
}

func TestCanvas_SaveRestore(t *testing.T) {
	var buf bytes.Buffer
	c, err := New(&buf, 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Save()
	c.Translate(50, 50)
	c.SetLineWidth(7)
	c.Restore()

	c.BeginPath()
	c.MoveTo(1, 2)
	c.LineTo(3, 4)
	c.Stroke()
	c.Close()

	out := buf.String()
	if !strings.Contains(out, `d="M1,2 L3,4"`) {
		t.Errorf("transform leaked past Restore:\n%s", out)
	}
	if !strings.Contains(out, "stroke-width:1;") {
		t.Errorf("line width leaked past Restore:\n%s", out)
	}
}

func TestCanvas_TranslucentStroke(t *testing.T) {
	var buf bytes.Buffer
	c, err := New(&buf, 100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.SetStrokeColor(color.NRGBA{99, 102, 241, 217})
	c.SetLineCap(render.CapRound)
	c.BeginPath()
	c.MoveTo(0, 0)
	c.LineTo(10, 0)
	c.Stroke()
	c.Close()

	out := buf.String()
	if !strings.Contains(out, "stroke:#6366f1;stroke-opacity:0.851") {
		t.Errorf("translucent stroke not emitted:\n%s", out)
	}
	if !strings.Contains(out, "stroke-linecap:round") {
		t.Errorf("round cap missing:\n%s", out)
	}
}

func TestCanvas_MeasureText(t *testing.T) {
	c, err := New(&bytes.Buffer{}, 10, 10)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c.SetFont(render.Font{Size: 14, Bold: true})
	one, four := c.MeasureText("7"), c.MeasureText("7777")
	if one <= 0 {
		t.Fatalf("MeasureText(\"7\") = %v, want > 0", one)
	}
	if diff := four - 4*one; diff > 0.1 || diff < -0.1 {
		t.Errorf("MeasureText(\"7777\") = %v, want 4 x %v", four, one)
	}
}

func TestRenderScene_SVG(t *testing.T) {
	sc := scene.New()
	sc.AddNode("Boston", 100, 100)
	sc.AddNode("New York", 300, 200)
	sc.AddNode("Albany", 100, 250)
	sc.AddEdge("Boston", "New York", scene.Number(215))
	sc.AddEdge("New York", "Albany", scene.Number(150))

	hl := anim.NewCoordinator(frameloop.NewManual())
	hl.SetHighlightPath([]string{"Boston", "New York"}, anim.Pedestrian)

	var buf bytes.Buffer
	c, err := New(&buf, 400, 300)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	render.NewRenderer().Draw(c, 400, 300, sc, geom.Identity(), hl, 0)
	c.Close()

	out := buf.String()
	for _, want := range []string{
		"<svg",
		">215</text>",
		">New York</text>",
		"<radialGradient",
		`r="58%"`, // gradient radius 35 over a 60px node box
		"stroke-linecap:round",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("document not closed")
	}
	if n := strings.Count(out, "<radialGradient"); n != 2 {
		t.Errorf("%d gradients, want 2 (Boston visited, New York highlighted)", n)
	}
}
