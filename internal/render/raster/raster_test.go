package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/routeviz/internal/anim"
	"github.com/matsen/routeviz/internal/frameloop"
	"github.com/matsen/routeviz/internal/geom"
	"github.com/matsen/routeviz/internal/render"
	"github.com/matsen/routeviz/internal/scene"
)

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return color.RGBAModel.Convert(c.Image().At(x, y)).(color.RGBA)
}

func TestNew_ClearsToBackground(t *testing.T) {
	c, err := New(20, 10)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b := c.Image().Bounds()
	if b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("image is %dx%d, want 20x10", b.Dx(), b.Dy())
	}
	if got := rgbaAt(c, 5, 5); got != render.Background {
		t.Errorf("pixel = %v, want background %v", got, render.Background)
	}
}

func TestCanvas_FillUnderTransform(t *testing.T) {
	c, err := New(100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	red := color.RGBA{255, 0, 0, 255}

	c.Save()
	c.Translate(50, 50)
	c.Scale(2)
	c.SetFillColor(red)
	c.BeginPath()
	c.Arc(0, 0, 10)
	c.Fill()
	c.Restore()

	if got := rgbaAt(c, 50, 50); got != red {
		t.Errorf("centre = %v, want red", got)
	}
	// Radius 10 scaled by 2 reaches x=70.
	if got := rgbaAt(c, 66, 50); got != red {
		t.Errorf("pixel inside scaled radius = %v, want red", got)
	}
	if got := rgbaAt(c, 5, 5); got != render.Background {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestCanvas_FillThenStrokeSamePath(t *testing.T) {
	c, err := New(100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	blue := color.RGBA{0, 0, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	c.SetFillColor(blue)
	c.SetStrokeColor(black)
	c.SetLineWidth(4)
	c.BeginPath()
	c.Arc(50, 50, 30)
	c.Fill()
	c.Stroke()

	if got := rgbaAt(c, 50, 50); got != blue {
		t.Errorf("centre = %v, want blue fill", got)
	}
	if got := rgbaAt(c, 80, 50); got != black {
		t.Errorf("rim = %v, want black stroke", got)
	}
}

func TestCanvas_StrokeWidthFollowsScale(t *testing.T) {
	c, err := New(100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	black := color.RGBA{0, 0, 0, 255}

	c.Scale(3)
	c.SetStrokeColor(black)
	c.SetLineWidth(4)
	c.Save()
	c.SetLineWidth(10)
	c.Restore()
	c.BeginPath()
	c.MoveTo(5, 15)
	c.LineTo(30, 15)
	c.Stroke()

	// 4 units under a 3x scale is 12 device pixels centred on y=45.
	rows := 0
	for y := 0; y < 100; y++ {
		if rgbaAt(c, 50, y) != render.Background {
			rows++
		}
	}
	if rows < 11 || rows > 13 {
		t.Errorf("stroke covers %d rows, want about 12", rows)
	}
	if got := rgbaAt(c, 50, 45); got != black {
		t.Errorf("stroke centre = %v, want black", got)
	}
}

func TestCanvas_RadialGradientFollowsTransform(t *testing.T) {
	c, err := New(100, 100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.Translate(50, 50)
	c.SetFillRadialGradient(render.RadialGradient{X: 0, Y: 0, R: 40, Stops: []render.ColorStop{
		{Offset: 0, Color: color.RGBA{255, 0, 0, 255}},
		{Offset: 1, Color: color.RGBA{0, 0, 255, 255}},
	}})
	c.BeginPath()
	c.Arc(0, 0, 40)
	c.Fill()

	centre := rgbaAt(c, 50, 50)
	if centre.R < 240 || centre.B > 15 {
		t.Errorf("gradient centre = %v, want red", centre)
	}
	edge := rgbaAt(c, 88, 50)
	if edge.B < 200 {
		t.Errorf("gradient edge = %v, want mostly blue", edge)
	}
}

func TestCanvas_MeasureText(t *testing.T) {
	c, err := New(10, 10)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	c.SetFont(render.Font{Size: 14, Bold: true})
	short := c.MeasureText("7")
	long := c.MeasureText("1234")
	if short <= 0 || long <= short {
		t.Errorf("MeasureText widths = %v, %v, want 0 < short < long", short, long)
	}

	c.SetFont(render.Font{Size: 28, Bold: true})
	if big := c.MeasureText("1234"); big <= long {
		t.Errorf("28px width %v not wider than 14px width %v", big, long)
	}
}

func TestRenderScene_PNG(t *testing.T) {
	sc := scene.New()
	sc.AddNode("Boston", 100, 100)
	sc.AddNode("New York", 300, 200)
	sc.AddEdge("Boston", "New York", scene.Number(215))

	hl := anim.NewCoordinator(frameloop.NewManual())
	hl.SetHighlightPath([]string{"Boston", "New York"}, anim.Vehicle)

	c, err := New(400, 300)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	render.NewRenderer().Draw(c, 400, 300, sc, geom.Identity(), hl, 0)

	// Boston is visited: above the icon and label its fill is the green gradient.
	if got := rgbaAt(c, 100, 75); got.G < got.R || got.G < got.B {
		t.Errorf("visited node fill = %v, want green-dominant", got)
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("decoded image is %dx%d, want 400x300", b.Dx(), b.Dy())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("SavePNG() wrote nothing: %v", err)
	}
}
