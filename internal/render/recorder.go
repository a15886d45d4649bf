package render

import "image/color"

// Call is one recorded Canvas method call.
type Call struct {
	Op       string
	Args     []float64
	Text     string
	Color    color.NRGBA
	Gradient *RadialGradient
	Font     Font
	Cap      LineCap
}

// Recorder is a Canvas that records every call instead of drawing. Text is
// measured with a fixed advance of 0.6em per rune.
type Recorder struct {
	calls []Call
	font  Font
	saved []Font
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Ops returns the names of the recorded calls in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.calls))
	for i, c := range r.calls {
		ops[i] = c.Op
	}
	return ops
}

// Filter returns the calls named op.
func (r *Recorder) Filter(op string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns the strings passed to FillText, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Filter("FillText") {
		out = append(out, c.Text)
	}
	return out
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.calls = nil
}

func (r *Recorder) record(op string, args ...float64) {
	r.calls = append(r.calls, Call{Op: op, Args: args})
}

func (r *Recorder) Clear(width, height float64) { r.record("Clear", width, height) }

func (r *Recorder) Save() {
	r.saved = append(r.saved, r.font)
	r.record("Save")
}

func (r *Recorder) Restore() {
	if n := len(r.saved); n > 0 {
		r.font = r.saved[n-1]
		r.saved = r.saved[:n-1]
	}
	r.record("Restore")
}

func (r *Recorder) Translate(x, y float64) { r.record("Translate", x, y) }
func (r *Recorder) Scale(s float64) { r.record("Scale", s) }
func (r *Recorder) Rotate(angle float64) { r.record("Rotate", angle) }
func (r *Recorder) BeginPath() { r.record("BeginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.record("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.record("LineTo", x, y) }
func (r *Recorder) Arc(x, y, rad float64) { r.record("Arc", x, y, rad) }
func (r *Recorder) Rect(x, y, w, h float64) { r.record("Rect", x, y, w, h) }
func (r *Recorder) Fill() { r.record("Fill") }
func (r *Recorder) Stroke() { r.record("Stroke") }
func (r *Recorder) FillRect(x, y, w, h float64) { r.record("FillRect", x, y, w, h) }
func (r *Recorder) SetLineWidth(w float64) { r.record("SetLineWidth", w) }

func (r *Recorder) SetFillColor(c color.Color) {
	r.calls = append(r.calls, Call{Op: "SetFillColor", Color: toNRGBA(c)})
}

func (r *Recorder) SetStrokeColor(c color.Color) {
	r.calls = append(r.calls, Call{Op: "SetStrokeColor", Color: toNRGBA(c)})
}

func (r *Recorder) SetFillRadialGradient(g RadialGradient) {
	g.Stops = append([]ColorStop(nil), g.Stops...)
	r.calls = append(r.calls, Call{Op: "SetFillRadialGradient", Gradient: &g})
}

func (r *Recorder) SetLineCap(lc LineCap) {
	r.calls = append(r.calls, Call{Op: "SetLineCap", Cap: lc})
}

func (r *Recorder) SetFont(f Font) {
	r.font = f
	r.calls = append(r.calls, Call{Op: "SetFont", Font: f})
}

func (r *Recorder) MeasureText(s string) float64 {
	return float64(len([]rune(s))) * r.font.Size * 0.6
}

func (r *Recorder) FillText(s string, x, y float64) {
	r.calls = append(r.calls, Call{Op: "FillText", Args: []float64{x, y}, Text: s, Font: r.font})
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
