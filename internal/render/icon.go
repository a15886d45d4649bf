package render

import "math"

// drawVehicle paints the bus glyph facing +x, centred on the origin.
func drawVehicle(c Canvas) {
	c.SetFillColor(busBody)
	c.FillRect(-20, -12, 40, 24)

	c.SetFillColor(busWindow)
	c.FillRect(-15, -8, 10, 8)
	c.FillRect(5, -8, 10, 8)

	c.SetFillColor(busWheel)
	for _, x := range []float64{-10, 10} {
		c.BeginPath()
		c.Arc(x, 12, 5)
		c.Fill()
	}

	c.SetFillColor(busFront)
	c.FillRect(18, -5, 4, 10)
}

// drawPedestrian paints a stick figure whose limbs swing with progress.
func drawPedestrian(c Canvas, progress float64) {
	walk := math.Sin(progress*20) * 0.3

	c.SetFillColor(walker)
	c.BeginPath()
	c.Arc(0, -15, 6)
	c.Fill()

	c.SetStrokeColor(walker)
	c.SetLineWidth(3)
	c.SetLineCap(CapRound)

	limbs := [][4]float64{
		{0, -9, 0, 5},           // torso
		{0, -5, -8, 2 + walk*5}, // arms
		{0, -5, 8, 2 - walk*5},
		{0, 5, -6, 15 - walk*8}, // legs
		{0, 5, 6, 15 + walk*8},
	}
	c.BeginPath()
	for _, l := range limbs {
		c.MoveTo(l[0], l[1])
		c.LineTo(l[2], l[3])
	}
	c.Stroke()
}
