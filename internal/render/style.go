package render

import (
	"image/color"
	"math"
)

var (
	Background = color.RGBA{255, 255, 255, 255}

	edgeColor       = color.RGBA{0xcb, 0xd5, 0xe1, 0xff} // #cbd5e1, also the idle node border
	edgeLabelColor  = color.RGBA{0x64, 0x74, 0x8b, 0xff} // #64748b
	edgeLabelActive = color.RGBA{0x63, 0x66, 0xf1, 0xff} // #6366f1
	labelPlate      = color.RGBA{255, 255, 255, 255}

	visitedInner  = color.RGBA{0x10, 0xb9, 0x81, 0xff} // #10b981
	visitedOuter  = color.RGBA{0x05, 0x96, 0x69, 0xff} // #059669
	visitedGlow   = color.NRGBA{16, 185, 129, 153}     // 0.6 alpha
	activeInner   = color.RGBA{0x8b, 0x5c, 0xf6, 0xff} // #8b5cf6
	activeOuter   = color.RGBA{0x63, 0x66, 0xf1, 0xff} // #6366f1
	activeGlow    = color.NRGBA{99, 102, 241, 128}     // 0.5 alpha
	nodeLabelDark = color.RGBA{0x1e, 0x29, 0x3b, 0xff} // #1e293b
	nodeLabelLite = color.RGBA{255, 255, 255, 255}

	busBody   = color.RGBA{0xfb, 0xbf, 0x24, 0xff}
	busWindow = color.RGBA{0x93, 0xc5, 0xfd, 0xff}
	busWheel  = color.RGBA{0x1e, 0x29, 0x3b, 0xff}
	busFront  = color.RGBA{0xef, 0x44, 0x44, 0xff}
	walker    = color.RGBA{0xf5, 0x9e, 0x0b, 0xff}
)

const (
	edgeWidth       = 2.0
	nodeBorderWidth = 3.0
	visitedBorder   = 4.0
	edgeLabelSize   = 14.0
	nodeLabelSize   = 11.0
	glowRings       = 4
)

// Pulse maps a frame counter onto [0, 1] with a period of ~63 frames.
func Pulse(frame int) float64 {
	return math.Sin(float64(frame)*0.1)*0.5 + 0.5
}

// pathEdgeColor is the indigo of a highlighted edge at alpha 0.7..1.0.
func pathEdgeColor(pulse float64) color.NRGBA {
	return color.NRGBA{99, 102, 241, alpha(0.7 + 0.3*pulse)}
}

func alpha(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}
