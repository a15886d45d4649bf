package scene

import "image/color"

// Palette is the fixed set of node colours, indexed by ColorIndex.
var Palette = []color.RGBA{
	{0xef, 0x44, 0x44, 0xff}, // #ef4444 red
	{0xf5, 0x9e, 0x0b, 0xff}, // #f59e0b amber
	{0x10, 0xb9, 0x81, 0xff}, // #10b981 emerald
	{0x3b, 0x82, 0xf6, 0xff}, // #3b82f6 blue
	{0x8b, 0x5c, 0xf6, 0xff}, // #8b5cf6 violet
	{0xec, 0x48, 0x99, 0xff}, // #ec4899 pink
	{0x06, 0xb6, 0xd4, 0xff}, // #06b6d4 cyan
	{0x84, 0xcc, 0x16, 0xff}, // #84cc16 lime
}

// ColorIndex hashes a node ID into the palette: the sum of the ID's UTF-8
// bytes, modulo the palette size.
func ColorIndex(id string) int {
	var sum uint64
	for i := 0; i < len(id); i++ {
		sum += uint64(id[i])
	}
	return int(sum % uint64(len(Palette)))
}

// ColorFor returns the palette colour assigned to id.
func ColorFor(id string) color.RGBA {
	return Palette[ColorIndex(id)]
}
