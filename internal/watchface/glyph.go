package watchface

import "image"

// batteryGlyph outlines a small battery with a terminal nub on the right,
// in the top-right corner of the screen.
var batteryGlyph = []image.Point{
	{125, 3}, {136, 3}, {136, 4}, {137, 4}, {137, 8},
	{136, 8}, {136, 9}, {125, 9}, {125, 3},
}

// BatteryGlyph returns the low-battery icon polygon.
func BatteryGlyph() []image.Point {
	out := make([]image.Point, len(batteryGlyph))
	copy(out, batteryGlyph)
	return out
}
