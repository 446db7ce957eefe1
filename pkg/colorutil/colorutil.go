// Package colorutil provides shared color utilities for the annotator.
package colorutil

import (
	"image/color"
	"math"
)

// FloatsToNRGBA converts normalized [0,1] RGBA components to an 8-bit color.
// Components are clamped to [0,1] before scaling.
func FloatsToNRGBA(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{
		R: component(r),
		G: component(g),
		B: component(b),
		A: component(a),
	}
}

// NRGBAToFloats converts an 8-bit color to normalized [0,1] RGBA components.
func NRGBAToFloats(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func component(v float64) uint8 {
	v = math.Min(1, math.Max(0, v))
	return uint8(math.Round(v * 255))
}
