package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatsToNRGBA(t *testing.T) {
	tests := []struct {
		name       string
		r, g, b, a float64
		want       color.NRGBA
	}{
		{"white", 1, 1, 1, 1, color.NRGBA{255, 255, 255, 255}},
		{"black opaque", 0, 0, 0, 1, color.NRGBA{0, 0, 0, 255}},
		{"mid red", 0.5, 0, 0, 1, color.NRGBA{128, 0, 0, 255}},
		{"clamped high", 2, 0, 0, 1.5, color.NRGBA{255, 0, 0, 255}},
		{"clamped low", -0.5, 0, 0, 1, color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FloatsToNRGBA(tt.r, tt.g, tt.b, tt.a))
		})
	}
}

func TestNRGBAToFloats(t *testing.T) {
	r, g, b, a := NRGBAToFloats(color.NRGBA{255, 0, 51, 255})
	assert.Equal(t, 1.0, r)
	assert.Equal(t, 0.0, g)
	assert.InDelta(t, 0.2, b, 0.001)
	assert.Equal(t, 1.0, a)
}
