// Package class provides classification class storage and the current-class mirror.
package class

// Color is an RGBA mask color with components in [0,1].
type Color [4]float64

// White is the default mask color for a new class (opaque white).
var White = Color{1, 1, 1, 1}

// Class represents a single classification class. The name is the identity;
// it must be unique within a Registry.
type Class struct {
	Name        string `json:"name"`
	MaskColor   Color  `json:"mask_color"`   // Color on the segmentation mask
	Objects     string `json:"objects"`      // Name of the host collection holding member objects
	IsInstances bool   `json:"is_instances"` // Members annotated as distinct instances
}

// NewClass creates a class with the default mask color.
func NewClass(name string) *Class {
	return &Class{
		Name:      name,
		MaskColor: White,
	}
}
