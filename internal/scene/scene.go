// Package scene models the host-application context the annotation core reads
// and writes: the active camera object and the render resolution. It is passed
// explicitly into every operation that needs it, so the core stays testable
// without a live host.
package scene

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"
)

// Errors surfaced when the host context is incomplete.
var (
	ErrNoCamera     = errors.New("scene has no active camera")
	ErrNoResolution = errors.New("scene has no render resolution")
)

// Projection is the host camera projection type.
type Projection string

const (
	Perspective  Projection = "PERSP"
	Orthographic Projection = "ORTHO"
)

// LensUnit is the unit the host camera expresses its focal length in.
type LensUnit string

const (
	Millimeters LensUnit = "MILLIMETERS"
	FieldOfView LensUnit = "FOV"
)

// Camera is the host camera object. Fields are mutated in place by intrinsics
// edits, matching the host contract.
type Camera struct {
	Projection  Projection `json:"projection"`
	LensUnit    LensUnit   `json:"lens_unit"`
	Lens        float64    `json:"lens"`         // Focal length in millimeters
	SensorWidth float64    `json:"sensor_width"` // Physical sensor width in millimeters
}

// NewCamera returns a perspective camera with full-frame defaults
// (36mm sensor, 50mm lens).
func NewCamera() *Camera {
	return &Camera{
		Projection:  Perspective,
		LensUnit:    Millimeters,
		Lens:        50,
		SensorWidth: 36,
	}
}

// Scene is the explicit host context: the active camera (may be nil) and the
// render resolution in pixels.
type Scene struct {
	Camera      *Camera `json:"camera,omitempty"`
	ResolutionX int     `json:"resolution_x"`
	ResolutionY int     `json:"resolution_y"`
}

// New creates a scene with the given render resolution and a default camera.
func New(resX, resY int) *Scene {
	return &Scene{
		Camera:      NewCamera(),
		ResolutionX: resX,
		ResolutionY: resY,
	}
}

// ActiveCamera returns the scene camera, or ErrNoCamera when unset.
func (s *Scene) ActiveCamera() (*Camera, error) {
	if s == nil || s.Camera == nil {
		return nil, ErrNoCamera
	}
	return s.Camera, nil
}

// Resolution returns the render resolution, or ErrNoResolution when it is
// not positive in both dimensions.
func (s *Scene) Resolution() (w, h int, err error) {
	if s == nil || s.ResolutionX <= 0 || s.ResolutionY <= 0 {
		return 0, 0, ErrNoResolution
	}
	return s.ResolutionX, s.ResolutionY, nil
}

// ResolutionFromImage sets the render resolution from the pixel dimensions of
// an image file (PNG, JPEG, or TIFF).
func (s *Scene) ResolutionFromImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	s.ResolutionX = cfg.Width
	s.ResolutionY = cfg.Height
	return nil
}
