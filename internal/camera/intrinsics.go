// Package camera provides the pinhole-camera intrinsics model: stored-override
// parameters derived from the host camera and render resolution until the user
// sets them explicitly, plus plain lens-distortion coefficients.
package camera

import (
	"fmt"
	"math"

	"mask-annotator/internal/scene"
)

// Defaults assumed when no explicit value has been stored: a nominal 24mm lens
// on a 36mm full-frame sensor.
const (
	DefaultLensMM        = 24.0
	DefaultSensorWidthMM = 36.0

	// MaxSensorWidthMM bounds sensor width writes.
	MaxSensorWidthMM = 500.0
)

// RangeError reports a value written outside a field's declared bounds.
// Out-of-range writes are rejected, never clamped.
type RangeError struct {
	Field    string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	if e.Max == math.MaxFloat64 {
		return fmt.Sprintf("%s=%g must be >= %g", e.Field, e.Value, e.Min)
	}
	return fmt.Sprintf("%s=%g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

// Intrinsics holds pinhole-camera parameters for one camera.
//
// Sensor width, fx, fy, cx and cy are stored-override fields: until a field is
// written its getter computes a default from the scene passed in, and the field
// stays unset. The first write stores the value permanently; later reads return
// it unchanged regardless of scene changes. Writes to sensor width and fx also
// push a recomputed focal length onto the host camera via
//
//	lens_mm = fx_px / image_width_px * sensor_width_mm
//
// fy is stored independently and is not re-derived when fx or the sensor width
// change. The distortion coefficients are plain values with no derivation.
type Intrinsics struct {
	sensorWidth float64
	fx          float64
	fy          float64
	cx          float64
	cy          float64

	sensorWidthSet bool
	fxSet          bool
	fySet          bool
	cxSet          bool
	cySet          bool

	// Lens distortion (Brown-Conrady), default zero.
	P1, P2, K1, K2, K3, K4 float64

	calibrationFile string
	importer        ImportFunc
}

// New creates an Intrinsics with every stored-override field unset.
func New() *Intrinsics {
	return &Intrinsics{}
}

// SensorWidth returns the stored sensor width in millimeters, or the host
// camera's physical sensor width while unset.
func (in *Intrinsics) SensorWidth(sc *scene.Scene) (float64, error) {
	if in.sensorWidthSet {
		return in.sensorWidth, nil
	}
	cam, err := sc.ActiveCamera()
	if err != nil {
		return 0, fmt.Errorf("sensor width default: %w", err)
	}
	return cam.SensorWidth, nil
}

// SetSensorWidth stores the sensor width and pushes the matching focal length
// to the host camera. The camera is forced to a perspective projection with a
// millimeter lens unit. Values outside [0, MaxSensorWidthMM] are rejected.
func (in *Intrinsics) SetSensorWidth(sc *scene.Scene, v float64) error {
	if v < 0 || v > MaxSensorWidthMM {
		return &RangeError{Field: "sensor_width", Value: v, Min: 0, Max: MaxSensorWidthMM}
	}
	cam, err := sc.ActiveCamera()
	if err != nil {
		return err
	}
	w, _, err := sc.Resolution()
	if err != nil {
		return err
	}
	fx, err := in.Fx(sc)
	if err != nil {
		return err
	}
	cam.Projection = scene.Perspective
	cam.LensUnit = scene.Millimeters
	cam.Lens = fx / float64(w) * v
	cam.SensorWidth = v
	in.sensorWidth = v
	in.sensorWidthSet = true
	return nil
}

// Fx returns the stored focal length X in pixels, or the default
// (DefaultLensMM/DefaultSensorWidthMM)*image_width while unset.
func (in *Intrinsics) Fx(sc *scene.Scene) (float64, error) {
	if in.fxSet {
		return in.fx, nil
	}
	w, _, err := sc.Resolution()
	if err != nil {
		return 0, fmt.Errorf("fx default: %w", err)
	}
	return DefaultLensMM / DefaultSensorWidthMM * float64(w), nil
}

// SetFx stores the focal length X and pushes the matching focal length in
// millimeters to the host camera, using the current (stored or host) sensor
// width. Negative values are rejected.
func (in *Intrinsics) SetFx(sc *scene.Scene, v float64) error {
	if v < 0 {
		return &RangeError{Field: "fx", Value: v, Min: 0, Max: math.MaxFloat64}
	}
	cam, err := sc.ActiveCamera()
	if err != nil {
		return err
	}
	w, _, err := sc.Resolution()
	if err != nil {
		return err
	}
	sw, err := in.SensorWidth(sc)
	if err != nil {
		return err
	}
	cam.Projection = scene.Perspective
	cam.LensUnit = scene.Millimeters
	cam.Lens = v / float64(w) * sw
	in.fx = v
	in.fxSet = true
	return nil
}

// Fy returns the stored focal length Y in pixels. While unset it defaults to
// the same formula as Fx (square pixels assumed).
func (in *Intrinsics) Fy(sc *scene.Scene) (float64, error) {
	if in.fySet {
		return in.fy, nil
	}
	w, _, err := sc.Resolution()
	if err != nil {
		return 0, fmt.Errorf("fy default: %w", err)
	}
	return DefaultLensMM / DefaultSensorWidthMM * float64(w), nil
}

// SetFy stores the focal length Y. No host side effect; fx and sensor width
// edits never touch a stored fy.
func (in *Intrinsics) SetFy(v float64) error {
	if v < 0 {
		return &RangeError{Field: "fy", Value: v, Min: 0, Max: math.MaxFloat64}
	}
	in.fy = v
	in.fySet = true
	return nil
}

// Cx returns the stored principal point X in pixels, defaulting to the image
// center while unset.
func (in *Intrinsics) Cx(sc *scene.Scene) (float64, error) {
	if in.cxSet {
		return in.cx, nil
	}
	w, _, err := sc.Resolution()
	if err != nil {
		return 0, fmt.Errorf("cx default: %w", err)
	}
	return float64(w) / 2, nil
}

// SetCx stores the principal point X. No host side effect.
func (in *Intrinsics) SetCx(v float64) {
	in.cx = v
	in.cxSet = true
}

// Cy returns the stored principal point Y in pixels, defaulting to the image
// center while unset.
func (in *Intrinsics) Cy(sc *scene.Scene) (float64, error) {
	if in.cySet {
		return in.cy, nil
	}
	_, h, err := sc.Resolution()
	if err != nil {
		return 0, fmt.Errorf("cy default: %w", err)
	}
	return float64(h) / 2, nil
}

// SetCy stores the principal point Y. No host side effect.
func (in *Intrinsics) SetCy(v float64) {
	in.cy = v
	in.cySet = true
}

