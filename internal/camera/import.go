package camera

import (
	"errors"

	"mask-annotator/internal/scene"
)

// ImportFunc parses a calibration file and populates the intrinsics as a side
// effect. The parsing itself belongs to the host; the core only stores the
// path and dispatches.
type ImportFunc func(sc *scene.Scene, in *Intrinsics, path string) error

// ErrNoImporter is returned when a calibration file is set with no importer
// registered.
var ErrNoImporter = errors.New("no calibration importer registered")

// SetImporter registers the host's calibration import operation.
func (in *Intrinsics) SetImporter(fn ImportFunc) {
	in.importer = fn
}

// CalibrationFile returns the last calibration file path set.
func (in *Intrinsics) CalibrationFile() string {
	return in.calibrationFile
}

// SetCalibrationFile stores the path and invokes the registered importer,
// which populates the intrinsics and distortion fields from the file.
func (in *Intrinsics) SetCalibrationFile(sc *scene.Scene, path string) error {
	if in.importer == nil {
		return ErrNoImporter
	}
	in.calibrationFile = path
	return in.importer(sc, in, path)
}
