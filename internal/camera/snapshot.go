package camera

// Snapshot is the JSON-serializable override state of an Intrinsics. Pointer
// fields are nil while the corresponding field is unset, so only explicitly
// written values survive a save/load round trip.
type Snapshot struct {
	SensorWidth *float64 `json:"sensor_width,omitempty"`
	Fx          *float64 `json:"fx,omitempty"`
	Fy          *float64 `json:"fy,omitempty"`
	Cx          *float64 `json:"cx,omitempty"`
	Cy          *float64 `json:"cy,omitempty"`

	P1 float64 `json:"p1,omitempty"`
	P2 float64 `json:"p2,omitempty"`
	K1 float64 `json:"k1,omitempty"`
	K2 float64 `json:"k2,omitempty"`
	K3 float64 `json:"k3,omitempty"`
	K4 float64 `json:"k4,omitempty"`

	CalibrationFile string `json:"calibration_file,omitempty"`
}

// Snapshot captures the stored overrides and distortion coefficients.
func (in *Intrinsics) Snapshot() Snapshot {
	s := Snapshot{
		P1: in.P1, P2: in.P2,
		K1: in.K1, K2: in.K2, K3: in.K3, K4: in.K4,
		CalibrationFile: in.calibrationFile,
	}
	if in.sensorWidthSet {
		v := in.sensorWidth
		s.SensorWidth = &v
	}
	if in.fxSet {
		v := in.fx
		s.Fx = &v
	}
	if in.fySet {
		v := in.fy
		s.Fy = &v
	}
	if in.cxSet {
		v := in.cx
		s.Cx = &v
	}
	if in.cySet {
		v := in.cy
		s.Cy = &v
	}
	return s
}

// Restore applies a snapshot to the intrinsics. Stored values are written
// directly; no lens recomputation is pushed to a host camera (push-through is
// an edit-time side effect, not a load-time one).
func (in *Intrinsics) Restore(s Snapshot) {
	if s.SensorWidth != nil {
		in.sensorWidth = *s.SensorWidth
		in.sensorWidthSet = true
	}
	if s.Fx != nil {
		in.fx = *s.Fx
		in.fxSet = true
	}
	if s.Fy != nil {
		in.fy = *s.Fy
		in.fySet = true
	}
	if s.Cx != nil {
		in.cx = *s.Cx
		in.cxSet = true
	}
	if s.Cy != nil {
		in.cy = *s.Cy
		in.cySet = true
	}
	in.P1, in.P2 = s.P1, s.P2
	in.K1, in.K2, in.K3, in.K4 = s.K1, s.K2, s.K3, s.K4
	in.calibrationFile = s.CalibrationFile
}
