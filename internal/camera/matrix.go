package camera

import (
	"gonum.org/v1/gonum/mat"

	"mask-annotator/internal/scene"
)

// Matrix assembles the 3x3 camera matrix K from the stored-or-default
// intrinsics:
//
//	| fx  0  cx |
//	|  0 fy  cy |
//	|  0  0   1 |
func (in *Intrinsics) Matrix(sc *scene.Scene) (*mat.Dense, error) {
	fx, err := in.Fx(sc)
	if err != nil {
		return nil, err
	}
	fy, err := in.Fy(sc)
	if err != nil {
		return nil, err
	}
	cx, err := in.Cx(sc)
	if err != nil {
		return nil, err
	}
	cy, err := in.Cy(sc)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(3, 3, []float64{
		fx, 0, cx,
		0, fy, cy,
		0, 0, 1,
	}), nil
}

// DistortionVector returns the lens distortion coefficients in the
// conventional (k1, k2, p1, p2, k3, k4) order.
func (in *Intrinsics) DistortionVector() []float64 {
	return []float64{in.K1, in.K2, in.P1, in.P2, in.K3, in.K4}
}
