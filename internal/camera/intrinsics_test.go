package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mask-annotator/internal/scene"
)

func testScene() *scene.Scene {
	return scene.New(1920, 1080)
}

func TestDefaultsFromScene(t *testing.T) {
	sc := testScene()
	in := New()

	fx, err := in.Fx(sc)
	require.NoError(t, err)
	assert.Equal(t, 1280.0, fx) // (24/36)*1920

	fy, err := in.Fy(sc)
	require.NoError(t, err)
	assert.Equal(t, 1280.0, fy)

	cx, err := in.Cx(sc)
	require.NoError(t, err)
	assert.Equal(t, 960.0, cx)

	cy, err := in.Cy(sc)
	require.NoError(t, err)
	assert.Equal(t, 540.0, cy)

	sw, err := in.SensorWidth(sc)
	require.NoError(t, err)
	assert.Equal(t, 36.0, sw) // host camera default
}

func TestOverrideStability(t *testing.T) {
	sc := testScene()
	in := New()

	require.NoError(t, in.SetFx(sc, 1000))

	fx, err := in.Fx(sc)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, fx)

	// A later resolution change must not leak into the stored value.
	sc.ResolutionX = 640
	fx, err = in.Fx(sc)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, fx)

	// Sensor width was never set explicitly; it still tracks the host camera.
	sc.Camera.SensorWidth = 23.5
	sw, err := in.SensorWidth(sc)
	require.NoError(t, err)
	assert.Equal(t, 23.5, sw)
}

func TestSetFxPushesLens(t *testing.T) {
	sc := testScene()
	sc.Camera.Projection = scene.Orthographic
	sc.Camera.LensUnit = scene.FieldOfView
	in := New()

	require.NoError(t, in.SetFx(sc, 1920))

	// lens_mm = fx/width * sensor_width = 1920/1920*36
	assert.Equal(t, 36.0, sc.Camera.Lens)
	assert.Equal(t, scene.Perspective, sc.Camera.Projection)
	assert.Equal(t, scene.Millimeters, sc.Camera.LensUnit)
}

func TestSetSensorWidthPushesLensAndWidth(t *testing.T) {
	sc := testScene()
	in := New()
	require.NoError(t, in.SetFx(sc, 960))

	require.NoError(t, in.SetSensorWidth(sc, 24))

	// lens_mm = fx/width * v = 960/1920*24 = 12
	assert.Equal(t, 12.0, sc.Camera.Lens)
	assert.Equal(t, 24.0, sc.Camera.SensorWidth)

	sw, err := in.SensorWidth(sc)
	require.NoError(t, err)
	assert.Equal(t, 24.0, sw)
}

func TestSensorWidthBounds(t *testing.T) {
	sc := testScene()
	in := New()

	for _, v := range []float64{-1, 500.1, 600} {
		err := in.SetSensorWidth(sc, v)
		var re *RangeError
		require.ErrorAs(t, err, &re, "v=%g", v)
		assert.Equal(t, "sensor_width", re.Field)
	}

	// Rejected writes leave the field unset and the host camera untouched.
	sw, err := in.SensorWidth(sc)
	require.NoError(t, err)
	assert.Equal(t, 36.0, sw)
	assert.Equal(t, 36.0, sc.Camera.SensorWidth)

	require.NoError(t, in.SetSensorWidth(sc, 500))
	sw, err = in.SensorWidth(sc)
	require.NoError(t, err)
	assert.Equal(t, 500.0, sw)
}

func TestNegativeFocalLengthsRejected(t *testing.T) {
	sc := testScene()
	in := New()

	var re *RangeError
	require.ErrorAs(t, in.SetFx(sc, -1), &re)
	require.ErrorAs(t, in.SetFy(-0.5), &re)

	fx, err := in.Fx(sc)
	require.NoError(t, err)
	assert.Equal(t, 1280.0, fx)
}

// fy is stored independently; fx and sensor width edits never touch it.
func TestFyIndependence(t *testing.T) {
	sc := testScene()
	in := New()

	require.NoError(t, in.SetFy(1111))
	require.NoError(t, in.SetFx(sc, 2000))
	require.NoError(t, in.SetSensorWidth(sc, 30))

	fy, err := in.Fy(sc)
	require.NoError(t, err)
	assert.Equal(t, 1111.0, fy)
}

func TestPrincipalPointStore(t *testing.T) {
	sc := testScene()
	in := New()

	in.SetCx(950.5)
	in.SetCy(545.25)

	cx, err := in.Cx(sc)
	require.NoError(t, err)
	assert.Equal(t, 950.5, cx)
	cy, err := in.Cy(sc)
	require.NoError(t, err)
	assert.Equal(t, 545.25, cy)

	// Principal point writes have no host side effect.
	assert.Equal(t, 50.0, sc.Camera.Lens)
	assert.Equal(t, scene.Perspective, sc.Camera.Projection)
}

func TestMissingHostContext(t *testing.T) {
	in := New()

	noCamera := &scene.Scene{ResolutionX: 1920, ResolutionY: 1080}
	_, err := in.SensorWidth(noCamera)
	assert.ErrorIs(t, err, scene.ErrNoCamera)
	assert.ErrorIs(t, in.SetSensorWidth(noCamera, 36), scene.ErrNoCamera)
	assert.ErrorIs(t, in.SetFx(noCamera, 1000), scene.ErrNoCamera)

	noRes := &scene.Scene{Camera: scene.NewCamera()}
	_, err = in.Fx(noRes)
	assert.ErrorIs(t, err, scene.ErrNoResolution)
	_, err = in.Cy(noRes)
	assert.ErrorIs(t, err, scene.ErrNoResolution)
	assert.ErrorIs(t, in.SetFx(noRes, 1000), scene.ErrNoResolution)

	// Failed setters leave the field unset.
	fx, err := in.Fx(testScene())
	require.NoError(t, err)
	assert.Equal(t, 1280.0, fx)
}

func TestCalibrationImportDispatch(t *testing.T) {
	sc := testScene()
	in := New()

	err := in.SetCalibrationFile(sc, "cam.xml")
	assert.ErrorIs(t, err, ErrNoImporter)

	var gotPath string
	in.SetImporter(func(s *scene.Scene, target *Intrinsics, path string) error {
		gotPath = path
		target.K1 = 0.1
		return target.SetFx(s, 1500)
	})

	require.NoError(t, in.SetCalibrationFile(sc, "cam.xml"))
	assert.Equal(t, "cam.xml", gotPath)
	assert.Equal(t, "cam.xml", in.CalibrationFile())
	assert.Equal(t, 0.1, in.K1)

	fx, err := in.Fx(sc)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, fx)
}
