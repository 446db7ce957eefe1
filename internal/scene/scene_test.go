package scene

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveCamera(t *testing.T) {
	sc := New(1920, 1080)
	cam, err := sc.ActiveCamera()
	require.NoError(t, err)
	assert.Equal(t, Perspective, cam.Projection)
	assert.Equal(t, 36.0, cam.SensorWidth)

	sc.Camera = nil
	_, err = sc.ActiveCamera()
	assert.ErrorIs(t, err, ErrNoCamera)

	var nilScene *Scene
	_, err = nilScene.ActiveCamera()
	assert.ErrorIs(t, err, ErrNoCamera)
}

func TestResolution(t *testing.T) {
	w, h, err := New(1920, 1080).Resolution()
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	for _, sc := range []*Scene{nil, {}, {ResolutionX: 1920}, {ResolutionY: 1080}} {
		_, _, err := sc.Resolution()
		assert.ErrorIs(t, err, ErrNoResolution)
	}
}

func TestResolutionFromImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 640, 480))))
	require.NoError(t, f.Close())

	sc := &Scene{}
	require.NoError(t, sc.ResolutionFromImage(path))
	assert.Equal(t, 640, sc.ResolutionX)
	assert.Equal(t, 480, sc.ResolutionY)

	assert.Error(t, sc.ResolutionFromImage(filepath.Join(t.TempDir(), "missing.png")))
}
