package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mask-annotator/internal/camera"
	"mask-annotator/internal/class"
	"mask-annotator/internal/scene"
)

func TestAddClassSelectsIt(t *testing.T) {
	s := NewState()

	var events []EventType
	s.On(EventClassesChanged, func(interface{}) { events = append(events, EventClassesChanged) })
	s.On(EventSelectionChanged, func(interface{}) { events = append(events, EventSelectionChanged) })

	require.NoError(t, s.AddClass("background"))
	require.NoError(t, s.AddClass("car"))

	assert.Equal(t, "car", s.Mirror.Current())
	assert.True(t, s.Modified)
	assert.Equal(t, []string{"background", "car"}, s.Mirror.Selectable())
	assert.Contains(t, events, EventClassesChanged)
	assert.Contains(t, events, EventSelectionChanged)

	err := s.AddClass("car")
	require.Error(t, err)
	assert.Equal(t, 2, s.Registry.Len())
}

func TestRemoveClassReselects(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddClass("background"))
	require.NoError(t, s.AddClass("car"))
	require.NoError(t, s.SelectClass("car"))

	require.NoError(t, s.RemoveClass("car"))
	assert.Equal(t, "background", s.Mirror.Current())

	require.NoError(t, s.RemoveClass("background"))
	assert.Empty(t, s.Mirror.Current())

	assert.ErrorIs(t, s.RemoveClass("ghost"), class.ErrNotFound)
}

func TestRemoveOtherClassKeepsSelection(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddClass("background"))
	require.NoError(t, s.AddClass("car"))
	require.NoError(t, s.SelectClass("background"))

	require.NoError(t, s.RemoveClass("car"))
	assert.Equal(t, "background", s.Mirror.Current())
}

func TestSelectUnknownClassRejected(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddClass("background"))

	fired := false
	s.On(EventSelectionChanged, func(interface{}) { fired = true })

	assert.ErrorIs(t, s.SelectClass("ghost"), class.ErrNotFound)
	assert.Equal(t, "background", s.Mirror.Current())
	assert.False(t, fired)
}

func TestClassEditsWriteThrough(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddClass("car"))

	red := class.Color{1, 0, 0, 1}
	require.NoError(t, s.SetClassColor(red))
	require.NoError(t, s.SetClassObjects("Cars"))
	require.NoError(t, s.SetClassInstances(true))

	c, err := s.Registry.Lookup("car")
	require.NoError(t, err)
	assert.Equal(t, red, c.MaskColor)
	assert.Equal(t, "Cars", c.Objects)
	assert.True(t, c.IsInstances)
}

func TestEditCamera(t *testing.T) {
	s := NewState()

	fired := false
	s.On(EventCameraChanged, func(interface{}) { fired = true })

	require.NoError(t, s.EditCamera(func(in *camera.Intrinsics, sc *scene.Scene) error {
		return in.SetFx(sc, 1000)
	}))
	assert.True(t, fired)
	assert.True(t, s.Modified)

	fired = false
	err := s.EditCamera(func(in *camera.Intrinsics, sc *scene.Scene) error {
		return in.SetSensorWidth(sc, 600)
	})
	require.Error(t, err)
	assert.False(t, fired)
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.maskproj")

	s := NewState()
	require.NoError(t, s.AddClass("background"))
	require.NoError(t, s.AddClass("car"))
	require.NoError(t, s.SetClassColor(class.Color{1, 0, 0, 1}))
	require.NoError(t, s.SetClassObjects("Cars"))
	require.NoError(t, s.SetClassInstances(true))
	require.NoError(t, s.EditCamera(func(in *camera.Intrinsics, sc *scene.Scene) error {
		return in.SetFx(sc, 1000)
	}))
	s.Camera.K1 = 0.05
	s.SetPasses(true, false, true)

	require.NoError(t, s.SaveProject(path))
	assert.False(t, s.Modified)

	loaded := NewState()
	require.NoError(t, loaded.LoadProject(path))

	assert.Equal(t, []string{"background", "car"}, loaded.Registry.Names())
	assert.Equal(t, "car", loaded.Mirror.Current())
	assert.Equal(t, class.Color{1, 0, 0, 1}, loaded.Mirror.Color())
	assert.Equal(t, "Cars", loaded.Mirror.Objects())
	assert.True(t, loaded.Mirror.IsInstances())

	fx, err := loaded.Camera.Fx(loaded.Scene)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, fx)
	assert.Equal(t, 0.05, loaded.Camera.K1)

	// fy was never set; it still derives from the loaded resolution.
	fy, err := loaded.Camera.Fy(loaded.Scene)
	require.NoError(t, err)
	assert.Equal(t, 1280.0, fy)

	assert.True(t, loaded.DepthMap)
	assert.False(t, loaded.SurfaceNormal)
	assert.True(t, loaded.OpticalFlow)
	assert.Equal(t, path, loaded.ProjectPath)
	assert.False(t, loaded.Modified)
}

// A project file can carry a selection that no longer names a class (edited by
// hand, or written by an older version). Loading must fall back to the first
// class instead of failing or mirroring an unrelated entry.
func TestLoadProjectWithStaleSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.maskproj")

	proj := ProjectFile{
		Version:      1,
		ResolutionX:  1920,
		ResolutionY:  1080,
		Classes:      []class.Class{{Name: "background"}, {Name: "road"}},
		CurrentClass: "ghost",
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded := NewState()
	require.NoError(t, loaded.LoadProject(path))
	assert.Equal(t, "background", loaded.Mirror.Current())
}

func TestLoadProjectErrors(t *testing.T) {
	s := NewState()
	assert.Error(t, s.LoadProject(filepath.Join(t.TempDir(), "missing.maskproj")))
}
