// Package app provides application state, events, and project persistence.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"mask-annotator/internal/camera"
	"mask-annotator/internal/class"
	"mask-annotator/internal/scene"
)

// State holds the application state: the host scene context, the class
// registry with its selection mirror, and the camera intrinsics.
type State struct {
	mu sync.RWMutex

	// Project
	ProjectPath string
	Modified    bool

	// Host context
	Scene *scene.Scene

	// Classes
	Registry *class.Registry
	Mirror   *class.Mirror

	// Camera
	Camera *camera.Intrinsics

	// Extra render passes
	DepthMap      bool
	SurfaceNormal bool
	OpticalFlow   bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventModified
	EventClassesChanged
	EventSelectionChanged
	EventClassEdited
	EventCameraChanged
	EventPassesChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// DefaultResolutionX and DefaultResolutionY set the render resolution for a
// new project.
const (
	DefaultResolutionX = 1920
	DefaultResolutionY = 1080
)

// NewState creates a new application state with an empty registry and a
// default scene.
func NewState() *State {
	reg := class.NewRegistry()
	return &State{
		Scene:     scene.New(DefaultResolutionX, DefaultResolutionY),
		Registry:  reg,
		Mirror:    class.NewMirror(reg),
		Camera:    camera.New(),
		listeners: make(map[EventType][]EventListener),
	}
}

// Reset clears the state back to an empty project, keeping registered
// listeners so open panels stay subscribed.
func (s *State) Reset() {
	s.mu.Lock()
	reg := class.NewRegistry()
	s.ProjectPath = ""
	s.Modified = false
	s.Scene = scene.New(DefaultResolutionX, DefaultResolutionY)
	s.Registry = reg
	s.Mirror = class.NewMirror(reg)
	s.Camera = camera.New()
	s.DepthMap = false
	s.SurfaceNormal = false
	s.OpticalFlow = false
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, "")
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// AddClass appends a new class with the default mask color and selects it.
// Names must be unique within the registry.
func (s *State) AddClass(name string) error {
	s.mu.Lock()
	if err := s.Registry.Add(class.NewClass(name)); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.Mirror.Select(name)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.SetModified(true)
	s.Emit(EventClassesChanged, nil)
	s.Emit(EventSelectionChanged, name)
	return nil
}

// RemoveClass deletes a class. When the removed class was selected, the first
// remaining class becomes current, or the mirror is cleared if none remain, so
// the mirror never holds a dangling name.
func (s *State) RemoveClass(name string) error {
	s.mu.Lock()
	wasCurrent := s.Mirror.Current() == name
	if err := s.Registry.Remove(name); err != nil {
		s.mu.Unlock()
		return err
	}
	var selected string
	if wasCurrent {
		s.Mirror.Clear()
		if first := s.Registry.Get(0); first != nil {
			if err := s.Mirror.Select(first.Name); err != nil {
				s.mu.Unlock()
				return err
			}
			selected = first.Name
		}
	}
	s.mu.Unlock()

	s.SetModified(true)
	s.Emit(EventClassesChanged, nil)
	if wasCurrent {
		s.Emit(EventSelectionChanged, selected)
	}
	return nil
}

// SelectClass makes the named class current. Unknown names are rejected and
// leave the selection unchanged.
func (s *State) SelectClass(name string) error {
	s.mu.Lock()
	err := s.Mirror.Select(name)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventSelectionChanged, name)
	return nil
}

// SetClassColor writes a new mask color through the mirror to the selected class.
func (s *State) SetClassColor(c class.Color) error {
	s.mu.Lock()
	err := s.Mirror.SetColor(c)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventClassEdited, nil)
	return nil
}

// SetClassObjects writes a new objects-collection reference through the mirror.
func (s *State) SetClassObjects(ref string) error {
	s.mu.Lock()
	err := s.Mirror.SetObjects(ref)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventClassEdited, nil)
	return nil
}

// SetClassInstances writes the instance flag through the mirror.
func (s *State) SetClassInstances(v bool) error {
	s.mu.Lock()
	err := s.Mirror.SetInstances(v)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventClassEdited, nil)
	return nil
}

// EditCamera runs one camera intrinsics edit under the state lock and, on
// success, marks the project modified and emits EventCameraChanged.
func (s *State) EditCamera(edit func(in *camera.Intrinsics, sc *scene.Scene) error) error {
	s.mu.Lock()
	err := edit(s.Camera, s.Scene)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.SetModified(true)
	s.Emit(EventCameraChanged, nil)
	return nil
}

// SetPasses updates the extra render pass toggles.
func (s *State) SetPasses(depth, normal, flow bool) {
	s.mu.Lock()
	s.DepthMap = depth
	s.SurfaceNormal = normal
	s.OpticalFlow = flow
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventPassesChanged, nil)
}

// ProjectFile represents the JSON structure of a project file.
type ProjectFile struct {
	Version      int             `json:"version"`
	ResolutionX  int             `json:"resolution_x"`
	ResolutionY  int             `json:"resolution_y"`
	Classes      []class.Class   `json:"classes,omitempty"`
	CurrentClass string          `json:"current_class,omitempty"`
	Camera       camera.Snapshot `json:"camera"`
	HostCamera   *scene.Camera   `json:"host_camera,omitempty"`

	DepthMap      bool `json:"depth_map,omitempty"`
	SurfaceNormal bool `json:"surface_normal,omitempty"`
	OpticalFlow   bool `json:"optical_flow,omitempty"`
}

// LoadProject loads a project from the specified path.
func (s *State) LoadProject(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var proj ProjectFile
	if err := json.Unmarshal(data, &proj); err != nil {
		return fmt.Errorf("parse project %s: %w", path, err)
	}

	reg := class.NewRegistry()
	for i := range proj.Classes {
		c := proj.Classes[i]
		if err := reg.Add(&c); err != nil {
			return fmt.Errorf("project %s: %w", path, err)
		}
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false

	s.Scene = &scene.Scene{
		Camera:      proj.HostCamera,
		ResolutionX: proj.ResolutionX,
		ResolutionY: proj.ResolutionY,
	}
	if s.Scene.Camera == nil {
		s.Scene.Camera = scene.NewCamera()
	}

	s.Registry = reg
	s.Mirror = class.NewMirror(reg)
	if err := s.Mirror.Select(proj.CurrentClass); err != nil {
		// Stale or empty selection in the file; fall back to the first class.
		if first := reg.Get(0); first != nil {
			_ = s.Mirror.Select(first.Name)
		}
	}

	s.Camera = camera.New()
	s.Camera.Restore(proj.Camera)

	s.DepthMap = proj.DepthMap
	s.SurfaceNormal = proj.SurfaceNormal
	s.OpticalFlow = proj.OpticalFlow
	s.mu.Unlock()

	s.Emit(EventProjectLoaded, path)
	return nil
}

// SaveProject saves the project to the specified path.
func (s *State) SaveProject(path string) error {
	s.mu.RLock()
	proj := ProjectFile{
		Version:      1,
		ResolutionX:  s.Scene.ResolutionX,
		ResolutionY:  s.Scene.ResolutionY,
		CurrentClass: s.Mirror.Current(),
		Camera:       s.Camera.Snapshot(),
		HostCamera:   s.Scene.Camera,

		DepthMap:      s.DepthMap,
		SurfaceNormal: s.SurfaceNormal,
		OpticalFlow:   s.OpticalFlow,
	}
	for i := 0; i < s.Registry.Len(); i++ {
		proj.Classes = append(proj.Classes, *s.Registry.Get(i))
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.ProjectPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventProjectSaved, path)
	return nil
}
