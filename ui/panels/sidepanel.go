package panels

import (
	"mask-annotator/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	classPanel  *ClassPanel
	cameraPanel *CameraPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.classPanel = NewClassPanel(state)
	sp.cameraPanel = NewCameraPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Classes", sp.classPanel.Container()),
		container.NewTabItem("Camera", sp.cameraPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.cameraPanel.SetWindow(w)
}
