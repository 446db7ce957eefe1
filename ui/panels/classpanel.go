// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"strconv"

	"mask-annotator/internal/app"
	"mask-annotator/internal/class"
	"mask-annotator/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ClassPanel edits the classification classes: which class is current and the
// current class's mask color, objects collection, and instance flag. All edits
// go through app.State so the panel only mirrors core state.
type ClassPanel struct {
	state     *app.State
	container fyne.CanvasObject

	classSelect   *widget.Select
	newNameEntry  *widget.Entry
	colorEntries  [4]*widget.Entry
	colorSwatch   *fynecanvas.Rectangle
	objectsEntry  *widget.Entry
	instanceCheck *widget.Check
	statusLabel   *widget.Label

	// Guards against feedback loops while refresh() writes widget values.
	updating bool
}

// NewClassPanel creates a new class editing panel.
func NewClassPanel(state *app.State) *ClassPanel {
	cp := &ClassPanel{state: state}

	cp.statusLabel = widget.NewLabel("")
	cp.statusLabel.Wrapping = fyne.TextWrapWord

	cp.classSelect = widget.NewSelect(nil, func(name string) {
		if cp.updating {
			return
		}
		if err := state.SelectClass(name); err != nil {
			cp.statusLabel.SetText(err.Error())
		}
	})
	cp.classSelect.PlaceHolder = "(no class)"

	cp.newNameEntry = widget.NewEntry()
	cp.newNameEntry.SetPlaceHolder("new class name")
	addBtn := widget.NewButton("Add", func() {
		name := cp.newNameEntry.Text
		if err := state.AddClass(name); err != nil {
			cp.statusLabel.SetText(err.Error())
			return
		}
		cp.newNameEntry.SetText("")
		cp.statusLabel.SetText(fmt.Sprintf("Added class %q", name))
	})
	removeBtn := widget.NewButton("Remove", func() {
		name := state.Mirror.Current()
		if name == "" {
			return
		}
		if err := state.RemoveClass(name); err != nil {
			cp.statusLabel.SetText(err.Error())
			return
		}
		cp.statusLabel.SetText(fmt.Sprintf("Removed class %q", name))
	})

	for i, label := range []string{"R", "G", "B", "A"} {
		e := widget.NewEntry()
		e.SetPlaceHolder(label)
		e.OnSubmitted = func(string) { cp.applyColor() }
		cp.colorEntries[i] = e
	}

	cp.colorSwatch = fynecanvas.NewRectangle(colorutil.FloatsToNRGBA(1, 1, 1, 1))
	cp.colorSwatch.SetMinSize(fyne.NewSize(0, 24))

	cp.objectsEntry = widget.NewEntry()
	cp.objectsEntry.SetPlaceHolder("objects collection")
	cp.objectsEntry.OnSubmitted = func(ref string) {
		if cp.updating {
			return
		}
		if err := state.SetClassObjects(ref); err != nil {
			cp.statusLabel.SetText(err.Error())
		}
	}

	cp.instanceCheck = widget.NewCheck("Treat objects as instances", func(v bool) {
		if cp.updating {
			return
		}
		if err := state.SetClassInstances(v); err != nil {
			cp.statusLabel.SetText(err.Error())
		}
	})

	cp.container = container.NewVBox(
		widget.NewLabel("Current class"),
		cp.classSelect,
		container.NewGridWithColumns(2, cp.newNameEntry, container.NewGridWithColumns(2, addBtn, removeBtn)),
		widget.NewSeparator(),
		widget.NewLabel("Mask color (RGBA, 0-1)"),
		container.NewGridWithColumns(4,
			cp.colorEntries[0], cp.colorEntries[1], cp.colorEntries[2], cp.colorEntries[3]),
		cp.colorSwatch,
		widget.NewLabel("Objects collection"),
		cp.objectsEntry,
		cp.instanceCheck,
		cp.statusLabel,
	)

	state.On(app.EventClassesChanged, func(_ interface{}) { cp.refresh() })
	state.On(app.EventSelectionChanged, func(_ interface{}) { cp.refresh() })
	state.On(app.EventProjectLoaded, func(_ interface{}) { cp.refresh() })

	cp.refresh()
	return cp
}

// Container returns the panel container.
func (cp *ClassPanel) Container() fyne.CanvasObject {
	return cp.container
}

// applyColor parses the four color entries and writes the color through.
func (cp *ClassPanel) applyColor() {
	if cp.updating {
		return
	}
	var c class.Color
	for i, e := range cp.colorEntries {
		v, err := strconv.ParseFloat(e.Text, 64)
		if err != nil {
			cp.statusLabel.SetText(fmt.Sprintf("invalid color component: %q", e.Text))
			return
		}
		if v < 0 || v > 1 {
			cp.statusLabel.SetText(fmt.Sprintf("color component %g out of range [0, 1]", v))
			return
		}
		c[i] = v
	}
	if err := cp.state.SetClassColor(c); err != nil {
		cp.statusLabel.SetText(err.Error())
		return
	}
	cp.statusLabel.SetText("")
	cp.colorSwatch.FillColor = colorutil.FloatsToNRGBA(c[0], c[1], c[2], c[3])
	cp.colorSwatch.Refresh()
}

// refresh repopulates the widgets from the selection mirror.
func (cp *ClassPanel) refresh() {
	cp.updating = true
	defer func() { cp.updating = false }()

	cp.classSelect.Options = cp.state.Mirror.Selectable()
	if cur := cp.state.Mirror.Current(); cur != "" {
		cp.classSelect.SetSelected(cur)
	} else {
		cp.classSelect.ClearSelected()
	}
	cp.classSelect.Refresh()

	c := cp.state.Mirror.Color()
	for i, e := range cp.colorEntries {
		e.SetText(strconv.FormatFloat(c[i], 'g', -1, 64))
	}
	cp.colorSwatch.FillColor = colorutil.FloatsToNRGBA(c[0], c[1], c[2], c[3])
	cp.colorSwatch.Refresh()
	cp.objectsEntry.SetText(cp.state.Mirror.Objects())
	cp.instanceCheck.SetChecked(cp.state.Mirror.IsInstances())
}
