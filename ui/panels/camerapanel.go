package panels

import (
	"fmt"
	"strconv"

	"mask-annotator/internal/app"
	"mask-annotator/internal/camera"
	"mask-annotator/internal/scene"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// CameraPanel edits the camera intrinsics and the render setup. Intrinsics
// entries show the derived default until a value has been set explicitly;
// submitting an entry stores the override and, for fx and sensor width, pushes
// the recomputed lens to the host camera.
type CameraPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	widthEntry  *widget.Entry
	heightEntry *widget.Entry

	sensorEntry *widget.Entry
	fxEntry     *widget.Entry
	fyEntry     *widget.Entry
	cxEntry     *widget.Entry
	cyEntry     *widget.Entry

	distortionEntries map[string]*widget.Entry

	calibLabel *widget.Label
	lensLabel  *widget.Label

	depthCheck  *widget.Check
	normalCheck *widget.Check
	flowCheck   *widget.Check

	statusLabel *widget.Label

	updating bool
}

// NewCameraPanel creates a new camera panel.
func NewCameraPanel(state *app.State) *CameraPanel {
	cp := &CameraPanel{
		state:             state,
		distortionEntries: make(map[string]*widget.Entry),
	}

	cp.statusLabel = widget.NewLabel("")
	cp.statusLabel.Wrapping = fyne.TextWrapWord
	cp.lensLabel = widget.NewLabel("")
	cp.calibLabel = widget.NewLabel("No calibration file")
	cp.calibLabel.Wrapping = fyne.TextWrapWord

	cp.widthEntry = cp.newResolutionEntry(func(sc *scene.Scene, v int) { sc.ResolutionX = v })
	cp.heightEntry = cp.newResolutionEntry(func(sc *scene.Scene, v int) { sc.ResolutionY = v })

	cp.sensorEntry = cp.newIntrinsicEntry(func(in *camera.Intrinsics, sc *scene.Scene, v float64) error {
		return in.SetSensorWidth(sc, v)
	})
	cp.fxEntry = cp.newIntrinsicEntry(func(in *camera.Intrinsics, sc *scene.Scene, v float64) error {
		return in.SetFx(sc, v)
	})
	cp.fyEntry = cp.newIntrinsicEntry(func(in *camera.Intrinsics, _ *scene.Scene, v float64) error {
		return in.SetFy(v)
	})
	cp.cxEntry = cp.newIntrinsicEntry(func(in *camera.Intrinsics, _ *scene.Scene, v float64) error {
		in.SetCx(v)
		return nil
	})
	cp.cyEntry = cp.newIntrinsicEntry(func(in *camera.Intrinsics, _ *scene.Scene, v float64) error {
		in.SetCy(v)
		return nil
	})

	distortionRow := container.NewGridWithColumns(6)
	for _, name := range []string{"k1", "k2", "p1", "p2", "k3", "k4"} {
		e := cp.newDistortionEntry(name)
		e.SetPlaceHolder(name)
		cp.distortionEntries[name] = e
		distortionRow.Add(e)
	}

	calibBtn := widget.NewButton("Import Calibration...", func() { cp.openCalibrationFile() })

	cp.depthCheck = widget.NewCheck("Depth map", func(bool) { cp.applyPasses() })
	cp.normalCheck = widget.NewCheck("Surface normals", func(bool) { cp.applyPasses() })
	cp.flowCheck = widget.NewCheck("Optical flow", func(bool) { cp.applyPasses() })

	cp.container = container.NewVBox(
		widget.NewLabel("Render resolution (px)"),
		container.NewGridWithColumns(2, cp.widthEntry, cp.heightEntry),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Sensor width (mm)", cp.sensorEntry),
			widget.NewFormItem("fx (px)", cp.fxEntry),
			widget.NewFormItem("fy (px)", cp.fyEntry),
			widget.NewFormItem("cx (px)", cp.cxEntry),
			widget.NewFormItem("cy (px)", cp.cyEntry),
		),
		cp.lensLabel,
		widget.NewLabel("Lens distortion"),
		distortionRow,
		calibBtn,
		cp.calibLabel,
		widget.NewSeparator(),
		widget.NewLabel("Extra passes"),
		cp.depthCheck,
		cp.normalCheck,
		cp.flowCheck,
		cp.statusLabel,
	)

	state.On(app.EventCameraChanged, func(_ interface{}) { cp.refresh() })
	state.On(app.EventProjectLoaded, func(_ interface{}) { cp.refresh() })
	state.On(app.EventPassesChanged, func(_ interface{}) { cp.refresh() })

	cp.refresh()
	return cp
}

// Container returns the panel container.
func (cp *CameraPanel) Container() fyne.CanvasObject {
	return cp.container
}

// SetWindow sets the parent window for dialogs.
func (cp *CameraPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

func (cp *CameraPanel) newResolutionEntry(set func(*scene.Scene, int)) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(text string) {
		if cp.updating {
			return
		}
		v, err := strconv.Atoi(text)
		if err != nil || v <= 0 {
			cp.statusLabel.SetText(fmt.Sprintf("invalid resolution: %q", text))
			return
		}
		err = cp.state.EditCamera(func(_ *camera.Intrinsics, sc *scene.Scene) error {
			set(sc, v)
			return nil
		})
		if err != nil {
			cp.statusLabel.SetText(err.Error())
		}
	}
	return e
}

func (cp *CameraPanel) newIntrinsicEntry(set func(*camera.Intrinsics, *scene.Scene, float64) error) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(text string) {
		if cp.updating {
			return
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			cp.statusLabel.SetText(fmt.Sprintf("invalid number: %q", text))
			return
		}
		err = cp.state.EditCamera(func(in *camera.Intrinsics, sc *scene.Scene) error {
			return set(in, sc, v)
		})
		if err != nil {
			cp.statusLabel.SetText(err.Error())
			cp.refresh() // Rejected edit: restore the displayed value
			return
		}
		cp.statusLabel.SetText("")
	}
	return e
}

func (cp *CameraPanel) newDistortionEntry(name string) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(text string) {
		if cp.updating {
			return
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			cp.statusLabel.SetText(fmt.Sprintf("invalid number: %q", text))
			return
		}
		err = cp.state.EditCamera(func(in *camera.Intrinsics, _ *scene.Scene) error {
			switch name {
			case "p1":
				in.P1 = v
			case "p2":
				in.P2 = v
			case "k1":
				in.K1 = v
			case "k2":
				in.K2 = v
			case "k3":
				in.K3 = v
			case "k4":
				in.K4 = v
			}
			return nil
		})
		if err != nil {
			cp.statusLabel.SetText(err.Error())
		}
	}
	return e
}

func (cp *CameraPanel) openCalibrationFile() {
	if cp.window == nil {
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		err = cp.state.EditCamera(func(in *camera.Intrinsics, sc *scene.Scene) error {
			return in.SetCalibrationFile(sc, path)
		})
		if err != nil {
			cp.statusLabel.SetText(err.Error())
			return
		}
		cp.calibLabel.SetText(path)
	}, cp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".xml", ".yaml", ".yml", ".json"}))
	fd.Show()
}

func (cp *CameraPanel) applyPasses() {
	if cp.updating {
		return
	}
	cp.state.SetPasses(cp.depthCheck.Checked, cp.normalCheck.Checked, cp.flowCheck.Checked)
}

// refresh repopulates the widgets from the intrinsics and scene.
func (cp *CameraPanel) refresh() {
	cp.updating = true
	defer func() { cp.updating = false }()

	sc := cp.state.Scene
	in := cp.state.Camera

	cp.widthEntry.SetText(strconv.Itoa(sc.ResolutionX))
	cp.heightEntry.SetText(strconv.Itoa(sc.ResolutionY))

	setFrom := func(e *widget.Entry, get func() (float64, error)) {
		v, err := get()
		if err != nil {
			e.SetText("")
			return
		}
		e.SetText(strconv.FormatFloat(v, 'g', -1, 64))
	}
	setFrom(cp.sensorEntry, func() (float64, error) { return in.SensorWidth(sc) })
	setFrom(cp.fxEntry, func() (float64, error) { return in.Fx(sc) })
	setFrom(cp.fyEntry, func() (float64, error) { return in.Fy(sc) })
	setFrom(cp.cxEntry, func() (float64, error) { return in.Cx(sc) })
	setFrom(cp.cyEntry, func() (float64, error) { return in.Cy(sc) })

	for name, e := range cp.distortionEntries {
		var v float64
		switch name {
		case "p1":
			v = in.P1
		case "p2":
			v = in.P2
		case "k1":
			v = in.K1
		case "k2":
			v = in.K2
		case "k3":
			v = in.K3
		case "k4":
			v = in.K4
		}
		e.SetText(strconv.FormatFloat(v, 'g', -1, 64))
	}

	if cam, err := sc.ActiveCamera(); err == nil {
		cp.lensLabel.SetText(fmt.Sprintf("Host lens: %.2f mm / sensor %.2f mm", cam.Lens, cam.SensorWidth))
	} else {
		cp.lensLabel.SetText("No active camera")
	}

	if f := in.CalibrationFile(); f != "" {
		cp.calibLabel.SetText(f)
	} else {
		cp.calibLabel.SetText("No calibration file")
	}

	cp.depthCheck.SetChecked(cp.state.DepthMap)
	cp.normalCheck.SetChecked(cp.state.SurfaceNormal)
	cp.flowCheck.SetChecked(cp.state.OpticalFlow)
}
