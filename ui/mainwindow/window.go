// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"mask-annotator/internal/app"
	"mask-annotator/internal/version"
	"mask-annotator/ui/panels"
	"mask-annotator/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const projectExt = ".maskproj"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(version.AppName)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(480, 720))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.sidePanel.Container(),          // center
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About", version.String(), mw.Window)
		}),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// setupEventHandlers keeps the title and status bar in sync with state.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventModified, func(_ interface{}) { mw.updateTitle() })
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok && path != "" {
			mw.statusBar.SetText("Loaded " + filepath.Base(path))
		}
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok {
			mw.statusBar.SetText("Saved " + filepath.Base(path))
		}
	})
	mw.state.On(app.EventClassesChanged, func(_ interface{}) {
		mw.statusBar.SetText(fmt.Sprintf("%d classes", mw.state.Registry.Len()))
	})
}

func (mw *MainWindow) updateTitle() {
	title := version.AppName
	if mw.state.ProjectPath != "" {
		title += " - " + filepath.Base(mw.state.ProjectPath)
	}
	if mw.state.Modified {
		title += " *"
	}
	mw.SetTitle(title)
}

func (mw *MainWindow) onNewProject() {
	mw.state.Reset()
	mw.statusBar.SetText("New project")
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()

		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.rememberDir(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{projectExt}))
	mw.setStartDir(fd)
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		if filepath.Ext(path) != projectExt {
			path += projectExt
		}
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.rememberDir(path)
	}, mw.Window)
	fd.SetFileName("scene" + projectExt)
	mw.setStartDir(fd)
	fd.Show()
}

func (mw *MainWindow) rememberDir(path string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
	mw.prefs.SetString(prefs.KeyLastProject, path)
	_ = mw.prefs.Save()
}

func (mw *MainWindow) setStartDir(fd *dialog.FileDialog) {
	dir := mw.prefs.String(prefs.KeyLastDir)
	if dir == "" {
		return
	}
	uri := storage.NewFileURI(dir)
	if lister, err := storage.ListerForURI(uri); err == nil {
		fd.SetLocation(lister)
	}
}
