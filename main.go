// Package main provides the entry point for the Mask Annotator application.
package main

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"mask-annotator/internal/app"
	"mask-annotator/internal/version"
	"mask-annotator/ui/mainwindow"
	"mask-annotator/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	fyneApp := fyneapp.NewWithID("io.mask-annotator")
	fyneApp.Settings().SetTheme(&app.AnnotatorTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		projectPath := os.Args[1]
		if err := appState.LoadProject(projectPath); err != nil {
			log.Printf("Failed to load project %s: %v", projectPath, err)
		}
	}

	win.ShowAndRun()
}
