// Command intrinsics prints the derived camera parameters for a project file.
package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"mask-annotator/internal/app"
)

func main() {
	projectPath := flag.String("project", "", "Path to a .maskproj project file")
	imagePath := flag.String("image", "", "Adopt the render resolution from this image (PNG, JPEG, or TIFF)")
	width := flag.Int("width", 0, "Override the render width in pixels")
	height := flag.Int("height", 0, "Override the render height in pixels")
	flag.Parse()

	if *projectPath == "" {
		fmt.Println("Usage: intrinsics -project <path> [-image <path>] [-width N -height N]")
		os.Exit(1)
	}

	state := app.NewState()
	if err := state.LoadProject(*projectPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	if *imagePath != "" {
		if err := state.Scene.ResolutionFromImage(*imagePath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read image resolution: %v\n", err)
			os.Exit(1)
		}
	}
	if *width > 0 {
		state.Scene.ResolutionX = *width
	}
	if *height > 0 {
		state.Scene.ResolutionY = *height
	}

	fmt.Printf("Project: %s\n", *projectPath)
	fmt.Printf("Resolution: %dx%d\n", state.Scene.ResolutionX, state.Scene.ResolutionY)

	fmt.Printf("\nClasses (%d):\n", state.Registry.Len())
	for i := 0; i < state.Registry.Len(); i++ {
		c := state.Registry.Get(i)
		marker := " "
		if c.Name == state.Mirror.Current() {
			marker = "*"
		}
		fmt.Printf("  %s %-20s color=(%.2f, %.2f, %.2f, %.2f) objects=%q instances=%v\n",
			marker, c.Name,
			c.MaskColor[0], c.MaskColor[1], c.MaskColor[2], c.MaskColor[3],
			c.Objects, c.IsInstances)
	}

	k, err := state.Camera.Matrix(state.Scene)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to derive camera matrix: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nCamera matrix K:\n%v\n", mat.Formatted(k, mat.Prefix(""), mat.Squeeze()))
	fmt.Printf("Distortion (k1 k2 p1 p2 k3 k4): %v\n", state.Camera.DistortionVector())

	if cam, err := state.Scene.ActiveCamera(); err == nil {
		fmt.Printf("Host camera: lens=%.2fmm sensor=%.2fmm projection=%s\n",
			cam.Lens, cam.SensorWidth, cam.Projection)
	}
}
