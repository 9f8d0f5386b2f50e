package main

import (
	"flag"
	"fmt"
	"log"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	configFile    = flag.String("config", "", "Path to YAML configuration file (defaults apply when empty)")
	inputFile     = flag.String("input", "", "Path to DXF drawing")
	outputFile    = flag.String("output", "", "Output file (default depends on mode)")
	renderMode    = flag.Bool("render", false, "Render the reconstructed plan and exit")
	renderFormat  = flag.String("format", "png", "Render format: png or svg")
	reportMode    = flag.Bool("report", false, "Write measurement and abstract sheets and exit")
	httpMode      = flag.Bool("http", false, "Run HTTP service mode")
	httpPort      = flag.Int("http-port", 8080, "HTTP server port (default 8080)")
	wallThickness = flag.Float64("wall-thickness", 0, "Override wall thickness in drawing units (0 = from config)")
	unitsLabel    = flag.String("units", "", "Override unit label (empty = from config)")
	gridSpacing   = flag.Float64("grid-spacing", 0, "Grid line spacing for rendering in drawing units (0 = from config)")
)

func main() {
	flag.Parse()
	fmt.Printf("estibuild version: %s\n", Version)

	app := NewApp()
	if err := app.ApplyOptions(AppOptions{
		ConfigFile:    *configFile,
		InputFile:     *inputFile,
		OutputFile:    *outputFile,
		RenderFormat:  *renderFormat,
		HTTPPort:      *httpPort,
		WallThickness: *wallThickness,
		Units:         *unitsLabel,
		GridSpacing:   *gridSpacing,
	}); err != nil {
		log.Fatalf("Error applying options: %v", err)
	}

	switch {
	case *renderMode:
		app.RunRender()
	case *reportMode:
		app.RunReport()
	case *httpMode:
		app.RunServe()
	default:
		app.RunTakeoff()
	}
}
