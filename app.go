package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/estibuild/estibuild/plan"
	"github.com/tdewolff/canvas"
)

// App encapsulates the CLI configuration and the loaded drawing. Every run
// mode executes the takeoff pipeline fresh; nothing is cached between runs.
type App struct {
	Config plan.Config

	// Run-mode options from the CLI.
	InputFile    string
	OutputFile   string
	RenderFormat string
	HTTPPort     int

	// Entities holds the drawing loaded at startup in serve mode.
	Entities []plan.Entity
}

// AppOptions carries the parsed CLI flags.
type AppOptions struct {
	ConfigFile    string
	InputFile     string
	OutputFile    string
	RenderFormat  string
	HTTPPort      int
	WallThickness float64
	Units         string
	GridSpacing   float64
}

// NewApp creates a new App instance with default configuration.
func NewApp() *App {
	return &App{Config: plan.DefaultConfig()}
}

// ApplyOptions loads the config file when given and applies flag overrides on
// top of it.
func (a *App) ApplyOptions(opts AppOptions) error {
	if opts.ConfigFile != "" {
		cfg, err := plan.LoadConfig(opts.ConfigFile)
		if err != nil {
			return err
		}
		a.Config = *cfg
	}

	if opts.WallThickness < 0 {
		return fmt.Errorf("wall thickness must not be negative, got %g", opts.WallThickness)
	}
	if opts.WallThickness > 0 {
		a.Config.WallThickness = opts.WallThickness
	}
	if opts.Units != "" {
		a.Config.Units = opts.Units
	}
	if opts.GridSpacing > 0 {
		a.Config.GridSpacing = opts.GridSpacing
	}

	a.InputFile = opts.InputFile
	a.OutputFile = opts.OutputFile
	a.RenderFormat = opts.RenderFormat
	a.HTTPPort = opts.HTTPPort
	return nil
}

// loadDrawing reads the configured input DXF into drawing entities.
func (a *App) loadDrawing() ([]plan.Entity, error) {
	if a.InputFile == "" {
		return nil, fmt.Errorf("no input drawing: use -input to point at a DXF file")
	}
	return plan.LoadDXF(a.InputFile)
}

// RunTakeoff runs the pipeline once and prints the measurement summary and
// material estimate. With -output, the full result is also written as JSON.
func (a *App) RunTakeoff() {
	ents, err := a.loadDrawing()
	if err != nil {
		log.Fatalf("Error loading drawing: %v", err)
	}

	result := plan.Takeoff(ents, a.Config)
	printSummary(result)

	if a.OutputFile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Error encoding result: %v", err)
		}
		if err := os.WriteFile(a.OutputFile, data, 0644); err != nil {
			log.Fatalf("Error writing %s: %v", a.OutputFile, err)
		}
		fmt.Printf("\nWrote %s\n", a.OutputFile)
	}
}

// RunRender renders the reconstructed plan to a PNG or SVG file.
func (a *App) RunRender() {
	ents, err := a.loadDrawing()
	if err != nil {
		log.Fatalf("Error loading drawing: %v", err)
	}

	result := plan.Takeoff(ents, a.Config)
	if len(result.Polygons) == 0 {
		log.Fatal("No rooms detected in drawing")
	}

	renderer := plan.NewPlanRenderer(result.Polygons)
	renderer.Rooms = result.Aggregate.Rooms
	renderer.GridSpacing = a.Config.GridSpacing
	renderer.Resolution = canvas.DPI(a.Config.RenderDPI)

	format := strings.ToLower(a.RenderFormat)
	out := a.OutputFile
	if out == "" {
		out = "plan." + format
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("Error creating %s: %v", out, err)
	}
	defer f.Close()

	switch format {
	case "svg":
		err = renderer.RenderToSVG(f)
	case "png":
		err = renderer.RenderToPNG(f)
	default:
		log.Fatalf("Unknown render format %q (want png or svg)", a.RenderFormat)
	}
	if err != nil {
		log.Fatalf("Error rendering: %v", err)
	}

	fmt.Printf("Rendered %d room(s) to %s\n", len(result.Polygons), out)
}

// RunReport writes the measurement and abstract sheets. The default is a
// two-sheet XLSX workbook; a -output name ending in .csv selects a pair of
// CSV files instead (the named measurement sheet plus an "-abstract" sibling).
func (a *App) RunReport() {
	ents, err := a.loadDrawing()
	if err != nil {
		log.Fatalf("Error loading drawing: %v", err)
	}

	result := plan.Takeoff(ents, a.Config)

	out := a.OutputFile
	if out == "" {
		out = "estimate.xlsx"
	}

	if !strings.HasSuffix(out, ".csv") {
		f, err := os.Create(out)
		if err != nil {
			log.Fatalf("Error creating %s: %v", out, err)
		}
		defer f.Close()
		if err := plan.WriteWorkbook(f, result.Aggregate, result.Materials); err != nil {
			log.Fatalf("Error writing workbook: %v", err)
		}
		fmt.Printf("Wrote %s (%d room(s))\n", out, len(result.Aggregate.Rooms))
		return
	}

	measurementPath := out
	abstractPath := strings.TrimSuffix(measurementPath, ".csv") + "-abstract.csv"

	measurement, err := plan.MeasurementSheetBytes(result.Aggregate)
	if err != nil {
		log.Fatalf("Error building measurement sheet: %v", err)
	}
	abstract, err := plan.AbstractSheetBytes(result.Aggregate, result.Materials)
	if err != nil {
		log.Fatalf("Error building abstract sheet: %v", err)
	}

	if err := os.WriteFile(measurementPath, measurement, 0644); err != nil {
		log.Fatalf("Error writing %s: %v", measurementPath, err)
	}
	if err := os.WriteFile(abstractPath, abstract, 0644); err != nil {
		log.Fatalf("Error writing %s: %v", abstractPath, err)
	}

	fmt.Printf("Wrote %s and %s (%d room(s))\n", measurementPath, abstractPath, len(result.Aggregate.Rooms))
}

// RunServe starts the HTTP service. When -input is given, the drawing is
// loaded once at startup and served read-only; POST /takeoff always works on
// the uploaded body.
func (a *App) RunServe() {
	if a.InputFile != "" {
		ents, err := a.loadDrawing()
		if err != nil {
			log.Fatalf("Error loading drawing: %v", err)
		}
		a.Entities = ents
		log.Printf("Loaded %d drawing entities from %s", len(ents), a.InputFile)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.HTTPPort),
		Handler: newHTTPServer(a),
	}

	go func() {
		log.Printf("HTTP server listening on :%d", a.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// printSummary prints per-room measurements, totals and the work catalog.
func printSummary(result plan.TakeoffResult) {
	agg := result.Aggregate
	if len(agg.Rooms) == 0 {
		fmt.Println("No rooms detected")
		return
	}

	fmt.Printf("Detected %d room(s) (units: %s, wall thickness: %g)\n\n", len(agg.Rooms), agg.Units, agg.WallThickness)
	for _, room := range agg.Rooms {
		fmt.Printf("  Room %d: area=%.3f carpet=%.3f perimeter=%.3f walls=%.1fx%.1f\n",
			room.ID, room.Area, room.CarpetArea, room.Perimeter,
			room.LongWallLength, room.ShortWallLength)
	}

	fmt.Printf("\nTotals: built-up=%.3f carpet=%.3f perimeter=%.3f\n\n",
		agg.Totals.BuiltUpArea, agg.Totals.CarpetArea, agg.Totals.Perimeter)

	for _, item := range result.Materials.WorkItems {
		fmt.Printf("  %-28s %12.3f %s\n", item.Item, item.Value(), item.Unit)
	}

	for _, note := range agg.Notes {
		fmt.Printf("\nNote: %s\n", note)
	}
	fmt.Printf("Note: %s\n", result.Materials.ContingencyNote)
}
