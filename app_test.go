package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/estibuild/estibuild/plan"
)

func TestNewApp_Defaults(t *testing.T) {
	app := NewApp()

	if app.Config.WallThickness != plan.DefaultWallThickness {
		t.Errorf("WallThickness = %g, want %g", app.Config.WallThickness, plan.DefaultWallThickness)
	}
	if app.Config.Units != plan.DefaultUnits {
		t.Errorf("Units = %q, want %q", app.Config.Units, plan.DefaultUnits)
	}
}

func TestApplyOptions_Overrides(t *testing.T) {
	app := NewApp()

	err := app.ApplyOptions(AppOptions{
		InputFile:     "floor.dxf",
		OutputFile:    "out.json",
		RenderFormat:  "svg",
		HTTPPort:      9000,
		WallThickness: 0.3,
		Units:         "feet",
		GridSpacing:   2,
	})
	if err != nil {
		t.Fatalf("ApplyOptions: %v", err)
	}

	if app.Config.WallThickness != 0.3 {
		t.Errorf("WallThickness = %g, want 0.3", app.Config.WallThickness)
	}
	if app.Config.Units != "feet" {
		t.Errorf("Units = %q, want feet", app.Config.Units)
	}
	if app.Config.GridSpacing != 2 {
		t.Errorf("GridSpacing = %g, want 2", app.Config.GridSpacing)
	}
	if app.InputFile != "floor.dxf" || app.OutputFile != "out.json" {
		t.Errorf("files = %q, %q", app.InputFile, app.OutputFile)
	}
	if app.RenderFormat != "svg" || app.HTTPPort != 9000 {
		t.Errorf("render format %q, port %d", app.RenderFormat, app.HTTPPort)
	}
}

func TestApplyOptions_ZeroFlagsKeepConfig(t *testing.T) {
	app := NewApp()

	if err := app.ApplyOptions(AppOptions{}); err != nil {
		t.Fatalf("ApplyOptions: %v", err)
	}
	if app.Config.WallThickness != plan.DefaultWallThickness {
		t.Errorf("WallThickness = %g, want default", app.Config.WallThickness)
	}
	if app.Config.Units != plan.DefaultUnits {
		t.Errorf("Units = %q, want default", app.Config.Units)
	}
}

func TestApplyOptions_NegativeWallThickness(t *testing.T) {
	app := NewApp()

	if err := app.ApplyOptions(AppOptions{WallThickness: -0.1}); err == nil {
		t.Fatal("expected error for negative wall thickness, got nil")
	}
}

func TestApplyOptions_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "wallThickness: 0.25\nunits: feet\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}

	app := NewApp()
	if err := app.ApplyOptions(AppOptions{ConfigFile: path}); err != nil {
		t.Fatalf("ApplyOptions: %v", err)
	}
	if app.Config.WallThickness != 0.25 {
		t.Errorf("WallThickness = %g, want 0.25", app.Config.WallThickness)
	}
	if app.Config.Units != "feet" {
		t.Errorf("Units = %q, want feet", app.Config.Units)
	}

	// Flags still win over the file.
	app = NewApp()
	if err := app.ApplyOptions(AppOptions{ConfigFile: path, WallThickness: 0.4}); err != nil {
		t.Fatalf("ApplyOptions: %v", err)
	}
	if app.Config.WallThickness != 0.4 {
		t.Errorf("WallThickness = %g, want 0.4", app.Config.WallThickness)
	}
}

func TestApplyOptions_MissingConfigFile(t *testing.T) {
	app := NewApp()
	if err := app.ApplyOptions(AppOptions{ConfigFile: "nope.yaml"}); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}
