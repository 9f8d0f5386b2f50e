package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.WallThickness != DefaultWallThickness {
		t.Errorf("WallThickness = %g, want %g", cfg.WallThickness, DefaultWallThickness)
	}
	if cfg.Units != DefaultUnits {
		t.Errorf("Units = %q, want %q", cfg.Units, DefaultUnits)
	}
	if cfg.CementBagKg != DefaultCementBagKg {
		t.Errorf("CementBagKg = %g, want %g", cfg.CementBagKg, DefaultCementBagKg)
	}
	if cfg.PlasterThicknessMM != DefaultPlasterThicknessMM {
		t.Errorf("PlasterThicknessMM = %g, want %g", cfg.PlasterThicknessMM, DefaultPlasterThicknessMM)
	}
	if cfg.TileSizeMM != DefaultTileSizeMM {
		t.Errorf("TileSizeMM = %g, want %g", cfg.TileSizeMM, DefaultTileSizeMM)
	}
}

func TestLoadConfig_NotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, `wallThickness: 0.23
units: feet
cementBagKg: 25
plasterThicknessMm: 15
tileSizeMm: 300
gridSpacing: 1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WallThickness != 0.23 {
		t.Errorf("WallThickness = %g, want 0.23", cfg.WallThickness)
	}
	if cfg.Units != "feet" {
		t.Errorf("Units = %q, want %q", cfg.Units, "feet")
	}
	if cfg.CementBagKg != 25 {
		t.Errorf("CementBagKg = %g, want 25", cfg.CementBagKg)
	}
	if cfg.PlasterThicknessMM != 15 {
		t.Errorf("PlasterThicknessMM = %g, want 15", cfg.PlasterThicknessMM)
	}
	if cfg.TileSizeMM != 300 {
		t.Errorf("TileSizeMM = %g, want 300", cfg.TileSizeMM)
	}
	if cfg.GridSpacing != 1 {
		t.Errorf("GridSpacing = %g, want 1", cfg.GridSpacing)
	}
}

func TestLoadConfig_ZeroValuesGetDefaults(t *testing.T) {
	path := writeConfig(t, `units: meters
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WallThickness != DefaultWallThickness {
		t.Errorf("WallThickness = %g, want default %g", cfg.WallThickness, DefaultWallThickness)
	}
	if cfg.TileSizeMM != DefaultTileSizeMM {
		t.Errorf("TileSizeMM = %g, want default %g", cfg.TileSizeMM, DefaultTileSizeMM)
	}
}

func TestLoadConfig_NegativeRejected(t *testing.T) {
	bodies := []string{
		"wallThickness: -0.1\n",
		"cementBagKg: -50\n",
		"plasterThicknessMm: -12\n",
		"tileSizeMm: -600\n",
	}
	for _, body := range bodies {
		path := writeConfig(t, body)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("expected error for %q, got nil", body)
		}
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "wallThickness: [not a number\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML, got nil")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	original := DefaultConfig()
	original.WallThickness = 0.3
	original.Units = "feet"

	if err := SaveConfig(path, &original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *loaded != original {
		t.Errorf("round trip mismatch: got %+v, want %+v", *loaded, original)
	}
}
