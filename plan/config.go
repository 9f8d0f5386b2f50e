package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for the recognized configuration options.
const (
	DefaultWallThickness      = 0.2
	DefaultUnits              = "meters"
	DefaultCementBagKg        = 50.0
	DefaultPlasterThicknessMM = 12.0
	DefaultTileSizeMM         = 600.0
)

// Config holds the tunable constants for one takeoff run. All values have
// stated defaults; zero values in a loaded file mean "use the default".
type Config struct {
	WallThickness      float64 `yaml:"wallThickness" json:"wallThickness"`
	Units              string  `yaml:"units" json:"units"`
	CementBagKg        float64 `yaml:"cementBagKg" json:"cementBagKg"`
	PlasterThicknessMM float64 `yaml:"plasterThicknessMm" json:"plasterThicknessMm"`
	TileSizeMM         float64 `yaml:"tileSizeMm" json:"tileSizeMm"`

	// Renderer options.
	GridSpacing float64 `yaml:"gridSpacing,omitempty" json:"gridSpacing,omitempty"` // Grid line spacing in drawing units (0 disables)
	RenderDPI   float64 `yaml:"renderDpi,omitempty" json:"renderDpi,omitempty"`     // Raster output resolution (default 150)
}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		WallThickness:      DefaultWallThickness,
		Units:              DefaultUnits,
		CementBagKg:        DefaultCementBagKg,
		PlasterThicknessMM: DefaultPlasterThicknessMM,
		TileSizeMM:         DefaultTileSizeMM,
		RenderDPI:          150,
	}
}

// LoadConfig loads the takeoff configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Validate before applying defaults so a negative value is rejected
	// instead of silently replaced.
	if config.WallThickness < 0 {
		return nil, fmt.Errorf("wallThickness must not be negative, got %g", config.WallThickness)
	}
	if config.CementBagKg < 0 {
		return nil, fmt.Errorf("cementBagKg must not be negative, got %g", config.CementBagKg)
	}
	if config.PlasterThicknessMM < 0 {
		return nil, fmt.Errorf("plasterThicknessMm must not be negative, got %g", config.PlasterThicknessMM)
	}
	if config.TileSizeMM < 0 {
		return nil, fmt.Errorf("tileSizeMm must not be negative, got %g", config.TileSizeMM)
	}

	config.applyDefaults()
	return &config, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(path string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// applyDefaults fills zero-valued options with their defaults.
func (c *Config) applyDefaults() {
	if c.WallThickness == 0 {
		c.WallThickness = DefaultWallThickness
	}
	if c.Units == "" {
		c.Units = DefaultUnits
	}
	if c.CementBagKg == 0 {
		c.CementBagKg = DefaultCementBagKg
	}
	if c.PlasterThicknessMM == 0 {
		c.PlasterThicknessMM = DefaultPlasterThicknessMM
	}
	if c.TileSizeMM == 0 {
		c.TileSizeMM = DefaultTileSizeMM
	}
	if c.RenderDPI == 0 {
		c.RenderDPI = 150
	}
}
