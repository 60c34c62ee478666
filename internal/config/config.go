// Package config loads the optional TOML settings file. Every field is
// optional; missing fields keep the built-in values.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/marcuswu/linkage-assembly/internal/assembly"
	"github.com/marcuswu/linkage-assembly/internal/mesher"
	"github.com/marcuswu/linkage-assembly/internal/scene"
)

// Config is the complete run configuration.
type Config struct {
	Rod    mesher.Options `toml:"rod"`
	Plate  mesher.Options `toml:"plate"`
	Window scene.Window   `toml:"window"`
	Camera scene.Camera   `toml:"camera"`
	Export Export         `toml:"export"`
}

// Export names optional output files. Empty paths are skipped.
type Export struct {
	// directory receiving one STL per meshed component
	STLDir string `toml:"stl_dir"`
	// single STL holding every placed instance
	AssemblySTL string `toml:"assembly_stl"`
	// OpenCascade exports of the placed solids
	STEP   string `toml:"step"`
	OCCSTL string `toml:"occ_stl"`
	// cells along the longest axis for the field STL export
	STLCells int `toml:"stl_cells"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rod:    assembly.RodOptions(),
		Plate:  assembly.PlateOptions(),
		Window: scene.DefaultWindow(),
		Camera: scene.DefaultCamera(),
		Export: Export{STLCells: 200},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values Load cannot check by type alone.
func (c Config) Validate() error {
	if err := c.Rod.Validate(); err != nil {
		return fmt.Errorf("rod: %w", err)
	}
	if err := c.Plate.Validate(); err != nil {
		return fmt.Errorf("plate: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: %w", scene.ErrBadWindow)
	}
	if err := c.Camera.Validate(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	return nil
}
