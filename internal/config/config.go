// Package config loads the harness configuration (display driver choice,
// driver options, palette selection) from a TOML file, the way the
// reference emulator pack's own emu/config.go loads its settings.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level harness configuration.
type Config struct {
	Palette PaletteConfig `toml:"palette"`
	Display DisplayConfig `toml:"display"`
}

// PaletteConfig selects one of the PPU's built-in monochrome palettes.
type PaletteConfig struct {
	// Name is one of "greyscale", "green", "red", "yellow". Anything else
	// falls back to greyscale.
	Name string `toml:"name"`
}

// DisplayConfig selects and configures a pkg/display driver.
type DisplayConfig struct {
	Driver  string            `toml:"driver"`
	Options map[string]string `toml:"options"`
}

// Default returns the configuration cmd/ppuview starts with when no
// config file is present.
func Default() Config {
	return Config{
		Palette: PaletteConfig{Name: "greyscale"},
		Display: DisplayConfig{Driver: "auto"},
	}
}

// Load reads path as TOML into a Config, starting from Default so that a
// partial file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
