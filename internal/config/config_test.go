package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Palette.Name != "greyscale" {
		t.Errorf("default palette = %q, want greyscale", cfg.Palette.Name)
	}
	if cfg.Display.Driver != "auto" {
		t.Errorf("default driver = %q, want auto", cfg.Display.Driver)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Palette.Name != want.Palette.Name || cfg.Display.Driver != want.Display.Driver {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppuview.toml")
	body := `
[palette]
name = "green"

[display]
driver = "sdl"
options = { addr = ":9090" }
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Palette.Name != "green" {
		t.Errorf("palette = %q, want green", cfg.Palette.Name)
	}
	if cfg.Display.Driver != "sdl" {
		t.Errorf("driver = %q, want sdl", cfg.Display.Driver)
	}
	if cfg.Display.Options["addr"] != ":9090" {
		t.Errorf("options[addr] = %q, want :9090", cfg.Display.Options["addr"])
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("this is not = [valid toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error decoding malformed TOML")
	}
}
