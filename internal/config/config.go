// Package config loads tablekit's startup configuration from a TOML file,
// in the struct-tag-driven decode style of Pieczasz-smf's
// internal/parser/toml package (the teacher itself has no config or TOML
// code of its own), scaled down from a full schema document to a flat
// settings file.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the REPL and TUI need before the first
// command is read. CLI flags override values loaded here; loaded values
// override the defaults below.
type Config struct {
	Prompt   string `toml:"prompt"`
	Quiet    bool   `toml:"quiet"`
	SeedFile string `toml:"seed_file"`
}

// Default returns the built-in defaults: prompt "% ", quiet mode off, no
// seed file.
func Default() Config {
	return Config{Prompt: "% ", Quiet: false}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so any key the file omits keeps its built-in value.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML config content from r.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
