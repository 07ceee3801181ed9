// Package config reads the optional TOML startup file the repl
// subcommand loads before opening a database.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the shape of a coldb startup file. Every field is
// optional; zero values mean "use the built-in default".
type Config struct {
	Prompt       string `toml:"prompt"`
	SnapshotPath string `toml:"snapshot_path"`
	HistoryFile  string `toml:"history_file"`
}

// Default returns the configuration used when no startup file is
// given or a field is left unset.
func Default() Config {
	return Config{
		Prompt:       "coldb> ",
		SnapshotPath: "coldb.snapshot",
		HistoryFile:  "",
	}
}

// LoadFile reads and decodes the TOML file at path, filling in any
// field the file omits from Default.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes TOML content from r on top of Default.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode error: %w", err)
	}
	return cfg, nil
}
