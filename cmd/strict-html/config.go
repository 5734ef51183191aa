package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the output settings that can be fixed in a TOML file
// instead of being repeated on every invocation:
//
//	format = "yaml"
//	indent = 4
type Config struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

func defaultConfig() Config {
	return Config{Format: formatJSON, Indent: 2}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Format {
	case formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", c.Format, formatJSON, formatYAML)
	}
	if c.Indent < 0 || c.Indent > 8 {
		return fmt.Errorf("indent must be between 0 and 8, got %d", c.Indent)
	}
	return nil
}
