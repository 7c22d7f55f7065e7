package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config is the session configuration. A YAML file supplies it, and flags
// override the file.
type config struct {
	// Prompt is printed before reading each line.
	Prompt string `yaml:"prompt"`
	// Format is a fmt verb for results. Empty means the shortest decimal
	// representation.
	Format string `yaml:"format"`
	// MaxDepth limits nested calls. Zero means no limit.
	MaxDepth int `yaml:"max_depth"`
	// Builtins enables the built-in math functions.
	Builtins bool `yaml:"builtins"`
	// Color enables coloured error output.
	Color bool `yaml:"color"`
	// Echo prints each parsed program before running it.
	Echo bool `yaml:"echo"`
	// Prelude holds lines run before the first prompt.
	Prelude []string `yaml:"prelude"`
}

func defaultConfig() config {
	return config{
		Prompt:   "> ",
		MaxDepth: 10000,
		Builtins: true,
		Color:    true,
	}
}

// loadConfig reads a config file over the defaults. An empty path gives the
// defaults.
func loadConfig(path string) (config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, errors.Wrap(err, "reading config")
	}
	return parseConfig(data, path)
}

func parseConfig(data []byte, name string) (config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, errors.Wrapf(err, "parsing config %s", name)
	}
	if cfg.MaxDepth < 0 {
		return config{}, errors.Errorf("config %s: max_depth must not be negative, got %d", name, cfg.MaxDepth)
	}
	return cfg, nil
}
