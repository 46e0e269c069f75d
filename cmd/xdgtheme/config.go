package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional config file at
// $XDG_CONFIG_HOME/xdgtheme/config.yaml. Flags override every field.
type Config struct {
	Theme      string   `yaml:"theme"`
	SearchDirs []string `yaml:"search_dirs"`
	Extensions []string `yaml:"extensions"`
}

func configPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "xdgtheme", "config.yaml")
}

// loadConfig reads the config file. A missing or unreadable file yields
// the zero config; a malformed one is only worth a warning.
func loadConfig() Config {
	var cfg Config
	path := configPath()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("ignoring malformed config", "path", path, "err", err)
		return Config{}
	}
	return cfg
}
