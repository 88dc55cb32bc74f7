package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults for the convert command, loaded from a TOML
// file. Command-line flags always override config values.
type Config struct {
	// Standalone wraps output in a compilable document by default.
	Standalone bool `toml:"standalone"`

	// DocumentClass for standalone output.
	DocumentClass string `toml:"document_class"`

	// NoDisclaimer suppresses the generated-file header comment.
	NoDisclaimer bool `toml:"no_disclaimer"`

	// TikzOptions placed on the tikzpicture environment.
	TikzOptions string `toml:"tikz_options"`

	// AxisOptions appended to every panel's option block.
	AxisOptions []string `toml:"axis_options"`

	// NoCache disables the render cache.
	NoCache bool `toml:"no_cache"`
}

// loadConfig reads a config file. An empty path loads the default
// location; a missing default file yields a zero config, while a missing
// explicit file is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return Config{}, nil
		}
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location
// (~/.config/tikzbridge/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
