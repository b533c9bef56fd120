package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given.
const defaultConfigFile = "seqgraph.toml"

// Config carries per-command defaults loadable from a TOML file. Flags given
// on the command line win over config values.
type Config struct {
	Unfold UnfoldConfig `toml:"unfold"`
	Edit   EditConfig   `toml:"edit"`
	Render RenderConfig `toml:"render"`
}

// UnfoldConfig holds defaults for the unfold command.
type UnfoldConfig struct {
	Limit int `toml:"limit"`
}

// EditConfig holds defaults for the edit command.
type EditConfig struct {
	MaxNodeSize int  `toml:"max_node_size"`
	BreakAtEnds bool `toml:"break_at_ends"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Format   string  `toml:"format"`
	Detailed bool    `toml:"detailed"`
	Scale    float64 `toml:"scale"`
}

func defaultConfig() Config {
	return Config{
		Unfold: UnfoldConfig{Limit: 100},
		Render: RenderConfig{Format: "svg", Scale: 2.0},
	}
}

// loadConfig reads a TOML config file. A missing default file is fine; a
// missing explicit --config path is an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
