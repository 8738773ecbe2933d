package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// configFile is the name of the default config file in configDir.
const configFile = "config.toml"

// Config holds flag values read from a TOML file. Top-level keys apply to
// every command that defines a flag of the same name; a table named after a
// command applies to that command only and wins over top-level keys.
//
//	type = "treemap"
//	width = 1200
//	format = ["svg", "png"]
//
//	[serve]
//	addr = ":9090"
//	redis = "localhost:6379"
type Config struct {
	Path   string
	values map[string]any
}

// ReadConfig decodes the TOML file at path.
func ReadConfig(path string) (*Config, error) {
	values := map[string]any{}
	if _, err := toml.DecodeFile(path, &values); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return &Config{Path: path, values: values}, nil
}

// Apply sets every flag of cmd that was not given on the command line and
// has a value in the config. Unknown keys are ignored.
func (c *Config) Apply(cmd *cobra.Command) error {
	if c == nil {
		return nil
	}
	flags := cmd.Flags()
	set := func(values map[string]any) error {
		for key, v := range values {
			if _, isTable := v.(map[string]any); isTable {
				continue
			}
			fl := flags.Lookup(key)
			if fl == nil || fl.Changed || key == "config" || key == "help" {
				continue
			}
			if err := setFlag(fl, v); err != nil {
				return fmt.Errorf("config %s: %s: %w", c.Path, key, err)
			}
		}
		return nil
	}

	if err := set(c.values); err != nil {
		return err
	}
	if table, ok := c.values[cmd.Name()].(map[string]any); ok {
		return set(table)
	}
	return nil
}

func setFlag(fl *pflag.Flag, v any) error {
	var s string
	switch v := v.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprint(p)
		}
		s = strings.Join(parts, ",")
	default:
		s = fmt.Sprint(v)
	}
	return fl.Value.Set(s)
}

// loadConfig reads --config, or the default config file when it exists.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := ReadConfig(path)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// applyConfig fills unset flags of cmd from the loaded config.
func (c *CLI) applyConfig(cmd *cobra.Command) error {
	return c.config.Apply(cmd)
}

func defaultConfigHint() string {
	return filepath.Join("~", ".config", appName, configFile)
}
