// Package config loads application settings from defaults, an optional YAML file
// and CSVANALYZER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

const (
	// FileName is the config file base name looked up without an explicit path.
	FileName  = "csvanalyzer"
	envPrefix = "CSVANALYZER"
)

// Config is the resolved application configuration.
type Config struct {
	Engine    string      `mapstructure:"engine"`
	Delimiter string      `mapstructure:"delimiter"`
	MaxRows   int         `mapstructure:"max_rows"`
	Preview   PreviewConf `mapstructure:"preview"`
	Chart     ChartConf   `mapstructure:"chart"`
	Log       LogConf     `mapstructure:"log"`
	UI        UIConf      `mapstructure:"ui"`
}

type PreviewConf struct {
	Rows      int `mapstructure:"rows"`
	Cols      int `mapstructure:"cols"`
	CellWidth int `mapstructure:"cell_width"`
}

type ChartConf struct {
	Bins   int `mapstructure:"bins"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type UIConf struct {
	Dark bool `mapstructure:"dark"`
}

// SetDefaults registers every key with its default so env overrides resolve.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("engine", dataset.EngineNative)
	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("preview.rows", 10)
	v.SetDefault("preview.cols", 4)
	v.SetDefault("preview.cell_width", 10)
	v.SetDefault("chart.bins", 10)
	v.SetDefault("chart.width", 800)
	v.SetDefault("chart.height", 400)
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.dark", true)
}

// New returns a viper instance with defaults and environment binding. When path
// is empty the config file is searched in "." and the user config directory.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "csvanalyzer"))
		}
	}
	return v
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"engine":    "engine",
	"delimiter": "delimiter",
	"max-rows":  "max_rows",
	"rows":      "preview.rows",
	"cols":      "preview.cols",
	"bins":      "chart.bins",
	"width":     "chart.width",
	"height":    "chart.height",
	"log-level": "log.level",
	"dark":      "ui.dark",
}

// Load reads the config file (a missing default file is fine) and decodes it.
// Flags present in fs and listed in flagKeys take precedence over file and env
// values when set on the command line.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := New(path)
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the configuration with only defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return &c
}

// Validate rejects settings the loader or renderer cannot use.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Engine) {
	case "", dataset.EngineNative, dataset.EngineDuckDB:
	default:
		return fmt.Errorf("config: engine %q (want %s|%s)", c.Engine, dataset.EngineNative, dataset.EngineDuckDB)
	}
	if len([]rune(c.Delimiter)) > 1 && c.Delimiter != `\t` && c.Delimiter != "tab" {
		return fmt.Errorf("config: delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.Chart.Bins < 1 {
		return fmt.Errorf("config: chart.bins must be >= 1, got %d", c.Chart.Bins)
	}
	if c.Preview.Rows < 0 || c.Preview.Cols < 0 {
		return fmt.Errorf("config: preview rows/cols must be >= 0")
	}
	return nil
}

// LoadOptions converts the loader settings.
func (c *Config) LoadOptions() dataset.Options {
	o := dataset.Options{Engine: c.Engine, MaxRows: c.MaxRows}
	switch c.Delimiter {
	case "":
	case `\t`, "tab":
		o.Delimiter = '\t'
	default:
		o.Delimiter = []rune(c.Delimiter)[0]
	}
	return o
}

// ChartOptions converts the chart settings.
func (c *Config) ChartOptions() charts.Options {
	return charts.Options{Width: c.Chart.Width, Height: c.Chart.Height, Bins: c.Chart.Bins}
}
