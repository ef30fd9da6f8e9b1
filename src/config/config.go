// Package config loads plot tool settings from an optional vegetaplot.yaml,
// VEGETAPLOT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the plot binaries.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	OutDir     string `mapstructure:"out_dir"`
	Filename   string `mapstructure:"filename"`
	Title      string `mapstructure:"title"`
	Width      int    `mapstructure:"width"`
	Downsample int    `mapstructure:"downsample"`
	LogScale   bool   `mapstructure:"log_scale"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		LogLevel:   "info",
		OutDir:     ".",
		Title:      "Vegeta Plot",
		Width:      1100,
		Downsample: 4000,
		LogScale:   true,
	}
}

// Load resolves the configuration. file may be empty, in which case
// vegetaplot.yaml is looked up in the working directory and ignored when absent.
// Flags that were set explicitly on fs override everything else.
func Load(file string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("filename", d.Filename)
	v.SetDefault("title", d.Title)
	v.SetDefault("width", d.Width)
	v.SetDefault("downsample", d.Downsample)
	v.SetDefault("log_scale", d.LogScale)

	v.SetEnvPrefix("vegetaplot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("vegetaplot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	if fs != nil {
		for _, key := range []string{"log-level", "out-dir", "filename", "title", "width", "downsample", "log-scale"} {
			if f := fs.Lookup(key); f != nil && f.Changed {
				if err := v.BindPFlag(strings.ReplaceAll(key, "-", "_"), f); err != nil {
					return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Validate rejects settings the renderer cannot honour.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("config: width must be positive, got %d", c.Width)
	}
	if c.Downsample != 0 && c.Downsample < 3 {
		return fmt.Errorf("config: downsample must be 0 or at least 3, got %d", c.Downsample)
	}
	if strings.ContainsAny(c.Filename, `/\`) {
		return fmt.Errorf("config: filename %q must not contain path separators", c.Filename)
	}
	return nil
}
