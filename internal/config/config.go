// Package config loads viewer settings from flags, environment and an
// optional TOML file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/texture"
)

// EnvPrefix prefixes environment overrides, e.g. PLANETVIEW_FPS=30.
const EnvPrefix = "PLANETVIEW"

const (
	defaultFPS = 20
	minFPS     = 1
	maxFPS     = 60
)

// Config holds viewer settings.
type Config struct {
	Assets     string `mapstructure:"assets"`      // Root for texture references
	Catalog    string `mapstructure:"catalog"`     // Optional TOML catalog; empty uses the built-in one
	Planet     string `mapstructure:"planet"`      // Planet shown at startup
	FPS        int    `mapstructure:"fps"`         // Draw rate of the interactive view
	MaxTexture int    `mapstructure:"max_texture"` // Longest texture side after decoding
	LogLevel   string `mapstructure:"log_level"`
	LogFile    string `mapstructure:"log_file"`
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Assets:     ".",
		Planet:     catalog.DefaultKey,
		FPS:        defaultFPS,
		MaxTexture: texture.DefaultMaxSize,
		LogLevel:   "info",
	}
}

// SetDefaults registers DefaultConfig values with v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("assets", d.Assets)
	v.SetDefault("catalog", d.Catalog)
	v.SetDefault("planet", d.Planet)
	v.SetDefault("fps", d.FPS)
	v.SetDefault("max_texture", d.MaxTexture)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"assets":      "assets",
	"catalog":     "catalog",
	"planet":      "planet",
	"fps":         "fps",
	"max-texture": "max_texture",
	"log-level":   "log_level",
	"log-file":    "log_file",
}

// RegisterFlags adds the config flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("assets", d.Assets, "Directory texture paths are relative to")
	fs.String("catalog", d.Catalog, "TOML planet catalog (default: built-in)")
	fs.String("planet", d.Planet, "Planet shown at startup")
	fs.Int("fps", d.FPS, "Frames per second of the interactive view")
	fs.Int("max-texture", d.MaxTexture, "Longest side of decoded textures in pixels")
	fs.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-file", d.LogFile, "Write logs to this file")
}

// Load merges defaults, the config file, environment and flags, in
// increasing precedence. An empty configFile searches ./planetview.toml
// and the user config directory; a missing file there is not an error.
func Load(configFile string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", configFile)
		}
	} else {
		v.SetConfigName("planetview")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "planetview"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, errors.Wrap(err, "read config")
			}
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	if c.FPS < minFPS {
		c.FPS = minFPS
	} else if c.FPS > maxFPS {
		c.FPS = maxFPS
	}
	if c.MaxTexture <= 0 {
		c.MaxTexture = texture.DefaultMaxSize
	}
	if c.Planet == "" {
		c.Planet = catalog.DefaultKey
	}
	return c
}

// FrameInterval is the delay between draws of the interactive view.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < minFPS {
		fps = minFPS
	}
	return time.Second / time.Duration(fps)
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c Config) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(c.Catalog)
}
