/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/valpere/eztrans/internal/engine"
)

type config struct {
	InstallRoot string      `mapstructure:"install_root"`
	InitToken   string      `mapstructure:"init_token"`
	DataDir     string      `mapstructure:"data_dir"`
	NarrowMode  string      `mapstructure:"narrow_mode"`
	NarrowOnly  bool        `mapstructure:"narrow_only"`
	Escape      bool        `mapstructure:"escape"`
	MaxRunes    int         `mapstructure:"max_runes"`
	Cache       cacheConfig `mapstructure:"cache"`
	Log         logConfig   `mapstructure:"log"`
}

type cacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command-line flags to config keys. Flags a command does not
// define are skipped.
var flagKeys = map[string]string{
	"install-root": "install_root",
	"init-token":   "init_token",
	"data-dir":     "data_dir",
	"narrow-mode":  "narrow_mode",
	"narrow-only":  "narrow_only",
	"escape":       "escape",
	"max-runes":    "max_runes",
	"cache":        "cache.enabled",
	"db":           "cache.path",
	"log-level":    "log.level",
	"log-format":   "log.format",
}

// loadConfig merges defaults, the optional config file, EZTRANS_* environment
// variables and flags, in increasing order of precedence.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, path string) (config, error) {
	v.SetDefault("install_root", engine.DefaultInstallRoot)
	v.SetDefault("init_token", engine.DefaultInitToken)
	v.SetDefault("data_dir", "")
	v.SetDefault("narrow_mode", engine.ModeMMNT.String())
	v.SetDefault("narrow_only", false)
	v.SetDefault("escape", true)
	v.SetDefault("max_runes", 0)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "./data/eztrans.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("EZTRANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return config{}, err
				}
			}
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if c.MaxRunes < 0 {
		return config{}, errors.New("max_runes must not be negative")
	}
	if _, err := engine.ParseMode(c.NarrowMode); err != nil {
		return config{}, err
	}
	return c, nil
}

// newLogger builds a logger writing to stderr; stdout carries results.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, errors.New("log format must be json or console")
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
