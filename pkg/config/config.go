// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the engine and server settings from a kibitz.yaml
// file and KIBITZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"laptudirm.com/x/kibitz/pkg/search"
)

// Config is the complete configuration of kibitz.
type Config struct {
	Server Server `mapstructure:"server"`

	Chess  Game `mapstructure:"chess"`
	Gomoku Game `mapstructure:"gomoku"`

	Search Search `mapstructure:"search"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

// Game holds the settings of one game's engine.
type Game struct {
	TimeMS   int     `mapstructure:"time_ms"`
	Guard    float64 `mapstructure:"guard"`
	MaxDepth int     `mapstructure:"max_depth"`
	Decisive int     `mapstructure:"decisive"`
}

type Search struct {
	TableMB int  `mapstructure:"table_mb"`
	NoTable bool `mapstructure:"no_table"`
}

// Budget returns the default time budget of a search.
func (game Game) Budget() time.Duration {
	return time.Duration(game.TimeMS) * time.Millisecond
}

// Options returns the search options for game.
func (config *Config) Options(game Game, logger logrus.FieldLogger) search.Options {
	return search.Options{
		Guard:    game.Guard,
		MaxDepth: game.MaxDepth,
		Decisive: game.Decisive,

		TableMB: config.Search.TableMB,
		NoTable: config.Search.NoTable,

		Logger: logger,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")

	v.SetDefault("chess.time_ms", 200)
	v.SetDefault("chess.guard", 0.7)
	v.SetDefault("chess.max_depth", 8)
	v.SetDefault("chess.decisive", 9000)

	v.SetDefault("gomoku.time_ms", 1000)
	v.SetDefault("gomoku.guard", 0.8)
	v.SetDefault("gomoku.max_depth", 10)
	v.SetDefault("gomoku.decisive", 900_000)

	v.SetDefault("search.table_mb", 64)
	v.SetDefault("search.no_table", false)
}

// Load reads the configuration. An empty path looks for kibitz.yaml in
// the working directory and the config directory, and a missing file is
// not an error. A non-empty path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("kibitz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("kibitz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Directory)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", describe(path), err)
		}
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debug("config: loaded")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	return &config, nil
}

func describe(path string) string {
	if path == "" {
		return "kibitz.yaml"
	}

	return path
}
