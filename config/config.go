// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package config loads the runtime configuration for a batch run.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config aggregates configuration for one batch run.
type Config struct {
	// CreatorsFile and VideosFile are the delimited input tables.
	CreatorsFile string `mapstructure:"creators_file"`
	VideosFile   string `mapstructure:"videos_file"`

	// OutputRoot is the directory the partition trees are written under.
	OutputRoot string `mapstructure:"output_root"`

	// RunDate is the run date in YYYY-MM-DD form; empty means today.
	RunDate string `mapstructure:"run_date"`

	// RulesFile is an optional QA rule-set YAML file. When empty the
	// built-in pipelines are used.
	RulesFile string `mapstructure:"rules_file"`

	// LogFile, when set, receives a JSON copy of the log stream.
	LogFile string `mapstructure:"log_file"`

	// TopKeywords is the number of keywords extracted per creator.
	TopKeywords int `mapstructure:"top_keywords"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the prefix "CREATORSTATS" and replace the dot
// in keys with an underscore, so "output_root" becomes
// "CREATORSTATS_OUTPUT_ROOT".
func Load() (*Config, error) {
	cfg := &Config{
		CreatorsFile: "data/creators.csv",
		VideosFile:   "data/videos.csv",
		OutputRoot:   "data",
		TopKeywords:  3,
	}

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CREATORSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	_ = v.ReadInConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for problems a run cannot
// recover from.
func (c *Config) Validate() error {
	if c.CreatorsFile == "" {
		return fmt.Errorf("config: creators_file cannot be empty")
	}
	if c.VideosFile == "" {
		return fmt.Errorf("config: videos_file cannot be empty")
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("config: output_root cannot be empty")
	}
	if _, err := c.RunDay(); err != nil {
		return err
	}
	return nil
}

// RunDay returns the configured run date, defaulting to today (UTC) when
// unset.
func (c *Config) RunDay() (time.Time, error) {
	if c.RunDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, c.RunDate, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: invalid run_date %q: %w", c.RunDate, err)
	}
	return day, nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(parts, tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
