// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPath is loaded when no config file is named and it exists.
const DefaultPath = ".replacetext.yaml"

// 🎨 ColorMode controls colored console output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse decodes the config from bytes on top of Default()
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the settings a run can take from a file
type Config struct {
	Include   []string  `json:"include,omitempty" yaml:"include,omitempty" toml:"include,omitempty" hcl:"include,optional"`
	Exclude   []string  `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" hcl:"exclude,optional"`
	Gitignore bool      `json:"gitignore,omitempty" yaml:"gitignore,omitempty" toml:"gitignore,omitempty" hcl:"gitignore,optional"`
	Jobs      int       `json:"jobs,omitempty" yaml:"jobs,omitempty" toml:"jobs,omitempty" hcl:"jobs,optional"`
	DryRun    bool      `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run,omitempty" hcl:"dry_run,optional"`
	Color     ColorMode `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" hcl:"color,optional"`
}

// 🏭 Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		Jobs:  runtime.GOMAXPROCS(0),
		Color: ColorAuto,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported config file extension %q: %s", filepath.Ext(path), path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// 🔍 Validate checks the configuration and fills in defaults for unset
// fields
func (cfg *Config) Validate() error {
	if cfg.Jobs < 0 {
		return errors.Errorf("jobs must not be negative, got %d", cfg.Jobs)
	}
	if cfg.Jobs == 0 {
		cfg.Jobs = runtime.GOMAXPROCS(0)
	}

	switch cfg.Color {
	case "":
		cfg.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("color must be one of auto, always or never, got %q", cfg.Color)
	}

	for _, p := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob pattern %q", p)
		}
	}

	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
