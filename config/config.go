// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/milchinskiy/linelog/filter"
	"github.com/milchinskiy/linelog/logger"
)

// StateDirName is the directory under the XDG state home that holds
// state_file logs.
const StateDirName = "linelog"

// ErrUnsupportedFormat is returned for config files that are neither TOML
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// Config is the file form of a logger configuration. Every field is
// optional; unset fields keep the logger defaults.
type Config struct {
	Level        string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal"`
	Color        string `toml:"color" yaml:"color" validate:"omitempty,oneof=auto always never"`
	ShowTime     *bool  `toml:"show_time" yaml:"show_time"`
	LocalTime    *bool  `toml:"local_time" yaml:"local_time"`
	ShowThreadID *bool  `toml:"show_tid" yaml:"show_tid"`
	ShowFileLine *bool  `toml:"show_file_line" yaml:"show_file_line"`
	ShowGroup    *bool  `toml:"show_group" yaml:"show_group"`

	Target    string `toml:"target" yaml:"target" validate:"omitempty,oneof=stdout stderr file"`
	File      string `toml:"file" yaml:"file" validate:"excluded_with=StateFile,required_if=Target file StateFile ''"`
	StateFile string `toml:"state_file" yaml:"state_file" validate:"omitempty,basename"`

	Rotate *Rotate `toml:"rotate" yaml:"rotate" validate:"omitempty"`

	Group  string `toml:"group" yaml:"group" validate:"omitempty,grouptag"`
	Filter string `toml:"filter" yaml:"filter" validate:"omitempty,max=4096"`
	Banner string `toml:"banner" yaml:"banner"`
}

// Rotate turns a file target into a rotating one. A zero max_size_mb
// means 100 MB.
type Rotate struct {
	MaxSizeMB  int  `toml:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int  `toml:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int  `toml:"max_age_days" yaml:"max_age_days" validate:"gte=0"`
	Compress   bool `toml:"compress" yaml:"compress"`
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file, normalizes it and
// validates it. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				row, col := derr.Position()
				return nil, fmt.Errorf("failed to parse %s at line %d, column %d: %w", path, row, col, err)
			}
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	c.Target = strings.ToLower(strings.TrimSpace(c.Target))
	if c.Target == "" && (c.File != "" || c.StateFile != "") {
		c.Target = "file"
	}
}

// Patch returns the runtime settings of the config. Validate first; values
// that do not parse are left out.
func (c *Config) Patch() logger.SettingsPatch {
	p := logger.SettingsPatch{
		ShowTime:     c.ShowTime,
		LocalTime:    c.LocalTime,
		ShowThreadID: c.ShowThreadID,
		ShowFileLine: c.ShowFileLine,
		ShowGroup:    c.ShowGroup,
	}
	if c.Level != "" {
		if level, err := logger.ParseLevel(c.Level); err == nil {
			p.Level = &level
		}
	}
	if c.Color != "" {
		if mode, err := logger.ParseColorMode(c.Color); err == nil {
			p.Color = &mode
		}
	}
	return p
}

// LogFilePath returns the file the logger should append to, or "" when
// the target is not a file. A state_file is placed under the XDG state
// directory, which is created if needed.
func (c *Config) LogFilePath() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	if c.StateFile == "" {
		return "", nil
	}
	path, err := xdg.StateFile(filepath.Join(StateDirName, c.StateFile))
	if err != nil {
		return "", fmt.Errorf("failed to resolve state file %q: %w", c.StateFile, err)
	}
	return path, nil
}

// CompileFilter compiles the filter expression, or returns nil when the
// config has none.
func (c *Config) CompileFilter() (*filter.Filter, error) {
	if c.Filter == "" {
		return nil, nil
	}
	return filter.Compile(c.Filter)
}

// Builder returns a logger builder configured from c.
func (c *Config) Builder() (*logger.Builder, error) {
	b := logger.NewBuilder().Settings(c.Patch()).BannerTemplate(c.Banner)

	switch c.Target {
	case "stdout":
		b.Stdout()
	case "stderr":
		b.Stderr()
	case "file":
		path, err := c.LogFilePath()
		if err != nil {
			return nil, err
		}
		if c.Rotate != nil {
			b.RotatingFile(path, logger.Rotation{
				MaxSizeMB:  c.Rotate.MaxSizeMB,
				MaxBackups: c.Rotate.MaxBackups,
				MaxAgeDays: c.Rotate.MaxAgeDays,
				Compress:   c.Rotate.Compress,
				LocalTime:  c.LocalTime != nil && *c.LocalTime,
			})
		} else {
			b.File(path)
		}
	}

	f, err := c.CompileFilter()
	if err != nil {
		return nil, err
	}
	if f != nil {
		b.Filter(f)
	}
	return b, nil
}

// Apply changes the runtime settings and filter of an existing logger.
// The target and writer are left alone since they can only be set once.
func (c *Config) Apply(lg *logger.Logger) error {
	f, err := c.CompileFilter()
	if err != nil {
		return err
	}
	lg.Apply(c.Patch())
	if f != nil {
		lg.SetFilter(f)
	}
	return nil
}
