// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"errors"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrNilWriter is returned by Build when Writer was given a nil writer.
var ErrNilWriter = errors.New("log writer is nil")

type sinkChoice int

const (
	sinkDefault sinkChoice = iota
	sinkStdout
	sinkStderr
	sinkWriter
	sinkFile
	sinkRotatingFile
)

// Rotation limits a rotating log file. Zero values use the defaults of
// lumberjack: 100 MB per file, no age or count limit, no compression.
type Rotation struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	LocalTime  bool
}

// Builder configures a new Logger. The last sink method called wins.
type Builder struct {
	settings SettingsPatch

	sink     sinkChoice
	writer   io.Writer
	filePath string
	rotation Rotation

	filter         Filter
	observer       Observer
	bannerTemplate string
}

// NewBuilder returns a builder producing a logger with default settings.
func NewBuilder() *Builder {
	return &Builder{}
}

// Level sets the runtime threshold.
func (b *Builder) Level(level Level) *Builder {
	b.settings.Level = &level
	return b
}

// ColorMode sets the color policy.
func (b *Builder) ColorMode(mode ColorMode) *Builder {
	b.settings.Color = &mode
	return b
}

// ShowTime toggles the timestamp prefix.
func (b *Builder) ShowTime(on bool) *Builder {
	b.settings.ShowTime = &on
	return b
}

// LocalTime switches timestamps to the local zone.
func (b *Builder) LocalTime(on bool) *Builder {
	b.settings.LocalTime = &on
	return b
}

// ShowThreadID toggles the goroutine id prefix.
func (b *Builder) ShowThreadID(on bool) *Builder {
	b.settings.ShowThreadID = &on
	return b
}

// ShowFileLine toggles the file:line prefix.
func (b *Builder) ShowFileLine(on bool) *Builder {
	b.settings.ShowFileLine = &on
	return b
}

// ShowGroup toggles the group tag.
func (b *Builder) ShowGroup(on bool) *Builder {
	b.settings.ShowGroup = &on
	return b
}

// Settings applies every field set in p.
func (b *Builder) Settings(p SettingsPatch) *Builder {
	merge(&b.settings, p)
	return b
}

// Stdout writes to standard output.
func (b *Builder) Stdout() *Builder {
	b.sink, b.writer, b.filePath = sinkStdout, nil, ""
	return b
}

// Stderr writes to standard error.
func (b *Builder) Stderr() *Builder {
	b.sink, b.writer, b.filePath = sinkStderr, nil, ""
	return b
}

// Writer writes to w.
func (b *Builder) Writer(w io.Writer) *Builder {
	b.sink, b.writer, b.filePath = sinkWriter, w, ""
	return b
}

// File appends to the file at path, creating it if needed.
func (b *Builder) File(path string) *Builder {
	b.sink, b.writer, b.filePath = sinkFile, nil, path
	return b
}

// RotatingFile appends to the file at path and rotates it according to r.
// Rotated files are kept next to it with a timestamp in their name.
func (b *Builder) RotatingFile(path string, r Rotation) *Builder {
	b.sink, b.writer, b.filePath, b.rotation = sinkRotatingFile, nil, path, r
	return b
}

// Filter sets the record filter.
func (b *Builder) Filter(f Filter) *Builder {
	b.filter = f
	return b
}

// Observer sets the write observer.
func (b *Builder) Observer(o Observer) *Builder {
	b.observer = o
	return b
}

// BannerTemplate replaces the banner template. Placeholders are {name},
// {version} and {mode}.
func (b *Builder) BannerTemplate(tmpl string) *Builder {
	b.bannerTemplate = tmpl
	return b
}

// Build creates the logger. An explicitly chosen sink is latched at once.
// It fails if the log file cannot be opened or Writer was given nil.
func (b *Builder) Build() (*Logger, error) {
	l := New()
	l.Apply(b.settings)
	l.SetFilter(b.filter)
	l.SetObserver(b.observer)
	l.bannerTemplate = b.bannerTemplate

	switch b.sink {
	case sinkStdout:
		l.SetTarget(TargetStdout)
	case sinkStderr:
		l.SetTarget(TargetStderr)
	case sinkWriter:
		if b.writer == nil {
			return nil, ErrNilWriter
		}
		l.SetWriter(b.writer)
	case sinkFile:
		if err := l.SetFile(b.filePath); err != nil {
			return nil, err
		}
	case sinkRotatingFile:
		lj := &lumberjack.Logger{
			Filename:   b.filePath,
			MaxSize:    b.rotation.MaxSizeMB,
			MaxBackups: b.rotation.MaxBackups,
			MaxAge:     b.rotation.MaxAgeDays,
			Compress:   b.rotation.Compress,
			LocalTime:  b.rotation.LocalTime,
		}
		l.sink.install(lj, lj)
	case sinkDefault:
	}
	return l, nil
}

func merge(dst *SettingsPatch, src SettingsPatch) {
	if src.Level != nil {
		dst.Level = src.Level
	}
	if src.Color != nil {
		dst.Color = src.Color
	}
	if src.ShowTime != nil {
		dst.ShowTime = src.ShowTime
	}
	if src.LocalTime != nil {
		dst.LocalTime = src.LocalTime
	}
	if src.ShowThreadID != nil {
		dst.ShowThreadID = src.ShowThreadID
	}
	if src.ShowFileLine != nil {
		dst.ShowFileLine = src.ShowFileLine
	}
	if src.ShowGroup != nil {
		dst.ShowGroup = src.ShowGroup
	}
}
