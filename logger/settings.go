// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

// Settings is a snapshot of a logger's runtime configuration.
type Settings struct {
	Level        Level     `json:"level" yaml:"level"`
	Color        ColorMode `json:"color" yaml:"color"`
	ShowTime     bool      `json:"show_time" yaml:"show_time"`
	LocalTime    bool      `json:"local_time" yaml:"local_time"`
	ShowThreadID bool      `json:"show_thread_id" yaml:"show_thread_id"`
	ShowFileLine bool      `json:"show_file_line" yaml:"show_file_line"`
	ShowGroup    bool      `json:"show_group" yaml:"show_group"`
	Target       Target    `json:"target" yaml:"target"`
}

// SettingsPatch changes the fields that are non-nil. The target is not
// part of a patch because it can only be chosen once.
type SettingsPatch struct {
	Level        *Level     `json:"level,omitempty" yaml:"level,omitempty"`
	Color        *ColorMode `json:"color,omitempty" yaml:"color,omitempty"`
	ShowTime     *bool      `json:"show_time,omitempty" yaml:"show_time,omitempty"`
	LocalTime    *bool      `json:"local_time,omitempty" yaml:"local_time,omitempty"`
	ShowThreadID *bool      `json:"show_thread_id,omitempty" yaml:"show_thread_id,omitempty"`
	ShowFileLine *bool      `json:"show_file_line,omitempty" yaml:"show_file_line,omitempty"`
	ShowGroup    *bool      `json:"show_group,omitempty" yaml:"show_group,omitempty"`
}

// Settings returns the current configuration. Fields are read one by one,
// so a concurrent update may be only partly reflected.
func (l *Logger) Settings() Settings {
	return Settings{
		Level:        l.Level(),
		Color:        l.ColorMode(),
		ShowTime:     l.showTime.Load(),
		LocalTime:    l.localTime.Load(),
		ShowThreadID: l.showThreadID.Load(),
		ShowFileLine: l.showFileLine.Load(),
		ShowGroup:    l.showGroup.Load(),
		Target:       l.Target(),
	}
}

// Apply stores every field set in p.
func (l *Logger) Apply(p SettingsPatch) {
	if p.Level != nil {
		l.SetLevel(*p.Level)
	}
	if p.Color != nil {
		l.SetColorMode(*p.Color)
	}
	if p.ShowTime != nil {
		l.SetShowTime(*p.ShowTime)
	}
	if p.LocalTime != nil {
		l.SetLocalTime(*p.LocalTime)
	}
	if p.ShowThreadID != nil {
		l.SetShowThreadID(*p.ShowThreadID)
	}
	if p.ShowFileLine != nil {
		l.SetShowFileLine(*p.ShowFileLine)
	}
	if p.ShowGroup != nil {
		l.SetShowGroup(*p.ShowGroup)
	}
}
