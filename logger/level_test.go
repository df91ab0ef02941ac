// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" Info ", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"Error", LevelError, false},
		{"fatal", LevelFatal, false},
		{"warning", LevelInfo, true},
		{"", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidLevel)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, "level", perr.Kind)
			assert.Equal(t, tt.input, perr.Text)
		})
	}
}

func TestLevelOrderingAndNames(t *testing.T) {
	t.Parallel()

	assert.Less(t, LevelTrace, LevelDebug)
	assert.Less(t, LevelDebug, LevelInfo)
	assert.Less(t, LevelInfo, LevelWarn)
	assert.Less(t, LevelWarn, LevelError)
	assert.Less(t, LevelError, LevelFatal)

	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "WARN ", LevelWarn.tag())
	assert.Equal(t, "LEVEL(9)", Level(9).String())
	for l := LevelTrace; l <= LevelFatal; l++ {
		assert.Len(t, l.tag(), 5, l.String())
	}
}

func TestLevelText(t *testing.T) {
	t.Parallel()

	text, err := LevelError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))

	var l Level
	require.NoError(t, l.UnmarshalText([]byte("TRACE")))
	assert.Equal(t, LevelTrace, l)

	require.ErrorIs(t, l.UnmarshalText([]byte("loud")), ErrInvalidLevel)
	assert.Equal(t, LevelTrace, l, "failed unmarshal keeps the previous value")

	_, err = Level(42).MarshalText()
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ColorMode
		wantErr bool
	}{
		{"always", ColorAlways, false},
		{"ALWAYS", ColorAlways, false},
		{"Never", ColorNever, false},
		{"auto", ColorAuto, false},
		{"", ColorAuto, false},
		{"sometimes", ColorAuto, true},
		{" always", ColorAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseColorMode(tt.input)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidColorMode)
				assert.Contains(t, err.Error(), tt.input)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseTarget(t *testing.T) {
	t.Parallel()

	got, err := ParseTarget("STDOUT")
	require.NoError(t, err)
	assert.Equal(t, TargetStdout, got)

	var target Target
	require.NoError(t, target.UnmarshalText([]byte("writer")))
	assert.Equal(t, TargetWriter, target)

	_, err = ParseTarget("syslog")
	require.ErrorIs(t, err, ErrInvalidTarget)

	text, err := TargetStderr.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stderr", string(text))
}

func TestStaticEnabled(t *testing.T) {
	t.Parallel()

	for l := LevelTrace; l <= LevelFatal; l++ {
		assert.Equal(t, l >= CompileFloor, StaticEnabled(l), l.String())
	}
	assert.True(t, StaticEnabled(LevelInfo), "info and above always survive compilation")
	assert.Contains(t, []string{"debug", "release"}, BuildMode())
}
