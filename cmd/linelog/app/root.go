// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app holds the linelog command tree.
package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milchinskiy/linelog/config"
	"github.com/milchinskiy/linelog/env"
	"github.com/milchinskiy/linelog/logger"
)

// ExitError makes the process exit with Code without printing anything.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

type options struct {
	configPath   string
	envFiles     []string
	level        string
	color        string
	target       string
	file         string
	group        string
	showTime     bool
	localTime    bool
	showTID      bool
	showFileLine bool

	// logWriter replaces the output target when set.
	logWriter io.Writer
}

// NewRootCmd returns the linelog command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "linelog",
		Short: "Write leveled log lines from scripts",
		Long: `linelog writes single-line log records in the form

  <time> LEVEL [tid] <file:line> [group] message

Settings are taken from a config file, then LINELOG_* environment
variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.StringSliceVar(&o.envFiles, "env-file", nil, "dotenv files to read LINELOG_* variables from")
	flags.StringVarP(&o.level, "level", "l", "", "minimum level: trace|debug|info|warn|error|fatal")
	flags.StringVar(&o.color, "color", "", "color mode: auto|always|never")
	flags.StringVar(&o.target, "target", "", "output target: stdout|stderr")
	flags.StringVarP(&o.file, "file", "f", "", "append to this file instead of a stream")
	flags.StringVarP(&o.group, "group", "g", "", "group tag for every line")
	flags.BoolVar(&o.showTime, "time", false, "prefix lines with a timestamp")
	flags.BoolVar(&o.localTime, "local-time", false, "use local time instead of UTC")
	flags.BoolVar(&o.showTID, "tid", false, "prefix lines with the goroutine id")
	flags.BoolVar(&o.showFileLine, "file-line", false, "prefix lines with the caller file:line")
	root.MarkFlagsMutuallyExclusive("target", "file")

	root.AddCommand(
		newLogCmd(o),
		newPipeCmd(o),
		newTimeCmd(o),
		newServeCmd(o),
		newBannerCmd(o),
	)
	return root
}

// newLogger builds a logger from the config file, the environment and the
// flags, in that order of precedence. configure may add to the builder
// before the logger is built.
func (o *options) newLogger(cmd *cobra.Command, configure func(*logger.Builder)) (*logger.Logger, string, error) {
	b := logger.NewBuilder()
	group := ""
	if o.configPath != "" {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return nil, "", err
		}
		if b, err = cfg.Builder(); err != nil {
			return nil, "", err
		}
		group = cfg.Group
	}

	switch {
	case o.logWriter != nil:
		b.Writer(o.logWriter)
	case o.file != "":
		b.File(o.file)
	case o.target != "":
		t, err := logger.ParseTarget(o.target)
		if err != nil {
			return nil, "", err
		}
		switch t {
		case logger.TargetStdout:
			b.Stdout()
		case logger.TargetStderr:
			b.Stderr()
		case logger.TargetWriter:
			return nil, "", fmt.Errorf("target %q needs --file", o.target)
		}
	}
	if configure != nil {
		configure(b)
	}

	lg, err := b.Build()
	if err != nil {
		return nil, "", err
	}

	reader, err := o.envReader()
	if err != nil {
		return nil, "", err
	}
	lg.ApplyEnv(reader)

	patch, err := o.flagPatch(cmd)
	if err != nil {
		return nil, "", err
	}
	lg.Apply(patch)

	if o.group != "" {
		group = o.group
	}
	return lg, group, nil
}

func (o *options) envReader() (env.Reader, error) {
	if len(o.envFiles) == 0 {
		return &env.OSReader{}, nil
	}
	files, err := env.LoadDotenv(o.envFiles...)
	if err != nil {
		return nil, err
	}
	return env.Chain{&env.OSReader{}, files}, nil
}

// flagPatch holds only the flags given on the command line.
func (o *options) flagPatch(cmd *cobra.Command) (logger.SettingsPatch, error) {
	var p logger.SettingsPatch
	if o.level != "" {
		level, err := logger.ParseLevel(o.level)
		if err != nil {
			return p, err
		}
		p.Level = &level
	}
	if o.color != "" {
		mode, err := logger.ParseColorMode(o.color)
		if err != nil {
			return p, err
		}
		p.Color = &mode
	}
	flags := cmd.Flags()
	if flags.Changed("time") {
		p.ShowTime = &o.showTime
	}
	if flags.Changed("local-time") {
		p.LocalTime = &o.localTime
	}
	if flags.Changed("tid") {
		p.ShowThreadID = &o.showTID
	}
	if flags.Changed("file-line") {
		p.ShowFileLine = &o.showFileLine
	}
	return p, nil
}
