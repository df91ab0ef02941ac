// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milchinskiy/linelog/logger"
)

// maxLineBytes bounds one line read by pipe.
const maxLineBytes = 1 << 20

// source is a file:line call site given by a script, such as
// "$BASH_SOURCE:$LINENO".
type source struct {
	file string
	line int
}

func parseSource(s string) (source, error) {
	if s == "" {
		return source{file: "-"}, nil
	}
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return source{file: s}, nil
	}
	line, err := strconv.Atoi(s[i+1:])
	if err != nil || line < 0 {
		return source{}, fmt.Errorf("invalid source %q: want file:line", s)
	}
	return source{file: logger.TrimPath(s[:i]), line: line}, nil
}

func newLogCmd(o *options) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "log LEVEL MESSAGE...",
		Short: "Write one line at LEVEL",
		Example: `  linelog log info "backup started"
  linelog -g db log --at "$BASH_SOURCE:$LINENO" warn "slow query"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(args[0])
			if err != nil {
				return err
			}
			src, err := parseSource(at)
			if err != nil {
				return err
			}
			lg, group, err := o.newLogger(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Close() }()

			lg.Emit(level, group, src.file, src.line, strings.Join(args[1:], " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "call site shown with --file-line, as file:line")
	return cmd
}

func newPipeCmd(o *options) *cobra.Command {
	var levelName string
	cmd := &cobra.Command{
		Use:   "pipe",
		Short: "Write every line of standard input as a log line",
		Example: `  make 2>&1 | linelog -g build pipe --as debug`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logger.ParseLevel(levelName)
			if err != nil {
				return err
			}
			lg, group, err := o.newLogger(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Close() }()

			return pipeLines(cmd.InOrStdin(), lg, level, group)
		},
	}
	cmd.Flags().StringVar(&levelName, "as", "info", "level of every line")
	return cmd
}

// pipeLines logs every line of r until EOF.
func pipeLines(r io.Reader, lg *logger.Logger, level logger.Level, group string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	for scanner.Scan() {
		lg.Emit(level, group, "stdin", 0, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}
	return nil
}

func newBannerCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "banner [NAME [VERSION]]",
		Short: "Write a startup banner line",
		Long: `Write "NAME vVERSION (MODE)" without any prefix. MODE is "debug" or
"release" depending on how linelog was built. Missing values come from
the binary's build info.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, _, err := o.newLogger(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Close() }()

			var name, version string
			if len(args) > 0 {
				name = args[0]
			}
			if len(args) > 1 {
				version = strings.TrimPrefix(args[1], "v")
			}
			lg.Banner(name, version)
			return nil
		},
	}
}
