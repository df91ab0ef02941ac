// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newTimeCmd(o *options) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "time [--label LABEL] -- COMMAND [ARG...]",
		Short: "Run a command and log how long it took",
		Long: `Run COMMAND with the given arguments and write "took <duration>" at
info level when it exits. The exit status of COMMAND is passed through.`,
		Example: `  linelog time --label backup -- rsync -a src/ dst/`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lg, group, err := o.newLogger(cmd, nil)
			if err != nil {
				return err
			}
			defer func() { _ = lg.Close() }()

			if label == "" {
				label = group
			}
			if label == "" {
				label = filepath.Base(args[0])
			}

			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...) //nolint:gosec // running the user's command is the point
			child.Stdin = cmd.InOrStdin()
			child.Stdout = cmd.OutOrStdout()
			child.Stderr = cmd.ErrOrStderr()

			err = lg.TimeErr(label, child.Run)
			if err == nil {
				return nil
			}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				lg.Group(label).Errorf("%s exited with status %d", args[0], exitErr.ExitCode())
				code := exitErr.ExitCode()
				if code < 0 {
					code = 1
				}
				return &ExitError{Code: code}
			}
			return fmt.Errorf("failed to run %s: %w", args[0], err)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "group tag of the timing line (default: --group or the command name)")
	return cmd
}
