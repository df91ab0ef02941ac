// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logger is a small leveled line logger.

Each line has a fixed-order prefix followed by the message:

	2025-01-02 03:04:05.678Z INFO  [17] <cmd/main.go:42> [net] connected

Only the level tag is always present. The timestamp, goroutine id,
file:line and group tag are switched on and off per logger.

# Levels

Levels are ordered Trace < Debug < Info < Warn < Error < Fatal. A line is
written when its level passes both the build-time floor (CompileFloor,
Info when built with -tags linelog_release, Trace otherwise) and the
logger's runtime threshold. Fatal never exits the process.

# Instances

The package-level functions use a process-wide default logger. Independent
loggers are created with New or NewBuilder:

	lg, err := logger.NewBuilder().
		Level(logger.LevelDebug).
		ShowTime(true).
		File("/var/log/app.log").
		Build()

RotatingFile does the same with size and age based rotation.

The output target and the custom writer of a logger can each be chosen
once; later choices are ignored. Until a target is chosen lines go to
standard error.

# Environment

InitFromEnv reads LINELOG_LEVEL, LINELOG_COLOR, LINELOG_SHOW_TID and
LINELOG_SHOW_TIME into the default logger.

# Timing

	defer logger.StartTimer("load").Stop()

logs "took 1.234 ms" with the label as group tag when the scope ends.
*/
package logger
