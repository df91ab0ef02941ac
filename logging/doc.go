// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging connects the standard structured logging front-ends to a
linelog logger.

NewHandler and New adapt [log/slog]; NewLogr adapts [github.com/go-logr/logr].
Both render structured fields after the message as " key=value" pairs and
use the linelog group tag for slog groups and logr names. Level gating,
output target and prefix layout stay with the wrapped logger.

# Basic Usage

	lg := logger.Default()
	slogger := logging.New(lg)
	slogger.WithGroup("http").Info("request", "method", "GET", "status", 200)
	// INFO  [http] request method=GET status=200

	logrLogger := logging.NewLogr(lg).WithName("controller")
	logrLogger.V(1).Info("reconciling", "object", "default/app")
	// DEBUG [controller] reconciling object=default/app

# Levels

slog levels map to the nearest linelog level at or below them, with
LevelTrace and LevelFatal covering the two linelog levels slog has no
constant for. logr verbosity 0 is Info, 1 is Debug and anything higher
is Trace.

# Attributes

String values are quoted when empty or when they contain spaces, quotes
or '='. Times use [time.RFC3339]. Use WithReplaceAttr to rewrite or drop
attributes before rendering.
*/
package logging
