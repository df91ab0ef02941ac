// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filter selects log lines with CEL expressions.

A filter sees each record that already passed level gating through these
variables:

	level       int     0 (trace) to 5 (fatal)
	level_name  string  "trace" ... "fatal"
	group       string  group tag, "" when none
	file        string  "dir/file.go" of the call site
	line        int     line of the call site
	message     string  the formatted message

Example:

	f, err := filter.Compile(`level >= 3 || group == "net"`)
	if err != nil {
	    return err
	}
	lg.SetFilter(f)

Rejected expressions are returned as *CompileError, which names the stage
(syntax, type or result) and lists issues with 1-based line and column:

	filter type error at 1:1: undeclared reference to 'severity' (in container '')

Syntax and type errors match ErrExpressionCheck, non-boolean expressions
match ErrInvalidResult. A runtime evaluation error lets the line through.

Evaluation cost is bounded with WithCostLimit and expression size with
WithMaxExpressionLength.
*/
package filter
