// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for filter compilation and evaluation.
var (
	// ErrExpressionCheck is returned when an expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("filter expression check failed")

	// ErrEvaluation is returned when evaluating an expression fails.
	ErrEvaluation = errors.New("filter expression evaluation failed")

	// ErrInvalidResult is returned when an expression is not boolean.
	ErrInvalidResult = errors.New("filter expression is not boolean")
)

// Stage is the compilation step that rejected an expression.
type Stage string

const (
	// StageSyntax rejects expressions that do not parse.
	StageSyntax Stage = "syntax"
	// StageType rejects expressions using unknown variables or mismatched types.
	StageType Stage = "type"
	// StageResult rejects well-typed expressions that do not yield a bool.
	StageResult Stage = "result"
)

// Issue is one problem at a 1-based line and column of the expression.
type Issue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// String returns "line:column: message".
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Message)
}

// CompileError reports an expression rejected by Compile or Check. It
// matches ErrInvalidResult for StageResult and ErrExpressionCheck otherwise.
type CompileError struct {
	Stage  Stage   `json:"stage"`
	Expr   string  `json:"expr"`
	Issues []Issue `json:"issues"`
}

// Error reports the first issue with its position, e.g.
// `filter type error at 1:1: undeclared reference to 'severity'`.
func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "filter %s error", e.Stage)
	if len(e.Issues) == 0 {
		fmt.Fprintf(&b, " in %q", e.Expr)
		return b.String()
	}
	fmt.Fprintf(&b, " at %s", e.Issues[0])
	if n := len(e.Issues) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %d more)", n)
	}
	return b.String()
}

// Unwrap returns the sentinel for the stage.
func (e *CompileError) Unwrap() error {
	if e.Stage == StageResult {
		return ErrInvalidResult
	}
	return ErrExpressionCheck
}

// newCompileError converts CEL issues. CEL columns are 0-based.
func newCompileError(stage Stage, expr string, issues *cel.Issues) *CompileError {
	e := &CompileError{Stage: stage, Expr: expr}
	for _, ce := range issues.Errors() {
		e.Issues = append(e.Issues, Issue{
			Line:    ce.Location.Line(),
			Column:  ce.Location.Column() + 1,
			Message: strings.TrimPrefix(ce.Message, "Syntax error: "),
		})
	}
	return e
}
