// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/milchinskiy/linelog/logger"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length for a filter expression.
	DefaultMaxExpressionLength = 4096

	// DefaultCostLimit is the default runtime cost limit for one evaluation.
	// Filters run on every emitted line, so the budget is kept small.
	DefaultCostLimit = 10000
)

// Variables available to filter expressions.
const (
	VarLevel     = "level"
	VarLevelName = "level_name"
	VarGroup     = "group"
	VarFile      = "file"
	VarLine      = "line"
	VarMessage   = "message"
)

// sharedEnv holds the lazily-initialized CEL environment used by every filter.
var sharedEnv struct {
	once sync.Once
	env  *cel.Env
	err  error
}

func recordEnv() (*cel.Env, error) {
	sharedEnv.once.Do(func() {
		sharedEnv.env, sharedEnv.err = cel.NewEnv(
			cel.Variable(VarLevel, cel.IntType),
			cel.Variable(VarLevelName, cel.StringType),
			cel.Variable(VarGroup, cel.StringType),
			cel.Variable(VarFile, cel.StringType),
			cel.Variable(VarLine, cel.IntType),
			cel.Variable(VarMessage, cel.StringType),
		)
	})
	return sharedEnv.env, sharedEnv.err
}

// Option configures Compile.
type Option func(*options)

type options struct {
	maxLength int
	costLimit uint64
	onError   func(error)
}

// WithMaxExpressionLength rejects longer expressions at compile time.
func WithMaxExpressionLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// WithCostLimit sets the runtime cost limit for a single evaluation.
func WithCostLimit(limit uint64) Option {
	return func(o *options) { o.costLimit = limit }
}

// WithErrorHandler receives evaluation errors. The record is still allowed.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// Filter is a compiled boolean expression over log records. It implements
// logger.Filter and is safe for concurrent use.
type Filter struct {
	source  string
	program cel.Program
	onError func(error)
}

var _ logger.Filter = (*Filter)(nil)

// Compile parses, type-checks and plans expr. The expression must be of
// type bool, for example:
//
//	level >= 3 && group == "net"
//	!message.contains("heartbeat")
//
// Rejected expressions return a *CompileError whose Stage tells syntax,
// type and non-boolean result errors apart.
func Compile(expr string, opts ...Option) (*Filter, error) {
	o := options{maxLength: DefaultMaxExpressionLength, costLimit: DefaultCostLimit}
	for _, opt := range opts {
		opt(&o)
	}

	ast, err := check(expr, o.maxLength)
	if err != nil {
		return nil, err
	}

	env, err := recordEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}
	program, err := env.Program(ast, cel.CostLimit(o.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expr, err)
	}

	return &Filter{source: expr, program: program, onError: o.onError}, nil
}

// Check validates expr without building a program. It is meant for
// configuration validation.
func Check(expr string) error {
	_, err := check(expr, DefaultMaxExpressionLength)
	return err
}

func check(expr string, maxLength int) (*cel.Ast, error) {
	if len(expr) > maxLength {
		return nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), maxLength)
	}

	env, err := recordEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get CEL environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, newCompileError(StageSyntax, expr, issues)
	}
	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, newCompileError(StageType, expr, issues)
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, &CompileError{Stage: StageResult, Expr: expr, Issues: []Issue{{
			Line:    1,
			Column:  1,
			Message: fmt.Sprintf("expression has type %s, want bool", checked.OutputType()),
		}}}
	}
	return checked, nil
}

// Source returns the expression the filter was compiled from.
func (f *Filter) Source() string {
	return f.source
}

// Evaluate runs the expression against rec.
func (f *Filter) Evaluate(rec logger.Record) (bool, error) {
	out, _, err := f.program.Eval(activation(rec))
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidResult, out.Value())
	}
	return allowed, nil
}

// Allow implements logger.Filter. Records for which evaluation fails are
// allowed.
func (f *Filter) Allow(rec logger.Record) bool {
	allowed, err := f.Evaluate(rec)
	if err != nil {
		if f.onError != nil {
			f.onError(err)
		}
		return true
	}
	return allowed
}

func activation(rec logger.Record) map[string]any {
	return map[string]any{
		VarLevel:     int64(rec.Level),
		VarLevelName: strings.ToLower(rec.Level.String()),
		VarGroup:     rec.Group,
		VarFile:      rec.File,
		VarLine:      int64(rec.Line),
		VarMessage:   rec.Message,
	}
}
