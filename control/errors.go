// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package control

import (
	"errors"
	"net/http"
)

// codedError carries the HTTP status a handler error should produce.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

// withCode wraps err with an HTTP status code. A nil err stays nil.
func withCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return &codedError{err: err, code: code}
}

func badRequest(err error) error {
	return withCode(err, http.StatusBadRequest)
}

// statusCode returns the status carried by err, 500 when there is none.
func statusCode(err error) int {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return http.StatusInternalServerError
}
