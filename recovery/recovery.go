// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/milchinskiy/linelog/logger"
)

// Group is the group tag of panic reports.
const Group = "panic"

// Middleware returns HTTP middleware that recovers from panics, logs the
// panic value and stack trace at Error level through lg and answers
// 500 Internal Server Error. http.ErrAbortHandler is re-raised so the
// server can abort the response as usual.
func Middleware(lg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}
				lg.Group(Group).Errorf("%s %s: %v\n%s", r.Method, r.URL.Path, v, debug.Stack())
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Log recovers a panic in the calling goroutine and logs it with its stack
// trace at Error level under group. It must be deferred directly:
//
//	go func() {
//		defer recovery.Log(lg, "worker")
//		work()
//	}()
func Log(lg *logger.Logger, group string) {
	v := recover()
	if v == nil {
		return
	}
	if group == "" {
		group = Group
	}
	lg.Group(group).Errorf("recovered: %v\n%s", v, debug.Stack())
}
