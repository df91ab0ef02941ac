// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery turns panics into logged errors.
//
// Middleware recovers panics in HTTP handlers, logs them through a
// linelog logger and returns a 500 Internal Server Error response, so a
// single panicking request cannot crash the server. Log does the same for
// plain goroutines.
//
// # Basic Usage
//
//	lg := logger.Default()
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//	http.ListenAndServe(":8080", recovery.Middleware(lg)(mux))
package recovery
