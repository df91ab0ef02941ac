// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader implements Reader over a fixed set of values
type MapReader map[string]string

// Getenv returns the value stored under key, or "" if there is none
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// Chain consults each Reader in order and returns the first non-empty value
type Chain []Reader

// Getenv returns the first non-empty value for key
func (c Chain) Getenv(key string) string {
	for _, r := range c {
		if v := r.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// LoadDotenv reads KEY=VALUE files and returns their combined values as a
// MapReader. Values from earlier files win. The process environment is not
// modified; combine the result with OSReader through Chain.
func LoadDotenv(paths ...string) (MapReader, error) {
	out := MapReader{}
	for _, p := range paths {
		vals, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", p, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}
