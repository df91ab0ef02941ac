// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/milchinskiy/linelog/filter"
)

// ValidationError is one invalid config field.
type ValidationError struct {
	Field   string // key as written in the file, e.g. "state_file"
	Message string
}

// ValidationErrors collects every invalid field of a config.
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "config validation failed with %d error(s):", len(ve))
	for i, err := range ve {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

var (
	validate = newValidator()

	// groupTagRegex matches group tags that render unambiguously inside
	// the "[...]" of a log line.
	groupTagRegex = regexp.MustCompile(`^[A-Za-z0-9_.:/\-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("grouptag", validateGroupTag); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("basename", validateBaseName); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBaseName accepts a plain file name with no directory part.
func validateBaseName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name != "." && name != ".." && filepath.Base(name) == name && !strings.ContainsRune(name, '\\')
}

func validateGroupTag(fl validator.FieldLevel) bool {
	return ValidateGroupTag(fl.Field().String()) == nil
}

// ValidateGroupTag reports whether name can be used as a group tag: letters,
// digits and "_.:/-" only, at most 64 bytes.
func ValidateGroupTag(name string) error {
	if name == "" {
		return errors.New("group tag cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("group tag exceeds maximum length of 64 bytes: %q", name)
	}
	if !groupTagRegex.MatchString(name) {
		return fmt.Errorf("group tag can only contain letters, digits and _.:/-: %q", name)
	}
	return nil
}

// Validate checks every field and returns ValidationErrors listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: fe.Field(), Message: validationMessage(fe)})
		}
	}

	if c.Filter != "" {
		if err := filter.Check(c.Filter); err != nil {
			errs = append(errs, ValidationError{Field: "filter", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "required_if":
		return "is required when target is file and state_file is not set"
	case "excluded_with":
		return "cannot be combined with state_file"
	case "basename":
		return "must be a file name without directories"
	case "grouptag":
		return "must contain only letters, digits and _.:/-"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}
