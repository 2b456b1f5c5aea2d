// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors provides a set of basic error handling functions,
// including a complete drop-in replacement of the standard library
// errors package, plus functions for logging errors and handling the
// common pattern of a value and an error return.
package errors

import (
	"errors"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target,
// and if one is found, sets target to that error value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Unwrap returns the result of calling the Unwrap method on err,
// if err's type contains an Unwrap method returning error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Must panics if the given error is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns the given value and panics if the given error is non-nil.
func Must1[T any](v T, err error) T {
	Must(err)
	return v
}

// Ignore1 returns the given value, ignoring any error.
// It is useful for cases where the error is either impossible
// or not important.
func Ignore1[T any](v T, err error) T {
	return v
}

// CallerInfo returns string information about the caller of the
// function that called CallerInfo, of the form file:line:function.
func CallerInfo() string {
	return callerInfo(2)
}
