// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"log/slog"
	"runtime"
	"strconv"
	"strings"
)

// Log takes the given error and logs it if it is non-nil.
// It returns the error so that it can be used in a return
// statement. The logging is done through [log/slog], with
// information about the caller attached.
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + callerInfo(2))
	}
	return err
}

// Log1 is a version of [Log] for functions that return a
// value and an error. It logs the error if it is non-nil and
// returns the value.
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + callerInfo(2))
	}
	return v
}

// callerInfo is [CallerInfo] with a configurable number of frames to skip.
func callerInfo(skip int) string {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	name := ""
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = fn.Name()
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
	}
	return file + ":" + strconv.Itoa(line) + ":" + name
}
