// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corebind/corebind/base/reflectx"
)

// normalizeFormat normalizes a binding's string-format declaration:
// blank means none, and a format lacking a placeholder token is
// wrapped as "{0:<format>}".
func normalizeFormat(f string) string {
	if strings.TrimSpace(f) == "" {
		return ""
	}
	if !strings.Contains(f, "{") {
		return "{0:" + f + "}"
	}
	return f
}

// formatValue renders the value with a composite format string
// containing a single "{0}" or "{0:spec}" placeholder surrounded by
// literal text. The spec is a letter plus optional precision in the
// F/N/E/G/D/X/P family; a spec containing a %-verb is handed to
// fmt.Sprintf; anything else falls back on [reflectx.ToString].
func formatValue(format string, value any) string {
	open := strings.Index(format, "{0")
	if open < 0 {
		return format
	}
	end := strings.Index(format[open:], "}")
	if end < 0 {
		return format
	}
	end += open
	spec := ""
	if inner := format[open+2 : end]; strings.HasPrefix(inner, ":") {
		spec = inner[1:]
	}
	return format[:open] + applyFormatSpec(spec, value) + format[end+1:]
}

func applyFormatSpec(spec string, value any) string {
	if value == nil { // nil formats as empty, not "nil"
		return ""
	}
	if spec == "" {
		return reflectx.ToString(value)
	}
	if strings.Contains(spec, "%") {
		return fmt.Sprintf(spec, value)
	}
	letter := spec[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	prec := -1
	if len(spec) > 1 {
		p, err := strconv.Atoi(spec[1:])
		if err != nil {
			return reflectx.ToString(value)
		}
		prec = p
	}
	switch letter {
	case 'F', 'N':
		f, err := reflectx.ToFloat(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		if prec < 0 {
			prec = 2
		}
		return strconv.FormatFloat(f, 'f', prec, 64)
	case 'E':
		f, err := reflectx.ToFloat(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		if prec < 0 {
			prec = 6
		}
		return strconv.FormatFloat(f, 'e', prec, 64)
	case 'G':
		f, err := reflectx.ToFloat(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		return strconv.FormatFloat(f, 'g', prec, 64)
	case 'D':
		i, err := reflectx.ToInt(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		if prec > 0 {
			return fmt.Sprintf("%0*d", prec, i)
		}
		return strconv.FormatInt(i, 10)
	case 'X':
		i, err := reflectx.ToInt(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		if prec > 0 {
			return fmt.Sprintf("%0*X", prec, i)
		}
		return fmt.Sprintf("%X", i)
	case 'P':
		f, err := reflectx.ToFloat(value)
		if err != nil {
			return reflectx.ToString(value)
		}
		if prec < 0 {
			prec = 2
		}
		return strconv.FormatFloat(f*100, 'f', prec, 64) + "%"
	}
	return reflectx.ToString(value)
}
