// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is a declared column type a rule can coerce to.
type Type string

const (
	TypeInt64  Type = "int64"
	TypeString Type = "string"
)

// Valid reports whether t is a known column type.
func (t Type) Valid() bool {
	return t == TypeInt64 || t == TypeString
}

// ConversionError reports a cell that could not be coerced to the declared
// type. It carries the raw value so callers can classify malformed input.
type ConversionError struct {
	Type  Type
	Value any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %T value %v to %s", e.Value, e.Value, e.Type)
}

// Coerce converts v to the declared type. nil passes through unchanged so the
// caller can apply fill-value handling; everything else either converts cleanly
// or returns a *ConversionError.
func Coerce(t Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case TypeInt64:
		return coerceInt64(v)
	case TypeString:
		return coerceString(v)
	default:
		return nil, fmt.Errorf("unknown column type %q", t)
	}
}

func coerceInt64(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float64:
		// Accept floats only when they carry an integral value.
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, &ConversionError{Type: TypeInt64, Value: v}
		}
		return int64(x), nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &ConversionError{Type: TypeInt64, Value: v}
		}
		return n, nil
	default:
		return nil, &ConversionError{Type: TypeInt64, Value: v}
	}
}

func coerceString(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	default:
		return nil, &ConversionError{Type: TypeString, Value: v}
	}
}
