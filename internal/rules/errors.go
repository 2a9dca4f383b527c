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

package rules

import "fmt"

// SchemaError reports a column that is missing entirely or whose cells cannot
// be coerced to the declared type. Always fatal, regardless of should_fail.
type SchemaError struct {
	Dataset string
	Column  string
	Reason  string
	Err     error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%s: column %q: %s", e.Dataset, e.Column, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ValidationError reports a should_fail assertion violation. It halts the run
// before any output is written.
type ValidationError struct {
	Dataset    string
	Column     string
	Check      CheckKind
	Violations int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: column %q failed %s check (%d violating rows)",
		e.Dataset, e.Column, e.Check, e.Violations)
}

// Warning is the non-fatal counterpart of ValidationError. Warnings are
// collected and returned to the caller alongside the validated dataset.
type Warning struct {
	Dataset    string
	Column     string
	Check      CheckKind
	Violations int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: column %q violated %s check (%d rows)",
		w.Dataset, w.Column, w.Check, w.Violations)
}
