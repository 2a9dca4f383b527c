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

// Package rules implements the declarative QA pipelines applied to incoming
// datasets before any aggregation runs. A pipeline is an ordered list of
// per-column rules; each rule declares the expected type, an optional fill
// value for missing cells, and an ordered list of assertions. Assertions
// tagged should_fail abort the run; the rest surface as warnings.
package rules

import (
	"fmt"

	"github.com/creatorlake/creatorstats/internal/frame"
)

// CheckKind identifies one assertion predicate. The set is closed; evaluation
// dispatches through a fixed table rather than inspecting values at runtime.
type CheckKind string

const (
	CheckNonNull        CheckKind = "non_null"
	CheckNonNegative    CheckKind = "non_negative"
	CheckNonEmptyString CheckKind = "non_empty_string"
	CheckUnique         CheckKind = "unique"
)

// Valid reports whether k names a known check.
func (k CheckKind) Valid() bool {
	switch k {
	case CheckNonNull, CheckNonNegative, CheckNonEmptyString, CheckUnique:
		return true
	}
	return false
}

// Assertion is a single predicate over a column. ShouldFail controls whether
// a violation aborts the run or is recorded as a warning.
type Assertion struct {
	Check      CheckKind `yaml:"check"`
	ShouldFail bool      `yaml:"should_fail"`
}

// Rule is the per-column specification of a QA pipeline step.
type Rule struct {
	Column     string      `yaml:"column"`
	Type       frame.Type  `yaml:"type"`
	FillNA     any         `yaml:"fill_na,omitempty"`
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Validate checks the rule for structural problems before evaluation.
func (r Rule) Validate() error {
	if r.Column == "" {
		return fmt.Errorf("rule has no column name")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("rule %q: unknown type %q", r.Column, r.Type)
	}
	for _, a := range r.Assertions {
		if !a.Check.Valid() {
			return fmt.Errorf("rule %q: unknown check %q", r.Column, a.Check)
		}
	}
	return nil
}
