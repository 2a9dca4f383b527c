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

import (
	"errors"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/creatorlake/creatorstats/internal/frame"
)

// checkFunc counts violating rows in a coerced column. Missing cells are
// skipped; null handling belongs to coercion, not the predicate.
type checkFunc func(col []any) int

// checkTable is the fixed dispatch table for the closed assertion set.
var checkTable = map[CheckKind]checkFunc{
	CheckNonNull:        countNulls,
	CheckNonNegative:    countNegatives,
	CheckNonEmptyString: countEmptyStrings,
	CheckUnique:         countDuplicates,
}

// Evaluate runs one QA pipeline against ds and returns a validated copy.
// The input dataset is never mutated. Rules run in order; within a rule the
// column is coerced first (missing cells replaced by the configured fill
// value), then assertions run in order. A should_fail violation aborts with
// *ValidationError; other violations are collected as warnings. A column
// absent from the dataset, a non-fillable null, or an uncoercible cell is a
// *SchemaError regardless of should_fail.
func Evaluate(dataset string, ds *frame.Dataset, pipeline []Rule) (*frame.Dataset, []Warning, error) {
	out := ds.Clone()
	var warnings []Warning

	for _, rule := range pipeline {
		if err := rule.Validate(); err != nil {
			return nil, warnings, err
		}
		if !out.HasColumn(rule.Column) {
			return nil, warnings, &SchemaError{
				Dataset: dataset,
				Column:  rule.Column,
				Reason:  "column not present in dataset",
			}
		}

		if err := coerceColumn(dataset, out, rule); err != nil {
			return nil, warnings, err
		}

		col := out.Column(rule.Column)
		for _, assertion := range rule.Assertions {
			violations := checkTable[assertion.Check](col)
			if violations == 0 {
				continue
			}
			if assertion.ShouldFail {
				return nil, warnings, &ValidationError{
					Dataset:    dataset,
					Column:     rule.Column,
					Check:      assertion.Check,
					Violations: violations,
				}
			}
			warnings = append(warnings, Warning{
				Dataset:    dataset,
				Column:     rule.Column,
				Check:      assertion.Check,
				Violations: violations,
			})
		}
	}
	return out, warnings, nil
}

// coerceColumn converts every cell of the rule's column in place, applying
// the fill value to missing cells. The fill value itself must coerce to the
// declared type.
func coerceColumn(dataset string, ds *frame.Dataset, rule Rule) error {
	var fill any
	if rule.FillNA != nil {
		v, err := frame.Coerce(rule.Type, rule.FillNA)
		if err != nil || v == nil {
			return &SchemaError{
				Dataset: dataset,
				Column:  rule.Column,
				Reason:  "fill value does not match declared type",
				Err:     err,
			}
		}
		fill = v
	}

	for _, row := range ds.Rows {
		v, err := frame.Coerce(rule.Type, row[rule.Column])
		if err != nil {
			var convErr *frame.ConversionError
			if errors.As(err, &convErr) {
				return &SchemaError{
					Dataset: dataset,
					Column:  rule.Column,
					Reason:  "cell does not match declared type",
					Err:     err,
				}
			}
			return err
		}
		if v == nil {
			if fill == nil {
				return &SchemaError{
					Dataset: dataset,
					Column:  rule.Column,
					Reason:  "column contains nulls and no fill value is configured",
				}
			}
			v = fill
		}
		row[rule.Column] = v
	}
	return nil
}

func countNulls(col []any) int {
	n := 0
	for _, v := range col {
		if v == nil {
			n++
		}
	}
	return n
}

func countNegatives(col []any) int {
	n := 0
	for _, v := range col {
		if x, ok := v.(int64); ok && x < 0 {
			n++
		}
	}
	return n
}

func countEmptyStrings(col []any) int {
	n := 0
	for _, v := range col {
		if s, ok := v.(string); ok && s == "" {
			n++
		}
	}
	return n
}

func countDuplicates(col []any) int {
	seen := mapset.NewThreadUnsafeSet[any]()
	n := 0
	for _, v := range col {
		if v == nil {
			continue
		}
		if !seen.Add(v) {
			n++
		}
	}
	return n
}
