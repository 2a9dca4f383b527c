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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleSet pairs the two QA pipelines one run needs.
type RuleSet struct {
	Creators []Rule `yaml:"creators"`
	Videos   []Rule `yaml:"videos"`
}

// LoadFile reads a rule-set YAML file. Integer fill values arrive from the
// YAML decoder as int and are normalized during coercion; every rule is
// structurally validated before the set is returned.
func LoadFile(filename string) (*RuleSet, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set from file %s: %w", filename, err)
	}
	return loadFromContents(filename, contents)
}

func loadFromContents(filename string, contents []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(contents, &rs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule set from file %s: %w", filename, err)
	}
	for _, pipeline := range [][]Rule{rs.Creators, rs.Videos} {
		for _, rule := range pipeline {
			if err := rule.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
		}
	}
	return &rs, nil
}
