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

package statswriter

// Config contains the options for creating a Writer.
type Config struct {
	// OutputRoot is the directory the partition trees are created under.
	OutputRoot string
}

// Validate checks that the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.OutputRoot == "" {
		return &ConfigError{Field: "OutputRoot", Message: "cannot be empty"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "statswriter config: " + e.Field + " " + e.Message
}
