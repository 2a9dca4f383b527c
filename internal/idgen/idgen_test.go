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

package idgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestULIDGeneratorMonotonic(t *testing.T) {
	gen := NewULIDGenerator()
	now := time.Now()

	prev := gen.Make(now)
	for range 100 {
		next := gen.Make(now)
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestUUIDGeneratorUnique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]bool)
	for range 100 {
		id := gen.Make(time.Now())
		assert.Len(t, id, 36)
		assert.False(t, seen[id])
		seen[id] = true
	}
}
