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

// Package idgen generates the identifiers one batch run needs: a run ID for
// log correlation and unique suffixes for staged temp files.
package idgen

import (
	crand "crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces unique string identifiers.
type IDGenerator interface {
	Make(t time.Time) string
}

// ULIDGenerator produces monotonic ULIDs, sortable within a process.
type ULIDGenerator struct {
	entropy *ulid.MonotonicEntropy
}

var _ IDGenerator = (*ULIDGenerator)(nil)

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(crand.Reader, 0),
	}
}

func (u *ULIDGenerator) Make(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), u.entropy).String()
}

// UUIDGenerator produces random UUIDv4 strings, used for run IDs.
type UUIDGenerator struct{}

var _ IDGenerator = (*UUIDGenerator)(nil)

func (UUIDGenerator) Make(_ time.Time) string {
	return uuid.NewString()
}
