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

import (
	"fmt"
	"path/filepath"
	"time"
)

// Partition layout, relative to the output root. These templates are part of
// the output contract downstream consumers depend on; changing them requires
// a version bump of that contract.
const (
	statsDir    = "creator_stats"
	creatorsDir = "creators"
	videosDir   = "videos"
	fileExt     = ".parquet"
)

// StatsPath returns creator_stats/{date}.parquet.
func StatsPath(date time.Time) string {
	return filepath.Join(statsDir, date.Format(time.DateOnly)+fileExt)
}

// CreatorsPath returns creators/{date}.parquet.
func CreatorsPath(date time.Time) string {
	return filepath.Join(creatorsDir, date.Format(time.DateOnly)+fileExt)
}

// VideoPartitionPath returns videos/creator_id={creator_id}/{date}.parquet,
// the hive-style per-creator partition.
func VideoPartitionPath(creatorID int64, date time.Time) string {
	return filepath.Join(videosDir,
		fmt.Sprintf("creator_id=%d", creatorID),
		date.Format(time.DateOnly)+fileExt)
}
