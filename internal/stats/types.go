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

package stats

import (
	"fmt"
	"time"

	"github.com/creatorlake/creatorstats/internal/frame"
)

// Creator is one validated creator profile row.
type Creator struct {
	CreatorID     int64  `parquet:"creator_id"`
	Username      string `parquet:"username"`
	FollowerCount int64  `parquet:"follower_count"`
	AvgViews      int64  `parquet:"avg_views"`
	Category      string `parquet:"category"`
	Bio           string `parquet:"bio"`
}

// Video is one validated video record row.
type Video struct {
	VideoID   string `parquet:"video_id"`
	CreatorID int64  `parquet:"creator_id"`
	Views     int64  `parquet:"views"`
	Likes     int64  `parquet:"likes"`
	Comments  int64  `parquet:"comments"`
	Shares    int64  `parquet:"shares"`
	Caption   string `parquet:"caption"`
}

// CreatorStats is the derived per-creator statistic. One row exists per
// creator with at least one matched video; rows are immutable once computed
// and written append-only, one file per run date.
type CreatorStats struct {
	CreatorID     int64     `parquet:"creator_id"`
	Timestamp     string    `parquet:"timestamp"`
	Username      string    `parquet:"username"`
	FollowerCount int64     `parquet:"follower_count"`
	AvgViews      float64   `parquet:"avg_views"`
	TopCategory   string    `parquet:"top_category"`
	AvgEngagement float64   `parquet:"avg_engagement"`
	ViralityScore float64   `parquet:"virality_score"`
	TopKeywords   []string  `parquet:"top_keywords,list"`
	UpdatedAt     time.Time `parquet:"updated_at,timestamp(microsecond)"`
}

// rowScanner pulls typed cells out of a validated row, remembering the first
// mismatch. Cell types are guaranteed by validation, so a mismatch here means
// the caller skipped the validator.
type rowScanner struct {
	row frame.Row
	err error
}

func (s *rowScanner) int64Cell(column string) int64 {
	if s.err != nil {
		return 0
	}
	v, ok := s.row[column].(int64)
	if !ok {
		s.err = fmt.Errorf("column %q: expected int64, got %T", column, s.row[column])
		return 0
	}
	return v
}

func (s *rowScanner) stringCell(column string) string {
	if s.err != nil {
		return ""
	}
	v, ok := s.row[column].(string)
	if !ok {
		s.err = fmt.Errorf("column %q: expected string, got %T", column, s.row[column])
		return ""
	}
	return v
}

// CreatorsFromDataset binds a validated creators dataset to typed records.
func CreatorsFromDataset(ds *frame.Dataset) ([]Creator, error) {
	out := make([]Creator, 0, ds.Len())
	for i, row := range ds.Rows {
		s := rowScanner{row: row}
		c := Creator{
			CreatorID:     s.int64Cell("creator_id"),
			Username:      s.stringCell("username"),
			FollowerCount: s.int64Cell("follower_count"),
			AvgViews:      s.int64Cell("avg_views"),
			Category:      s.stringCell("category"),
			Bio:           s.stringCell("bio"),
		}
		if s.err != nil {
			return nil, fmt.Errorf("creators row %d: %w", i, s.err)
		}
		out = append(out, c)
	}
	return out, nil
}

// VideosFromDataset binds a validated videos dataset to typed records.
func VideosFromDataset(ds *frame.Dataset) ([]Video, error) {
	out := make([]Video, 0, ds.Len())
	for i, row := range ds.Rows {
		s := rowScanner{row: row}
		v := Video{
			VideoID:   s.stringCell("video_id"),
			CreatorID: s.int64Cell("creator_id"),
			Views:     s.int64Cell("views"),
			Likes:     s.int64Cell("likes"),
			Comments:  s.int64Cell("comments"),
			Shares:    s.int64Cell("shares"),
			Caption:   s.stringCell("caption"),
		}
		if s.err != nil {
			return nil, fmt.Errorf("videos row %d: %w", i, s.err)
		}
		out = append(out, v)
	}
	return out, nil
}
