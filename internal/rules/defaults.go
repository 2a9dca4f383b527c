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

import "github.com/creatorlake/creatorstats/internal/frame"

// DefaultCreatorPipeline returns the built-in QA pipeline for the creators
// dataset. There is no implicit process-wide default; callers pass the
// pipeline explicitly into the validator.
func DefaultCreatorPipeline() []Rule {
	return []Rule{
		{
			Column: "creator_id",
			Type:   frame.TypeInt64,
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
				{Check: CheckUnique, ShouldFail: true},
			},
		},
		{
			Column: "username",
			Type:   frame.TypeString,
			Assertions: []Assertion{
				{Check: CheckNonEmptyString, ShouldFail: true},
			},
		},
		{
			Column: "follower_count",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "avg_views",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "category",
			Type:   frame.TypeString,
			FillNA: "",
			Assertions: []Assertion{
				{Check: CheckNonEmptyString, ShouldFail: false},
			},
		},
		{
			Column: "bio",
			Type:   frame.TypeString,
			FillNA: "",
		},
	}
}

// DefaultVideoPipeline returns the built-in QA pipeline for the videos
// dataset.
func DefaultVideoPipeline() []Rule {
	return []Rule{
		{
			Column: "video_id",
			Type:   frame.TypeString,
			Assertions: []Assertion{
				{Check: CheckNonEmptyString, ShouldFail: true},
				{Check: CheckUnique, ShouldFail: true},
			},
		},
		{
			Column: "creator_id",
			Type:   frame.TypeInt64,
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "views",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "likes",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "comments",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "shares",
			Type:   frame.TypeInt64,
			FillNA: int64(0),
			Assertions: []Assertion{
				{Check: CheckNonNegative, ShouldFail: true},
			},
		},
		{
			Column: "caption",
			Type:   frame.TypeString,
			FillNA: "",
		},
	}
}
