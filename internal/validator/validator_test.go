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

package validator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorlake/creatorstats/internal/frame"
	"github.com/creatorlake/creatorstats/internal/rules"
)

func creatorsDataset(rows ...frame.Row) *frame.Dataset {
	ds := frame.New("creator_id", "username", "follower_count", "avg_views", "category", "bio")
	for _, row := range rows {
		ds.Append(row)
	}
	return ds
}

func videosDataset(rows ...frame.Row) *frame.Dataset {
	ds := frame.New("video_id", "creator_id", "views", "likes", "comments", "shares", "caption")
	for _, row := range rows {
		ds.Append(row)
	}
	return ds
}

func validCreatorRow() frame.Row {
	return frame.Row{
		"creator_id": int64(1), "username": "a", "follower_count": int64(100),
		"avg_views": int64(50), "category": "Tech", "bio": "bio",
	}
}

func validVideoRow() frame.Row {
	return frame.Row{
		"video_id": "v1", "creator_id": int64(1), "views": int64(1000),
		"likes": int64(50), "comments": int64(10), "shares": int64(5),
		"caption": "great tech tips",
	}
}

func TestValidateBothDatasets(t *testing.T) {
	v := New(rules.DefaultCreatorPipeline(), rules.DefaultVideoPipeline())

	res, err := v.Validate(context.Background(), creatorsDataset(validCreatorRow()), videosDataset(validVideoRow()))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Creators.Len())
	assert.Equal(t, 1, res.Videos.Len())
	assert.Empty(t, res.Warnings)
}

func TestValidateCreatorsCheckedFirst(t *testing.T) {
	v := New(rules.DefaultCreatorPipeline(), rules.DefaultVideoPipeline())

	badCreator := validCreatorRow()
	badCreator["creator_id"] = int64(-1)
	badVideo := validVideoRow()
	badVideo["views"] = int64(-5)

	// Both datasets fail; the error must come from creators.
	_, err := v.Validate(context.Background(), creatorsDataset(badCreator), videosDataset(badVideo))
	var verr *rules.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "creators", verr.Dataset)
	assert.Equal(t, "creator_id", verr.Column)
}

func TestValidateVideoFailurePropagates(t *testing.T) {
	v := New(rules.DefaultCreatorPipeline(), rules.DefaultVideoPipeline())

	badVideo := validVideoRow()
	badVideo["likes"] = int64(-1)

	_, err := v.Validate(context.Background(), creatorsDataset(validCreatorRow()), videosDataset(badVideo))
	var verr *rules.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "videos", verr.Dataset)
	assert.Equal(t, "likes", verr.Column)
}

func TestValidateCollectsWarnings(t *testing.T) {
	v := New(rules.DefaultCreatorPipeline(), rules.DefaultVideoPipeline())

	row := validCreatorRow()
	row["category"] = nil // filled with "", then flagged by the warning-only check

	res, err := v.Validate(context.Background(), creatorsDataset(row), videosDataset(validVideoRow()))
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "category", res.Warnings[0].Column)
	assert.Equal(t, rules.CheckNonEmptyString, res.Warnings[0].Check)
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	v := New(rules.DefaultCreatorPipeline(), rules.DefaultVideoPipeline())

	creators := creatorsDataset(validCreatorRow())
	creators.Rows[0]["follower_count"] = "100" // string before coercion

	_, err := v.Validate(context.Background(), creators, videosDataset(validVideoRow()))
	require.NoError(t, err)
	assert.Equal(t, "100", creators.Rows[0]["follower_count"])
}
