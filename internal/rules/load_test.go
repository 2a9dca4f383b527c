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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorlake/creatorstats/internal/frame"
)

const sampleRules = `
creators:
  - column: creator_id
    type: int64
    assertions:
      - check: non_negative
        should_fail: true
      - check: unique
        should_fail: true
  - column: follower_count
    type: int64
    fill_na: 0
videos:
  - column: video_id
    type: string
    assertions:
      - check: non_empty_string
        should_fail: true
  - column: caption
    type: string
    fill_na: ""
`

func TestLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(sampleRules), 0644))

	rs, err := LoadFile(filename)
	require.NoError(t, err)

	require.Len(t, rs.Creators, 2)
	assert.Equal(t, "creator_id", rs.Creators[0].Column)
	assert.Equal(t, frame.TypeInt64, rs.Creators[0].Type)
	require.Len(t, rs.Creators[0].Assertions, 2)
	assert.True(t, rs.Creators[0].Assertions[0].ShouldFail)
	assert.Equal(t, CheckUnique, rs.Creators[0].Assertions[1].Check)
	assert.NotNil(t, rs.Creators[1].FillNA)

	require.Len(t, rs.Videos, 2)
	assert.Equal(t, "", rs.Videos[1].FillNA)
}

func TestLoadFileRejectsUnknownCheck(t *testing.T) {
	bad := `
creators:
  - column: creator_id
    type: int64
    assertions:
      - check: sorted
        should_fail: true
videos: []
`
	_, err := loadFromContents("rules.yaml", []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown check "sorted"`)
}

func TestLoadFileRejectsUnknownType(t *testing.T) {
	bad := `
creators:
  - column: creator_id
    type: float32
videos: []
`
	_, err := loadFromContents("rules.yaml", []byte(bad))
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestYAMLFillValueCoerces(t *testing.T) {
	// YAML integers decode as int; the evaluator must accept them as fills.
	rs, err := loadFromContents("rules.yaml", []byte(sampleRules))
	require.NoError(t, err)

	ds := frame.New("creator_id", "follower_count")
	ds.Append(frame.Row{"creator_id": int64(1), "follower_count": nil})

	out, _, evalErr := Evaluate("creators", ds, rs.Creators)
	require.NoError(t, evalErr)
	assert.Equal(t, int64(0), out.Rows[0]["follower_count"])
}
