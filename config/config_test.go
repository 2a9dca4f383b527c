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

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/creators.csv", cfg.CreatorsFile)
	assert.Equal(t, "data/videos.csv", cfg.VideosFile)
	assert.Equal(t, "data", cfg.OutputRoot)
	assert.Equal(t, 3, cfg.TopKeywords)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CREATORSTATS_OUTPUT_ROOT", "/var/lib/creatorstats")
	t.Setenv("CREATORSTATS_RUN_DATE", "2026-08-30")
	t.Setenv("CREATORSTATS_TOP_KEYWORDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/creatorstats", cfg.OutputRoot)
	assert.Equal(t, "2026-08-30", cfg.RunDate)
	assert.Equal(t, 5, cfg.TopKeywords)
}

func TestRunDayDefaultsToToday(t *testing.T) {
	cfg := &Config{}
	day, err := cfg.RunDay()
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Format(time.DateOnly), day.Format(time.DateOnly))
	assert.Equal(t, time.UTC, day.Location())
}

func TestRunDayParses(t *testing.T) {
	cfg := &Config{RunDate: "2026-08-30"}
	day, err := cfg.RunDay()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), day)
}

func TestValidateRejectsBadDate(t *testing.T) {
	cfg := &Config{
		CreatorsFile: "a.csv",
		VideosFile:   "b.csv",
		OutputRoot:   "out",
		RunDate:      "30/08/2026",
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingPaths(t *testing.T) {
	cfg := &Config{VideosFile: "b.csv", OutputRoot: "out"}
	assert.Error(t, cfg.Validate())
}
