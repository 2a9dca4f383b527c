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

// Package stats joins validated videos to creators and aggregates per-creator
// engagement metrics. Grouping is deterministic (sorted creator IDs) and the
// arithmetic edge cases (zero views, zero followers, non-positive virality
// ratio) fall back to zero instead of propagating NaN or infinity.
package stats

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/creatorlake/creatorstats/internal/keywords"
)

// Engine computes per-creator statistics from one validated snapshot.
type Engine struct {
	extractor *keywords.Extractor
	now       func() time.Time
}

// Summary is the per-run roll-up that is logged, not persisted. Keyword
// rankings cover matched videos only; orphans never contribute captions.
type Summary struct {
	AvgViewsTotal    float64
	ViewsPerCategory map[string]int64
	TrendingKeywords []string
	VideoKeywords    map[string][]string
	OrphanVideos     int
}

// RunResult carries everything one run produces: the derived statistics plus
// the validated passthrough record sets the writer persists alongside them.
type RunResult struct {
	Stats    []CreatorStats
	Creators []Creator
	Videos   []Video
	Summary  Summary
}

// NewEngine creates an engine using the given keyword extractor.
func NewEngine(extractor *keywords.Extractor) *Engine {
	return &Engine{
		extractor: extractor,
		now:       time.Now,
	}
}

// Process inner-joins videos to creators on creator_id and aggregates one
// CreatorStats row per creator with at least one matched video. Videos whose
// creator is absent are dropped from aggregation but stay in the passthrough
// output; creators with no matched videos stay in the creators passthrough
// but get no stats row.
func (e *Engine) Process(ctx context.Context, creators []Creator, videos []Video, runDate time.Time) (*RunResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byID := make(map[int64]Creator, len(creators))
	for _, c := range creators {
		byID[c.CreatorID] = c
	}

	groups := make(map[int64][]Video)
	matched := make([]Video, 0, len(videos))
	orphans := 0
	for _, v := range videos {
		if _, ok := byID[v.CreatorID]; !ok {
			orphans++
			continue
		}
		groups[v.CreatorID] = append(groups[v.CreatorID], v)
		matched = append(matched, v)
	}
	if orphans > 0 {
		slog.Warn("videos with unmatched creator_id excluded from aggregation",
			slog.Int("count", orphans))
	}

	timestamp := runDate.Format(time.DateOnly)
	updatedAt := e.now().UTC().Truncate(time.Microsecond)

	ids := maps.Keys(groups)
	slices.Sort(ids)

	totalViews := int64(0)
	matchedVideos := 0
	viewsPerCategory := make(map[string]int64)

	out := make([]CreatorStats, 0, len(ids))
	for _, id := range ids {
		creator := byID[id]
		group := groups[id]

		var groupViews int64
		var engagementSum float64
		captions := make([]string, 0, len(group))
		for _, v := range group {
			groupViews += v.Views
			engagementSum += engagement(v)
			captions = append(captions, v.Caption)
		}

		avgViews := float64(groupViews) / float64(len(group))
		avgEngagement := engagementSum / float64(len(group))

		out = append(out, CreatorStats{
			CreatorID:     id,
			Timestamp:     timestamp,
			Username:      creator.Username,
			FollowerCount: creator.FollowerCount,
			AvgViews:      avgViews,
			TopCategory:   creator.Category,
			AvgEngagement: avgEngagement,
			ViralityScore: viralityScore(avgEngagement, creator.FollowerCount),
			TopKeywords:   e.extractor.Top(captions),
			UpdatedAt:     updatedAt,
		})

		totalViews += groupViews
		matchedVideos += len(group)
		viewsPerCategory[creator.Category] += groupViews
	}

	allCaptions := make([]string, len(matched))
	for i, v := range matched {
		allCaptions[i] = v.Caption
	}
	videoKeywords := make(map[string][]string, len(matched))
	for i, kw := range e.extractor.PerDocument(allCaptions) {
		videoKeywords[matched[i].VideoID] = kw
	}

	summary := Summary{
		ViewsPerCategory: viewsPerCategory,
		TrendingKeywords: e.extractor.TopN(allCaptions, keywords.DefaultTrendingN),
		VideoKeywords:    videoKeywords,
		OrphanVideos:     orphans,
	}
	if matchedVideos > 0 {
		summary.AvgViewsTotal = float64(totalViews) / float64(matchedVideos)
	}

	slog.Info("creator statistics computed",
		slog.Int("creators", len(out)),
		slog.Int("matchedVideos", matchedVideos),
		slog.Int("orphanVideos", orphans))

	return &RunResult{
		Stats:    out,
		Creators: creators,
		Videos:   videos,
		Summary:  summary,
	}, nil
}

// engagement is (likes+comments+shares)/views, defined as 0 for a zero-view
// video so division by zero never reaches the output.
func engagement(v Video) float64 {
	if v.Views == 0 {
		return 0
	}
	return float64(v.Likes+v.Comments+v.Shares) / float64(v.Views)
}

// viralityScore is ln(avgEngagement/followers). The score is defined as 0
// when followers is 0 or the ratio is non-positive; the log of a non-positive
// number must never be taken.
func viralityScore(avgEngagement float64, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	ratio := avgEngagement / float64(followers)
	if ratio <= 0 {
		return 0
	}
	return math.Log(ratio)
}
