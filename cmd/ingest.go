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

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/creatorlake/creatorstats/config"
	"github.com/creatorlake/creatorstats/internal/filereader"
	"github.com/creatorlake/creatorstats/internal/keywords"
	"github.com/creatorlake/creatorstats/internal/rules"
	"github.com/creatorlake/creatorstats/internal/stats"
	"github.com/creatorlake/creatorstats/internal/statswriter"
	"github.com/creatorlake/creatorstats/internal/validator"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Run one batch ingestion",
		Long:  `Read the creator and video input tables, validate them, aggregate per-creator statistics, and commit the run to the output store.`,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			closeLog, err := setupLogging("creatorstats", cfg.LogFile)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			ctx, cancel := handleSignals(c.Context())
			defer cancel()

			return runIngest(ctx, cfg)
		},
	}

	rootCmd.AddCommand(cmd)
}

// runIngest performs one complete batch run. Any returned error means the
// run aborted and the output store was left untouched.
func runIngest(ctx context.Context, cfg *config.Config) error {
	runID := uuid.New().String()
	slog.SetDefault(slog.Default().With(slog.String("runID", runID)))
	ll := slog.Default()

	runDate, err := cfg.RunDay()
	if err != nil {
		return err
	}
	ll.Info("Starting ingestion run",
		slog.String("runDate", runDate.Format(time.DateOnly)),
		slog.String("creatorsFile", cfg.CreatorsFile),
		slog.String("videosFile", cfg.VideosFile))

	startedAt := time.Now()

	creatorsRaw, creatorsSum, err := filereader.ReadFile(cfg.CreatorsFile)
	if err != nil {
		return fmt.Errorf("failed to read creators table: %w", err)
	}
	ll.Info("Read creators table",
		slog.Int("rows", creatorsRaw.Len()),
		slog.String("fingerprint", fmt.Sprintf("%016x", creatorsSum)))

	videosRaw, videosSum, err := filereader.ReadFile(cfg.VideosFile)
	if err != nil {
		return fmt.Errorf("failed to read videos table: %w", err)
	}
	ll.Info("Read videos table",
		slog.Int("rows", videosRaw.Len()),
		slog.String("fingerprint", fmt.Sprintf("%016x", videosSum)))

	creatorRules := rules.DefaultCreatorPipeline()
	videoRules := rules.DefaultVideoPipeline()
	if cfg.RulesFile != "" {
		rs, err := rules.LoadFile(cfg.RulesFile)
		if err != nil {
			return fmt.Errorf("failed to load rule set: %w", err)
		}
		creatorRules, videoRules = rs.Creators, rs.Videos
		ll.Info("Loaded QA rule set", slog.String("file", cfg.RulesFile))
	}

	result, err := validator.New(creatorRules, videoRules).Validate(ctx, creatorsRaw, videosRaw)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if len(result.Warnings) > 0 {
		ll.Info("Validation passed with warnings", slog.Int("warnings", len(result.Warnings)))
	}

	creators, err := stats.CreatorsFromDataset(result.Creators)
	if err != nil {
		return fmt.Errorf("failed to bind creators: %w", err)
	}
	videos, err := stats.VideosFromDataset(result.Videos)
	if err != nil {
		return fmt.Errorf("failed to bind videos: %w", err)
	}

	engine := stats.NewEngine(keywords.NewExtractor(cfg.TopKeywords))
	run, err := engine.Process(ctx, creators, videos, runDate)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	ll.Info("Aggregated creator statistics",
		slog.Int("creators", len(run.Stats)),
		slog.Int("orphanVideos", run.Summary.OrphanVideos),
		slog.Float64("avgViewsTotal", run.Summary.AvgViewsTotal))
	ll.Info("Trending keywords", slog.Any("keywords", run.Summary.TrendingKeywords))
	for category, views := range run.Summary.ViewsPerCategory {
		ll.Debug("Category views", slog.String("category", category), slog.Int64("views", views))
	}
	for videoID, kw := range run.Summary.VideoKeywords {
		ll.Debug("Video keywords", slog.String("videoID", videoID), slog.Any("keywords", kw))
	}

	writer, err := statswriter.New(statswriter.Config{OutputRoot: cfg.OutputRoot})
	if err != nil {
		return err
	}
	files, err := writer.WriteRun(ctx, run, runDate)
	if err != nil {
		return fmt.Errorf("failed to write run output: %w", err)
	}
	for _, f := range files {
		ll.Debug("Committed file",
			slog.String("file", f.FileName),
			slog.Int64("records", f.RecordCount),
			slog.Int64("bytes", f.FileSize))
	}

	ll.Info("Ingestion run complete",
		slog.Int("files", len(files)),
		slog.Duration("elapsed", time.Since(startedAt)))
	return nil
}
