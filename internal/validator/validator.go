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

// Package validator applies the configured QA pipelines to the creators and
// videos datasets. Creators validate first; a creators failure never triggers
// video validation.
package validator

import (
	"context"
	"log/slog"

	"github.com/creatorlake/creatorstats/internal/frame"
	"github.com/creatorlake/creatorstats/internal/rules"
)

// Validator holds the two QA pipelines one run applies. Both pipelines are
// supplied explicitly at construction; there is no process-wide default.
type Validator struct {
	creators []rules.Rule
	videos   []rules.Rule
}

// Result carries the validated datasets plus the warnings collected across
// both pipelines, creators first.
type Result struct {
	Creators *frame.Dataset
	Videos   *frame.Dataset
	Warnings []rules.Warning
}

// New creates a validator with the given pipelines.
func New(creatorPipeline, videoPipeline []rules.Rule) *Validator {
	return &Validator{
		creators: creatorPipeline,
		videos:   videoPipeline,
	}
}

// Validate runs both pipelines and returns validated copies of the inputs.
// The first fatal error propagates unchanged; the inputs are never mutated.
func (v *Validator) Validate(ctx context.Context, creators, videos *frame.Dataset) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleanCreators, creatorWarnings, err := rules.Evaluate("creators", creators, v.creators)
	if err != nil {
		return nil, err
	}
	slog.Debug("creators dataset validated",
		slog.Int("rows", cleanCreators.Len()),
		slog.Int("warnings", len(creatorWarnings)))

	cleanVideos, videoWarnings, err := rules.Evaluate("videos", videos, v.videos)
	if err != nil {
		return nil, err
	}
	slog.Debug("videos dataset validated",
		slog.Int("rows", cleanVideos.Len()),
		slog.Int("warnings", len(videoWarnings)))

	warnings := make([]rules.Warning, 0, len(creatorWarnings)+len(videoWarnings))
	warnings = append(warnings, creatorWarnings...)
	warnings = append(warnings, videoWarnings...)

	for _, w := range warnings {
		slog.Warn("validation warning",
			slog.String("dataset", w.Dataset),
			slog.String("column", w.Column),
			slog.String("check", string(w.Check)),
			slog.Int("violations", w.Violations))
	}

	return &Result{
		Creators: cleanCreators,
		Videos:   cleanVideos,
		Warnings: warnings,
	}, nil
}
