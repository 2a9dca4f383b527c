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

// Package keywords extracts representative terms from caption text using
// TF-IDF ranking. The extractor is fully deterministic: equal weights break
// ties lexically, so repeated runs on identical input yield identical output.
package keywords

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultTopN is the number of keywords returned when none is configured.
const DefaultTopN = 3

// DefaultTrendingN is the width of the dataset-wide trending ranking.
const DefaultTrendingN = 5

// Extractor ranks terms across a set of caption documents.
type Extractor struct {
	topN int
}

// NewExtractor creates an extractor returning at most topN terms.
// Non-positive topN falls back to DefaultTopN.
func NewExtractor(topN int) *Extractor {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Extractor{topN: topN}
}

// Top returns the highest-weighted terms over the given captions, ranked by
// summed TF-IDF weight descending, ties broken by lexical order. Each caption
// is one document. Empty or all-blank input yields an empty result, never an
// error.
func (e *Extractor) Top(captions []string) []string {
	return e.TopN(captions, e.topN)
}

// TopN is Top with an explicit result width, for rankings wider than the
// configured one (such as trending keywords across a whole dataset).
func (e *Extractor) TopN(captions []string, n int) []string {
	docs := countDocs(captions)
	idf, total := idfFor(docs)
	if total == 0 {
		return nil
	}

	// Sum the L2-normalized per-document weights. Terms are visited in
	// sorted order so floating-point accumulation is reproducible.
	scores := make(map[string]float64, len(idf))
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		terms := maps.Keys(doc)
		slices.Sort(terms)

		norm := 0.0
		for _, term := range terms {
			w := float64(doc[term]) * idf[term]
			norm += w * w
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}
		for _, term := range terms {
			scores[term] += float64(doc[term]) * idf[term] / norm
		}
	}

	return rankTerms(scores, n)
}

// PerDocument returns the top terms of each caption, ranked by the caption's
// own TF-IDF weights against the whole caption set. The i-th result belongs
// to the i-th caption; captions without usable tokens get nil.
func (e *Extractor) PerDocument(captions []string) [][]string {
	docs := countDocs(captions)
	idf, total := idfFor(docs)

	out := make([][]string, len(captions))
	if total == 0 {
		return out
	}
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		scores := make(map[string]float64, len(doc))
		for term, count := range doc {
			scores[term] = float64(count) * idf[term]
		}
		out[i] = rankTerms(scores, e.topN)
	}
	return out
}

// countDocs tokenizes each caption into term counts, keeping result indexes
// aligned with the input. Captions with no usable tokens stay nil.
func countDocs(captions []string) []map[string]int {
	docs := make([]map[string]int, len(captions))
	for i, caption := range captions {
		tokens := tokenize(caption)
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		docs[i] = counts
	}
	return docs
}

// idfFor computes the smoothed inverse document frequency over the non-empty
// documents, idf(t) = ln((1+N)/(1+df(t))) + 1, and returns it with N.
func idfFor(docs []map[string]int) (map[string]float64, int) {
	df := make(map[string]int)
	total := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		total++
		for term := range doc {
			df[term]++
		}
	}

	n := float64(total)
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf, total
}

// rankTerms orders terms by score descending, ties broken lexically
// ascending, and returns at most n of them.
func rankTerms(scores map[string]float64, n int) []string {
	ranked := maps.Keys(scores)
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// tokenize lowercases the text and splits it into letter/digit runs, dropping
// stop words and single-character tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || stopWords.Contains(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
