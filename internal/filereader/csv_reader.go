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

// Package filereader is the input boundary: it turns delimited text files
// into frame datasets. Cells arrive untyped (string, or nil for empty);
// type coercion belongs to the QA rules.
package filereader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/creatorlake/creatorstats/internal/frame"
)

// ReadFile reads a CSV file with a header row into a dataset and returns the
// xxhash64 fingerprint of the raw bytes, so identical input snapshots are
// identifiable across runs.
func ReadFile(filename string) (*frame.Dataset, uint64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer func() { _ = f.Close() }()

	digest := xxhash.New()
	ds, err := readCSV(io.TeeReader(f, digest))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", filename, err)
	}
	// Drain whatever the CSV reader left unread so the fingerprint covers
	// the whole file.
	if _, err := io.Copy(digest, f); err != nil {
		return nil, 0, fmt.Errorf("failed to fingerprint %s: %w", filename, err)
	}
	return ds, digest.Sum64(), nil
}

func readCSV(r io.Reader) (*frame.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1 // allow ragged rows

	headers, err := csvReader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("CSV file has no headers")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	ds := frame.New(headers...)
	line := 1
	for {
		record, err := csvReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("CSV read error at line %d: %w", line+1, err)
		}
		line++

		row := make(frame.Row, len(headers))
		for i, header := range headers {
			if i >= len(record) || record[i] == "" {
				// Short rows and empty cells are missing values; fill
				// handling happens during validation.
				row[header] = nil
				continue
			}
			row[header] = record[i]
		}
		ds.Append(row)
	}
	return ds, nil
}
