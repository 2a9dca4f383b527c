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

package statswriter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/parquet-go/parquet-go"
)

// encMode encodes time.Time at microsecond precision, matching the
// updated_at column contract.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.EncOptions{Time: cbor.TimeUnixMicro}.EncMode()
	if err != nil {
		panic(err)
	}
}

// stageParquet buffers rows through a CBOR spill file and streams them into
// a Parquet file staged next to finalPath. The staged file is registered
// with the run for the commit-time rename; nothing is visible at finalPath
// until then.
func stageParquet[T any](ctx context.Context, run *stagedRun, finalPath string, rows []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(run.root, finalPath)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create partition directory for %s: %w", finalPath, err)
	}

	spill, err := writeSpill(run, rows)
	if err != nil {
		return err
	}
	defer func() {
		_ = spill.Close()
		_ = os.Remove(spill.Name())
	}()

	tmpPath := run.tempPath(finalPath)
	staged, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create staging file for %s: %w", finalPath, err)
	}

	records, err := streamSpillToParquet[T](spill, staged)
	if err == nil {
		err = staged.Sync()
	}
	if closeErr := staged.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", finalPath, err)
	}

	run.add(stagedFile{tmpPath: tmpPath, finalPath: finalPath, records: records})
	return nil
}

// writeSpill encodes the rows into a CBOR temp file and rewinds it for
// reading. Buffering through disk keeps memory flat however large the run.
func writeSpill[T any](run *stagedRun, rows []T) (*os.File, error) {
	spill, err := os.CreateTemp(run.root, ".spill-*.cbor")
	if err != nil {
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	encoder := encMode.NewEncoder(spill)
	for i := range rows {
		if err := encoder.Encode(rows[i]); err != nil {
			_ = spill.Close()
			_ = os.Remove(spill.Name())
			return nil, fmt.Errorf("failed to encode row: %w", err)
		}
	}
	if _, err := spill.Seek(0, io.SeekStart); err != nil {
		_ = spill.Close()
		_ = os.Remove(spill.Name())
		return nil, fmt.Errorf("failed to rewind spill file: %w", err)
	}
	return spill, nil
}

// streamSpillToParquet decodes rows from the spill and writes Parquet.
func streamSpillToParquet[T any](spill io.Reader, output io.Writer) (int64, error) {
	writer := parquet.NewGenericWriter[T](output)

	decoder := cbor.NewDecoder(spill)
	rows := int64(0)
	for {
		var row T
		if err := decoder.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("failed to decode row: %w", err)
		}
		if _, err := writer.Write([]T{row}); err != nil {
			return 0, fmt.Errorf("failed to write row to parquet: %w", err)
		}
		rows++
	}

	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return rows, nil
}
