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

package filereader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	return filename
}

func TestReadFile(t *testing.T) {
	filename := writeFile(t, "creator_id,username,category\n1,alice,Tech\n2,bob,Food\n")

	ds, fingerprint, err := ReadFile(filename)
	require.NoError(t, err)
	assert.NotZero(t, fingerprint)

	assert.Equal(t, []string{"creator_id", "username", "category"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "1", ds.Rows[0]["creator_id"])
	assert.Equal(t, "alice", ds.Rows[0]["username"])
	assert.Equal(t, "Food", ds.Rows[1]["category"])
}

func TestReadFileEmptyCellsAreMissing(t *testing.T) {
	filename := writeFile(t, "a,b\n1,\n,2\n")

	ds, _, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "1", ds.Rows[0]["a"])
	assert.Nil(t, ds.Rows[0]["b"])
	assert.Nil(t, ds.Rows[1]["a"])
	assert.Equal(t, "2", ds.Rows[1]["b"])
}

func TestReadFileRaggedRows(t *testing.T) {
	filename := writeFile(t, "a,b,c\n1,2\n")

	ds, _, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "2", ds.Rows[0]["b"])
	assert.Nil(t, ds.Rows[0]["c"])
}

func TestReadFileHeaderOnly(t *testing.T) {
	filename := writeFile(t, "a,b\n")

	ds, _, err := ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestReadFileEmpty(t *testing.T) {
	filename := writeFile(t, "")

	_, _, err := ReadFile(filename)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no headers")
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestFingerprintStable(t *testing.T) {
	contents := "a,b\n1,2\n"
	first := writeFile(t, contents)
	second := writeFile(t, contents)

	_, fp1, err := ReadFile(first)
	require.NoError(t, err)
	_, fp2, err := ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)

	_, fp3, err := ReadFile(writeFile(t, "a,b\n1,3\n"))
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}
