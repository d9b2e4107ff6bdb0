// Package source reads raw graduate rows from external dataset files.
// Sources only parse; all semantic validation happens in the dataset
// package, so a malformed value becomes a per-row rejection either way
// and never aborts a load.
package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// ReadRows loads raw rows from path, picking the reader by file
// extension: .csv for CSV, .db/.sqlite/.sqlite3 for SQLite. Rows that
// fail to parse are returned as RowErrors alongside the good rows.
func ReadRows(path string) ([]dataset.RawRow, []dataset.RowError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		return ReadSQLite(path)
	default:
		return nil, nil, fmt.Errorf("unsupported dataset format %q (want .csv, .db, .sqlite, or .sqlite3)", filepath.Ext(path))
	}
}
