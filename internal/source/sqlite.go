package source

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// graduatesQuery reads the canonical table shape of a SQLite-packaged
// dataset. Deterministic ordering keeps row numbers in rejection
// reports stable across loads.
const graduatesQuery = `
	SELECT school_id, school_name, region, year, male, female, accepted
	FROM graduates
	ORDER BY school_id, year
`

// ReadSQLite reads raw rows from a SQLite dataset file. The connection
// is opened read-only and closed before returning. Rows that fail to
// scan come back as RowErrors.
func ReadSQLite(path string) ([]dataset.RawRow, []dataset.RowError, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer db.Close()

	// A single reader is all the loader ever needs.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	rows, err := db.Query(graduatesQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query graduates table: %w", err)
	}
	defer rows.Close()

	var (
		out     []dataset.RawRow
		rejects []dataset.RowError
		line    int
	)
	for rows.Next() {
		line++
		var row dataset.RawRow
		if err := rows.Scan(&row.SchoolID, &row.SchoolName, &row.Region,
			&row.Year, &row.MaleCount, &row.FemaleCount, &row.AcceptedCount); err != nil {
			rejects = append(rejects, dataset.RowError{Row: line, Reason: err.Error()})
			continue
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating graduates: %w", err)
	}

	return out, rejects, nil
}
