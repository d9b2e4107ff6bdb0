package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// csvColumns is the required header set. Column order is free; extra
// columns are ignored.
var csvColumns = []string{"school_id", "school_name", "region", "year", "male", "female", "accepted"}

// ReadCSV reads raw rows from a headed CSV file. The source handle is
// released before returning, success or failure. Rows with the wrong
// field count or non-numeric values come back as RowErrors.
func ReadCSV(path string) ([]dataset.RawRow, []dataset.RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // row width is validated per row below

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, want := range csvColumns {
		if _, ok := cols[want]; !ok {
			return nil, nil, fmt.Errorf("CSV header missing column %q", want)
		}
	}

	var (
		rows    []dataset.RawRow
		rejects []dataset.RowError
		line    int
	)
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			rejects = append(rejects, dataset.RowError{Row: line, Reason: err.Error()})
			continue
		}

		row, reason := parseRow(fields, cols)
		if reason != "" {
			rejects = append(rejects, dataset.RowError{Row: line, SchoolID: row.SchoolID, Reason: reason})
			continue
		}
		rows = append(rows, row)
	}

	return rows, rejects, nil
}

// parseRow converts one CSV record into a RawRow. A non-empty reason
// marks the row as unparseable.
func parseRow(fields []string, cols map[string]int) (dataset.RawRow, string) {
	get := func(name string) (string, bool) {
		i := cols[name]
		if i >= len(fields) {
			return "", false
		}
		return strings.TrimSpace(fields[i]), true
	}
	getInt := func(name string) (int, string) {
		s, ok := get(name)
		if !ok {
			return 0, fmt.Sprintf("missing %s field", name)
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Sprintf("non-numeric %s %q", name, s)
		}
		return v, ""
	}

	var row dataset.RawRow
	row.SchoolID, _ = get("school_id")
	row.SchoolName, _ = get("school_name")
	row.Region, _ = get("region")

	var reason string
	if row.Year, reason = getInt("year"); reason != "" {
		return row, reason
	}
	if row.MaleCount, reason = getInt("male"); reason != "" {
		return row, reason
	}
	if row.FemaleCount, reason = getInt("female"); reason != "" {
		return row, reason
	}
	if row.AcceptedCount, reason = getInt("accepted"); reason != "" {
		return row, reason
	}
	return row, ""
}
