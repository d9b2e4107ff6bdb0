package analytics

import (
	"math"
	"testing"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

func row(id, name, region string, year, male, female, accepted int) dataset.RawRow {
	return dataset.RawRow{
		SchoolID:      id,
		SchoolName:    name,
		Region:        region,
		Year:          year,
		MaleCount:     male,
		FemaleCount:   female,
		AcceptedCount: accepted,
	}
}

func mustDataset(t *testing.T, rows []dataset.RawRow) *dataset.Dataset {
	t.Helper()
	ds, report, err := dataset.Load(rows)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(report.Rejected) != 0 {
		t.Fatalf("test fixture has rejected rows: %v", report.Rejected)
	}
	return ds
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
