package analytics

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// linearRows builds a full 1995-2023 series for one school with
// total = base + slope*(year-1995).
func linearRows(id, region string, base, slope int) []dataset.RawRow {
	var rows []dataset.RawRow
	for year := dataset.MinYear; year <= dataset.MaxYear; year++ {
		total := base + slope*(year-dataset.MinYear)
		rows = append(rows, row(id, "School "+id, region, year, total, 0, 0))
	}
	return rows
}

func TestTrend_PerfectLinearSeries(t *testing.T) {
	ds := mustDataset(t, linearRows("S1", "North", 100, 10))

	fit, err := NewTrendAnalyzer(ds).Trend(EntitySchool, "S1", MetricTotal, YearRange{})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if !almostEqual(fit.Slope, 10, 1e-9) {
		t.Errorf("expected slope 10, got %v", fit.Slope)
	}
	if fit.Direction != DirectionRising {
		t.Errorf("expected rising, got %s", fit.Direction)
	}
	if !almostEqual(fit.Confidence, 1, 1e-9) {
		t.Errorf("expected confidence ~1, got %v", fit.Confidence)
	}
	if fit.Years != dataset.MaxYear-dataset.MinYear+1 {
		t.Errorf("expected %d years, got %d", dataset.MaxYear-dataset.MinYear+1, fit.Years)
	}
}

func TestTrend_FallingSeries(t *testing.T) {
	ds := mustDataset(t, linearRows("S1", "North", 500, -10))

	fit, err := NewTrendAnalyzer(ds).Trend(EntitySchool, "S1", MetricTotal, YearRange{})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if fit.Direction != DirectionFalling {
		t.Errorf("expected falling, got %s", fit.Direction)
	}
	if !almostEqual(fit.Slope, -10, 1e-9) {
		t.Errorf("expected slope -10, got %v", fit.Slope)
	}
}

func TestTrend_ConstantSeriesIsFlat(t *testing.T) {
	ds := mustDataset(t, linearRows("S1", "North", 200, 0))

	fit, err := NewTrendAnalyzer(ds).Trend(EntitySchool, "S1", MetricTotal, YearRange{})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if fit.Direction != DirectionFlat {
		t.Errorf("expected flat, got %s", fit.Direction)
	}
	if fit.Slope != 0 {
		t.Errorf("expected zero slope, got %v", fit.Slope)
	}
	// Zero variance leaves R² undefined; the zero-slope fit is exact.
	if fit.Confidence != 1 {
		t.Errorf("expected confidence 1 for constant series, got %v", fit.Confidence)
	}
}

func TestTrend_InsufficientData(t *testing.T) {
	ds := mustDataset(t, []dataset.RawRow{
		row("S1", "One", "North", 2020, 10, 10, 5),
		row("S1", "One", "North", 2021, 12, 10, 5),
	})

	_, err := NewTrendAnalyzer(ds).Trend(EntitySchool, "S1", MetricTotal, YearRange{})
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if insufficient.Needed != MinTrendYears || insufficient.Got != 2 {
		t.Errorf("unexpected counts in %v", insufficient)
	}
}

func TestTrend_YearRangeRestrictsTheFit(t *testing.T) {
	// Rising through 2010, then constant. The restricted fit only sees
	// the plateau.
	var rows []dataset.RawRow
	for year := 2000; year <= 2010; year++ {
		rows = append(rows, row("S1", "One", "North", year, 100+10*(year-2000), 0, 0))
	}
	for year := 2011; year <= 2020; year++ {
		rows = append(rows, row("S1", "One", "North", year, 200, 0, 0))
	}
	ds := mustDataset(t, rows)

	fit, err := NewTrendAnalyzer(ds).Trend(EntitySchool, "S1", MetricTotal, YearRange{From: 2011, To: 2020})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if fit.Direction != DirectionFlat || fit.Years != 10 {
		t.Errorf("expected flat over 10 years, got %+v", fit)
	}
}

func TestTrend_RegionPoolsSchools(t *testing.T) {
	// Two schools whose totals each rise by 5 per year: the pooled
	// region series rises by 10 per year.
	var rows []dataset.RawRow
	for year := 2000; year <= 2010; year++ {
		rows = append(rows, row("S1", "One", "North", year, 100+5*(year-2000), 0, 0))
		rows = append(rows, row("S2", "Two", "North", year, 50+5*(year-2000), 0, 0))
	}
	ds := mustDataset(t, rows)

	fit, err := NewTrendAnalyzer(ds).Trend(EntityRegion, "North", MetricTotal, YearRange{})
	if err != nil {
		t.Fatalf("Trend failed: %v", err)
	}
	if !almostEqual(fit.Slope, 10, 1e-9) || fit.Direction != DirectionRising {
		t.Errorf("expected pooled slope 10 rising, got %+v", fit)
	}
}

func TestTrend_UnknownEntity(t *testing.T) {
	ds := mustDataset(t, linearRows("S1", "North", 100, 10))
	analyzer := NewTrendAnalyzer(ds)

	if _, err := analyzer.Trend(EntitySchool, "missing", MetricTotal, YearRange{}); err == nil {
		t.Error("expected error for unknown school")
	} else {
		var nf *dataset.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	}
}
