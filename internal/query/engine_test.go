package query

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/gradstat/internal/analytics"
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

func mustEngine(t *testing.T, rows []dataset.RawRow) *Engine {
	t.Helper()
	ds, report, err := dataset.Load(rows)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(report.Rejected) != 0 {
		t.Fatalf("test fixture has rejected rows: %v", report.Rejected)
	}
	return New(ds)
}

// fixtureRows is a small dataset most facade tests share: two regions,
// three schools, three years.
func fixtureRows() []dataset.RawRow {
	return []dataset.RawRow{
		row("S1", "Alpha", "North", 2019, 10, 10, 5),
		row("S1", "Alpha", "North", 2020, 12, 8, 6),
		row("S1", "Alpha", "North", 2021, 14, 6, 0),
		row("S2", "Beta", "North", 2020, 5, 15, 10),
		row("S2", "Beta", "North", 2021, 6, 14, 12),
		row("S3", "Gamma", "South", 2020, 20, 20, 8),
	}
}

func TestEngine_YearsAndSchools(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	years := e.Years()
	want := []int{2019, 2020, 2021}
	if len(years.Years) != len(want) {
		t.Fatalf("expected %v, got %v", want, years.Years)
	}
	for i, y := range want {
		if years.Years[i] != y {
			t.Errorf("year %d: expected %d, got %d", i, y, years.Years[i])
		}
	}

	all, err := e.Schools("")
	if err != nil {
		t.Fatalf("Schools failed: %v", err)
	}
	if len(all.Schools) != 3 || all.Schools[0].ID != "S1" {
		t.Errorf("expected [S1 S2 S3], got %v", all.Schools)
	}

	north, err := e.Schools("North")
	if err != nil {
		t.Fatalf("Schools failed: %v", err)
	}
	if len(north.Schools) != 2 {
		t.Errorf("expected 2 North schools, got %v", north.Schools)
	}

	if _, err := e.Schools("Atlantis"); err == nil {
		t.Error("expected error for unknown region")
	}
}

func TestEngine_SchoolYearStats(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.SchoolYearStats("S1", 2020)
	if err != nil {
		t.Fatalf("SchoolYearStats failed: %v", err)
	}
	if res.TotalCount != 20 || res.AcceptedCount != 6 {
		t.Errorf("unexpected record: %+v", res.Record)
	}
	if res.AcceptanceRate == nil || *res.AcceptanceRate != 0.3 {
		t.Errorf("expected rate 0.3, got %v", res.AcceptanceRate)
	}

	// Known school, missing year.
	_, err = e.SchoolYearStats("S1", 2015)
	var nf *dataset.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "record" {
		t.Errorf("expected record NotFoundError, got %v", err)
	}

	// Year outside the supported window fails validation first.
	_, err = e.SchoolYearStats("S1", 1990)
	var invalid *analytics.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidArgumentError, got %v", err)
	}
}

func TestEngine_RangeValidation(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	tests := []struct {
		name  string
		years analytics.YearRange
	}{
		{"from below window", analytics.YearRange{From: 1980, To: 2020}},
		{"to above window", analytics.YearRange{From: 2019, To: 2030}},
		{"inverted range", analytics.YearRange{From: 2021, To: 2019}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.GenderGap("S1", tt.years)
			var invalid *analytics.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Errorf("expected InvalidArgumentError, got %v", err)
			}
		})
	}

	// Zero bounds are open, not invalid.
	if _, err := e.GenderGap("S1", analytics.YearRange{}); err != nil {
		t.Errorf("zero range should be accepted: %v", err)
	}
}

func TestEngine_GenderGap(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.GenderGap("S1", analytics.YearRange{})
	if err != nil {
		t.Fatalf("GenderGap failed: %v", err)
	}
	if len(res.Points) != 3 {
		t.Fatalf("expected 3 points, got %v", res.Points)
	}
	// 2019 is an even split.
	if res.Points[0].Gap != 0 {
		t.Errorf("expected zero gap in 2019, got %v", res.Points[0])
	}
	// 2021: 14 male, 6 female of 20.
	p := res.Points[2]
	if p.MaleShare != 0.7 || p.FemaleShare != 0.3 || p.Gap != -0.4 {
		t.Errorf("unexpected 2021 point: %+v", p)
	}
}

func TestEngine_ZeroAcceptanceYears(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.ZeroAcceptanceYears("S1")
	if err != nil {
		t.Fatalf("ZeroAcceptanceYears failed: %v", err)
	}
	if len(res.Years) != 1 || res.Years[0] != 2021 {
		t.Errorf("expected [2021], got %v", res.Years)
	}

	res, err = e.ZeroAcceptanceYears("S2")
	if err != nil {
		t.Fatalf("ZeroAcceptanceYears failed: %v", err)
	}
	if len(res.Years) != 0 {
		t.Errorf("expected no zero years for S2, got %v", res.Years)
	}
}

func TestEngine_BestAndWorstYear(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	best, err := e.BestYear("S1", analytics.MetricAccepted)
	if err != nil {
		t.Fatalf("BestYear failed: %v", err)
	}
	if best.Year != 2020 || best.Value != 6 {
		t.Errorf("expected best 2020/6, got %+v", best)
	}

	worst, err := e.WorstYear("S1", analytics.MetricAccepted)
	if err != nil {
		t.Fatalf("WorstYear failed: %v", err)
	}
	if worst.Year != 2021 || worst.Value != 0 {
		t.Errorf("expected worst 2021/0, got %+v", worst)
	}
}

func TestEngine_BestYearTiesResolveToEarliest(t *testing.T) {
	e := mustEngine(t, []dataset.RawRow{
		row("S1", "Alpha", "North", 2019, 10, 10, 5),
		row("S1", "Alpha", "North", 2020, 10, 10, 5),
	})

	best, err := e.BestYear("S1", analytics.MetricAccepted)
	if err != nil {
		t.Fatalf("BestYear failed: %v", err)
	}
	if best.Year != 2019 {
		t.Errorf("tie should resolve to the earliest year, got %d", best.Year)
	}
}

func TestEngine_ImprovementRate(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.ImprovementRate("S1", analytics.MetricAccepted, analytics.YearRange{})
	if err != nil {
		t.Fatalf("ImprovementRate failed: %v", err)
	}
	if len(res.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %v", res.Changes)
	}
	if res.Changes[0].Delta != nil {
		t.Errorf("first year must have nil delta, got %v", *res.Changes[0].Delta)
	}
	if res.Changes[1].Delta == nil || *res.Changes[1].Delta != 1 {
		t.Errorf("expected 2020 delta +1, got %v", res.Changes[1].Delta)
	}
	if res.Changes[2].Delta == nil || *res.Changes[2].Delta != -6 {
		t.Errorf("expected 2021 delta -6, got %v", res.Changes[2].Delta)
	}
}

func TestEngine_AcceptanceRateTrend(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.AcceptanceRateTrend("S1", analytics.YearRange{})
	if err != nil {
		t.Fatalf("AcceptanceRateTrend failed: %v", err)
	}
	if len(res.Points) != 3 {
		t.Fatalf("expected 3 points, got %v", res.Points)
	}
	if res.Fit == nil {
		t.Error("expected a trend fit for a 3-point series")
	}

	// S3 has a single year: the series comes back without a fit.
	res, err = e.AcceptanceRateTrend("S3", analytics.YearRange{})
	if err != nil {
		t.Fatalf("AcceptanceRateTrend failed: %v", err)
	}
	if len(res.Points) != 1 || res.Fit != nil {
		t.Errorf("expected bare 1-point series, got %+v", res)
	}
}

func TestEngine_RegionSummary(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.RegionSummary("North", analytics.YearRange{})
	if err != nil {
		t.Fatalf("RegionSummary failed: %v", err)
	}
	if len(res.Years) != 3 {
		t.Fatalf("expected 3 years, got %v", res.Years)
	}
	// 2020: S1 (20 total, 6 accepted) + S2 (20 total, 10 accepted).
	y := res.Years[1]
	if y.Year != 2020 || y.Total != 40 || y.Accepted != 16 {
		t.Errorf("unexpected 2020 summary: %+v", y)
	}
	if y.AcceptanceRate == nil || *y.AcceptanceRate != 0.4 {
		t.Errorf("expected 2020 rate 0.4, got %v", y.AcceptanceRate)
	}
}

func TestEngine_Rankings(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.AcceptanceRanking(2020, 10, "")
	if err != nil {
		t.Fatalf("AcceptanceRanking failed: %v", err)
	}
	// 2020 accepted: S2=10, S3=8, S1=6.
	wantIDs := []string{"S2", "S3", "S1"}
	if len(res.Entries) != len(wantIDs) {
		t.Fatalf("expected %d entries, got %v", len(wantIDs), res.Entries)
	}
	for i, id := range wantIDs {
		if res.Entries[i].EntityID != id {
			t.Errorf("entry %d: expected %s, got %s", i, id, res.Entries[i].EntityID)
		}
	}
	if res.Order != analytics.OrderDesc {
		t.Errorf("empty order should default to desc, got %s", res.Order)
	}

	gender, err := e.TopSchoolsByGender(2020, "female", 2)
	if err != nil {
		t.Fatalf("TopSchoolsByGender failed: %v", err)
	}
	// 2020 female: S3=20, S2=15 (S1=8 cut by top_n).
	if len(gender.Entries) != 2 || gender.Entries[0].EntityID != "S3" || gender.Entries[1].EntityID != "S2" {
		t.Errorf("unexpected gender ranking: %v", gender.Entries)
	}

	if _, err := e.TopSchoolsByGender(2020, "other", 5); err == nil {
		t.Error("expected error for unknown gender")
	}
	if _, err := e.AcceptanceRanking(2020, 0, ""); err == nil {
		t.Error("expected error for zero top_n")
	}
}

func TestEngine_CompareSchoolsDefaultsToAllMetrics(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := e.CompareSchools("S1", "S2", nil, analytics.YearRange{From: 2020, To: 2021})
	if err != nil {
		t.Fatalf("CompareSchools failed: %v", err)
	}
	if len(res.Metrics) != len(analytics.Metrics()) {
		t.Errorf("expected every metric compared, got %d of %d", len(res.Metrics), len(analytics.Metrics()))
	}
	total := res.Metrics[analytics.MetricTotal]
	// S1 2020+2021: 40; S2: 40.
	if total.ValueA != 40 || total.ValueB != 40 || total.Delta != 0 {
		t.Errorf("unexpected total comparison: %+v", total)
	}
}

func TestEngine_DetectAnomaliesDefaultSensitivity(t *testing.T) {
	rows := []dataset.RawRow{
		row("S1", "Alpha", "North", 2019, 100, 0, 0),
		row("S1", "Alpha", "North", 2020, 110, 0, 0),
		row("S1", "Alpha", "North", 2021, 120, 0, 0),
		row("S1", "Alpha", "North", 2022, 300, 0, 0),
		row("S1", "Alpha", "North", 2023, 130, 0, 0),
	}
	e := mustEngine(t, rows)

	res, err := e.DetectAnomalies(analytics.EntitySchool, "S1", analytics.MetricTotal, analytics.YearRange{}, 0)
	if err != nil {
		t.Fatalf("DetectAnomalies failed: %v", err)
	}
	if res.Sensitivity != analytics.DefaultSensitivity {
		t.Errorf("zero sensitivity should pick the default, got %v", res.Sensitivity)
	}
	if len(res.Anomalies) != 1 || res.Anomalies[0].Year != 2022 || res.Anomalies[0].Value != 300 {
		t.Fatalf("expected exactly the 2022 spike, got %v", res.Anomalies)
	}

	if _, err := e.DetectAnomalies(analytics.EntitySchool, "S1", analytics.MetricTotal, analytics.YearRange{}, -1); err == nil {
		t.Error("expected error for negative sensitivity")
	}
	if _, err := e.DetectAnomalies(analytics.EntitySchool, "", analytics.MetricTotal, analytics.YearRange{}, 0); err == nil {
		t.Error("expected error for empty entity id")
	}
}

func TestEngine_SwapReplacesTheDataset(t *testing.T) {
	e := mustEngine(t, fixtureRows())
	if got := len(e.Years().Years); got != 3 {
		t.Fatalf("expected 3 years before swap, got %d", got)
	}

	next, _, err := dataset.Load([]dataset.RawRow{
		row("S9", "New", "West", 2022, 5, 5, 1),
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e.Swap(next)

	years := e.Years()
	if len(years.Years) != 1 || years.Years[0] != 2022 {
		t.Errorf("expected the swapped dataset's years, got %v", years.Years)
	}
	if _, err := e.Schools("North"); err == nil {
		t.Error("old regions should be gone after the swap")
	}
}
