package query

import (
	"fmt"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// SchoolYearStats returns the full record for one school and year.
func (e *Engine) SchoolYearStats(schoolID string, year int) (SchoolYearStatsResult, error) {
	const op = "school_year_stats"
	if err := validSchool(op, schoolID); err != nil {
		return SchoolYearStatsResult{}, err
	}
	if err := validYear(op, year); err != nil {
		return SchoolYearStatsResult{}, err
	}

	recs, err := e.Dataset().SchoolRecords(schoolID)
	if err != nil {
		return SchoolYearStatsResult{}, err
	}
	for _, rec := range recs {
		if rec.Year == year {
			res := SchoolYearStatsResult{Record: rec}
			if rate, ok := rec.AcceptanceRate(); ok {
				res.AcceptanceRate = &rate
			}
			return res, nil
		}
	}
	return SchoolYearStatsResult{}, &dataset.NotFoundError{Kind: "record", ID: fmt.Sprintf("%s/%d", schoolID, year)}
}

// GenderGap returns a school's per-year gender-share gap (female share
// minus male share). Years with no graduates are skipped.
func (e *Engine) GenderGap(schoolID string, years analytics.YearRange) (GenderGapResult, error) {
	const op = "gender_gap"
	if err := validSchool(op, schoolID); err != nil {
		return GenderGapResult{}, err
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return GenderGapResult{}, err
	}

	recs, err := e.Dataset().SchoolRecords(schoolID)
	if err != nil {
		return GenderGapResult{}, err
	}

	res := GenderGapResult{SchoolID: schoolID}
	for _, rec := range recs {
		if !years.Contains(rec.Year) || rec.TotalCount == 0 {
			continue
		}
		male := float64(rec.MaleCount) / float64(rec.TotalCount)
		female := float64(rec.FemaleCount) / float64(rec.TotalCount)
		res.Points = append(res.Points, GapPoint{
			Year:        rec.Year,
			MaleShare:   male,
			FemaleShare: female,
			Gap:         female - male,
		})
	}
	return res, nil
}

// ZeroAcceptanceYears lists the years in which a school had zero
// accepted graduates.
func (e *Engine) ZeroAcceptanceYears(schoolID string) (ZeroAcceptanceResult, error) {
	const op = "zero_acceptance_years"
	if err := validSchool(op, schoolID); err != nil {
		return ZeroAcceptanceResult{}, err
	}

	recs, err := e.Dataset().SchoolRecords(schoolID)
	if err != nil {
		return ZeroAcceptanceResult{}, err
	}

	res := ZeroAcceptanceResult{SchoolID: schoolID}
	for _, rec := range recs {
		if rec.AcceptedCount == 0 {
			res.Years = append(res.Years, rec.Year)
			res.Records = append(res.Records, rec)
		}
	}
	return res, nil
}

// BestYear returns the school's year with the highest metric value.
func (e *Engine) BestYear(schoolID string, metric analytics.Metric) (ExtremeYearResult, error) {
	return e.extremeYear("best_year", schoolID, metric, true)
}

// WorstYear returns the school's year with the lowest metric value.
func (e *Engine) WorstYear(schoolID string, metric analytics.Metric) (ExtremeYearResult, error) {
	return e.extremeYear("worst_year", schoolID, metric, false)
}

// extremeYear scans the school's series for the max (or min) defined
// metric value. Ties resolve to the earliest year.
func (e *Engine) extremeYear(op, schoolID string, metric analytics.Metric, max bool) (ExtremeYearResult, error) {
	if err := validSchool(op, schoolID); err != nil {
		return ExtremeYearResult{}, err
	}
	if err := validMetric(op, metric); err != nil {
		return ExtremeYearResult{}, err
	}

	recs, err := e.Dataset().SchoolRecords(schoolID)
	if err != nil {
		return ExtremeYearResult{}, err
	}

	var (
		found bool
		best  ExtremeYearResult
	)
	for _, rec := range recs {
		v, ok := analytics.RecordValue(rec, metric)
		if !ok {
			continue
		}
		better := max && v > best.Value || !max && v < best.Value
		if !found || better {
			found = true
			best = ExtremeYearResult{SchoolID: schoolID, Metric: metric, Year: rec.Year, Value: v, Record: rec}
		}
	}
	if !found {
		return ExtremeYearResult{}, &analytics.InsufficientDataError{Op: op, EntityID: schoolID, Needed: 1, Got: 0}
	}
	return best, nil
}

// AcceptanceRateTrend returns a school's per-year acceptance-rate
// series with a trend fit. The fit is omitted when the series is
// shorter than the trend minimum; the series itself is still returned.
func (e *Engine) AcceptanceRateTrend(schoolID string, years analytics.YearRange) (RateTrendResult, error) {
	const op = "acceptance_rate_trend"
	if err := validSchool(op, schoolID); err != nil {
		return RateTrendResult{}, err
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return RateTrendResult{}, err
	}

	ds := e.Dataset()
	recs, err := ds.SchoolRecords(schoolID)
	if err != nil {
		return RateTrendResult{}, err
	}

	res := RateTrendResult{SchoolID: schoolID}
	for _, rec := range recs {
		if !years.Contains(rec.Year) {
			continue
		}
		if rate, ok := rec.AcceptanceRate(); ok {
			res.Points = append(res.Points, analytics.Point{Year: rec.Year, Value: rate})
		}
	}

	if len(res.Points) >= analytics.MinTrendYears {
		fit, err := analytics.NewTrendAnalyzer(ds).Trend(analytics.EntitySchool, schoolID, analytics.MetricAcceptanceRate, years)
		if err != nil {
			return RateTrendResult{}, err
		}
		res.Fit = fit
	}
	return res, nil
}

// ImprovementRate returns the year-over-year change of a school metric.
func (e *Engine) ImprovementRate(schoolID string, metric analytics.Metric, years analytics.YearRange) (ImprovementResult, error) {
	const op = "improvement_rate"
	if err := validSchool(op, schoolID); err != nil {
		return ImprovementResult{}, err
	}
	if err := validMetric(op, metric); err != nil {
		return ImprovementResult{}, err
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return ImprovementResult{}, err
	}

	recs, err := e.Dataset().SchoolRecords(schoolID)
	if err != nil {
		return ImprovementResult{}, err
	}

	res := ImprovementResult{SchoolID: schoolID, Metric: metric}
	var prev *float64
	for _, rec := range recs {
		if !years.Contains(rec.Year) {
			continue
		}
		v, ok := analytics.RecordValue(rec, metric)
		if !ok {
			continue
		}
		change := Change{Year: rec.Year, Value: v}
		if prev != nil {
			d := v - *prev
			change.Delta = &d
		}
		res.Changes = append(res.Changes, change)
		value := v
		prev = &value
	}
	return res, nil
}
