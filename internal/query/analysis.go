package query

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/blackwell-systems/gradstat/internal/analytics"
)

// CompareSchools diffs two schools across the requested metrics.
func (e *Engine) CompareSchools(idA, idB string, metrics []analytics.Metric, years analytics.YearRange) (ComparisonResult, error) {
	const op = "compare_schools"
	if idA == "" || idB == "" {
		return ComparisonResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "school_id", Reason: "both school ids required"}
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return ComparisonResult{}, err
	}
	if len(metrics) == 0 {
		metrics = analytics.Metrics()
	}

	diff, err := analytics.NewComparator(e.Dataset()).Compare(analytics.EntitySchool, idA, idB, metrics, years)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ComparisonResult{
		EntityType: analytics.EntitySchool,
		IDA:        idA,
		IDB:        idB,
		Years:      years,
		Metrics:    diff,
	}, nil
}

// SchoolTrend fits a long-term trend for one school metric.
func (e *Engine) SchoolTrend(schoolID string, metric analytics.Metric, years analytics.YearRange) (TrendResult, error) {
	return e.trend("school_trend", analytics.EntitySchool, schoolID, metric, years)
}

// RegionTrend fits a long-term trend for one region metric, pooled
// across the region's schools per year.
func (e *Engine) RegionTrend(region string, metric analytics.Metric, years analytics.YearRange) (TrendResult, error) {
	return e.trend("region_trend", analytics.EntityRegion, region, metric, years)
}

func (e *Engine) trend(op string, entityType analytics.EntityType, id string, metric analytics.Metric, years analytics.YearRange) (TrendResult, error) {
	if id == "" {
		return TrendResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "entity_id", Reason: "required"}
	}
	if err := validMetric(op, metric); err != nil {
		return TrendResult{}, err
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return TrendResult{}, err
	}

	fit, err := analytics.NewTrendAnalyzer(e.Dataset()).Trend(entityType, id, metric, years)
	if err != nil {
		return TrendResult{}, err
	}
	return TrendResult{EntityType: entityType, EntityID: id, Metric: metric, Years: years, Fit: fit}, nil
}

// RegionSummary aggregates a region's records per year: pooled totals,
// accepted counts, and acceptance rate.
func (e *Engine) RegionSummary(region string, years analytics.YearRange) (RegionSummaryResult, error) {
	const op = "region_summary"
	if region == "" {
		return RegionSummaryResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "region", Reason: "required"}
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return RegionSummaryResult{}, err
	}

	agg := analytics.NewAggregator(e.Dataset())
	filter := analytics.Filter{Region: region, Years: years}

	totals, err := agg.Aggregate(analytics.GroupByYear, analytics.MetricTotal, filter)
	if err != nil {
		return RegionSummaryResult{}, err
	}
	accepted, err := agg.Aggregate(analytics.GroupByYear, analytics.MetricAccepted, filter)
	if err != nil {
		return RegionSummaryResult{}, err
	}
	rates, err := agg.Aggregate(analytics.GroupByYear, analytics.MetricAcceptanceRate, filter)
	if err != nil {
		return RegionSummaryResult{}, err
	}

	res := RegionSummaryResult{Region: region}
	for key, total := range totals {
		year, err := strconv.Atoi(key)
		if err != nil {
			return RegionSummaryResult{}, fmt.Errorf("unexpected year group key %q: %w", key, err)
		}
		row := RegionYearSummary{
			Year:     year,
			Total:    total.Sum,
			Accepted: accepted[key].Sum,
		}
		if rate, ok := rates[key]; ok {
			r := rate.Mean
			row.AcceptanceRate = &r
		}
		res.Years = append(res.Years, row)
	}
	sort.Slice(res.Years, func(i, j int) bool { return res.Years[i].Year < res.Years[j].Year })
	return res, nil
}

// AcceptanceRanking ranks schools by accepted graduates for one year.
func (e *Engine) AcceptanceRanking(year, topN int, order analytics.Order) (RankingResult, error) {
	const op = "acceptance_ranking"
	if err := validYear(op, year); err != nil {
		return RankingResult{}, err
	}
	if order == "" {
		order = analytics.OrderDesc
	}

	years := analytics.YearRange{From: year, To: year}
	entries, err := analytics.NewRanker(e.Dataset()).Rank(analytics.EntitySchool, analytics.MetricAccepted, years, topN, order)
	if err != nil {
		return RankingResult{}, err
	}
	return RankingResult{
		EntityType: analytics.EntitySchool,
		Metric:     analytics.MetricAccepted,
		Years:      years,
		Order:      order,
		Entries:    entries,
	}, nil
}

// TopSchoolsByGender ranks schools by male or female graduate count
// for one year.
func (e *Engine) TopSchoolsByGender(year int, gender string, topN int) (RankingResult, error) {
	const op = "top_schools_by_gender"
	if err := validYear(op, year); err != nil {
		return RankingResult{}, err
	}

	var metric analytics.Metric
	switch gender {
	case "male":
		metric = analytics.MetricMale
	case "female":
		metric = analytics.MetricFemale
	default:
		return RankingResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "gender", Reason: "must be male or female"}
	}

	years := analytics.YearRange{From: year, To: year}
	entries, err := analytics.NewRanker(e.Dataset()).Rank(analytics.EntitySchool, metric, years, topN, analytics.OrderDesc)
	if err != nil {
		return RankingResult{}, err
	}
	return RankingResult{
		EntityType: analytics.EntitySchool,
		Metric:     metric,
		Years:      years,
		Order:      analytics.OrderDesc,
		Entries:    entries,
	}, nil
}

// DetectAnomalies flags outlier years for one entity, or for every
// entity of the type when entityID is analytics.AllEntities. A zero
// sensitivity selects the default threshold.
func (e *Engine) DetectAnomalies(entityType analytics.EntityType, entityID string, metric analytics.Metric, years analytics.YearRange, sensitivity float64) (AnomaliesResult, error) {
	const op = "detect_anomalies"
	if !entityType.Valid() {
		return AnomaliesResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "entity_type", Reason: "must be school or region"}
	}
	if entityID == "" {
		return AnomaliesResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "entity_id", Reason: "required (or \"all\")"}
	}
	if err := validMetric(op, metric); err != nil {
		return AnomaliesResult{}, err
	}
	years, err := normalizeRange(op, years)
	if err != nil {
		return AnomaliesResult{}, err
	}
	if sensitivity == 0 {
		sensitivity = analytics.DefaultSensitivity
	}
	if sensitivity < 0 {
		return AnomaliesResult{}, &analytics.InvalidArgumentError{Op: op, Arg: "sensitivity", Reason: "must be positive"}
	}

	anomalies, err := analytics.NewAnomalyDetector(e.Dataset()).Detect(entityType, entityID, metric, years, sensitivity)
	if err != nil {
		return AnomaliesResult{}, err
	}
	return AnomaliesResult{
		EntityType:  entityType,
		EntityID:    entityID,
		Metric:      metric,
		Years:       years,
		Sensitivity: sensitivity,
		Anomalies:   anomalies,
	}, nil
}
