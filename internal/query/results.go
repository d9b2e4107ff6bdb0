package query

import (
	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// Result types of the facade operations. All are plain data suitable
// for serialization by the dispatch layer.

// YearsResult lists the distinct years present in the dataset.
type YearsResult struct {
	Years []int `json:"years"`
}

// SchoolsResult lists schools, optionally restricted to one region.
type SchoolsResult struct {
	Region  string           `json:"region,omitempty"`
	Schools []dataset.School `json:"schools"`
}

// SchoolYearStatsResult is the full record for one (school, year),
// with the derived acceptance rate alongside (nil when undefined).
type SchoolYearStatsResult struct {
	dataset.Record
	AcceptanceRate *float64 `json:"acceptance_rate"`
}

// ComparisonResult is the per-metric diff between two entities.
type ComparisonResult struct {
	EntityType analytics.EntityType                               `json:"entity_type"`
	IDA        string                                             `json:"id_a"`
	IDB        string                                             `json:"id_b"`
	Years      analytics.YearRange                                `json:"years"`
	Metrics    map[analytics.Metric]analytics.MetricComparison `json:"metrics"`
}

// TrendResult is a fitted trend for one entity and metric.
type TrendResult struct {
	EntityType analytics.EntityType `json:"entity_type"`
	EntityID   string               `json:"entity_id"`
	Metric     analytics.Metric     `json:"metric"`
	Years      analytics.YearRange  `json:"years"`
	Fit        *analytics.TrendFit  `json:"fit"`
}

// RegionYearSummary is one year of a region's pooled statistics.
type RegionYearSummary struct {
	Year           int      `json:"year"`
	Total          float64  `json:"total"`
	Accepted       float64  `json:"accepted"`
	AcceptanceRate *float64 `json:"acceptance_rate"` // nil when the year's total is zero
}

// RegionSummaryResult is a region's per-year pooled statistics.
type RegionSummaryResult struct {
	Region string              `json:"region"`
	Years  []RegionYearSummary `json:"years"`
}

// RankingResult is an ordered ranking of entities by a metric.
type RankingResult struct {
	EntityType analytics.EntityType     `json:"entity_type"`
	Metric     analytics.Metric         `json:"metric"`
	Years      analytics.YearRange      `json:"years"`
	Order      analytics.Order          `json:"order"`
	Entries    []analytics.RankedEntity `json:"entries"`
}

// GapPoint is one year of a school's gender-share gap
// (female share minus male share).
type GapPoint struct {
	Year        int     `json:"year"`
	MaleShare   float64 `json:"male_share"`
	FemaleShare float64 `json:"female_share"`
	Gap         float64 `json:"gap"`
}

// GenderGapResult is a school's gender-share gap series.
type GenderGapResult struct {
	SchoolID string     `json:"school_id"`
	Points   []GapPoint `json:"points"`
}

// ZeroAcceptanceResult lists the years in which a school had zero
// accepted graduates.
type ZeroAcceptanceResult struct {
	SchoolID string           `json:"school_id"`
	Years    []int            `json:"years"`
	Records  []dataset.Record `json:"records"`
}

// ExtremeYearResult is a school's best or worst year by a metric.
type ExtremeYearResult struct {
	SchoolID string           `json:"school_id"`
	Metric   analytics.Metric `json:"metric"`
	Year     int              `json:"year"`
	Value    float64          `json:"value"`
	Record   dataset.Record   `json:"record"`
}

// RateTrendResult is a school's per-year acceptance-rate series with a
// trend fit. Fit is nil when the series is too short to fit.
type RateTrendResult struct {
	SchoolID string              `json:"school_id"`
	Points   []analytics.Point   `json:"points"`
	Fit      *analytics.TrendFit `json:"fit,omitempty"`
}

// Change is one year-over-year step of a metric. Delta is nil for the
// first year of the series.
type Change struct {
	Year  int      `json:"year"`
	Value float64  `json:"value"`
	Delta *float64 `json:"delta"`
}

// ImprovementResult is a school's year-over-year change series.
type ImprovementResult struct {
	SchoolID string           `json:"school_id"`
	Metric   analytics.Metric `json:"metric"`
	Changes  []Change         `json:"changes"`
}

// AnomaliesResult lists the flagged entity-years for one detection run.
type AnomaliesResult struct {
	EntityType  analytics.EntityType `json:"entity_type"`
	EntityID    string               `json:"entity_id"`
	Metric      analytics.Metric     `json:"metric"`
	Years       analytics.YearRange  `json:"years"`
	Sensitivity float64              `json:"sensitivity"`
	Anomalies   []analytics.Anomaly  `json:"anomalies"`
}
