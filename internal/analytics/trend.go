package analytics

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// Direction classifies the sign and strength of a fitted trend.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionFalling Direction = "falling"
	DirectionFlat    Direction = "flat"
)

// TrendFit is the result of a least-squares fit of metric value
// against year.
type TrendFit struct {
	Slope      float64   `json:"slope"`      // metric units per year
	Direction  Direction `json:"direction"`  // rising, falling, or flat
	Confidence float64   `json:"confidence"` // R² of the fit, clamped to [0,1]
	Years      int       `json:"years"`      // distinct years used in the fit
}

// TrendAnalyzer fits long-term trends per entity.
type TrendAnalyzer struct {
	ds *dataset.Dataset
}

// NewTrendAnalyzer creates a TrendAnalyzer reading from ds.
func NewTrendAnalyzer(ds *dataset.Dataset) *TrendAnalyzer {
	return &TrendAnalyzer{ds: ds}
}

// Trend fits an ordinary least-squares line through the entity's
// metric series within the year range. The fit needs at least
// MinTrendYears distinct years with a defined value, otherwise an
// InsufficientDataError is returned. A slope whose magnitude stays
// below FlatTrendThreshold of the series mean per year classifies as
// flat.
func (t *TrendAnalyzer) Trend(entityType EntityType, id string, metric Metric, years YearRange) (*TrendFit, error) {
	if !entityType.Valid() {
		return nil, &InvalidArgumentError{Op: "trend", Arg: "entity_type", Reason: "must be school or region"}
	}
	if !metric.Valid() {
		return nil, &InvalidArgumentError{Op: "trend", Arg: "metric", Reason: "unknown metric " + strconv.Quote(string(metric))}
	}

	points, err := seriesFor(t.ds, entityType, id, metric, years)
	if err != nil {
		return nil, err
	}
	if len(points) < MinTrendYears {
		return nil, &InsufficientDataError{Op: "trend", EntityID: id, Needed: MinTrendYears, Got: len(points)}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Year)
		ys[i] = p.Value
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) {
		// Perfectly flat series: zero variance leaves R² undefined,
		// and the zero-slope fit is exact.
		r2 = 1
	}

	return &TrendFit{
		Slope:      beta,
		Direction:  classifyDirection(beta, stat.Mean(ys, nil)),
		Confidence: clamp01(r2),
		Years:      len(points),
	}, nil
}

// classifyDirection compares the slope against the flat threshold
// relative to the series level. A series hovering around zero has no
// usable level, so any nonzero slope counts.
func classifyDirection(slope, mean float64) Direction {
	threshold := FlatTrendThreshold * math.Abs(mean)
	if math.Abs(slope) <= threshold {
		return DirectionFlat
	}
	if slope > 0 {
		return DirectionRising
	}
	return DirectionFalling
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
