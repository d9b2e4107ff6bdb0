package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// AllEntities requests anomaly detection across every entity of the
// chosen type instead of a single id.
const AllEntities = "all"

// Anomaly is one flagged observation: an entity-year whose value
// deviates from the rest of the entity's series by more than the
// sensitivity threshold.
type Anomaly struct {
	EntityID string  `json:"entity_id"`
	Year     int     `json:"year"`
	Value    float64 `json:"value"`
	Score    float64 `json:"deviation_score"`
	Reason   string  `json:"reason"`
}

// AnomalyDetector flags outlier years in entity time series.
type AnomalyDetector struct {
	ds *dataset.Dataset
}

// NewAnomalyDetector creates an AnomalyDetector reading from ds.
func NewAnomalyDetector(ds *dataset.Dataset) *AnomalyDetector {
	return &AnomalyDetector{ds: ds}
}

// Detect scores each year of the entity's metric series (or of every
// entity's series when id is AllEntities) and returns the years whose
// deviation score exceeds sensitivity, ordered by score descending,
// ties by year then entity id ascending.
//
// Each value is scored against the mean and standard deviation of the
// other points in its own series (leave-one-out). Scoring a point
// against statistics that include the point itself masks exactly the
// spikes worth finding in series this short; leaving it out keeps the
// baseline honest. Series with fewer than minAnomalyPoints points in
// range produce no findings, which is a valid silent non-result.
func (d *AnomalyDetector) Detect(entityType EntityType, id string, metric Metric, years YearRange, sensitivity float64) ([]Anomaly, error) {
	if !entityType.Valid() {
		return nil, &InvalidArgumentError{Op: "detect_anomalies", Arg: "entity_type", Reason: "must be school or region"}
	}
	if !metric.Valid() {
		return nil, &InvalidArgumentError{Op: "detect_anomalies", Arg: "metric", Reason: "unknown metric " + strconv.Quote(string(metric))}
	}
	if sensitivity <= 0 {
		return nil, &InvalidArgumentError{Op: "detect_anomalies", Arg: "sensitivity", Reason: "must be positive"}
	}

	var ids []string
	if id == AllEntities {
		switch entityType {
		case EntitySchool:
			for _, sch := range d.ds.Schools() {
				ids = append(ids, sch.ID)
			}
		case EntityRegion:
			ids = d.ds.Regions()
		}
	} else {
		ids = []string{id}
	}

	var found []Anomaly
	for _, entityID := range ids {
		points, err := seriesFor(d.ds, entityType, entityID, metric, years)
		if err != nil {
			return nil, err
		}
		found = append(found, scoreSeries(entityID, metric, points, sensitivity)...)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Score != found[j].Score {
			return found[i].Score > found[j].Score
		}
		if found[i].Year != found[j].Year {
			return found[i].Year < found[j].Year
		}
		return found[i].EntityID < found[j].EntityID
	})
	return found, nil
}

// scoreSeries computes the leave-one-out deviation score for every
// point of one series and keeps the points above the threshold.
func scoreSeries(entityID string, metric Metric, points []Point, sensitivity float64) []Anomaly {
	if len(points) < minAnomalyPoints {
		return nil
	}

	var out []Anomaly
	rest := make([]float64, 0, len(points)-1)
	for i, p := range points {
		rest = rest[:0]
		for j, q := range points {
			if j != i {
				rest = append(rest, q.Value)
			}
		}

		mean := stat.Mean(rest, nil)
		sd := stat.StdDev(rest, nil)

		var score float64
		switch {
		case sd > 0:
			score = (p.Value - mean) / sd
			if score < 0 {
				score = -score
			}
		case p.Value != mean:
			score = degenerateDeviationScore
		}

		if score > sensitivity {
			side := "above"
			if p.Value < mean {
				side = "below"
			}
			out = append(out, Anomaly{
				EntityID: entityID,
				Year:     p.Year,
				Value:    p.Value,
				Score:    score,
				Reason: fmt.Sprintf("%s %.4g in %d is %.1f std devs %s the rest of the series (mean %.4g)",
					metric, p.Value, p.Year, score, side, mean),
			})
		}
	}
	return out
}
