package analytics

import (
	"sort"

	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// Point is one (year, value) observation in an entity's time series.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// seriesFor builds the per-year metric series for one entity within a
// year range, ordered by year. School series take each record's value
// directly; region series pool all of the region's records per year.
// Years where the metric is undefined are skipped.
func seriesFor(ds *dataset.Dataset, entityType EntityType, id string, metric Metric, years YearRange) ([]Point, error) {
	switch entityType {
	case EntitySchool:
		recs, err := ds.SchoolRecords(id)
		if err != nil {
			return nil, err
		}
		var points []Point
		for _, rec := range filterByYear(recs, years) {
			if v, ok := RecordValue(rec, metric); ok {
				points = append(points, Point{Year: rec.Year, Value: v})
			}
		}
		return points, nil

	case EntityRegion:
		recs, err := ds.RegionRecords(id)
		if err != nil {
			return nil, err
		}
		byYear := make(map[int][]dataset.Record)
		for _, rec := range filterByYear(recs, years) {
			byYear[rec.Year] = append(byYear[rec.Year], rec)
		}
		points := make([]Point, 0, len(byYear))
		for year, group := range byYear {
			if v, ok := PooledValue(group, metric); ok {
				points = append(points, Point{Year: year, Value: v})
			}
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
		return points, nil
	}

	return nil, &InvalidArgumentError{Op: "series", Arg: "entity_type", Reason: "must be school or region"}
}
