package analytics

// Statistical thresholds for trend classification and anomaly
// detection. Values that shape query results live here as named
// constants rather than literals inside the algorithms.
const (
	// FlatTrendThreshold classifies a fitted slope as flat when its
	// absolute value stays below this fraction of the series mean per
	// year. 0.005 means a series drifting less than 0.5% of its own
	// level per year reads as flat.
	FlatTrendThreshold = 0.005

	// MinTrendYears is the minimum number of distinct years with a
	// defined metric value required to fit a trend line. Two points
	// always fit perfectly; three is the smallest series where the fit
	// quality says anything.
	MinTrendYears = 3

	// DefaultSensitivity is the deviation-score threshold (in standard
	// deviations) above which a year counts as anomalous, used when the
	// caller does not supply one.
	DefaultSensitivity = 2.0

	// minAnomalyPoints is the shortest series the anomaly detector will
	// score. Each point is scored against the rest of its series, and
	// a spread needs at least two other points to exist. Shorter
	// series produce no findings, which is a valid silent non-result.
	minAnomalyPoints = 3

	// degenerateDeviationScore is reported when the rest of a series
	// has zero spread and the scored value still differs, where a
	// z-score would divide by zero. Large enough to outrank any finite
	// score.
	degenerateDeviationScore = 1e9
)
