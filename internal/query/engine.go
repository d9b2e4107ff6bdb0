// Package query is the single entry point of the analytics engine: it
// exposes the sixteen named operations as typed methods on Engine,
// validates every argument once at this boundary, and delegates to the
// analytics services. The external dispatch layer calls nothing below
// this package.
package query

import (
	"fmt"
	"sync/atomic"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/dataset"
)

// Engine holds the process-wide dataset handle. The dataset itself is
// immutable; Swap replaces the handle atomically, so a concurrent query
// sees either the old dataset or the fully built new one, never a
// partial state.
type Engine struct {
	ds atomic.Pointer[dataset.Dataset]
}

// New creates an Engine over a loaded dataset.
func New(ds *dataset.Dataset) *Engine {
	e := &Engine{}
	e.ds.Store(ds)
	return e
}

// Swap atomically replaces the dataset. Callers must pass a fully
// built dataset; queries in flight keep reading the one they started
// with.
func (e *Engine) Swap(ds *dataset.Dataset) {
	e.ds.Store(ds)
}

// Dataset returns the current dataset snapshot.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.ds.Load()
}

// normalizeRange fills open bounds with the dataset's year limits and
// validates the result. The zero range means "all years".
func normalizeRange(op string, years analytics.YearRange) (analytics.YearRange, error) {
	if years.From == 0 {
		years.From = dataset.MinYear
	}
	if years.To == 0 {
		years.To = dataset.MaxYear
	}
	if years.From < dataset.MinYear || years.From > dataset.MaxYear {
		return years, &analytics.InvalidArgumentError{
			Op: op, Arg: "from_year",
			Reason: fmt.Sprintf("%d outside %d-%d", years.From, dataset.MinYear, dataset.MaxYear),
		}
	}
	if years.To < dataset.MinYear || years.To > dataset.MaxYear {
		return years, &analytics.InvalidArgumentError{
			Op: op, Arg: "to_year",
			Reason: fmt.Sprintf("%d outside %d-%d", years.To, dataset.MinYear, dataset.MaxYear),
		}
	}
	if years.From > years.To {
		return years, &analytics.InvalidArgumentError{
			Op: op, Arg: "from_year",
			Reason: fmt.Sprintf("range start %d after end %d", years.From, years.To),
		}
	}
	return years, nil
}

func validYear(op string, year int) error {
	if year < dataset.MinYear || year > dataset.MaxYear {
		return &analytics.InvalidArgumentError{
			Op: op, Arg: "year",
			Reason: fmt.Sprintf("%d outside %d-%d", year, dataset.MinYear, dataset.MaxYear),
		}
	}
	return nil
}

func validMetric(op string, m analytics.Metric) error {
	if !m.Valid() {
		return &analytics.InvalidArgumentError{
			Op: op, Arg: "metric",
			Reason: fmt.Sprintf("unknown metric %q", string(m)),
		}
	}
	return nil
}

func validSchool(op string, id string) error {
	if id == "" {
		return &analytics.InvalidArgumentError{Op: op, Arg: "school_id", Reason: "required"}
	}
	return nil
}
