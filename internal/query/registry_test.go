package query

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/gradstat/internal/analytics"
)

func TestRegistry_CoversEveryOperation(t *testing.T) {
	want := []string{
		"get_years",
		"list_schools",
		"school_year_stats",
		"compare_schools",
		"school_trend",
		"region_summary",
		"acceptance_ranking",
		"gender_gap",
		"zero_acceptance_years",
		"best_year",
		"worst_year",
		"region_trend",
		"acceptance_rate_trend",
		"top_schools_by_gender",
		"improvement_rate",
		"detect_anomalies",
	}

	reg := Registry()
	if len(reg) != len(want) {
		t.Errorf("expected %d operations, got %d", len(want), len(reg))
	}
	for _, name := range want {
		op, ok := reg[name]
		if !ok {
			t.Errorf("missing operation %q", name)
			continue
		}
		if op.Name != name {
			t.Errorf("operation %q registered under key %q", op.Name, name)
		}
		if op.Summary == "" || op.Run == nil {
			t.Errorf("operation %q is incomplete", name)
		}
	}
}

func TestDispatch_UnknownOperation(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	_, err := Dispatch(e, "divine_the_future", Args{})
	var invalid *analytics.InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidArgumentError, got %v", err)
	}
}

func TestDispatch_RunsOperations(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	tests := []struct {
		name string
		op   string
		args Args
	}{
		{"years", "get_years", Args{}},
		{"schools", "list_schools", Args{Region: "North"}},
		{"stats", "school_year_stats", Args{SchoolID: "S1", Year: 2020}},
		{"compare", "compare_schools", Args{SchoolID: "S1", SchoolB: "S2"}},
		{"trend", "school_trend", Args{SchoolID: "S1", Metric: "total"}},
		{"summary", "region_summary", Args{Region: "North"}},
		{"ranking", "acceptance_ranking", Args{Year: 2020, TopN: 10}},
		{"gap", "gender_gap", Args{SchoolID: "S1"}},
		{"zero", "zero_acceptance_years", Args{SchoolID: "S1"}},
		{"best", "best_year", Args{SchoolID: "S1", Metric: "accepted"}},
		{"worst", "worst_year", Args{SchoolID: "S1", Metric: "accepted"}},
		{"gender ranking", "top_schools_by_gender", Args{Year: 2020, Gender: "male", TopN: 3}},
		{"rate trend", "acceptance_rate_trend", Args{SchoolID: "S1"}},
		{"improvement", "improvement_rate", Args{SchoolID: "S1", Metric: "total"}},
		{"anomalies", "detect_anomalies", Args{EntityType: "school", EntityID: "S1", Metric: "total"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Dispatch(e, tt.op, tt.args)
			if err != nil {
				t.Fatalf("Dispatch(%s) failed: %v", tt.op, err)
			}
			if res == nil {
				t.Errorf("Dispatch(%s) returned nil result", tt.op)
			}
		})
	}
}

func TestDispatch_ResultShapes(t *testing.T) {
	e := mustEngine(t, fixtureRows())

	res, err := Dispatch(e, "get_years", Args{})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	years, ok := res.(YearsResult)
	if !ok {
		t.Fatalf("expected YearsResult, got %T", res)
	}
	if len(years.Years) != 3 {
		t.Errorf("expected 3 years, got %v", years.Years)
	}

	res, err = Dispatch(e, "region_trend", Args{Region: "North", Metric: "total"})
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	trend, ok := res.(TrendResult)
	if !ok {
		t.Fatalf("expected TrendResult, got %T", res)
	}
	if trend.Fit == nil || trend.EntityType != analytics.EntityRegion {
		t.Errorf("unexpected trend result: %+v", trend)
	}
}
