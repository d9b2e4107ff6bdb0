// Package output renders query results as terminal tables. Colors are
// emitted only when stdout is a TTY and NO_COLOR is unset; piped
// output stays plain.
package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/dataset"
	"github.com/blackwell-systems/gradstat/internal/query"
)

// ColorEnabled reports whether ANSI colors should be emitted, and
// syncs the color package's global switch to match.
func ColorEnabled() bool {
	enabled := os.Getenv("NO_COLOR") == "" && isatty.IsTerminal(os.Stdout.Fd())
	color.NoColor = !enabled
	return enabled
}

var heading = color.New(color.FgYellow, color.Bold)

func printHeading(w io.Writer, format string, args ...any) {
	ColorEnabled()
	heading.Fprintf(w, format+"\n", args...)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(headers)
	t.SetAutoWrapText(false)
	return t
}

// RenderLoadReport prints the outcome of a dataset load: accepted row
// count plus every rejection reason.
func RenderLoadReport(w io.Writer, report *dataset.LoadReport, parseRejects []dataset.RowError) {
	fmt.Fprintf(w, "Loaded %d records", report.Accepted)
	rejected := len(report.Rejected) + len(parseRejects)
	if rejected > 0 {
		fmt.Fprintf(w, " (%d rows rejected)", rejected)
	}
	fmt.Fprintln(w)

	if rejected == 0 {
		return
	}
	t := newTable(w, []string{"Row", "School", "Reason"})
	for _, re := range parseRejects {
		t.Append([]string{strconv.Itoa(re.Row), re.SchoolID, re.Reason})
	}
	for _, re := range report.Rejected {
		t.Append([]string{strconv.Itoa(re.Row), re.SchoolID, re.Reason})
	}
	t.Render()
}

// RenderYears prints the dataset's year coverage.
func RenderYears(w io.Writer, res query.YearsResult) {
	printHeading(w, "Years (%d)", len(res.Years))
	for _, y := range res.Years {
		fmt.Fprintln(w, y)
	}
}

// RenderSchools prints a school directory table.
func RenderSchools(w io.Writer, res query.SchoolsResult) {
	if res.Region != "" {
		printHeading(w, "Schools in %s", res.Region)
	} else {
		printHeading(w, "Schools")
	}
	t := newTable(w, []string{"ID", "Name", "Region"})
	for _, sch := range res.Schools {
		t.Append([]string{sch.ID, sch.Name, sch.Region})
	}
	t.Render()
	fmt.Fprintf(w, "%d schools\n", len(res.Schools))
}

// RenderRecord prints one school-year record.
func RenderRecord(w io.Writer, res query.SchoolYearStatsResult) {
	printHeading(w, "%s (%s) — %d", res.SchoolName, res.SchoolID, res.Year)
	t := newTable(w, []string{"Metric", "Value"})
	t.Append([]string{"region", res.Region})
	t.Append([]string{"male", strconv.Itoa(res.MaleCount)})
	t.Append([]string{"female", strconv.Itoa(res.FemaleCount)})
	t.Append([]string{"total", strconv.Itoa(res.TotalCount)})
	t.Append([]string{"accepted", strconv.Itoa(res.AcceptedCount)})
	t.Append([]string{"acceptance_rate", formatOptRate(res.AcceptanceRate)})
	t.Render()
}

// RenderRanking prints a ranking table.
func RenderRanking(w io.Writer, res query.RankingResult) {
	printHeading(w, "Top %s by %s, %s", res.EntityType, res.Metric, formatRange(res.Years))
	t := newTable(w, []string{"Rank", "ID", "Name", "Value"})
	for _, e := range res.Entries {
		t.Append([]string{strconv.Itoa(e.Rank), e.EntityID, e.Name, formatValue(e.Value)})
	}
	t.Render()
}

// RenderTrend prints a fitted trend.
func RenderTrend(w io.Writer, res query.TrendResult) {
	printHeading(w, "Trend: %s %s, %s %s", res.EntityType, res.EntityID, res.Metric, formatRange(res.Years))
	fit := res.Fit
	fmt.Fprintf(w, "%s  slope %+.4g/year over %d years (R² %.2f)\n",
		directionArrow(fit.Direction), fit.Slope, fit.Years, fit.Confidence)
}

// RenderRateTrend prints an acceptance-rate series and its fit.
func RenderRateTrend(w io.Writer, res query.RateTrendResult) {
	printHeading(w, "Acceptance rate: school %s", res.SchoolID)
	t := newTable(w, []string{"Year", "Rate"})
	for _, p := range res.Points {
		t.Append([]string{strconv.Itoa(p.Year), fmt.Sprintf("%.1f%%", 100*p.Value)})
	}
	t.Render()
	if res.Fit != nil {
		fmt.Fprintf(w, "%s  slope %+.4g/year (R² %.2f)\n",
			directionArrow(res.Fit.Direction), res.Fit.Slope, res.Fit.Confidence)
	}
}

// RenderGenderGap prints a gender-share gap series.
func RenderGenderGap(w io.Writer, res query.GenderGapResult) {
	printHeading(w, "Gender gap: school %s", res.SchoolID)
	t := newTable(w, []string{"Year", "Male share", "Female share", "Gap"})
	for _, p := range res.Points {
		t.Append([]string{
			strconv.Itoa(p.Year),
			fmt.Sprintf("%.1f%%", 100*p.MaleShare),
			fmt.Sprintf("%.1f%%", 100*p.FemaleShare),
			fmt.Sprintf("%+.1f pp", 100*p.Gap),
		})
	}
	t.Render()
}

// RenderZeroYears prints a school's zero-acceptance years.
func RenderZeroYears(w io.Writer, res query.ZeroAcceptanceResult) {
	printHeading(w, "Zero-acceptance years: school %s", res.SchoolID)
	if len(res.Years) == 0 {
		fmt.Fprintln(w, "none")
		return
	}
	t := newTable(w, []string{"Year", "Graduates"})
	for _, rec := range res.Records {
		t.Append([]string{strconv.Itoa(rec.Year), strconv.Itoa(rec.TotalCount)})
	}
	t.Render()
}

// RenderExtremeYear prints a best/worst year result.
func RenderExtremeYear(w io.Writer, label string, res query.ExtremeYearResult) {
	printHeading(w, "%s year: school %s by %s", label, res.SchoolID, res.Metric)
	fmt.Fprintf(w, "%d — %s %s (male %d, female %d, accepted %d)\n",
		res.Year, res.Metric, formatValue(res.Value),
		res.Record.MaleCount, res.Record.FemaleCount, res.Record.AcceptedCount)
}

// RenderImprovement prints a year-over-year change series.
func RenderImprovement(w io.Writer, res query.ImprovementResult) {
	printHeading(w, "Year-over-year %s: school %s", res.Metric, res.SchoolID)
	t := newTable(w, []string{"Year", "Value", "Change"})
	for _, c := range res.Changes {
		delta := "—"
		if c.Delta != nil {
			delta = fmt.Sprintf("%+g", *c.Delta)
		}
		t.Append([]string{strconv.Itoa(c.Year), formatValue(c.Value), delta})
	}
	t.Render()
}

// RenderRegionSummary prints a region's per-year pooled statistics.
func RenderRegionSummary(w io.Writer, res query.RegionSummaryResult) {
	printHeading(w, "Region summary: %s", res.Region)
	t := newTable(w, []string{"Year", "Total", "Accepted", "Acceptance rate"})
	for _, row := range res.Years {
		t.Append([]string{
			strconv.Itoa(row.Year),
			formatValue(row.Total),
			formatValue(row.Accepted),
			formatOptRate(row.AcceptanceRate),
		})
	}
	t.Render()
}

// RenderComparison prints a two-entity metric diff.
func RenderComparison(w io.Writer, res query.ComparisonResult) {
	printHeading(w, "Compare %s vs %s, %s", res.IDA, res.IDB, formatRange(res.Years))
	t := newTable(w, []string{"Metric", res.IDA, res.IDB, "Delta", "Change"})

	metrics := make([]analytics.Metric, 0, len(res.Metrics))
	for m := range res.Metrics {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i] < metrics[j] })

	for _, m := range metrics {
		cmp := res.Metrics[m]
		pct := "—"
		if cmp.PctChange != nil {
			pct = fmt.Sprintf("%+.1f%%", *cmp.PctChange)
		}
		t.Append([]string{
			string(m),
			formatValue(cmp.ValueA),
			formatValue(cmp.ValueB),
			fmt.Sprintf("%+g", cmp.Delta),
			pct,
		})
	}
	t.Render()
}

// RenderAnomalies prints flagged entity-years.
func RenderAnomalies(w io.Writer, res query.AnomaliesResult) {
	printHeading(w, "Anomalies: %s %s, %s %s (sensitivity %.1f)",
		res.EntityType, res.EntityID, res.Metric, formatRange(res.Years), res.Sensitivity)
	if len(res.Anomalies) == 0 {
		fmt.Fprintln(w, "no anomalies found")
		return
	}
	t := newTable(w, []string{"Entity", "Year", "Value", "Score", "Reason"})
	for _, a := range res.Anomalies {
		t.Append([]string{
			a.EntityID,
			strconv.Itoa(a.Year),
			formatValue(a.Value),
			fmt.Sprintf("%.2f", a.Score),
			a.Reason,
		})
	}
	t.Render()
}

func formatValue(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatOptRate(rate *float64) string {
	if rate == nil {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", 100**rate)
}

func formatRange(r analytics.YearRange) string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

func directionArrow(d analytics.Direction) string {
	switch d {
	case analytics.DirectionRising:
		return "↑ rising"
	case analytics.DirectionFalling:
		return "↓ falling"
	default:
		return "→ flat"
	}
}
