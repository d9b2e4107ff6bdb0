package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	trendSchool string
	trendRegion string
	trendMetric string
	trendFrom   int
	trendTo     int
	trendSeries bool
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Fit a long-term trend for a school or region metric",
	Long: `Fit an ordinary least-squares line through a metric's yearly values
and classify it as rising, falling, or flat. Needs at least three
years of data.`,
	Example: `  # School's total graduates over the full range
  gradstat trend --school 1042 --metric total

  # Region's acceptance rate since 2010
  gradstat trend --region Baku --metric acceptance_rate --from 2010

  # Acceptance-rate series year by year, with the fit
  gradstat trend --school 1042 --series`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (trendSchool == "") == (trendRegion == "") {
			return fmt.Errorf("pass exactly one of --school or --region")
		}

		engine, err := loadEngine()
		if err != nil {
			return err
		}
		years := analytics.YearRange{From: trendFrom, To: trendTo}

		if trendSeries {
			if trendSchool == "" {
				return fmt.Errorf("--series requires --school")
			}
			res, err := engine.AcceptanceRateTrend(trendSchool, years)
			if err != nil {
				return err
			}
			output.RenderRateTrend(os.Stdout, res)
			return nil
		}

		metric := analytics.Metric(trendMetric)
		if trendSchool != "" {
			res, err := engine.SchoolTrend(trendSchool, metric, years)
			if err != nil {
				return err
			}
			output.RenderTrend(os.Stdout, res)
			return nil
		}
		res, err := engine.RegionTrend(trendRegion, metric, years)
		if err != nil {
			return err
		}
		output.RenderTrend(os.Stdout, res)
		return nil
	},
}

func init() {
	trendCmd.Flags().StringVar(&trendSchool, "school", "", "school id")
	trendCmd.Flags().StringVar(&trendRegion, "region", "", "region name")
	trendCmd.Flags().StringVar(&trendMetric, "metric", "total", "metric to fit")
	trendCmd.Flags().IntVar(&trendFrom, "from", 0, "first year of the range")
	trendCmd.Flags().IntVar(&trendTo, "to", 0, "last year of the range")
	trendCmd.Flags().BoolVar(&trendSeries, "series", false, "show the acceptance-rate series with its fit")
	RootCmd.AddCommand(trendCmd)
}
