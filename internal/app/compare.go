package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	compareA       string
	compareB       string
	compareMetrics []string
	compareYear    int
	compareFrom    int
	compareTo      int
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two schools metric by metric",
	Example: `  # All metrics for one year
  gradstat compare --a 1042 --b 2077 --year 2023

  # Selected metrics over a range
  gradstat compare --a 1042 --b 2077 --from 2015 --to 2023 --metric total --metric acceptance_rate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}

		years := analytics.YearRange{From: compareFrom, To: compareTo}
		if compareYear != 0 {
			years = analytics.YearRange{From: compareYear, To: compareYear}
		}

		metrics := make([]analytics.Metric, 0, len(compareMetrics))
		for _, m := range compareMetrics {
			metrics = append(metrics, analytics.Metric(m))
		}

		res, err := engine.CompareSchools(compareA, compareB, metrics, years)
		if err != nil {
			return err
		}
		output.RenderComparison(os.Stdout, res)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareA, "a", "", "first school id")
	compareCmd.Flags().StringVar(&compareB, "b", "", "second school id")
	compareCmd.Flags().StringArrayVar(&compareMetrics, "metric", nil, "metric to compare (repeatable; default all)")
	compareCmd.Flags().IntVar(&compareYear, "year", 0, "single year to compare")
	compareCmd.Flags().IntVar(&compareFrom, "from", 0, "first year of the range")
	compareCmd.Flags().IntVar(&compareTo, "to", 0, "last year of the range")
	RootCmd.AddCommand(compareCmd)
}
