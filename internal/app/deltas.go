package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	deltasSchool string
	deltasMetric string
	deltasFrom   int
	deltasTo     int
)

var deltasCmd = &cobra.Command{
	Use:   "deltas",
	Short: "Show a school metric's year-over-year changes",
	Example: `  gradstat deltas --school 1042 --metric accepted
  gradstat deltas --school 1042 --metric total --from 2010`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.ImprovementRate(deltasSchool, analytics.Metric(deltasMetric),
			analytics.YearRange{From: deltasFrom, To: deltasTo})
		if err != nil {
			return err
		}
		output.RenderImprovement(os.Stdout, res)
		return nil
	},
}

func init() {
	deltasCmd.Flags().StringVar(&deltasSchool, "school", "", "school id")
	deltasCmd.Flags().StringVar(&deltasMetric, "metric", "total", "metric to difference")
	deltasCmd.Flags().IntVar(&deltasFrom, "from", 0, "first year of the range")
	deltasCmd.Flags().IntVar(&deltasTo, "to", 0, "last year of the range")
	RootCmd.AddCommand(deltasCmd)
}
