package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	regionName string
	regionFrom int
	regionTo   int
)

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Summarize a region's pooled statistics per year",
	Example: `  # Full history
  gradstat region --name Baku

  # Recent years only
  gradstat region --name Baku --from 2018`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.RegionSummary(regionName, analytics.YearRange{From: regionFrom, To: regionTo})
		if err != nil {
			return err
		}
		output.RenderRegionSummary(os.Stdout, res)
		return nil
	},
}

func init() {
	regionCmd.Flags().StringVar(&regionName, "name", "", "region name")
	regionCmd.Flags().IntVar(&regionFrom, "from", 0, "first year of the range")
	regionCmd.Flags().IntVar(&regionTo, "to", 0, "last year of the range")
	RootCmd.AddCommand(regionCmd)
}
