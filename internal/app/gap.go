package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	gapSchool string
	gapFrom   int
	gapTo     int
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Show a school's gender-share gap per year",
	Example: `  gradstat gap --school 1042
  gradstat gap --school 1042 --from 2015`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.GenderGap(gapSchool, analytics.YearRange{From: gapFrom, To: gapTo})
		if err != nil {
			return err
		}
		output.RenderGenderGap(os.Stdout, res)
		return nil
	},
}

func init() {
	gapCmd.Flags().StringVar(&gapSchool, "school", "", "school id")
	gapCmd.Flags().IntVar(&gapFrom, "from", 0, "first year of the range")
	gapCmd.Flags().IntVar(&gapTo, "to", 0, "last year of the range")
	RootCmd.AddCommand(gapCmd)
}
