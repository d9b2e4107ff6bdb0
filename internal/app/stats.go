package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	statsSchool string
	statsYear   int
	statsMetric string
	statsBest   bool
	statsWorst  bool
	statsZero   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for one school",
	Long: `Show one school-year record, or a school's best/worst year by a
metric, or its zero-acceptance years.`,
	Example: `  # One school-year record
  gradstat stats --school 1042 --year 2020

  # Best and worst years by accepted graduates
  gradstat stats --school 1042 --best --metric accepted
  gradstat stats --school 1042 --worst --metric accepted

  # Years with zero accepted graduates
  gradstat stats --school 1042 --zero`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsSchool, "school", "", "school id")
	statsCmd.Flags().IntVar(&statsYear, "year", 0, "year of the record")
	statsCmd.Flags().StringVar(&statsMetric, "metric", "total", "metric for --best/--worst")
	statsCmd.Flags().BoolVar(&statsBest, "best", false, "show the school's best year by --metric")
	statsCmd.Flags().BoolVar(&statsWorst, "worst", false, "show the school's worst year by --metric")
	statsCmd.Flags().BoolVar(&statsZero, "zero", false, "show the school's zero-acceptance years")
	RootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	switch {
	case statsBest:
		res, err := engine.BestYear(statsSchool, analytics.Metric(statsMetric))
		if err != nil {
			return err
		}
		output.RenderExtremeYear(os.Stdout, "Best", res)
	case statsWorst:
		res, err := engine.WorstYear(statsSchool, analytics.Metric(statsMetric))
		if err != nil {
			return err
		}
		output.RenderExtremeYear(os.Stdout, "Worst", res)
	case statsZero:
		res, err := engine.ZeroAcceptanceYears(statsSchool)
		if err != nil {
			return err
		}
		output.RenderZeroYears(os.Stdout, res)
	default:
		if statsYear == 0 {
			return fmt.Errorf("pass --year, or one of --best, --worst, --zero")
		}
		res, err := engine.SchoolYearStats(statsSchool, statsYear)
		if err != nil {
			return err
		}
		output.RenderRecord(os.Stdout, res)
	}
	return nil
}
