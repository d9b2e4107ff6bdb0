package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
	"github.com/blackwell-systems/gradstat/internal/query"
)

var (
	rankYear   int
	rankTop    int
	rankAsc    bool
	rankGender string
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank schools by accepted graduates for a year",
	Example: `  # Top 10 schools by accepted graduates in 2023
  gradstat rank --year 2023

  # Bottom of the table
  gradstat rank --year 2023 --asc

  # Top schools by female graduates
  gradstat rank --year 2023 --gender female`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}

		var res query.RankingResult
		if rankGender != "" {
			res, err = engine.TopSchoolsByGender(rankYear, rankGender, rankTop)
		} else {
			order := analytics.OrderDesc
			if rankAsc {
				order = analytics.OrderAsc
			}
			res, err = engine.AcceptanceRanking(rankYear, rankTop, order)
		}
		if err != nil {
			return err
		}
		output.RenderRanking(os.Stdout, res)
		return nil
	},
}

func init() {
	rankCmd.Flags().IntVar(&rankYear, "year", 0, "year to rank")
	rankCmd.Flags().IntVar(&rankTop, "top", 10, "number of entries")
	rankCmd.Flags().BoolVar(&rankAsc, "asc", false, "rank ascending instead of descending")
	rankCmd.Flags().StringVar(&rankGender, "gender", "", "rank by male or female graduate count")
	RootCmd.AddCommand(rankCmd)
}
