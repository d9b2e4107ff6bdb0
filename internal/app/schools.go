package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/output"
)

var schoolsRegion string

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "List schools, optionally filtered by region",
	Example: `  # All schools
  gradstat schools

  # Schools of one region
  gradstat schools --region Baku`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.Schools(schoolsRegion)
		if err != nil {
			return err
		}
		output.RenderSchools(os.Stdout, res)
		return nil
	},
}

func init() {
	schoolsCmd.Flags().StringVar(&schoolsRegion, "region", "", "restrict to one region")
	RootCmd.AddCommand(schoolsCmd)
}
