package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/output"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "List the years covered by the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		output.RenderYears(os.Stdout, engine.Years())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(yearsCmd)
}
