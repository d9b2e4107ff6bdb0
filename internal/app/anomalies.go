package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/gradstat/internal/analytics"
	"github.com/blackwell-systems/gradstat/internal/output"
)

var (
	anomalySchool      string
	anomalyRegion      string
	anomalyAll         bool
	anomalyMetric      string
	anomalyFrom        int
	anomalyTo          int
	anomalySensitivity float64
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Flag outlier years in a metric's history",
	Long: `Score each year of an entity's metric series against the rest of the
series and flag the years whose deviation exceeds the sensitivity
threshold (in standard deviations).`,
	Example: `  # One school's outlier years
  gradstat anomalies --school 1042 --metric total

  # Every school, stricter threshold
  gradstat anomalies --all --metric accepted --sensitivity 3

  # Regional acceptance-rate outliers since 2010
  gradstat anomalies --region Baku --metric acceptance_rate --from 2010`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			entityType analytics.EntityType
			entityID   string
		)
		switch {
		case anomalySchool != "" && anomalyRegion == "" && !anomalyAll:
			entityType, entityID = analytics.EntitySchool, anomalySchool
		case anomalyRegion != "" && anomalySchool == "" && !anomalyAll:
			entityType, entityID = analytics.EntityRegion, anomalyRegion
		case anomalyAll && anomalySchool == "" && anomalyRegion == "":
			entityType, entityID = analytics.EntitySchool, analytics.AllEntities
		default:
			return fmt.Errorf("pass exactly one of --school, --region, or --all")
		}

		engine, err := loadEngine()
		if err != nil {
			return err
		}

		sensitivity := anomalySensitivity
		if sensitivity == 0 {
			sensitivity = defaultSensitivity()
		}

		res, err := engine.DetectAnomalies(entityType, entityID, analytics.Metric(anomalyMetric),
			analytics.YearRange{From: anomalyFrom, To: anomalyTo}, sensitivity)
		if err != nil {
			return err
		}
		output.RenderAnomalies(os.Stdout, res)
		return nil
	},
}

func init() {
	anomaliesCmd.Flags().StringVar(&anomalySchool, "school", "", "school id")
	anomaliesCmd.Flags().StringVar(&anomalyRegion, "region", "", "region name")
	anomaliesCmd.Flags().BoolVar(&anomalyAll, "all", false, "scan every school")
	anomaliesCmd.Flags().StringVar(&anomalyMetric, "metric", "total", "metric to scan")
	anomaliesCmd.Flags().IntVar(&anomalyFrom, "from", 0, "first year of the range")
	anomaliesCmd.Flags().IntVar(&anomalyTo, "to", 0, "last year of the range")
	anomaliesCmd.Flags().Float64Var(&anomalySensitivity, "sensitivity", 0, "deviation threshold in std devs (default 2.0)")
	RootCmd.AddCommand(anomaliesCmd)
}
