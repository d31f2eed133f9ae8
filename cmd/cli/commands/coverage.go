package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tovahealth/careshift/pkg/core/coverage"
	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/services"
)

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage <start_date> <end_date>",
		Short: "Analyze care coverage over a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.CoverageReport(app.Ctx, app.Deps, args[0], args[1], app.Window, app.Policy)
			if err != nil {
				return err
			}

			fmt.Printf("\nCoverage %s to %s:\n\n", args[0], args[1])
			fmt.Printf("Covered:       %d of %d minutes (%d%%)\n",
				report.Metrics.CoveredMinutes, report.Metrics.TotalMinutes, report.Metrics.CoveragePercentage)
			fmt.Printf("Gaps:          %d (%d critical)\n\n",
				report.Metrics.GapsCount, report.Metrics.CriticalGapsCount)

			fmt.Println("Per day:")
			for _, day := range report.Days {
				fmt.Printf("  %s  %4d min  %3d%%\n", day.Date, day.CoveredMinutes, day.Percentage)
			}
			fmt.Println()

			return nil
		},
	}
}

// GapsCmd creates the gaps command
func GapsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "gaps <start_date> <end_date>",
		Short: "List coverage gaps with replacement suggestions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.CoverageReport(app.Ctx, app.Deps, args[0], args[1], app.Window, app.Policy)
			if err != nil {
				return err
			}

			if len(report.Gaps) == 0 {
				fmt.Printf("\n✓ No coverage gaps between %s and %s.\n\n", args[0], args[1])
				return nil
			}

			fmt.Printf("\nFound %d coverage gaps (%d critical):\n\n",
				report.Metrics.GapsCount, report.Metrics.CriticalGapsCount)
			for _, gap := range report.Gaps {
				printGap(gap)
			}
			fmt.Println()

			return nil
		},
	}
}

func printGap(gap model.CoverageGap) {
	marker := " "
	if gap.Priority == model.GapCritical {
		marker = "!"
	}
	fmt.Printf("  %s %s  %s-%s  %s  (%d min)\n",
		marker, gap.Date, gap.StartTime, gap.EndTime, gap.Priority, gapMinutes(gap))
	if len(gap.SuggestedCaregivers) > 0 {
		fmt.Printf("      suggested: %v\n", gap.SuggestedCaregivers)
	}
}

func gapMinutes(gap model.CoverageGap) int {
	window, err := coverage.ParseWindow(gap.StartTime, gap.EndTime)
	if err != nil {
		return 0
	}
	return window.Minutes()
}
