package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tovahealth/careshift/pkg/core/services"
)

// AvailabilityRangeCmd creates the availabilityRange command
func AvailabilityRangeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "availabilityRange <caregiver_id> <start_date> <end_date>",
		Short: "Show a caregiver's explicit availability records over a date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			caregiverID := args[0]

			statuses, err := services.GetAvailabilityRange(app.Ctx, app.Deps, caregiverID, args[1], args[2])
			if err != nil {
				return err
			}

			if len(statuses) == 0 {
				fmt.Printf("\nNo availability records for %s between %s and %s.\n\n", caregiverID, args[1], args[2])
				return nil
			}

			dates := make([]string, 0, len(statuses))
			for date := range statuses {
				dates = append(dates, date)
			}
			sort.Strings(dates)

			fmt.Printf("\nAvailability for %s:\n\n", caregiverID)
			for _, date := range dates {
				fmt.Printf("  %s  %s\n", date, statuses[date])
			}
			fmt.Println()

			return nil
		},
	}
}
