package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ListCaregiversCmd creates the listCaregivers command
func ListCaregiversCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCaregivers",
		Short: "List the configured care team roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caregivers := app.Deps.Roster.ListCaregivers()

			fmt.Printf("\nFound %d caregivers:\n\n", len(caregivers))
			for _, caregiver := range caregivers {
				fmt.Printf("- %s (%s) - %s\n", caregiver.Name, caregiver.ID, caregiver.Role)
			}
			fmt.Println()

			return nil
		},
	}
}

// ListShiftsCmd creates the listShifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listShifts <start_date> <end_date>",
		Short: "List shifts in a date range, ordered by date then start time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caregiverID, _ := cmd.Flags().GetString("caregiver")

			if caregiverID != "" {
				listed, err := app.Deps.Shifts.ListForCaregiver(app.Ctx, caregiverID, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Printf("\nFound %d shifts for %s:\n\n", len(listed), caregiverID)
				for _, shift := range listed {
					printShift(shift)
				}
				fmt.Println()
				return nil
			}

			listed, err := app.Deps.Shifts.ListInRange(app.Ctx, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d shifts:\n\n", len(listed))
			for _, shift := range listed {
				printShift(shift)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("caregiver", "", "Only shifts assigned to this caregiver")

	return cmd
}
