package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/services"
)

// AssignShiftCmd creates the assign command
func AssignShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <shift_id> <caregiver_id>",
		Short: "Assign an open shift to a caregiver",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			app.Logger.Debug("assign command",
				zap.String("shift_id", args[0]),
				zap.String("caregiver_id", args[1]),
				zap.Bool("force", force))

			shift, err := services.AssignShift(app.Ctx, app.Deps, args[0], args[1], force)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift assigned!\n\n")
			printShift(*shift)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Assign even when the caregiver has a conflicting shift")

	return cmd
}

// UnassignShiftCmd creates the unassign command
func UnassignShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <shift_id>",
		Short: "Remove a shift's caregiver and reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shift, err := services.UnassignShift(app.Ctx, app.Deps, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift unassigned!\n\n")
			printShift(*shift)
			fmt.Println()

			return nil
		},
	}
}

// BulkAssignCmd creates the bulkAssign command
func BulkAssignCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bulkAssign <caregiver_id> <shift_id> [shift_id ...]",
		Short: "Assign several shifts to one caregiver, reporting per-shift outcomes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caregiverID := args[0]
			shiftIDs := args[1:]

			results := services.BulkAssignShifts(app.Ctx, app.Deps, shiftIDs, caregiverID)

			succeeded := 0
			fmt.Println()
			for _, result := range results {
				if result.Err != nil {
					fmt.Printf("  ✗ %s: %v\n", result.ShiftID, result.Err)
					continue
				}
				succeeded++
				fmt.Printf("  ✓ %s: %s %s-%s\n",
					result.ShiftID, result.Shift.Date, result.Shift.StartTime, result.Shift.EndTime)
			}
			fmt.Printf("\nAssigned %d of %d shifts to %s.\n\n", succeeded, len(results), caregiverID)

			return nil
		},
	}
}

// CheckAvailabilityCmd creates the checkAvailability command
func CheckAvailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkAvailability <caregiver_id> <shift_id>",
		Short: "Check whether a caregiver is free to take a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			available, err := services.CheckAvailability(app.Ctx, app.Deps, args[0], args[1])
			if err != nil {
				return err
			}

			if available {
				fmt.Printf("\n✓ %s is available for shift %s.\n\n", args[0], args[1])
			} else {
				fmt.Printf("\n✗ %s has a conflicting shift overlapping %s.\n\n", args[0], args[1])
			}

			return nil
		},
	}
}
