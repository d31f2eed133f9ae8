package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tovahealth/careshift/pkg/core/model"
)

// AddShiftCmd creates the addShift command
func AddShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addShift <date> <start_time> <end_time>",
		Short: "Create a single shift (end before start means overnight)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignedTo, _ := cmd.Flags().GetString("assign")
			tasks, _ := cmd.Flags().GetStringSlice("tasks")

			shift := &model.Shift{
				Date:       args[0],
				StartTime:  args[1],
				EndTime:    args[2],
				AssignedTo: assignedTo,
				Status:     model.ShiftOpen,
				Tasks:      tasks,
			}
			if assignedTo != "" {
				shift.Status = model.ShiftScheduled
			}
			if err := model.ValidateShift(shift); err != nil {
				return err
			}

			stored, err := app.Deps.Shifts.Insert(app.Ctx, shift)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Shift created!\n\n")
			printShift(*stored)
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("assign", "", "Caregiver to assign the shift to")
	cmd.Flags().StringSlice("tasks", nil, "Comma-separated care tasks for the shift")

	return cmd
}

func printShift(shift model.Shift) {
	assignee := shift.AssignedTo
	if assignee == "" {
		assignee = "(unassigned)"
	}
	fmt.Printf("  %s  %s %s-%s  %-12s %s\n",
		shift.ID, shift.Date, shift.StartTime, shift.EndTime, shift.Status, assignee)
}
