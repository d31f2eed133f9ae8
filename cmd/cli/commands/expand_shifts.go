package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/recurrence"
	"github.com/tovahealth/careshift/pkg/core/services"
)

// ExpandShiftsCmd creates the expandShifts command
func ExpandShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expandShifts <date> <start_time> <duration_minutes>",
		Short: "Expand a shift template by a recurrence pattern into concrete shifts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("duration_minutes must be a number: %w", err)
			}

			patternType, _ := cmd.Flags().GetString("type")
			interval, _ := cmd.Flags().GetInt("interval")
			weekDays, _ := cmd.Flags().GetIntSlice("week-days")
			occurrences, _ := cmd.Flags().GetInt("occurrences")
			assignedTo, _ := cmd.Flags().GetString("assign")
			tasks, _ := cmd.Flags().GetStringSlice("tasks")
			persist, _ := cmd.Flags().GetBool("persist")
			skipOccupied, _ := cmd.Flags().GetBool("skip-occupied")

			status := model.ShiftOpen
			if assignedTo != "" {
				status = model.ShiftScheduled
			}

			pattern := model.RecurrencePattern{
				Type:        model.RecurrenceType(patternType),
				Interval:    interval,
				WeekDays:    weekDays,
				Occurrences: occurrences,
			}
			if err := model.ValidateRecurrencePattern(&pattern); err != nil {
				return err
			}

			app.Logger.Debug("expandShifts command",
				zap.String("type", patternType),
				zap.Int("occurrences", occurrences),
				zap.Bool("persist", persist))

			result, err := services.ExpandShifts(app.Ctx, app.Deps, services.ExpandRequest{
				Template: recurrence.Template{
					Date:            args[0],
					StartTime:       args[1],
					DurationMinutes: duration,
					AssignedTo:      assignedTo,
					Status:          status,
					Tasks:           tasks,
				},
				Pattern:      pattern,
				Persist:      persist,
				SkipOccupied: skipOccupied,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Expanded %d shift instances:\n\n", len(result.Instances))
			for _, instance := range result.Instances {
				fmt.Printf("  %s %s-%s\n", instance.Date, instance.StartTime, instance.EndTime)
			}

			if persist {
				fmt.Printf("\nStored %d shifts", len(result.Created))
				if len(result.Skipped) > 0 {
					fmt.Printf(", skipped %d already-covered dates: %v", len(result.Skipped), result.Skipped)
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("type", "weekly", "Recurrence type (daily or weekly)")
	cmd.Flags().Int("interval", 1, "Interval between occurrences")
	cmd.Flags().IntSlice("week-days", nil, "Weekdays for weekly patterns (1=Monday .. 7=Sunday)")
	cmd.Flags().Int("occurrences", 1, "Total number of instances to produce")
	cmd.Flags().String("assign", "", "Caregiver to assign every instance to")
	cmd.Flags().StringSlice("tasks", nil, "Comma-separated care tasks for each instance")
	cmd.Flags().Bool("persist", false, "Store the produced instances")
	cmd.Flags().Bool("skip-occupied", false, "With --persist, skip instances already covered for the assignee")

	return cmd
}
