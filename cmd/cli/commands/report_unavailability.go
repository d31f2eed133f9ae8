package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/services"
)

// ReportUnavailabilityCmd creates the reportUnavailability command
func ReportUnavailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportUnavailability <caregiver_id> <start_date> <end_date>",
		Short: "Report a caregiver unavailable over a date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			requestReplacement, _ := cmd.Flags().GetBool("request-replacement")
			notifyTeam, _ := cmd.Flags().GetBool("notify-team")

			app.Logger.Debug("reportUnavailability command",
				zap.String("caregiver_id", args[0]),
				zap.Bool("request_replacement", requestReplacement),
				zap.Bool("notify_team", notifyTeam))

			record, err := services.ReportUnavailability(app.Ctx, app.Deps, services.UnavailabilityReport{
				CaregiverID:        args[0],
				StartDate:          args[1],
				EndDate:            args[2],
				Reason:             reason,
				RequestReplacement: requestReplacement,
				NotifyTeam:         notifyTeam,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Unavailability recorded!\n\n")
			fmt.Printf("Record ID: %s\n", record.ID)
			fmt.Printf("Caregiver: %s\n", record.CaregiverID)
			fmt.Printf("Dates:     %s to %s\n", record.StartDate, record.EndDate)
			fmt.Printf("Status:    %s\n", record.Status)
			if len(record.AffectedShiftIDs) > 0 {
				fmt.Printf("\nAffected shifts (%d):\n", len(record.AffectedShiftIDs))
				for _, id := range record.AffectedShiftIDs {
					fmt.Printf("  - %s\n", id)
				}
			} else {
				fmt.Println("\nNo assigned shifts affected.")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("reason", "", "Optional reason for the absence")
	cmd.Flags().Bool("request-replacement", false, "Request replacements for affected shifts")
	cmd.Flags().Bool("notify-team", false, "Notify coordinators about the absence")

	return cmd
}

// ResolveUnavailabilityCmd creates the resolveUnavailability command
func ResolveUnavailabilityCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolveUnavailability <record_id>",
		Short: "Mark a reported unavailability as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := services.ResolveUnavailability(app.Ctx, app.Deps, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Unavailability %s resolved (caregiver %s, %s to %s).\n\n",
				record.ID, record.CaregiverID, record.StartDate, record.EndDate)

			return nil
		},
	}
}
