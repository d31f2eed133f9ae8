package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/services"
)

// SetAvailabilityCmd creates the setAvailability command
func SetAvailabilityCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setAvailability <caregiver_id> <date> <status>",
		Short: "Set a caregiver's availability status for a date (available, tentative, unavailable)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			caregiverID := args[0]
			date := args[1]
			status := model.AvailabilityStatus(args[2])
			reason, _ := cmd.Flags().GetString("reason")

			app.Logger.Debug("setAvailability command",
				zap.String("caregiver_id", caregiverID),
				zap.String("date", date),
				zap.String("status", string(status)))

			record, err := services.SetAvailabilityStatus(app.Ctx, app.Deps, caregiverID, date, status, reason)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Availability updated!\n\n")
			fmt.Printf("Caregiver: %s\n", record.CaregiverID)
			fmt.Printf("Date:      %s\n", record.Date)
			fmt.Printf("Status:    %s\n", record.Status)
			if record.Reason != "" {
				fmt.Printf("Reason:    %s\n", record.Reason)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("reason", "", "Optional reason for the status")

	return cmd
}
