package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tovahealth/careshift/pkg/core/model"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeeklyTemplateCmd creates the weeklyTemplate command with get/set
// subcommands
func WeeklyTemplateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeklyTemplate",
		Short: "Manage a caregiver's recurring weekly availability template",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <caregiver_id>",
		Short: "Show the caregiver's weekly template (falls back to the default pattern)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := app.Deps.Availability.GetWeeklyTemplate(app.Ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nWeekly template for %s:\n\n", args[0])
			printTemplate(template)
			fmt.Println()

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <caregiver_id> <day=start-end> [day=start-end ...]",
		Short: "Replace the caregiver's weekly template (day 0=Sunday .. 6=Saturday)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caregiverID := args[0]

			template, err := parseTemplateSlots(args[1:])
			if err != nil {
				return err
			}
			if err := model.ValidateWeeklyTemplate(&template); err != nil {
				return err
			}

			if err := app.Deps.Availability.SetWeeklyTemplate(app.Ctx, caregiverID, template); err != nil {
				return err
			}

			fmt.Printf("\n✓ Weekly template updated for %s!\n\n", caregiverID)
			printTemplate(template)
			fmt.Println()

			return nil
		},
	})

	return cmd
}

// parseTemplateSlots parses "day=HH:MM-HH:MM" arguments into a template.
// Repeating a day adds another slot to it.
func parseTemplateSlots(specs []string) (model.WeeklyTemplate, error) {
	slots := make(map[int][]model.TimeSlot)
	for _, spec := range specs {
		dayPart, timePart, ok := strings.Cut(spec, "=")
		if !ok {
			return model.WeeklyTemplate{}, fmt.Errorf("invalid slot %q: expected day=start-end", spec)
		}

		day, err := strconv.Atoi(dayPart)
		if err != nil || day < 0 || day > 6 {
			return model.WeeklyTemplate{}, fmt.Errorf("invalid weekday %q: expected 0 (Sunday) to 6 (Saturday)", dayPart)
		}

		start, end, ok := strings.Cut(timePart, "-")
		if !ok {
			return model.WeeklyTemplate{}, fmt.Errorf("invalid slot %q: expected day=start-end", spec)
		}

		slots[day] = append(slots[day], model.TimeSlot{Start: start, End: end})
	}

	return model.WeeklyTemplate{Slots: slots}, nil
}

func printTemplate(template model.WeeklyTemplate) {
	days := make([]int, 0, len(template.Slots))
	for day := range template.Slots {
		days = append(days, day)
	}
	sort.Ints(days)

	for _, day := range days {
		parts := make([]string, 0, len(template.Slots[day]))
		for _, slot := range template.Slots[day] {
			parts = append(parts, fmt.Sprintf("%s-%s", slot.Start, slot.End))
		}
		fmt.Printf("  %-9s %s\n", weekdayNames[day], strings.Join(parts, ", "))
	}
}
