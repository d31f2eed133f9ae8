// Package services orchestrates the scheduling engine's operations: each
// service reads through the store interfaces, computes with the core
// packages, and expresses side effects through the injected notification
// sink. Nothing here calls back into any caller or UI layer.
package services

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/db"
	"github.com/tovahealth/careshift/pkg/notify"
	"github.com/tovahealth/careshift/pkg/roster"
)

// ErrSchedulingConflict is returned when an assignment is refused because the
// caregiver already holds an overlapping shift.
var ErrSchedulingConflict = errors.New("caregiver has a conflicting shift")

// Deps bundles the collaborators every service operates through.
type Deps struct {
	Availability db.AvailabilityStore
	Shifts       db.ShiftStore
	Notifier     notify.Notifier
	Roster       roster.Roster
	Logger       *zap.Logger
}

// caregiverName resolves an id through the roster, falling back to the id
// itself when the roster cannot resolve it.
func caregiverName(deps Deps, caregiverID string) string {
	name, err := deps.Roster.ResolveCaregiverName(caregiverID)
	if err != nil {
		return caregiverID
	}
	return name
}
