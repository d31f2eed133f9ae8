// Package roster is the interface to the external roster collaborator.
// Caregiver identity and lifecycle are managed elsewhere; the engine only
// resolves names and enumerates team members.
package roster

import (
	"fmt"

	"github.com/tovahealth/careshift/pkg/core/model"
)

// Roster resolves caregiver identities supplied by the external roster
// system.
type Roster interface {
	// ResolveCaregiverName returns the display name for an id, or
	// model.ErrNotFound.
	ResolveCaregiverName(id string) (string, error)

	// ListCaregivers returns every caregiver on the roster.
	ListCaregivers() []model.Caregiver

	// ListCoordinators returns the caregivers with the coordinator role.
	ListCoordinators() []model.Caregiver
}

// StaticRoster is a fixed roster, typically loaded from configuration. It
// stands in for the external roster service in the CLI and in tests.
type StaticRoster struct {
	caregivers []model.Caregiver
}

// NewStaticRoster creates a roster from a fixed caregiver list, preserving
// order.
func NewStaticRoster(caregivers []model.Caregiver) *StaticRoster {
	return &StaticRoster{caregivers: caregivers}
}

func (r *StaticRoster) ResolveCaregiverName(id string) (string, error) {
	for _, caregiver := range r.caregivers {
		if caregiver.ID == id {
			return caregiver.Name, nil
		}
	}
	return "", fmt.Errorf("caregiver %q: %w", id, model.ErrNotFound)
}

func (r *StaticRoster) ListCaregivers() []model.Caregiver {
	out := make([]model.Caregiver, len(r.caregivers))
	copy(out, r.caregivers)
	return out
}

func (r *StaticRoster) ListCoordinators() []model.Caregiver {
	coordinators := make([]model.Caregiver, 0)
	for _, caregiver := range r.caregivers {
		if caregiver.Role == model.RoleCoordinator {
			coordinators = append(coordinators, caregiver)
		}
	}
	return coordinators
}
