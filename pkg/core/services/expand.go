package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tovahealth/careshift/pkg/core/model"
	"github.com/tovahealth/careshift/pkg/core/recurrence"
	"github.com/tovahealth/careshift/pkg/core/timeutil"
)

// ExpandRequest describes a recurrence expansion. Expansion alone is pure;
// Persist stores the produced instances, and SkipOccupied additionally skips
// any instance whose interval is already covered by a stored shift for the
// same assignee on that date.
type ExpandRequest struct {
	Template     recurrence.Template
	Pattern      model.RecurrencePattern
	Persist      bool
	SkipOccupied bool
}

// ExpandResult reports what an expansion produced and, when persisting, what
// was stored versus skipped.
type ExpandResult struct {
	Instances []model.Shift
	Created   []model.Shift
	Skipped   []string
}

// ExpandShifts expands a shift template by its recurrence pattern and
// optionally persists the instances. The expander itself never deduplicates;
// skipping already-covered dates is this caller-side decision.
func ExpandShifts(ctx context.Context, deps Deps, req ExpandRequest) (*ExpandResult, error) {
	instances, err := recurrence.Expand(req.Template, req.Pattern)
	if err != nil {
		return nil, err
	}

	result := &ExpandResult{Instances: instances}
	if !req.Persist {
		return result, nil
	}

	for _, instance := range instances {
		if req.SkipOccupied {
			occupied, err := instanceOccupied(ctx, deps, instance)
			if err != nil {
				return nil, err
			}
			if occupied {
				result.Skipped = append(result.Skipped, instance.Date)
				continue
			}
		}

		shift := instance
		stored, err := deps.Shifts.Insert(ctx, &shift)
		if err != nil {
			return nil, fmt.Errorf("failed to store shift for %s: %w", instance.Date, err)
		}
		result.Created = append(result.Created, *stored)
	}

	deps.Logger.Info("Recurrence expanded",
		zap.Int("instances", len(result.Instances)),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

// instanceOccupied reports whether a stored shift for the same assignee
// already overlaps the instance's interval on its date.
func instanceOccupied(ctx context.Context, deps Deps, instance model.Shift) (bool, error) {
	existing, err := deps.Shifts.ListInRange(ctx, instance.Date, instance.Date)
	if err != nil {
		return false, err
	}

	for _, other := range existing {
		if other.AssignedTo != instance.AssignedTo {
			continue
		}
		overlap, err := timeutil.Overlaps(instance.StartTime, instance.EndTime, other.StartTime, other.EndTime)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}
