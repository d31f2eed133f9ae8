package model

import "errors"

// ErrNotFound is returned by mutating operations that target a record which
// does not exist. Filtering queries return empty results instead.
var ErrNotFound = errors.New("record not found")

// ErrMissingCaregiverID is returned when an operation requires a caregiver id
// and none was supplied.
var ErrMissingCaregiverID = errors.New("caregiver id is required")

// ErrInvalidStatus is returned when a status value is outside its enum.
var ErrInvalidStatus = errors.New("invalid status value")
