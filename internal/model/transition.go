package model

import "errors"

// ErrInvalidTransition is wrapped by every refused status change. Lab tests,
// prescriptions and admissions only move forward.
var ErrInvalidTransition = errors.New("invalid status transition")
