package criteria

import (
	perr "crimestats/internal/platform/errors"
)

// IssueKind names a recoverable normalization problem
type IssueKind string

// Issue kinds
const (
	InvalidDateFormat         IssueKind = "InvalidDateFormat"
	UnrecognizedCategoryLabel IssueKind = "UnrecognizedCategoryLabel"
	InvalidNumber             IssueKind = "InvalidNumber"
)

// Issue records an input value that was dropped during normalization
type Issue struct {
	Kind  IssueKind `json:"kind"  example:"InvalidDateFormat"`
	Field string    `json:"field" example:"startDate"`
	Value string    `json:"value" example:"2024-13-01"`
}

// Err converts the issue into a validation error carrying its field
func (i Issue) Err() error {
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s: %q", i.Kind, i.Value), i.Field)
}
