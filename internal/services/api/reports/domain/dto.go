// Package domain holds DTOs for report http and service contracts
package domain

import (
	"crimestats/internal/core/criteria"
)

// State is the outcome of one report run
type State string

// Report states
const (
	StateOK     State = "ok"
	StateEmpty  State = "empty"
	StateFailed State = "failed"
)

// Result is the executor output handed to the dashboard
type Result struct {
	Rows         []map[string]any `json:"rows"`
	RowsAffected int              `json:"rowsAffected" example:"12"`
	Columns      []string         `json:"columns"      example:"crime_code,crime_type,incident_count"`
}

// EmptyResult is the result of a short circuited or failed run
func EmptyResult() Result {
	return Result{Rows: []map[string]any{}, Columns: []string{}}
}

// Query echoes the rendered statement when sql echo is enabled
type Query struct {
	Dialect string `json:"dialect" example:"pg"`
	SQL     string `json:"sql"`
	Args    []any  `json:"args"`
}

// Report is the payload of every report endpoint
type Report struct {
	ReportID   string           `json:"report_id"  example:"8f14e45f-ceea-467f-a0e6-7a3b1d2c9e10"`
	Report     string           `json:"report"     example:"crime-type"`
	State      State            `json:"state"      example:"ok"`
	FormParams criteria.Params  `json:"formParams"`
	Criteria   criteria.View    `json:"criteria"`
	Warnings   []criteria.Issue `json:"warnings"`
	Query      *Query           `json:"query,omitempty"`
	Result     Result           `json:"result"`
}
