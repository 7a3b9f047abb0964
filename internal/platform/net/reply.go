package net

import (
	"net/http"

	perr "crimestats/internal/platform/errors"
)

// Wire is the envelope middlewares write when they answer without a handler
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds an error envelope and its status
func Error(err error, reqID string) (int, Wire) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
