// Package http provides the router seam, the server and the JSON envelope
// every endpoint answers with
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "crimestats/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	pnet.Wire
	Data any `json:"data,omitempty"`
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is returned by handlers instead of writing to the ResponseWriter
type Response struct {
	Status int
	// Body is the payload, or an error to map to status and envelope
	Body any
	// Err marks a failure that still carries Body as data
	Err    error
	Header stdhttp.Header
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Failed returns an error response that still carries data
// a failed report run keeps its criteria and warnings this way
func Failed(err error, data any) Response { return Response{Body: data, Err: err} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if resp.Status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}
	reqID := pnet.RequestID(r.Context())

	err, data := resp.Err, resp.Body
	if err == nil {
		if e, ok := resp.Body.(error); ok && e != nil {
			err, data = e, nil
		}
	}
	if err != nil {
		status, wire := pnet.Error(err, reqID)
		JSON(w, status, Envelope{Wire: wire, Data: data})
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	JSON(w, status, Envelope{
		Wire: pnet.Wire{StatusCode: status, Status: stdhttp.StatusText(status), RequestID: reqID},
		Data: data,
	})
}
