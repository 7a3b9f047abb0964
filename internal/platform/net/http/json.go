package http

import (
	"net/http"

	"crimestats/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a JSON body into T before calling fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return reply(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without parsing a request body and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return reply(fn(r))
	})
}

// reply passes a Response through untouched and wraps anything else in OK
func reply(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
