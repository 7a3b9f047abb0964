package httpkit

import "net/http"

// Get registers a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// PostJSON registers a handler under POST whose body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
