package errors

import "net/http"

// ErrConflict is returned when a concurrent writer committed first. The
// caller may retry the whole load-mutate-save cycle.
var ErrConflict = &Exception{
	Message:    "concurrent modification detected",
	StatusCode: http.StatusConflict,
}
