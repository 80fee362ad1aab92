package errors

import "net/http"

var ErrDuplicateBid = &Exception{
	Message:    "contractor already has an active bid on this job",
	StatusCode: http.StatusConflict,
}
