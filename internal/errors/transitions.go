package errors

import "net/http"

var ErrInvalidTransition = &Exception{
	Message:    "operation is not valid in the current status",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrJobNotOpen = &Exception{
	Message:    "job is not open for bidding",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrBidNotPending = &Exception{
	Message:    "bid is no longer pending",
	StatusCode: http.StatusUnprocessableEntity,
}
