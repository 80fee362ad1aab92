package errors

import "net/http"

var ErrEditWindowExpired = &Exception{
	Message:    "edit window for this update has expired",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrDeleteWindowExpired = &Exception{
	Message:    "delete window for this update has expired",
	StatusCode: http.StatusUnprocessableEntity,
}
