package errors

import "net/http"

var ErrJobNotFound = &Exception{
	Message:    "job not found",
	StatusCode: http.StatusNotFound,
}

var ErrBidNotFound = &Exception{
	Message:    "bid not found",
	StatusCode: http.StatusNotFound,
}

var ErrUpdateNotFound = &Exception{
	Message:    "progress update not found",
	StatusCode: http.StatusNotFound,
}

var ErrProjectNotFound = &Exception{
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}

var ErrNotificationNotFound = &Exception{
	Message:    "notification not found",
	StatusCode: http.StatusNotFound,
}

var ErrIssueNotFound = &Exception{
	Message:    "issue not found",
	StatusCode: http.StatusNotFound,
}
