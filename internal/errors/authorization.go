package errors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "caller is not permitted to perform this operation",
	StatusCode: http.StatusForbidden,
}

var ErrNotPoster = &Exception{
	Message:    "only the job poster may perform this operation",
	StatusCode: http.StatusForbidden,
}

var ErrNotOwner = &Exception{
	Message:    "only the bid owner may perform this operation",
	StatusCode: http.StatusForbidden,
}

var ErrNotAuthor = &Exception{
	Message:    "only the update author may perform this operation",
	StatusCode: http.StatusForbidden,
}

var ErrNotAssignee = &Exception{
	Message:    "only the assigned contractor may perform this operation",
	StatusCode: http.StatusForbidden,
}
