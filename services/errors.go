package services

import "errors"

// Rejection is a validation or business-rule failure. Handlers surface the
// message verbatim with HTTP 403; anything else becomes a 500.
type Rejection struct {
	msg string
}

func (e *Rejection) Error() string { return e.msg }

// Reject builds a Rejection with the given client-facing message.
func Reject(msg string) error { return &Rejection{msg: msg} }

// IsRejection reports whether err is (or wraps) a Rejection.
func IsRejection(err error) bool {
	var r *Rejection
	return errors.As(err, &r)
}

// ErrBlogNotFound is returned when no published blog matches a public id.
var ErrBlogNotFound = errors.New("Blog not found")
