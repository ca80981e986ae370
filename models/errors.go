package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested record id is absent or malformed.
	ErrNotFound = errors.New("record not found")
	// ErrPermissionDenied indicates an ownership check failed. Callers must not
	// reveal whether the resource exists when surfacing it.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrPersistence indicates the storage layer failed; surfaced to users as a
	// generic retry message.
	ErrPersistence = errors.New("storage unavailable")
	// ErrInvalidCredentials is returned for any failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationErrors collects every violated rule so a single failed submission
// reports all of them at once instead of short-circuiting on the first.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// AsValidation unwraps err into ValidationErrors when it carries field-level failures.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
