package errors

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a submission fails validation before any
// external call is made
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUpstream wraps any failure talking to the spreadsheet service
// (auth, network, quota, malformed response)
type ErrUpstream struct {
	Op  string
	Err error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrSubmitInFlight is returned when a cart submit is attempted while a
// previous one is still outstanding
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool {
	var ve *ErrValidation
	return errors.As(err, &ve)
}

// IsUpstream reports whether err is an upstream (spreadsheet) failure
func IsUpstream(err error) bool {
	var ue *ErrUpstream
	return errors.As(err, &ue)
}
