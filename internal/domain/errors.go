package domain

import (
	"errors"
	"fmt"
)

// NotFoundError: the booking, payment or file does not exist for the tenant.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError: route or query input the service cannot act on.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return e.Field + ": " + e.Msg
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return "invalid " + e.Field
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError: the receipt is being generated by someone else.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	msg := "conflict"
	if e.Resource != "" {
		msg = e.Resource + " conflict"
	}
	if e.Msg != "" {
		if e.Resource == "" {
			return e.Msg
		}
		msg += ": " + e.Msg
	}
	return msg
}

func (e ConflictError) Unwrap() error { return e.Err }

// InternalError: a collaborator returned something unusable.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg == "" {
		return "internal error"
	}
	return e.Msg
}

func (e InternalError) Unwrap() error { return e.Err }

// UnavailableError marks a failing collaborator (database, cache, file store).
type UnavailableError struct {
	Dependency string
	Err        error
}

func (e UnavailableError) Error() string {
	if e.Dependency == "" {
		return "dependency unavailable"
	}
	return fmt.Sprintf("%s unavailable", e.Dependency)
}

func (e UnavailableError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}
