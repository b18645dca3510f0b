package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by services. Handlers switch on them through the Is*
// predicates, which see through fmt.Errorf("%w") wrapping.

// NotFoundError reports a missing trip, room, invoice, account and so on.
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

// ValidationError is bad client input. Field names the offending JSON key
// when there is one.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return "invalid " + e.Field
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// ConflictError is a request that is well formed but clashes with current
// state, such as a held room or a stale verification code.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Resource != "" && e.Msg != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return e.Resource + " conflict"
	}
	return "conflict"
}

func (e ConflictError) Unwrap() error { return e.Err }

// UnauthorizedError covers bad credentials and invalid or expired tokens.
type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string { return orDefault(e.Msg, "unauthorized") }

func (e UnauthorizedError) Unwrap() error { return e.Err }

type RateLimitedError struct {
	Msg string
}

func (e RateLimitedError) Error() string { return orDefault(e.Msg, "too many requests") }

// InternalError carries a message that is safe to show the client while Err
// keeps the cause for the server log.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string { return orDefault(e.Msg, "internal error") }

func (e InternalError) Unwrap() error { return e.Err }

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func IsNotFound(err error) bool     { return is[NotFoundError](err) }
func IsValidation(err error) bool   { return is[ValidationError](err) }
func IsConflict(err error) bool     { return is[ConflictError](err) }
func IsUnauthorized(err error) bool { return is[UnauthorizedError](err) }
func IsRateLimited(err error) bool  { return is[RateLimitedError](err) }
func IsInternal(err error) bool     { return is[InternalError](err) }
