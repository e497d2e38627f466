package db

import "errors"

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ConcurrentUpdateError is returned when a conditional write finds the
// document already moved past the expected version.
type ConcurrentUpdateError struct {
	Key     string
	Message string
}

func (e *ConcurrentUpdateError) Error() string {
	return e.Message
}

func IsConcurrentUpdateError(err error) bool {
	var target *ConcurrentUpdateError
	return errors.As(err, &target)
}
