package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that carry no extra data. Callers match
// them with errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidID             = errors.New("invalid identifier")
	ErrAlreadyEnrolled       = errors.New("student is already enrolled in this course")
	ErrNotEnrolled           = errors.New("student is not enrolled in this course")
	ErrAlreadyAssigned       = errors.New("instructor is already assigned to this course")
	ErrHasDependents         = errors.New("cannot delete module with associated lessons")
	ErrEmailTaken            = errors.New("email already exists")
	ErrDuplicateAttempt      = errors.New("a submission for this attempt number already exists")
	ErrDuplicateGrade        = errors.New("a grade already exists for this submission")
	ErrInconsistentReference = errors.New("lesson does not belong to the specified module")
)

// NotFoundError names the entity that could not be addressed.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// RefNotFoundError means a write referenced a parent that does not exist.
// Field is the reference field on the payload, ID the missing target.
type RefNotFoundError struct {
	Field string
	ID    string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("referenced %s with ID %q not found", e.Field, e.ID)
}

func (e *RefNotFoundError) Is(target error) bool { return target == ErrNotFound }

func RefNotFound(field, id string) error {
	return &RefNotFoundError{Field: field, ID: id}
}

// DuplicateOrderError is raised both by the application-level pre-check and
// when the store's unique index rejects a late racing insert; the two paths
// are indistinguishable to callers.
type DuplicateOrderError struct {
	Scope string // "course" for modules, "module" for lessons
	Order int
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("order %d is already taken within this %s", e.Order, e.Scope)
}

func DuplicateOrder(scope string, order int) error {
	return &DuplicateOrderError{Scope: scope, Order: order}
}
