package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := NotFound("Student", "abc123")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("NotFound should match ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("NotFound should unwrap to *NotFoundError")
	}
	if nf.Entity != "Student" || nf.ID != "abc123" {
		t.Fatalf("unexpected fields: %+v", nf)
	}
}

func TestRefNotFoundMatchesSentinel(t *testing.T) {
	err := RefNotFound("instructor", "abc123")
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("RefNotFound should match ErrNotFound")
	}
	var rnf *RefNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatal("RefNotFound should unwrap to *RefNotFoundError")
	}
	if rnf.Field != "instructor" {
		t.Fatalf("Field=%q, want instructor", rnf.Field)
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("creating course: %w", RefNotFound("instructor", "x"))
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatal("wrapped RefNotFound should still match ErrNotFound")
	}
}

func TestDuplicateOrderError(t *testing.T) {
	err := DuplicateOrder("course", 3)
	var dup *DuplicateOrderError
	if !errors.As(err, &dup) {
		t.Fatal("DuplicateOrder should unwrap to *DuplicateOrderError")
	}
	if dup.Scope != "course" || dup.Order != 3 {
		t.Fatalf("unexpected fields: %+v", dup)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("DuplicateOrder should not match ErrNotFound")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidID, ErrAlreadyEnrolled, ErrNotEnrolled,
		ErrAlreadyAssigned, ErrHasDependents, ErrEmailTaken,
		ErrDuplicateAttempt, ErrDuplicateGrade, ErrInconsistentReference,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinel %v should not match %v", a, b)
			}
		}
	}
}
