package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "invalid_id", err: apperr.ErrInvalidID, wantStatus: http.StatusBadRequest, wantCode: "invalid_id"},
		{name: "inconsistent_reference", err: apperr.ErrInconsistentReference, wantStatus: http.StatusBadRequest, wantCode: "inconsistent_reference"},
		{name: "not_enrolled", err: apperr.ErrNotEnrolled, wantStatus: http.StatusBadRequest, wantCode: "not_enrolled"},
		{name: "has_dependents", err: apperr.ErrHasDependents, wantStatus: http.StatusBadRequest, wantCode: "has_dependents"},
		{name: "not_found_sentinel", err: apperr.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "not_found_typed", err: apperr.NotFound("Student", "abc"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "ref_not_found", err: apperr.RefNotFound("course", "abc"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "already_enrolled", err: apperr.ErrAlreadyEnrolled, wantStatus: http.StatusConflict, wantCode: "already_enrolled"},
		{name: "already_assigned", err: apperr.ErrAlreadyAssigned, wantStatus: http.StatusConflict, wantCode: "already_assigned"},
		{name: "email_taken", err: apperr.ErrEmailTaken, wantStatus: http.StatusConflict, wantCode: "email_taken"},
		{name: "duplicate_attempt", err: apperr.ErrDuplicateAttempt, wantStatus: http.StatusConflict, wantCode: "duplicate_attempt"},
		{name: "duplicate_grade", err: apperr.ErrDuplicateGrade, wantStatus: http.StatusConflict, wantCode: "duplicate_grade"},
		{name: "duplicate_order", err: apperr.DuplicateOrder("course", 2), wantStatus: http.StatusConflict, wantCode: "duplicate_order"},
		{name: "wrapped_still_maps", err: fmt.Errorf("creating module: %w", apperr.DuplicateOrder("course", 2)), wantStatus: http.StatusConflict, wantCode: "duplicate_order"},
		{name: "unknown_error", err: errors.New("disk on fire"), wantStatus: http.StatusInternalServerError, wantCode: "internal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := statusOf(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Fatalf("statusOf(%v)=(%d, %q), want (%d, %q)",
					tc.err, status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}
