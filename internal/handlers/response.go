package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// statusOf translates a service error into its HTTP status and a stable
// machine code. Conflicts are 409, bad requests 400, missing targets 404,
// anything unrecognized 500.
func statusOf(err error) (int, string) {
	var dup *apperr.DuplicateOrderError
	switch {
	case errors.Is(err, apperr.ErrInvalidID):
		return http.StatusBadRequest, "invalid_id"
	case errors.Is(err, apperr.ErrInconsistentReference):
		return http.StatusBadRequest, "inconsistent_reference"
	case errors.Is(err, apperr.ErrNotEnrolled):
		return http.StatusBadRequest, "not_enrolled"
	case errors.Is(err, apperr.ErrHasDependents):
		return http.StatusBadRequest, "has_dependents"
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrAlreadyEnrolled):
		return http.StatusConflict, "already_enrolled"
	case errors.Is(err, apperr.ErrAlreadyAssigned):
		return http.StatusConflict, "already_assigned"
	case errors.Is(err, apperr.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, apperr.ErrDuplicateAttempt):
		return http.StatusConflict, "duplicate_attempt"
	case errors.Is(err, apperr.ErrDuplicateGrade):
		return http.StatusConflict, "duplicate_grade"
	case errors.As(err, &dup):
		return http.StatusConflict, "duplicate_order"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// RespondServiceError maps a service error onto the envelope.
func RespondServiceError(c *gin.Context, err error) {
	status, code := statusOf(err)
	RespondError(c, status, code, err)
}

// pageFromQuery reads ?page= and ?limit=, applying the defaults for missing
// or malformed values.
func pageFromQuery(c *gin.Context) types.PageRequest {
	page := intQuery(c, "page", types.DefaultPage)
	limit := intQuery(c, "limit", types.DefaultLimit)
	return types.NewPage(page, limit)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
