package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type SubmissionHandler struct {
	log               *logger.Logger
	submissionService services.SubmissionService
	studentService    services.StudentService
}

func NewSubmissionHandler(
	log *logger.Logger,
	submissionService services.SubmissionService,
	studentService services.StudentService,
) *SubmissionHandler {
	return &SubmissionHandler{
		log:               log.With("handler", "SubmissionHandler"),
		submissionService: submissionService,
		studentService:    studentService,
	}
}

type createSubmissionRequest struct {
	Student       string                   `json:"student" binding:"required"`
	Assignment    string                   `json:"assignment" binding:"required"`
	Course        string                   `json:"course"`
	Status        string                   `json:"status" binding:"omitempty,oneof=draft submitted resubmitted returned"`
	Content       *types.SubmissionContent `json:"content"`
	SubmittedAt   *time.Time               `json:"submittedAt"`
	AttemptNumber int                      `json:"attemptNumber" binding:"omitempty,min=1"`
	IsLate        bool                     `json:"isLate"`
}

type updateSubmissionRequest struct {
	Student       *string                  `json:"student"`
	Assignment    *string                  `json:"assignment"`
	Course        *string                  `json:"course"`
	Status        *string                  `json:"status" binding:"omitempty,oneof=draft submitted resubmitted returned"`
	Content       *types.SubmissionContent `json:"content"`
	SubmittedAt   *time.Time               `json:"submittedAt"`
	AttemptNumber *int                     `json:"attemptNumber" binding:"omitempty,min=1"`
	IsLate        *bool                    `json:"isLate"`
}

type submissionFeedbackRequest struct {
	Text     string   `json:"text"`
	FileURLs []string `json:"fileUrls"`
}

func (h *SubmissionHandler) Create(c *gin.Context) {
	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	submission, err := h.submissionService.Create(c.Request.Context(), types.CreateSubmissionInput{
		Student:       req.Student,
		Assignment:    req.Assignment,
		Course:        req.Course,
		Status:        req.Status,
		Content:       req.Content,
		SubmittedAt:   req.SubmittedAt,
		AttemptNumber: req.AttemptNumber,
		IsLate:        req.IsLate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, submission)
}

func (h *SubmissionHandler) List(c *gin.Context) {
	page, err := h.submissionService.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.log.Error("list submissions failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *SubmissionHandler) ListByStudent(c *gin.Context) {
	page, err := h.submissionService.ListByStudent(c.Request.Context(), c.Param("studentId"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	page, err := h.submissionService.ListByAssignment(c.Request.Context(), c.Param("assignmentId"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	submission, err := h.submissionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, submission)
}

func (h *SubmissionHandler) GetByStudentAndAssignment(c *gin.Context) {
	submission, err := h.submissionService.GetByStudentAndAssignment(
		c.Request.Context(), c.Param("studentId"), c.Param("assignmentId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, submission)
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	var req updateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	submission, err := h.submissionService.Update(c.Request.Context(), c.Param("id"), types.UpdateSubmissionInput{
		Student:       req.Student,
		Assignment:    req.Assignment,
		Course:        req.Course,
		Status:        req.Status,
		Content:       req.Content,
		SubmittedAt:   req.SubmittedAt,
		AttemptNumber: req.AttemptNumber,
		IsLate:        req.IsLate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, submission)
}

func (h *SubmissionHandler) Delete(c *gin.Context) {
	if err := h.submissionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *SubmissionHandler) AddFeedback(c *gin.Context) {
	var req submissionFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	submission, err := h.submissionService.AddFeedback(c.Request.Context(), c.Param("id"), types.SubmissionFeedbackInput{
		Text:     req.Text,
		FileURLs: req.FileURLs,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, submission)
}

// Statistics lives under /submissions but is computed per student.
func (h *SubmissionHandler) Statistics(c *gin.Context) {
	stats, err := h.studentService.SubmissionStatistics(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
