package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type AssignmentHandler struct {
	log               *logger.Logger
	assignmentService services.AssignmentService
}

func NewAssignmentHandler(log *logger.Logger, assignmentService services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		log:               log.With("handler", "AssignmentHandler"),
		assignmentService: assignmentService,
	}
}

type createAssignmentRequest struct {
	Title              string                     `json:"title" binding:"required"`
	Description        string                     `json:"description" binding:"required"`
	Course             string                     `json:"course" binding:"required"`
	Module             string                     `json:"module"`
	Lesson             string                     `json:"lesson"`
	DueDate            time.Time                  `json:"dueDate" binding:"required"`
	TotalPoints        float64                    `json:"totalPoints" binding:"min=0"`
	Status             string                     `json:"status" binding:"omitempty,oneof=active inactive archived"`
	Resources          []types.AssignmentResource `json:"resources"`
	SubmissionSettings *types.SubmissionSettings  `json:"submissionSettings"`
}

type updateAssignmentRequest struct {
	Title              *string                    `json:"title"`
	Description        *string                    `json:"description"`
	Course             *string                    `json:"course"`
	Module             *string                    `json:"module"`
	Lesson             *string                    `json:"lesson"`
	DueDate            *time.Time                 `json:"dueDate"`
	TotalPoints        *float64                   `json:"totalPoints" binding:"omitempty,min=0"`
	Status             *string                    `json:"status" binding:"omitempty,oneof=active inactive archived"`
	Resources          []types.AssignmentResource `json:"resources"`
	SubmissionSettings *types.SubmissionSettings  `json:"submissionSettings"`
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	assignment, err := h.assignmentService.Create(c.Request.Context(), types.CreateAssignmentInput{
		Title:              req.Title,
		Description:        req.Description,
		Course:             req.Course,
		Module:             req.Module,
		Lesson:             req.Lesson,
		DueDate:            req.DueDate,
		TotalPoints:        req.TotalPoints,
		Status:             req.Status,
		Resources:          req.Resources,
		SubmissionSettings: req.SubmissionSettings,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, assignment)
}

func (h *AssignmentHandler) List(c *gin.Context) {
	page, err := h.assignmentService.List(c.Request.Context(), c.Query("course"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *AssignmentHandler) ListByCourse(c *gin.Context) {
	page, err := h.assignmentService.List(c.Request.Context(), c.Param("courseId"), c.Query("status"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *AssignmentHandler) Get(c *gin.Context) {
	assignment, err := h.assignmentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, assignment)
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	assignment, err := h.assignmentService.Update(c.Request.Context(), c.Param("id"), types.UpdateAssignmentInput{
		Title:              req.Title,
		Description:        req.Description,
		Course:             req.Course,
		Module:             req.Module,
		Lesson:             req.Lesson,
		DueDate:            req.DueDate,
		TotalPoints:        req.TotalPoints,
		Status:             req.Status,
		Resources:          req.Resources,
		SubmissionSettings: req.SubmissionSettings,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, assignment)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignmentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
