package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type GradeHandler struct {
	log          *logger.Logger
	gradeService services.GradeService
}

func NewGradeHandler(log *logger.Logger, gradeService services.GradeService) *GradeHandler {
	return &GradeHandler{
		log:          log.With("handler", "GradeHandler"),
		gradeService: gradeService,
	}
}

type createGradeRequest struct {
	Submission   string              `json:"submission" binding:"required"`
	Student      string              `json:"student" binding:"required"`
	Assignment   string              `json:"assignment" binding:"required"`
	Course       string              `json:"course"`
	Score        float64             `json:"score" binding:"min=0"`
	GradedBy     string              `json:"gradedBy"`
	GradedAt     *time.Time          `json:"gradedAt"`
	Feedback     string              `json:"feedback"`
	RubricScores []types.RubricScore `json:"rubricScores"`
}

type updateGradeRequest struct {
	Score        *float64            `json:"score" binding:"omitempty,min=0"`
	GradedBy     *string             `json:"gradedBy"`
	GradedAt     *time.Time          `json:"gradedAt"`
	Feedback     *string             `json:"feedback"`
	RubricScores []types.RubricScore `json:"rubricScores"`
}

func (h *GradeHandler) Create(c *gin.Context) {
	var req createGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	grade, err := h.gradeService.Create(c.Request.Context(), types.CreateGradeInput{
		Submission:   req.Submission,
		Student:      req.Student,
		Assignment:   req.Assignment,
		Course:       req.Course,
		Score:        req.Score,
		GradedBy:     req.GradedBy,
		GradedAt:     req.GradedAt,
		Feedback:     req.Feedback,
		RubricScores: req.RubricScores,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, grade)
}

func (h *GradeHandler) List(c *gin.Context) {
	page, err := h.gradeService.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.log.Error("list grades failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *GradeHandler) ListByStudent(c *gin.Context) {
	page, err := h.gradeService.ListByStudent(c.Request.Context(), c.Param("studentId"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *GradeHandler) ListByAssignment(c *gin.Context) {
	page, err := h.gradeService.ListByAssignment(c.Request.Context(), c.Param("assignmentId"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *GradeHandler) Get(c *gin.Context) {
	grade, err := h.gradeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, grade)
}

func (h *GradeHandler) Update(c *gin.Context) {
	var req updateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	grade, err := h.gradeService.Update(c.Request.Context(), c.Param("id"), types.UpdateGradeInput{
		Score:        req.Score,
		GradedBy:     req.GradedBy,
		GradedAt:     req.GradedAt,
		Feedback:     req.Feedback,
		RubricScores: req.RubricScores,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, grade)
}

func (h *GradeHandler) Delete(c *gin.Context) {
	if err := h.gradeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
