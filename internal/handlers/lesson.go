package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		log:           log.With("handler", "LessonHandler"),
		lessonService: lessonService,
	}
}

type createLessonRequest struct {
	Title           string                 `json:"title" binding:"required"`
	Description     string                 `json:"description"`
	Module          string                 `json:"module" binding:"required"`
	Course          string                 `json:"course"`
	Order           int                    `json:"order" binding:"min=0"`
	Type            string                 `json:"type" binding:"omitempty,oneof=text video quiz assignment"`
	Content         map[string]interface{} `json:"content"`
	IsPublished     *bool                  `json:"isPublished"`
	DurationMinutes int                    `json:"durationMinutes" binding:"min=0"`
}

type updateLessonRequest struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	Module          *string                `json:"module"`
	Course          *string                `json:"course"`
	Order           *int                   `json:"order" binding:"omitempty,min=0"`
	Type            *string                `json:"type" binding:"omitempty,oneof=text video quiz assignment"`
	Content         map[string]interface{} `json:"content"`
	IsPublished     *bool                  `json:"isPublished"`
	DurationMinutes *int                   `json:"durationMinutes" binding:"omitempty,min=0"`
}

func (h *LessonHandler) Create(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	lesson, err := h.lessonService.Create(c.Request.Context(), types.CreateLessonInput{
		Title:           req.Title,
		Description:     req.Description,
		Module:          req.Module,
		Course:          req.Course,
		Order:           req.Order,
		Type:            req.Type,
		Content:         req.Content,
		IsPublished:     req.IsPublished,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, lesson)
}

func (h *LessonHandler) List(c *gin.Context) {
	page, err := h.lessonService.List(c.Request.Context(), c.Query("module"), c.Query("course"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *LessonHandler) ListByModule(c *gin.Context) {
	page, err := h.lessonService.List(c.Request.Context(), c.Param("moduleId"), "", pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *LessonHandler) Get(c *gin.Context) {
	lesson, err := h.lessonService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, lesson)
}

func (h *LessonHandler) Update(c *gin.Context) {
	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	lesson, err := h.lessonService.Update(c.Request.Context(), c.Param("id"), types.UpdateLessonInput{
		Title:           req.Title,
		Description:     req.Description,
		Module:          req.Module,
		Course:          req.Course,
		Order:           req.Order,
		Type:            req.Type,
		Content:         req.Content,
		IsPublished:     req.IsPublished,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, lesson)
}

func (h *LessonHandler) Delete(c *gin.Context) {
	if err := h.lessonService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
