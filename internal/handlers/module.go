package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type ModuleHandler struct {
	log           *logger.Logger
	moduleService services.ModuleService
}

func NewModuleHandler(log *logger.Logger, moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		log:           log.With("handler", "ModuleHandler"),
		moduleService: moduleService,
	}
}

type createModuleRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Course          string `json:"course" binding:"required"`
	Order           int    `json:"order" binding:"min=0"`
	IsPublished     *bool  `json:"isPublished"`
	DurationMinutes int    `json:"durationMinutes" binding:"min=0"`
}

type updateModuleRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Course          *string `json:"course"`
	Order           *int    `json:"order" binding:"omitempty,min=0"`
	IsPublished     *bool   `json:"isPublished"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,min=0"`
}

func (h *ModuleHandler) Create(c *gin.Context) {
	var req createModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	module, err := h.moduleService.Create(c.Request.Context(), types.CreateModuleInput{
		Title:           req.Title,
		Description:     req.Description,
		Course:          req.Course,
		Order:           req.Order,
		IsPublished:     req.IsPublished,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, module)
}

func (h *ModuleHandler) List(c *gin.Context) {
	page, err := h.moduleService.List(c.Request.Context(), c.Query("course"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *ModuleHandler) ListByCourse(c *gin.Context) {
	page, err := h.moduleService.List(c.Request.Context(), c.Param("courseId"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *ModuleHandler) Get(c *gin.Context) {
	module, err := h.moduleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, module)
}

func (h *ModuleHandler) Update(c *gin.Context) {
	var req updateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	module, err := h.moduleService.Update(c.Request.Context(), c.Param("id"), types.UpdateModuleInput{
		Title:           req.Title,
		Description:     req.Description,
		Course:          req.Course,
		Order:           req.Order,
		IsPublished:     req.IsPublished,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, module)
}

func (h *ModuleHandler) Delete(c *gin.Context) {
	if err := h.moduleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}
