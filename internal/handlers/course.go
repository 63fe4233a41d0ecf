package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

type createCourseRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	CoverImage  string                 `json:"coverImage"`
	Instructor  string                 `json:"instructor" binding:"required"`
	Status      string                 `json:"status" binding:"omitempty,oneof=draft published archived"`
	StartDate   *time.Time             `json:"startDate"`
	EndDate     *time.Time             `json:"endDate"`
	Tags        []string               `json:"tags"`
	Settings    map[string]interface{} `json:"settings"`
}

type updateCourseRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	CoverImage  *string                `json:"coverImage"`
	Instructor  *string                `json:"instructor"`
	Status      *string                `json:"status" binding:"omitempty,oneof=draft published archived"`
	StartDate   *time.Time             `json:"startDate"`
	EndDate     *time.Time             `json:"endDate"`
	Tags        []string               `json:"tags"`
	Settings    map[string]interface{} `json:"settings"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	course, err := h.courseService.Create(c.Request.Context(), types.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Instructor:  req.Instructor,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        req.Tags,
		Settings:    req.Settings,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, course)
}

func (h *CourseHandler) List(c *gin.Context) {
	filter := services.CourseFilter{
		Status:     c.Query("status"),
		Instructor: c.Query("instructor"),
		Tag:        c.Query("tag"),
	}
	page, err := h.courseService.List(c.Request.Context(), filter, pageFromQuery(c))
	if err != nil {
		h.log.Error("list courses failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	course, err := h.courseService.Update(c.Request.Context(), c.Param("id"), types.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Instructor:  req.Instructor,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Tags:        req.Tags,
		Settings:    req.Settings,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *CourseHandler) Details(c *gin.Context) {
	details, err := h.courseService.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, details)
}

func (h *CourseHandler) Search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		RespondError(c, http.StatusBadRequest, "missing_query", nil)
		return
	}
	page, err := h.courseService.Search(c.Request.Context(), term, pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *CourseHandler) Statistics(c *gin.Context) {
	stats, err := h.courseService.Statistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
