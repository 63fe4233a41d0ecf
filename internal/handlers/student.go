package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type StudentHandler struct {
	log            *logger.Logger
	studentService services.StudentService
}

func NewStudentHandler(log *logger.Logger, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		log:            log.With("handler", "StudentHandler"),
		studentService: studentService,
	}
}

type createStudentRequest struct {
	FirstName   string                 `json:"firstName" binding:"required"`
	LastName    string                 `json:"lastName" binding:"required"`
	Email       string                 `json:"email" binding:"required,email"`
	Password    string                 `json:"password" binding:"required,min=8"`
	Phone       string                 `json:"phone"`
	DateOfBirth *time.Time             `json:"dateOfBirth"`
	Status      string                 `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Profile     map[string]interface{} `json:"profile"`
}

type updateStudentRequest struct {
	FirstName   *string                `json:"firstName"`
	LastName    *string                `json:"lastName"`
	Email       *string                `json:"email" binding:"omitempty,email"`
	Password    *string                `json:"password" binding:"omitempty,min=8"`
	Phone       *string                `json:"phone"`
	DateOfBirth *time.Time             `json:"dateOfBirth"`
	Status      *string                `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Profile     map[string]interface{} `json:"profile"`
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	student, err := h.studentService.Create(c.Request.Context(), types.CreateStudentInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Status:      req.Status,
		Profile:     req.Profile,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, student)
}

func (h *StudentHandler) List(c *gin.Context) {
	page, err := h.studentService.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.log.Error("list students failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) Update(c *gin.Context) {
	var req updateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	student, err := h.studentService.Update(c.Request.Context(), c.Param("id"), types.UpdateStudentInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Status:      req.Status,
		Profile:     req.Profile,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *StudentHandler) Enroll(c *gin.Context) {
	student, err := h.studentService.Enroll(c.Request.Context(), c.Param("id"), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) Unenroll(c *gin.Context) {
	student, err := h.studentService.Unenroll(c.Request.Context(), c.Param("id"), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, student)
}

func (h *StudentHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.studentService.Dashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

func (h *StudentHandler) Performance(c *gin.Context) {
	performance, err := h.studentService.Performance(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, performance)
}
