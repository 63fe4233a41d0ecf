package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
	"github.com/openlearn/lms-backend/internal/types"
)

type InstructorHandler struct {
	log               *logger.Logger
	instructorService services.InstructorService
}

func NewInstructorHandler(log *logger.Logger, instructorService services.InstructorService) *InstructorHandler {
	return &InstructorHandler{
		log:               log.With("handler", "InstructorHandler"),
		instructorService: instructorService,
	}
}

type createInstructorRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Phone          string `json:"phone"`
	Status         string `json:"status" binding:"omitempty,oneof=active inactive"`
	Bio            string `json:"bio"`
	Specialization string `json:"specialization"`
	ProfilePicture string `json:"profilePicture"`
}

type updateInstructorRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password" binding:"omitempty,min=8"`
	Phone          *string `json:"phone"`
	Status         *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Bio            *string `json:"bio"`
	Specialization *string `json:"specialization"`
	ProfilePicture *string `json:"profilePicture"`
}

func (h *InstructorHandler) Create(c *gin.Context) {
	var req createInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	instructor, err := h.instructorService.Create(c.Request.Context(), types.CreateInstructorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Status:         req.Status,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, instructor)
}

func (h *InstructorHandler) List(c *gin.Context) {
	page, err := h.instructorService.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		h.log.Error("list instructors failed", "error", err)
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *InstructorHandler) Get(c *gin.Context) {
	instructor, err := h.instructorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, instructor)
}

func (h *InstructorHandler) Update(c *gin.Context) {
	var req updateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	instructor, err := h.instructorService.Update(c.Request.Context(), c.Param("id"), types.UpdateInstructorInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Status:         req.Status,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, instructor)
}

func (h *InstructorHandler) Delete(c *gin.Context) {
	if err := h.instructorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondNoContent(c)
}

func (h *InstructorHandler) ListCourses(c *gin.Context) {
	page, err := h.instructorService.ListCourses(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, page)
}

func (h *InstructorHandler) AddCourse(c *gin.Context) {
	instructor, err := h.instructorService.AddCourse(c.Request.Context(), c.Param("id"), c.Param("courseId"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, instructor)
}
