package app

import (
	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, h Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return server.NewRouter(server.RouterConfig{
		Log:                log,
		CORSOrigins:        cfg.CORSOrigins,
		StudentHandler:     h.Student,
		InstructorHandler:  h.Instructor,
		CourseHandler:      h.Course,
		ModuleHandler:      h.Module,
		LessonHandler:      h.Lesson,
		AssignmentHandler:  h.Assignment,
		SubmissionHandler:  h.Submission,
		GradeHandler:       h.Grade,
		MaintenanceHandler: h.Maintenance,
	})
}
