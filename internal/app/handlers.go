package app

import (
	"github.com/openlearn/lms-backend/internal/handlers"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
)

type Handlers struct {
	Student     *handlers.StudentHandler
	Instructor  *handlers.InstructorHandler
	Course      *handlers.CourseHandler
	Module      *handlers.ModuleHandler
	Lesson      *handlers.LessonHandler
	Assignment  *handlers.AssignmentHandler
	Submission  *handlers.SubmissionHandler
	Grade       *handlers.GradeHandler
	Maintenance *handlers.MaintenanceHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Student:     handlers.NewStudentHandler(log, s.Student),
		Instructor:  handlers.NewInstructorHandler(log, s.Instructor),
		Course:      handlers.NewCourseHandler(log, s.Course),
		Module:      handlers.NewModuleHandler(log, s.Module),
		Lesson:      handlers.NewLessonHandler(log, s.Lesson),
		Assignment:  handlers.NewAssignmentHandler(log, s.Assignment),
		Submission:  handlers.NewSubmissionHandler(log, s.Submission, s.Student),
		Grade:       handlers.NewGradeHandler(log, s.Grade),
		Maintenance: handlers.NewMaintenanceHandler(log, s.Maintenance),
	}
}
