package app

import (
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/services"
)

type Services struct {
	Student     services.StudentService
	Instructor  services.InstructorService
	Course      services.CourseService
	Module      services.ModuleService
	Lesson      services.LessonService
	Assignment  services.AssignmentService
	Submission  services.SubmissionService
	Grade       services.GradeService
	Maintenance services.MaintenanceService
}

func wireServices(log *logger.Logger, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Student:     services.NewStudentService(log, r.Student, r.Course, r.Grade, r.Submission),
		Instructor:  services.NewInstructorService(log, r.Instructor, r.Course),
		Course:      services.NewCourseService(log, r.Course, r.Instructor, r.Module, r.Lesson, r.Assignment),
		Module:      services.NewModuleService(log, r.Module, r.Lesson, r.Course),
		Lesson:      services.NewLessonService(log, r.Lesson, r.Module, r.Course),
		Assignment:  services.NewAssignmentService(log, r.Assignment, r.Course, r.Module, r.Lesson),
		Submission:  services.NewSubmissionService(log, r.Submission, r.Student, r.Assignment, r.Course),
		Grade:       services.NewGradeService(log, r.Grade, r.Submission, r.Student, r.Assignment, r.Course, r.Instructor),
		Maintenance: services.NewMaintenanceService(log, r.Student, r.Instructor, r.Course),
	}
}
