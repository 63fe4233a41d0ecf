package app

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
)

type Repos struct {
	Student    repos.StudentRepo
	Instructor repos.InstructorRepo
	Course     repos.CourseRepo
	Module     repos.ModuleRepo
	Lesson     repos.LessonRepo
	Assignment repos.AssignmentRepo
	Submission repos.SubmissionRepo
	Grade      repos.GradeRepo
}

func wireRepos(db *mongo.Database, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Student:    repos.NewStudentRepo(db, log),
		Instructor: repos.NewInstructorRepo(db, log),
		Course:     repos.NewCourseRepo(db, log),
		Module:     repos.NewModuleRepo(db, log),
		Lesson:     repos.NewLessonRepo(db, log),
		Assignment: repos.NewAssignmentRepo(db, log),
		Submission: repos.NewSubmissionRepo(db, log),
		Grade:      repos.NewGradeRepo(db, log),
	}
}
