package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type MaintenanceService interface {
	RebuildBackReferences(ctx context.Context) (*types.RebuildReport, error)
}

type maintenanceService struct {
	log            *logger.Logger
	studentRepo    repos.StudentRepo
	instructorRepo repos.InstructorRepo
	courseRepo     repos.CourseRepo
}

func NewMaintenanceService(
	baseLog *logger.Logger,
	studentRepo repos.StudentRepo,
	instructorRepo repos.InstructorRepo,
	courseRepo repos.CourseRepo,
) MaintenanceService {
	return &maintenanceService{
		log:            baseLog.With("service", "MaintenanceService"),
		studentRepo:    studentRepo,
		instructorRepo: instructorRepo,
		courseRepo:     courseRepo,
	}
}

// RebuildBackReferences recomputes the derived state from the authoritative
// fields: Instructor.courses from Course.instructor, and
// Course.enrollmentCount from Student.enrolledCourses. It repairs any drift
// left behind by partial failures of the paired writes.
func (s *maintenanceService) RebuildBackReferences(ctx context.Context) (*types.RebuildReport, error) {
	report := &types.RebuildReport{}

	groups, err := s.courseRepo.InstructorCourseGroups(ctx)
	if err != nil {
		return nil, err
	}
	byInstructor := make(map[primitive.ObjectID][]primitive.ObjectID, len(groups))
	for _, g := range groups {
		byInstructor[g.InstructorID] = g.Courses
	}

	instructorIDs, err := s.instructorRepo.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range instructorIDs {
		if err := s.instructorRepo.SetCourseRefs(ctx, id, byInstructor[id]); err != nil {
			return nil, err
		}
		report.InstructorsUpdated++
	}

	if _, err := s.courseRepo.ResetEnrollmentCounts(ctx); err != nil {
		return nil, err
	}
	counts, err := s.studentRepo.EnrollmentCountGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := s.courseRepo.SetEnrollmentCount(ctx, c.CourseID, c.Count); err != nil {
			return nil, err
		}
		report.CoursesUpdated++
	}

	s.log.Info("back references rebuilt",
		"instructors_updated", report.InstructorsUpdated,
		"courses_updated", report.CoursesUpdated)
	return report, nil
}
