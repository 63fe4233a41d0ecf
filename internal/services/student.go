package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type StudentService interface {
	Create(ctx context.Context, in types.CreateStudentInput) (*types.Student, error)
	List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Student], error)
	Get(ctx context.Context, id string) (*types.Student, error)
	Update(ctx context.Context, id string, in types.UpdateStudentInput) (*types.Student, error)
	Delete(ctx context.Context, id string) error
	Enroll(ctx context.Context, studentID, courseID string) (*types.Student, error)
	Unenroll(ctx context.Context, studentID, courseID string) (*types.Student, error)
	Dashboard(ctx context.Context, id string) (*types.StudentDashboard, error)
	Performance(ctx context.Context, id string) (*types.StudentPerformance, error)
	SubmissionStatistics(ctx context.Context, id string) (*types.SubmissionStatistics, error)
}

type studentService struct {
	log            *logger.Logger
	studentRepo    repos.StudentRepo
	courseRepo     repos.CourseRepo
	gradeRepo      repos.GradeRepo
	submissionRepo repos.SubmissionRepo
}

func NewStudentService(
	baseLog *logger.Logger,
	studentRepo repos.StudentRepo,
	courseRepo repos.CourseRepo,
	gradeRepo repos.GradeRepo,
	submissionRepo repos.SubmissionRepo,
) StudentService {
	return &studentService{
		log:            baseLog.With("service", "StudentService"),
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		gradeRepo:      gradeRepo,
		submissionRepo: submissionRepo,
	}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *studentService) Create(ctx context.Context, in types.CreateStudentInput) (*types.Student, error) {
	taken, err := s.studentRepo.EmailTaken(ctx, in.Email, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrEmailTaken
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = types.StudentStatusActive
	}
	student := &types.Student{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Password:    hashed,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Status:      status,
		Profile:     in.Profile,
	}
	return s.studentRepo.Create(ctx, student)
}

func (s *studentService) List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Student], error) {
	students, total, err := s.studentRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(students, total, page), nil
}

func (s *studentService) Get(ctx context.Context, id string) (*types.Student, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", id)
	}
	return student, err
}

func (s *studentService) Update(ctx context.Context, id string, in types.UpdateStudentInput) (*types.Student, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.FirstName != nil {
		set["firstName"] = *in.FirstName
	}
	if in.LastName != nil {
		set["lastName"] = *in.LastName
	}
	if in.Email != nil {
		taken, err := s.studentRepo.EmailTaken(ctx, *in.Email, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrEmailTaken
		}
		set["email"] = *in.Email
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = hashed
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.DateOfBirth != nil {
		set["dateOfBirth"] = *in.DateOfBirth
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Profile != nil {
		set["profile"] = in.Profile
	}
	student, err := s.studentRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", id)
	}
	return student, err
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.studentRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Student", id)
		}
		return err
	}
	return nil
}

// Enroll records membership on the student first, then bumps the course
// counter. If the counter update fails after the membership write landed,
// the enrollment stands; the drifted counter is repairable offline.
func (s *studentService) Enroll(ctx context.Context, studentID, courseID string) (*types.Student, error) {
	sid, err := repos.ParseID(studentID)
	if err != nil {
		return nil, err
	}
	cid, err := repos.ParseID(courseID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, sid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", studentID)
	}
	if err != nil {
		return nil, err
	}
	exists, err := s.courseRepo.Exists(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Course", courseID)
	}
	if student.IsEnrolledIn(cid) {
		return nil, apperr.ErrAlreadyEnrolled
	}

	if err := s.studentRepo.AddEnrolledCourse(ctx, sid, cid); err != nil {
		return nil, err
	}
	if err := s.courseRepo.IncrementEnrollment(ctx, cid); err != nil {
		s.log.Warn("enroll: enrollment count increment failed",
			"error", err, "student_id", studentID, "course_id", courseID)
	}
	return s.studentRepo.GetByID(ctx, sid)
}

func (s *studentService) Unenroll(ctx context.Context, studentID, courseID string) (*types.Student, error) {
	sid, err := repos.ParseID(studentID)
	if err != nil {
		return nil, err
	}
	cid, err := repos.ParseID(courseID)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, sid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", studentID)
	}
	if err != nil {
		return nil, err
	}
	exists, err := s.courseRepo.Exists(ctx, cid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Course", courseID)
	}
	if !student.IsEnrolledIn(cid) {
		return nil, apperr.ErrNotEnrolled
	}

	if err := s.studentRepo.RemoveEnrolledCourse(ctx, sid, cid); err != nil {
		return nil, err
	}
	if err := s.courseRepo.DecrementEnrollment(ctx, cid); err != nil {
		s.log.Warn("unenroll: enrollment count decrement failed",
			"error", err, "student_id", studentID, "course_id", courseID)
	}
	return s.studentRepo.GetByID(ctx, sid)
}

func (s *studentService) Dashboard(ctx context.Context, id string) (*types.StudentDashboard, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", id)
	}
	if err != nil {
		return nil, err
	}

	// No enrollments means nothing to aggregate.
	if len(student.EnrolledCourses) == 0 {
		return emptyDashboard(student), nil
	}

	dashboard, err := s.studentRepo.EnrollmentDetails(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return emptyDashboard(student), nil
	}
	return dashboard, err
}

func emptyDashboard(student *types.Student) *types.StudentDashboard {
	return &types.StudentDashboard{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Email:     student.Email,
		FullName:  student.FullName(),
		Courses:   []types.DashboardCourse{},
	}
}

func (s *studentService) Performance(ctx context.Context, id string) (*types.StudentPerformance, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", id)
	}
	if err != nil {
		return nil, err
	}
	summary := types.StudentSummary{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		FullName:  student.FullName(),
	}

	perf, err := s.gradeRepo.PerformanceByStudent(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return &types.StudentPerformance{
			Student:           summary,
			CoursePerformance: []types.CoursePerformance{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	perf.Student = summary
	return perf, nil
}

func (s *studentService) SubmissionStatistics(ctx context.Context, id string) (*types.SubmissionStatistics, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	student, err := s.studentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Student", id)
	}
	if err != nil {
		return nil, err
	}
	summary := types.StudentSummary{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		FullName:  student.FullName(),
	}

	stats, err := s.submissionRepo.Statistics(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return &types.SubmissionStatistics{
			Student:         summary,
			StatusBreakdown: []types.StatusGroup{},
		}, nil
	}
	if err != nil {
		return nil, err
	}
	stats.Student = summary
	return stats, nil
}
