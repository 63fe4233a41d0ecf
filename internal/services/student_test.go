package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

func TestStudentCreateRejectsTakenEmail(t *testing.T) {
	studentRepo := &fakeStudentRepo{
		emailTaken: func(email string, _ primitive.ObjectID) (bool, error) {
			return email == "taken@example.com", nil
		},
		create: func(st *types.Student) (*types.Student, error) {
			st.ID = primitive.NewObjectID()
			return st, nil
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, nil, nil)

	cases := []struct {
		name    string
		email   string
		wantErr error
	}{
		{name: "taken_email", email: "taken@example.com", wantErr: apperr.ErrEmailTaken},
		{name: "free_email", email: "free@example.com", wantErr: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), types.CreateStudentInput{
				FirstName: "Ada", LastName: "Lovelace", Email: tc.email, Password: "secret123",
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Create err=%v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestStudentCreateDefaultsStatusAndHashesPassword(t *testing.T) {
	var created *types.Student
	studentRepo := &fakeStudentRepo{
		emailTaken: func(string, primitive.ObjectID) (bool, error) { return false, nil },
		create: func(st *types.Student) (*types.Student, error) {
			created = st
			return st, nil
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, nil, nil)

	_, err := svc.Create(context.Background(), types.CreateStudentInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != types.StudentStatusActive {
		t.Fatalf("Status=%q, want %q", created.Status, types.StudentStatusActive)
	}
	if created.Password == "secret123" || created.Password == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestStudentEnroll(t *testing.T) {
	studentID := primitive.NewObjectID()
	enrolledCourse := primitive.NewObjectID()
	newCourse := primitive.NewObjectID()
	missingCourse := primitive.NewObjectID()

	cases := []struct {
		name     string
		courseID primitive.ObjectID
		wantErr  error
	}{
		{name: "already_enrolled", courseID: enrolledCourse, wantErr: apperr.ErrAlreadyEnrolled},
		{name: "course_missing", courseID: missingCourse, wantErr: apperr.ErrNotFound},
		{name: "success", courseID: newCourse, wantErr: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var added, incremented bool
			studentRepo := &fakeStudentRepo{
				getByID: func(id primitive.ObjectID) (*types.Student, error) {
					return &types.Student{ID: id, EnrolledCourses: []primitive.ObjectID{enrolledCourse}}, nil
				},
				addEnrolled: func(_, _ primitive.ObjectID) error {
					added = true
					return nil
				},
			}
			courseRepo := &fakeCourseRepo{
				exists: func(id primitive.ObjectID) (bool, error) {
					return id != missingCourse, nil
				},
				incrementEnrollment: func(primitive.ObjectID) error {
					incremented = true
					return nil
				},
			}
			svc := NewStudentService(testLog(), studentRepo, courseRepo, nil, nil)

			_, err := svc.Enroll(context.Background(), studentID.Hex(), tc.courseID.Hex())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Enroll err=%v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil && (added || incremented) {
				t.Fatal("failed enroll must not write")
			}
			if tc.wantErr == nil && (!added || !incremented) {
				t.Fatalf("added=%v incremented=%v, want both", added, incremented)
			}
		})
	}
}

func TestStudentEnrollSurvivesCounterFailure(t *testing.T) {
	studentID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	var added bool
	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id}, nil
		},
		addEnrolled: func(_, _ primitive.ObjectID) error {
			added = true
			return nil
		},
	}
	courseRepo := &fakeCourseRepo{
		exists:              func(primitive.ObjectID) (bool, error) { return true, nil },
		incrementEnrollment: func(primitive.ObjectID) error { return errors.New("write timeout") },
	}
	svc := NewStudentService(testLog(), studentRepo, courseRepo, nil, nil)

	student, err := svc.Enroll(context.Background(), studentID.Hex(), courseID.Hex())
	if err != nil {
		t.Fatalf("Enroll should succeed despite a counter failure, got %v", err)
	}
	if !added {
		t.Fatal("membership write must land before the counter update")
	}
	if student == nil {
		t.Fatal("expected the reloaded student")
	}
}

func TestStudentUnenrollNotEnrolled(t *testing.T) {
	studentID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id}, nil
		},
	}
	courseRepo := &fakeCourseRepo{
		exists: func(primitive.ObjectID) (bool, error) { return true, nil },
	}
	svc := NewStudentService(testLog(), studentRepo, courseRepo, nil, nil)

	_, err := svc.Unenroll(context.Background(), studentID.Hex(), courseID.Hex())
	if !errors.Is(err, apperr.ErrNotEnrolled) {
		t.Fatalf("Unenroll err=%v, want ErrNotEnrolled", err)
	}
}

func TestStudentDashboardWithoutEnrollments(t *testing.T) {
	studentID := primitive.NewObjectID()

	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, nil
		},
		enrollmentDetails: func(primitive.ObjectID) (*types.StudentDashboard, error) {
			t.Fatal("aggregation must be skipped for students with no enrollments")
			return nil, nil
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, nil, nil)

	dash, err := svc.Dashboard(context.Background(), studentID.Hex())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.FullName != "Ada Lovelace" {
		t.Fatalf("FullName=%q, want %q", dash.FullName, "Ada Lovelace")
	}
	if dash.Courses == nil || len(dash.Courses) != 0 {
		t.Fatalf("Courses=%v, want empty non-nil slice", dash.Courses)
	}
}

func TestStudentPerformanceInjectsSummary(t *testing.T) {
	studentID := primitive.NewObjectID()
	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id, FirstName: "Ada", LastName: "Lovelace"}, nil
		},
	}
	gradeRepo := &fakeGradeRepo{
		performance: func(primitive.ObjectID) (*types.StudentPerformance, error) {
			return &types.StudentPerformance{
				OverallAverage:            87.5,
				TotalCompletedAssignments: 4,
				CoursePerformance:         []types.CoursePerformance{{CourseTitle: "Algebra"}},
			}, nil
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, gradeRepo, nil)

	perf, err := svc.Performance(context.Background(), studentID.Hex())
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if perf.Student.ID != studentID || perf.Student.FullName != "Ada Lovelace" {
		t.Fatalf("Student summary not injected: %+v", perf.Student)
	}
	if perf.OverallAverage != 87.5 {
		t.Fatalf("OverallAverage=%v, want 87.5", perf.OverallAverage)
	}
}

func TestStudentPerformanceNoGrades(t *testing.T) {
	studentID := primitive.NewObjectID()
	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id, FirstName: "Ada", LastName: "Lovelace"}, nil
		},
	}
	gradeRepo := &fakeGradeRepo{
		performance: func(id primitive.ObjectID) (*types.StudentPerformance, error) {
			return nil, apperr.NotFound("StudentPerformance", id.Hex())
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, gradeRepo, nil)

	perf, err := svc.Performance(context.Background(), studentID.Hex())
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if perf.OverallAverage != 0 || perf.TotalCompletedAssignments != 0 {
		t.Fatalf("want zero rollup, got %+v", perf)
	}
	if perf.CoursePerformance == nil || len(perf.CoursePerformance) != 0 {
		t.Fatal("CoursePerformance must be an empty non-nil slice")
	}
}

func TestStudentSubmissionStatisticsNoSubmissions(t *testing.T) {
	studentID := primitive.NewObjectID()
	studentRepo := &fakeStudentRepo{
		getByID: func(id primitive.ObjectID) (*types.Student, error) {
			return &types.Student{ID: id, FirstName: "Ada", LastName: "Lovelace"}, nil
		},
	}
	submissionRepo := &fakeSubmissionRepo{
		statistics: func(id primitive.ObjectID) (*types.SubmissionStatistics, error) {
			return nil, apperr.NotFound("SubmissionStatistics", id.Hex())
		},
	}
	svc := NewStudentService(testLog(), studentRepo, nil, nil, submissionRepo)

	stats, err := svc.SubmissionStatistics(context.Background(), studentID.Hex())
	if err != nil {
		t.Fatalf("SubmissionStatistics: %v", err)
	}
	if stats.TotalSubmissions != 0 || stats.LateSubmissionsCount != 0 {
		t.Fatalf("want zero counts, got %+v", stats)
	}
	if stats.StatusBreakdown == nil || len(stats.StatusBreakdown) != 0 {
		t.Fatal("StatusBreakdown must be an empty non-nil slice")
	}
	if stats.Student.ID != studentID {
		t.Fatalf("Student summary not injected: %+v", stats.Student)
	}
}

func TestStudentGetInvalidID(t *testing.T) {
	svc := NewStudentService(testLog(), &fakeStudentRepo{}, nil, nil, nil)
	_, err := svc.Get(context.Background(), "not-a-hex-id")
	if !errors.Is(err, apperr.ErrInvalidID) {
		t.Fatalf("Get err=%v, want ErrInvalidID", err)
	}
}
