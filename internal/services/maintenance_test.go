package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/types"
)

func TestRebuildBackReferences(t *testing.T) {
	instructorA := primitive.NewObjectID()
	instructorB := primitive.NewObjectID()
	courseX := primitive.NewObjectID()
	courseY := primitive.NewObjectID()

	setRefs := map[primitive.ObjectID][]primitive.ObjectID{}
	setCounts := map[primitive.ObjectID]int64{}
	var resetCalled bool

	courseRepo := &fakeCourseRepo{
		instructorGroups: func() ([]types.InstructorCourseGroup, error) {
			return []types.InstructorCourseGroup{
				{InstructorID: instructorA, Courses: []primitive.ObjectID{courseX, courseY}},
			}, nil
		},
		resetCounts: func() (int64, error) {
			resetCalled = true
			return 2, nil
		},
		setEnrollmentCount: func(id primitive.ObjectID, count int64) error {
			if !resetCalled {
				t.Fatal("counts must be reset before they are reapplied")
			}
			setCounts[id] = count
			return nil
		},
	}
	instructorRepo := &fakeInstructorRepo{
		listIDs: func() ([]primitive.ObjectID, error) {
			return []primitive.ObjectID{instructorA, instructorB}, nil
		},
		setCourseRefs: func(instructorID primitive.ObjectID, courseIDs []primitive.ObjectID) error {
			setRefs[instructorID] = courseIDs
			return nil
		},
	}
	studentRepo := &fakeStudentRepo{
		enrollmentCounts: func() ([]types.CourseEnrollmentCount, error) {
			return []types.CourseEnrollmentCount{
				{CourseID: courseX, Count: 7},
			}, nil
		},
	}
	svc := NewMaintenanceService(testLog(), studentRepo, instructorRepo, courseRepo)

	report, err := svc.RebuildBackReferences(context.Background())
	if err != nil {
		t.Fatalf("RebuildBackReferences: %v", err)
	}

	if report.InstructorsUpdated != 2 {
		t.Fatalf("InstructorsUpdated=%d, want 2", report.InstructorsUpdated)
	}
	if report.CoursesUpdated != 1 {
		t.Fatalf("CoursesUpdated=%d, want 1", report.CoursesUpdated)
	}
	if got := setRefs[instructorA]; len(got) != 2 {
		t.Fatalf("instructorA refs=%v, want both courses", got)
	}
	// Instructors with no courses are cleared, not skipped.
	if got, ok := setRefs[instructorB]; !ok || len(got) != 0 {
		t.Fatalf("instructorB refs=%v (set=%v), want empty reset", got, ok)
	}
	if setCounts[courseX] != 7 {
		t.Fatalf("courseX count=%d, want 7", setCounts[courseX])
	}
}
