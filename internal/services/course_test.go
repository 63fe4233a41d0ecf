package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

func TestCourseCreateAttachesInstructor(t *testing.T) {
	instructorID := primitive.NewObjectID()

	var attachedCourse primitive.ObjectID
	courseRepo := &fakeCourseRepo{
		create: func(c *types.Course) (*types.Course, error) {
			c.ID = primitive.NewObjectID()
			return c, nil
		},
	}
	instructorRepo := &fakeInstructorRepo{
		getByID: func(id primitive.ObjectID) (*types.Instructor, error) {
			return &types.Instructor{ID: id}, nil
		},
		addCourseRef: func(_, courseID primitive.ObjectID) error {
			attachedCourse = courseID
			return nil
		},
	}
	svc := NewCourseService(testLog(), courseRepo, instructorRepo, nil, nil, nil)

	created, err := svc.Create(context.Background(), types.CreateCourseInput{
		Title: "Algebra", Instructor: instructorID.Hex(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != types.CourseStatusDraft {
		t.Fatalf("Status=%q, want draft default", created.Status)
	}
	if attachedCourse != created.ID {
		t.Fatalf("attached course=%v, want %v", attachedCourse, created.ID)
	}
}

func TestCourseCreateUnknownInstructor(t *testing.T) {
	instructorRepo := &fakeInstructorRepo{
		getByID: func(id primitive.ObjectID) (*types.Instructor, error) {
			return nil, apperr.NotFound("Instructor", id.Hex())
		},
	}
	svc := NewCourseService(testLog(), &fakeCourseRepo{}, instructorRepo, nil, nil, nil)

	_, err := svc.Create(context.Background(), types.CreateCourseInput{
		Title: "Algebra", Instructor: primitive.NewObjectID().Hex(),
	})
	var rnf *apperr.RefNotFoundError
	if !errors.As(err, &rnf) || rnf.Field != "instructor" {
		t.Fatalf("Create err=%v, want instructor RefNotFound", err)
	}
}

func TestCourseCreateSurvivesBackRefFailure(t *testing.T) {
	courseRepo := &fakeCourseRepo{
		create: func(c *types.Course) (*types.Course, error) {
			c.ID = primitive.NewObjectID()
			return c, nil
		},
	}
	instructorRepo := &fakeInstructorRepo{
		getByID: func(id primitive.ObjectID) (*types.Instructor, error) {
			return &types.Instructor{ID: id}, nil
		},
		addCourseRef: func(_, _ primitive.ObjectID) error { return errors.New("write timeout") },
	}
	svc := NewCourseService(testLog(), courseRepo, instructorRepo, nil, nil, nil)

	created, err := svc.Create(context.Background(), types.CreateCourseInput{
		Title: "Algebra", Instructor: primitive.NewObjectID().Hex(),
	})
	if err != nil || created == nil {
		t.Fatalf("Create should succeed despite a back-reference failure, got %v", err)
	}
}

func TestCourseUpdateReassignsInstructor(t *testing.T) {
	courseID := primitive.NewObjectID()
	oldInstructor := primitive.NewObjectID()
	newInstructor := primitive.NewObjectID()

	var removedFrom, addedTo primitive.ObjectID
	courseRepo := &fakeCourseRepo{
		getByID: func(id primitive.ObjectID) (*types.Course, error) {
			return &types.Course{ID: id, Instructor: oldInstructor}, nil
		},
		updateByID: func(id primitive.ObjectID, set bson.M) (*types.Course, error) {
			if set["instructor"] != newInstructor {
				t.Fatalf("set instructor=%v, want %v", set["instructor"], newInstructor)
			}
			return &types.Course{ID: id, Instructor: newInstructor}, nil
		},
	}
	instructorRepo := &fakeInstructorRepo{
		getByID: func(id primitive.ObjectID) (*types.Instructor, error) {
			return &types.Instructor{ID: id}, nil
		},
		removeCourseRef: func(instructorID, _ primitive.ObjectID) error {
			removedFrom = instructorID
			return nil
		},
		addCourseRef: func(instructorID, _ primitive.ObjectID) error {
			addedTo = instructorID
			return nil
		},
	}
	svc := NewCourseService(testLog(), courseRepo, instructorRepo, nil, nil, nil)

	hex := newInstructor.Hex()
	_, err := svc.Update(context.Background(), courseID.Hex(), types.UpdateCourseInput{Instructor: &hex})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if removedFrom != oldInstructor {
		t.Fatalf("detached from %v, want %v", removedFrom, oldInstructor)
	}
	if addedTo != newInstructor {
		t.Fatalf("attached to %v, want %v", addedTo, newInstructor)
	}
}

func TestCourseDeleteCascades(t *testing.T) {
	courseID := primitive.NewObjectID()
	instructorID := primitive.NewObjectID()

	var mu sync.Mutex
	var deleted []string
	record := func(what string) {
		mu.Lock()
		deleted = append(deleted, what)
		mu.Unlock()
	}

	courseRepo := &fakeCourseRepo{
		getByID: func(id primitive.ObjectID) (*types.Course, error) {
			return &types.Course{ID: id, Instructor: instructorID}, nil
		},
		deleteByID: func(primitive.ObjectID) error {
			record("course")
			return nil
		},
	}
	instructorRepo := &fakeInstructorRepo{
		removeCourseRef: func(_, _ primitive.ObjectID) error {
			record("backref")
			return nil
		},
	}
	moduleRepo := &fakeModuleRepo{
		deleteByCourse: func(primitive.ObjectID) (int64, error) {
			record("modules")
			return 2, nil
		},
	}
	lessonRepo := &fakeLessonRepo{
		deleteByCourse: func(primitive.ObjectID) (int64, error) {
			record("lessons")
			return 5, nil
		},
	}
	assignmentRepo := &fakeAssignmentRepo{
		deleteByCourse: func(primitive.ObjectID) (int64, error) {
			record("assignments")
			return 1, nil
		},
	}
	svc := NewCourseService(testLog(), courseRepo, instructorRepo, moduleRepo, lessonRepo, assignmentRepo)

	if err := svc.Delete(context.Background(), courseID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(deleted) != 5 {
		t.Fatalf("recorded %v, want 5 deletions", deleted)
	}
	// Children go first, in any order; the course document is last.
	if deleted[4] != "course" || deleted[3] != "backref" {
		t.Fatalf("ordering %v, want children, then backref, then course", deleted)
	}
}

func TestCourseStatisticsSumsContent(t *testing.T) {
	courseID := primitive.NewObjectID()

	courseRepo := &fakeCourseRepo{
		getByID: func(id primitive.ObjectID) (*types.Course, error) {
			return &types.Course{ID: id, Title: "Algebra", Status: types.CourseStatusPublished, EnrollmentCount: 12}, nil
		},
	}
	moduleRepo := &fakeModuleRepo{
		countByCourse: func(primitive.ObjectID) (int64, error) { return 3, nil },
	}
	lessonRepo := &fakeLessonRepo{
		countByCourse: func(primitive.ObjectID) (int64, error) { return 9, nil },
	}
	assignmentRepo := &fakeAssignmentRepo{
		countByCourse: func(primitive.ObjectID) (int64, error) { return 4, nil },
	}
	svc := NewCourseService(testLog(), courseRepo, nil, moduleRepo, lessonRepo, assignmentRepo)

	stats, err := svc.Statistics(context.Background(), courseID.Hex())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.ModulesCount != 3 || stats.LessonsCount != 9 || stats.AssignmentsCount != 4 {
		t.Fatalf("counts %+v, want 3/9/4", stats)
	}
	if stats.TotalContentItems != 16 {
		t.Fatalf("TotalContentItems=%d, want 16", stats.TotalContentItems)
	}
	if stats.Course.EnrollmentCount != 12 {
		t.Fatalf("EnrollmentCount=%d, want 12", stats.Course.EnrollmentCount)
	}
}
