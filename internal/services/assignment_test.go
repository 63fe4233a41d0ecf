package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

func TestAssignmentCreateAnchors(t *testing.T) {
	courseID := primitive.NewObjectID()
	moduleID := primitive.NewObjectID()
	otherModule := primitive.NewObjectID()
	lessonID := primitive.NewObjectID()

	courseRepo := &fakeCourseRepo{
		exists: func(id primitive.ObjectID) (bool, error) { return id == courseID, nil },
	}
	moduleRepo := &fakeModuleRepo{
		existsInCourse: func(mid, cid primitive.ObjectID) (bool, error) {
			return mid == moduleID && cid == courseID, nil
		},
	}
	lessonRepo := &fakeLessonRepo{
		getByID: func(id primitive.ObjectID) (*types.Lesson, error) {
			if id == lessonID {
				return &types.Lesson{ID: id, Module: moduleID}, nil
			}
			return nil, apperr.NotFound("Lesson", id.Hex())
		},
	}
	assignmentRepo := &fakeAssignmentRepo{
		create: func(a *types.Assignment) (*types.Assignment, error) {
			a.ID = primitive.NewObjectID()
			return a, nil
		},
	}
	svc := NewAssignmentService(testLog(), assignmentRepo, courseRepo, moduleRepo, lessonRepo)

	cases := []struct {
		name    string
		in      types.CreateAssignmentInput
		wantErr error
	}{
		{
			name: "course_only",
			in:   types.CreateAssignmentInput{Title: "Essay", Course: courseID.Hex(), DueDate: time.Now()},
		},
		{
			name: "module_and_lesson",
			in: types.CreateAssignmentInput{
				Title: "Essay", Course: courseID.Hex(),
				Module: moduleID.Hex(), Lesson: lessonID.Hex(), DueDate: time.Now(),
			},
		},
		{
			name: "module_not_in_course",
			in: types.CreateAssignmentInput{
				Title: "Essay", Course: courseID.Hex(), Module: otherModule.Hex(), DueDate: time.Now(),
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "lesson_missing",
			in: types.CreateAssignmentInput{
				Title: "Essay", Course: courseID.Hex(),
				Module: moduleID.Hex(), Lesson: primitive.NewObjectID().Hex(), DueDate: time.Now(),
			},
			wantErr: apperr.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Create err=%v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAssignmentCreateLessonInWrongModule(t *testing.T) {
	courseID := primitive.NewObjectID()
	moduleID := primitive.NewObjectID()
	lessonID := primitive.NewObjectID()

	courseRepo := &fakeCourseRepo{
		exists: func(primitive.ObjectID) (bool, error) { return true, nil },
	}
	moduleRepo := &fakeModuleRepo{
		existsInCourse: func(primitive.ObjectID, primitive.ObjectID) (bool, error) { return true, nil },
	}
	lessonRepo := &fakeLessonRepo{
		getByID: func(id primitive.ObjectID) (*types.Lesson, error) {
			// Belongs to a different module than the one on the payload.
			return &types.Lesson{ID: id, Module: primitive.NewObjectID()}, nil
		},
	}
	svc := NewAssignmentService(testLog(), &fakeAssignmentRepo{}, courseRepo, moduleRepo, lessonRepo)

	_, err := svc.Create(context.Background(), types.CreateAssignmentInput{
		Title: "Essay", Course: courseID.Hex(),
		Module: moduleID.Hex(), Lesson: lessonID.Hex(), DueDate: time.Now(),
	})
	if !errors.Is(err, apperr.ErrInconsistentReference) {
		t.Fatalf("Create err=%v, want ErrInconsistentReference", err)
	}
}

func TestAssignmentCreateDefaultsStatus(t *testing.T) {
	courseID := primitive.NewObjectID()

	var created *types.Assignment
	courseRepo := &fakeCourseRepo{
		exists: func(primitive.ObjectID) (bool, error) { return true, nil },
	}
	assignmentRepo := &fakeAssignmentRepo{
		create: func(a *types.Assignment) (*types.Assignment, error) {
			created = a
			return a, nil
		},
	}
	svc := NewAssignmentService(testLog(), assignmentRepo, courseRepo, nil, nil)

	_, err := svc.Create(context.Background(), types.CreateAssignmentInput{
		Title: "Essay", Course: courseID.Hex(), DueDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != types.AssignmentStatusActive {
		t.Fatalf("Status=%q, want active default", created.Status)
	}
	if created.Module != nil || created.Lesson != nil {
		t.Fatalf("anchors %v/%v, want both nil", created.Module, created.Lesson)
	}
}
