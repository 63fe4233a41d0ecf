package services

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

func TestModuleCreateOrderConflict(t *testing.T) {
	courseID := primitive.NewObjectID()

	cases := []struct {
		name       string
		order      int
		takenOrder int
		wantDup    bool
	}{
		{name: "order_taken", order: 2, takenOrder: 2, wantDup: true},
		{name: "order_free", order: 3, takenOrder: 2, wantDup: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			moduleRepo := &fakeModuleRepo{
				orderTaken: func(_ primitive.ObjectID, order int, _ primitive.ObjectID) (bool, error) {
					return order == tc.takenOrder, nil
				},
				create: func(m *types.Module) (*types.Module, error) {
					m.ID = primitive.NewObjectID()
					return m, nil
				},
			}
			courseRepo := &fakeCourseRepo{
				exists: func(primitive.ObjectID) (bool, error) { return true, nil },
			}
			svc := NewModuleService(testLog(), moduleRepo, nil, courseRepo)

			_, err := svc.Create(context.Background(), types.CreateModuleInput{
				Title: "Basics", Course: courseID.Hex(), Order: tc.order,
			})
			var dup *apperr.DuplicateOrderError
			if gotDup := errors.As(err, &dup); gotDup != tc.wantDup {
				t.Fatalf("Create err=%v, wantDup=%v", err, tc.wantDup)
			}
			if tc.wantDup && (dup.Scope != "course" || dup.Order != tc.order) {
				t.Fatalf("conflict %+v, want course/%d", dup, tc.order)
			}
		})
	}
}

func TestModuleCreateUnknownCourse(t *testing.T) {
	courseRepo := &fakeCourseRepo{
		exists: func(primitive.ObjectID) (bool, error) { return false, nil },
	}
	svc := NewModuleService(testLog(), &fakeModuleRepo{}, nil, courseRepo)

	_, err := svc.Create(context.Background(), types.CreateModuleInput{
		Title: "Basics", Course: primitive.NewObjectID().Hex(), Order: 1,
	})
	var rnf *apperr.RefNotFoundError
	if !errors.As(err, &rnf) || rnf.Field != "course" {
		t.Fatalf("Create err=%v, want course RefNotFound", err)
	}
}

func TestModuleDeleteWithLessons(t *testing.T) {
	cases := []struct {
		name       string
		hasLessons bool
		wantErr    error
	}{
		{name: "has_lessons", hasLessons: true, wantErr: apperr.ErrHasDependents},
		{name: "empty_module", hasLessons: false, wantErr: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lessonRepo := &fakeLessonRepo{
				existsByModule: func(primitive.ObjectID) (bool, error) { return tc.hasLessons, nil },
			}
			moduleRepo := &fakeModuleRepo{
				deleteByID: func(primitive.ObjectID) error { return nil },
			}
			svc := NewModuleService(testLog(), moduleRepo, lessonRepo, nil)

			err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Delete err=%v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLessonCreateDefaults(t *testing.T) {
	moduleID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	var created *types.Lesson
	lessonRepo := &fakeLessonRepo{
		orderTaken: func(primitive.ObjectID, int, primitive.ObjectID) (bool, error) { return false, nil },
		create: func(l *types.Lesson) (*types.Lesson, error) {
			created = l
			return l, nil
		},
	}
	moduleRepo := &fakeModuleRepo{
		getByID: func(id primitive.ObjectID) (*types.Module, error) {
			return &types.Module{ID: id, Course: courseID}, nil
		},
	}
	svc := NewLessonService(testLog(), lessonRepo, moduleRepo, nil)

	_, err := svc.Create(context.Background(), types.CreateLessonInput{
		Title: "Intro", Module: moduleID.Hex(), Order: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Type != types.LessonTypeText {
		t.Fatalf("Type=%q, want text default", created.Type)
	}
	if created.Course == nil || *created.Course != courseID {
		t.Fatalf("Course=%v, want inherited %v", created.Course, courseID)
	}
}

func TestLessonCreateOrderConflict(t *testing.T) {
	moduleID := primitive.NewObjectID()

	lessonRepo := &fakeLessonRepo{
		orderTaken: func(primitive.ObjectID, int, primitive.ObjectID) (bool, error) { return true, nil },
	}
	moduleRepo := &fakeModuleRepo{
		getByID: func(id primitive.ObjectID) (*types.Module, error) {
			return &types.Module{ID: id, Course: primitive.NewObjectID()}, nil
		},
	}
	svc := NewLessonService(testLog(), lessonRepo, moduleRepo, nil)

	_, err := svc.Create(context.Background(), types.CreateLessonInput{
		Title: "Intro", Module: moduleID.Hex(), Order: 1,
	})
	var dup *apperr.DuplicateOrderError
	if !errors.As(err, &dup) || dup.Scope != "module" {
		t.Fatalf("Create err=%v, want module-scoped order conflict", err)
	}
}
