package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type LessonService interface {
	Create(ctx context.Context, in types.CreateLessonInput) (*types.Lesson, error)
	List(ctx context.Context, moduleID, courseID string, page types.PageRequest) (*types.Paginated[*types.Lesson], error)
	Get(ctx context.Context, id string) (*types.Lesson, error)
	Update(ctx context.Context, id string, in types.UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	log        *logger.Logger
	lessonRepo repos.LessonRepo
	moduleRepo repos.ModuleRepo
	courseRepo repos.CourseRepo
}

func NewLessonService(
	baseLog *logger.Logger,
	lessonRepo repos.LessonRepo,
	moduleRepo repos.ModuleRepo,
	courseRepo repos.CourseRepo,
) LessonService {
	return &lessonService{
		log:        baseLog.With("service", "LessonService"),
		lessonRepo: lessonRepo,
		moduleRepo: moduleRepo,
		courseRepo: courseRepo,
	}
}

func (s *lessonService) Create(ctx context.Context, in types.CreateLessonInput) (*types.Lesson, error) {
	mid, err := repos.ParseID(in.Module)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.GetByID(ctx, mid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.RefNotFound("module", in.Module)
	}
	if err != nil {
		return nil, err
	}

	// Course defaults to the parent module's course when omitted.
	courseID := module.Course
	if in.Course != "" {
		cid, err := repos.ParseID(in.Course)
		if err != nil {
			return nil, err
		}
		exists, err := s.courseRepo.Exists(ctx, cid)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.RefNotFound("course", in.Course)
		}
		courseID = cid
	}

	taken, err := s.lessonRepo.OrderTaken(ctx, mid, in.Order, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.DuplicateOrder("module", in.Order)
	}

	lessonType := in.Type
	if lessonType == "" {
		lessonType = types.LessonTypeText
	}
	lesson := &types.Lesson{
		Title:           in.Title,
		Description:     in.Description,
		Module:          mid,
		Course:          &courseID,
		Order:           in.Order,
		Type:            lessonType,
		Content:         in.Content,
		DurationMinutes: in.DurationMinutes,
	}
	if in.IsPublished != nil {
		lesson.IsPublished = *in.IsPublished
	}
	return s.lessonRepo.Create(ctx, lesson)
}

func (s *lessonService) List(ctx context.Context, moduleID, courseID string, page types.PageRequest) (*types.Paginated[*types.Lesson], error) {
	filter := bson.M{}
	if moduleID != "" {
		mid, err := repos.ParseID(moduleID)
		if err != nil {
			return nil, err
		}
		filter["module"] = mid
	}
	if courseID != "" {
		cid, err := repos.ParseID(courseID)
		if err != nil {
			return nil, err
		}
		filter["course"] = cid
	}
	lessons, total, err := s.lessonRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(lessons, total, page), nil
}

func (s *lessonService) Get(ctx context.Context, id string) (*types.Lesson, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	lesson, err := s.lessonRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Lesson", id)
	}
	return lesson, err
}

func (s *lessonService) Update(ctx context.Context, id string, in types.UpdateLessonInput) (*types.Lesson, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.lessonRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Lesson", id)
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	moduleID := current.Module
	if in.Module != nil {
		mid, err := repos.ParseID(*in.Module)
		if err != nil {
			return nil, err
		}
		if _, err := s.moduleRepo.GetByID(ctx, mid); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.RefNotFound("module", *in.Module)
			}
			return nil, err
		}
		moduleID = mid
		set["module"] = mid
	}
	if in.Course != nil {
		cid, err := repos.ParseID(*in.Course)
		if err != nil {
			return nil, err
		}
		exists, err := s.courseRepo.Exists(ctx, cid)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.RefNotFound("course", *in.Course)
		}
		set["course"] = cid
	}
	if in.Order != nil {
		taken, err := s.lessonRepo.OrderTaken(ctx, moduleID, *in.Order, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.DuplicateOrder("module", *in.Order)
		}
		set["order"] = *in.Order
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.Type != nil {
		set["type"] = *in.Type
	}
	if in.Content != nil {
		set["content"] = in.Content
	}
	if in.IsPublished != nil {
		set["isPublished"] = *in.IsPublished
	}
	if in.DurationMinutes != nil {
		set["durationMinutes"] = *in.DurationMinutes
	}

	lesson, err := s.lessonRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Lesson", id)
	}
	return lesson, err
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.lessonRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Lesson", id)
		}
		return err
	}
	return nil
}
