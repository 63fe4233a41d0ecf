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

type ModuleService interface {
	Create(ctx context.Context, in types.CreateModuleInput) (*types.Module, error)
	List(ctx context.Context, courseID string, page types.PageRequest) (*types.Paginated[*types.Module], error)
	Get(ctx context.Context, id string) (*types.Module, error)
	Update(ctx context.Context, id string, in types.UpdateModuleInput) (*types.Module, error)
	Delete(ctx context.Context, id string) error
}

type moduleService struct {
	log        *logger.Logger
	moduleRepo repos.ModuleRepo
	lessonRepo repos.LessonRepo
	courseRepo repos.CourseRepo
}

func NewModuleService(
	baseLog *logger.Logger,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
	courseRepo repos.CourseRepo,
) ModuleService {
	return &moduleService{
		log:        baseLog.With("service", "ModuleService"),
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
	}
}

func (s *moduleService) Create(ctx context.Context, in types.CreateModuleInput) (*types.Module, error) {
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

	taken, err := s.moduleRepo.OrderTaken(ctx, cid, in.Order, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.DuplicateOrder("course", in.Order)
	}

	module := &types.Module{
		Title:           in.Title,
		Description:     in.Description,
		Course:          cid,
		Order:           in.Order,
		DurationMinutes: in.DurationMinutes,
	}
	if in.IsPublished != nil {
		module.IsPublished = *in.IsPublished
	}
	return s.moduleRepo.Create(ctx, module)
}

func (s *moduleService) List(ctx context.Context, courseID string, page types.PageRequest) (*types.Paginated[*types.Module], error) {
	filter := bson.M{}
	if courseID != "" {
		cid, err := repos.ParseID(courseID)
		if err != nil {
			return nil, err
		}
		filter["course"] = cid
	}
	modules, total, err := s.moduleRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(modules, total, page), nil
}

func (s *moduleService) Get(ctx context.Context, id string) (*types.Module, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	module, err := s.moduleRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Module", id)
	}
	return module, err
}

func (s *moduleService) Update(ctx context.Context, id string, in types.UpdateModuleInput) (*types.Module, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.moduleRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Module", id)
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	courseID := current.Course
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
		courseID = cid
		set["course"] = cid
	}
	if in.Order != nil {
		taken, err := s.moduleRepo.OrderTaken(ctx, courseID, *in.Order, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.DuplicateOrder("course", *in.Order)
		}
		set["order"] = *in.Order
	}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.IsPublished != nil {
		set["isPublished"] = *in.IsPublished
	}
	if in.DurationMinutes != nil {
		set["durationMinutes"] = *in.DurationMinutes
	}

	module, err := s.moduleRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Module", id)
	}
	return module, err
}

// Delete refuses to orphan lessons; the module's lessons must be removed or
// moved first.
func (s *moduleService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	hasLessons, err := s.lessonRepo.ExistsByModule(ctx, oid)
	if err != nil {
		return err
	}
	if hasLessons {
		return apperr.ErrHasDependents
	}
	if err := s.moduleRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Module", id)
		}
		return err
	}
	return nil
}
