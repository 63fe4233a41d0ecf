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

type AssignmentService interface {
	Create(ctx context.Context, in types.CreateAssignmentInput) (*types.Assignment, error)
	List(ctx context.Context, courseID, status string, page types.PageRequest) (*types.Paginated[*types.Assignment], error)
	Get(ctx context.Context, id string) (*types.Assignment, error)
	Update(ctx context.Context, id string, in types.UpdateAssignmentInput) (*types.Assignment, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	log            *logger.Logger
	assignmentRepo repos.AssignmentRepo
	courseRepo     repos.CourseRepo
	moduleRepo     repos.ModuleRepo
	lessonRepo     repos.LessonRepo
}

func NewAssignmentService(
	baseLog *logger.Logger,
	assignmentRepo repos.AssignmentRepo,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
) AssignmentService {
	return &assignmentService{
		log:            baseLog.With("service", "AssignmentService"),
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
	}
}

// checkAnchors validates the optional module and lesson references against
// the owning course: the module must belong to the course, and the lesson
// must belong to the module.
func (s *assignmentService) checkAnchors(ctx context.Context, courseID primitive.ObjectID, moduleRef, lessonRef string) (*primitive.ObjectID, *primitive.ObjectID, error) {
	var moduleID, lessonID *primitive.ObjectID
	if moduleRef != "" {
		mid, err := repos.ParseID(moduleRef)
		if err != nil {
			return nil, nil, err
		}
		ok, err := s.moduleRepo.ExistsInCourse(ctx, mid, courseID)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, apperr.RefNotFound("module", moduleRef)
		}
		moduleID = &mid
	}
	if lessonRef != "" {
		lid, err := repos.ParseID(lessonRef)
		if err != nil {
			return nil, nil, err
		}
		lesson, err := s.lessonRepo.GetByID(ctx, lid)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, apperr.RefNotFound("lesson", lessonRef)
		}
		if err != nil {
			return nil, nil, err
		}
		if moduleID != nil && lesson.Module != *moduleID {
			return nil, nil, apperr.ErrInconsistentReference
		}
		lessonID = &lid
	}
	return moduleID, lessonID, nil
}

func (s *assignmentService) Create(ctx context.Context, in types.CreateAssignmentInput) (*types.Assignment, error) {
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

	moduleID, lessonID, err := s.checkAnchors(ctx, cid, in.Module, in.Lesson)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = types.AssignmentStatusActive
	}
	assignment := &types.Assignment{
		Title:              in.Title,
		Description:        in.Description,
		Course:             cid,
		Module:             moduleID,
		Lesson:             lessonID,
		DueDate:            in.DueDate,
		TotalPoints:        in.TotalPoints,
		Status:             status,
		Resources:          in.Resources,
		SubmissionSettings: in.SubmissionSettings,
	}
	return s.assignmentRepo.Create(ctx, assignment)
}

func (s *assignmentService) List(ctx context.Context, courseID, status string, page types.PageRequest) (*types.Paginated[*types.Assignment], error) {
	filter := bson.M{}
	if courseID != "" {
		cid, err := repos.ParseID(courseID)
		if err != nil {
			return nil, err
		}
		filter["course"] = cid
	}
	if status != "" {
		filter["status"] = status
	}
	assignments, total, err := s.assignmentRepo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(assignments, total, page), nil
}

func (s *assignmentService) Get(ctx context.Context, id string) (*types.Assignment, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Assignment", id)
	}
	return assignment, err
}

func (s *assignmentService) Update(ctx context.Context, id string, in types.UpdateAssignmentInput) (*types.Assignment, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.assignmentRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Assignment", id)
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

	// Re-check anchors whenever either changes, against the effective course.
	if in.Module != nil || in.Lesson != nil {
		moduleRef := ""
		if in.Module != nil {
			moduleRef = *in.Module
		} else if current.Module != nil {
			moduleRef = current.Module.Hex()
		}
		lessonRef := ""
		if in.Lesson != nil {
			lessonRef = *in.Lesson
		} else if current.Lesson != nil {
			lessonRef = current.Lesson.Hex()
		}
		moduleID, lessonID, err := s.checkAnchors(ctx, courseID, moduleRef, lessonRef)
		if err != nil {
			return nil, err
		}
		set["module"] = moduleID
		set["lesson"] = lessonID
	}

	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.DueDate != nil {
		set["dueDate"] = *in.DueDate
	}
	if in.TotalPoints != nil {
		set["totalPoints"] = *in.TotalPoints
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Resources != nil {
		set["resources"] = in.Resources
	}
	if in.SubmissionSettings != nil {
		set["submissionSettings"] = in.SubmissionSettings
	}

	assignment, err := s.assignmentRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Assignment", id)
	}
	return assignment, err
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.assignmentRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Assignment", id)
		}
		return err
	}
	return nil
}
