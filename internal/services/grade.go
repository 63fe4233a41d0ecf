package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type GradeService interface {
	Create(ctx context.Context, in types.CreateGradeInput) (*types.Grade, error)
	List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Grade], error)
	ListByStudent(ctx context.Context, studentID string, page types.PageRequest) (*types.Paginated[*types.Grade], error)
	ListByAssignment(ctx context.Context, assignmentID string, page types.PageRequest) (*types.Paginated[*types.Grade], error)
	Get(ctx context.Context, id string) (*types.Grade, error)
	Update(ctx context.Context, id string, in types.UpdateGradeInput) (*types.Grade, error)
	Delete(ctx context.Context, id string) error
}

type gradeService struct {
	log            *logger.Logger
	gradeRepo      repos.GradeRepo
	submissionRepo repos.SubmissionRepo
	studentRepo    repos.StudentRepo
	assignmentRepo repos.AssignmentRepo
	courseRepo     repos.CourseRepo
	instructorRepo repos.InstructorRepo
}

func NewGradeService(
	baseLog *logger.Logger,
	gradeRepo repos.GradeRepo,
	submissionRepo repos.SubmissionRepo,
	studentRepo repos.StudentRepo,
	assignmentRepo repos.AssignmentRepo,
	courseRepo repos.CourseRepo,
	instructorRepo repos.InstructorRepo,
) GradeService {
	return &gradeService{
		log:            baseLog.With("service", "GradeService"),
		gradeRepo:      gradeRepo,
		submissionRepo: submissionRepo,
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
	}
}

func (s *gradeService) Create(ctx context.Context, in types.CreateGradeInput) (*types.Grade, error) {
	subID, err := repos.ParseID(in.Submission)
	if err != nil {
		return nil, err
	}
	exists, err := s.submissionRepo.Exists(ctx, subID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.RefNotFound("submission", in.Submission)
	}

	sid, err := repos.ParseID(in.Student)
	if err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetByID(ctx, sid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.RefNotFound("student", in.Student)
		}
		return nil, err
	}

	aid, err := repos.ParseID(in.Assignment)
	if err != nil {
		return nil, err
	}
	ok, err := s.assignmentRepo.Exists(ctx, aid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.RefNotFound("assignment", in.Assignment)
	}

	var courseID *primitive.ObjectID
	if in.Course != "" {
		cid, err := repos.ParseID(in.Course)
		if err != nil {
			return nil, err
		}
		ok, err := s.courseRepo.Exists(ctx, cid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.RefNotFound("course", in.Course)
		}
		courseID = &cid
	}

	var gradedBy *primitive.ObjectID
	if in.GradedBy != "" {
		iid, err := repos.ParseID(in.GradedBy)
		if err != nil {
			return nil, err
		}
		if _, err := s.instructorRepo.GetByID(ctx, iid); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.RefNotFound("instructor", in.GradedBy)
			}
			return nil, err
		}
		gradedBy = &iid
	}

	gradedAt := time.Now().UTC()
	if in.GradedAt != nil {
		gradedAt = *in.GradedAt
	}
	grade := &types.Grade{
		Submission:   subID,
		Student:      sid,
		Assignment:   aid,
		Course:       courseID,
		Score:        in.Score,
		GradedBy:     gradedBy,
		GradedAt:     gradedAt,
		Feedback:     in.Feedback,
		RubricScores: in.RubricScores,
	}
	return s.gradeRepo.Create(ctx, grade)
}

func (s *gradeService) List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Grade], error) {
	grades, total, err := s.gradeRepo.List(ctx, bson.M{}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(grades, total, page), nil
}

func (s *gradeService) ListByStudent(ctx context.Context, studentID string, page types.PageRequest) (*types.Paginated[*types.Grade], error) {
	sid, err := repos.ParseID(studentID)
	if err != nil {
		return nil, err
	}
	grades, total, err := s.gradeRepo.List(ctx, bson.M{"student": sid}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(grades, total, page), nil
}

func (s *gradeService) ListByAssignment(ctx context.Context, assignmentID string, page types.PageRequest) (*types.Paginated[*types.Grade], error) {
	aid, err := repos.ParseID(assignmentID)
	if err != nil {
		return nil, err
	}
	grades, total, err := s.gradeRepo.List(ctx, bson.M{"assignment": aid}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(grades, total, page), nil
}

func (s *gradeService) Get(ctx context.Context, id string) (*types.Grade, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	grade, err := s.gradeRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Grade", id)
	}
	return grade, err
}

func (s *gradeService) Update(ctx context.Context, id string, in types.UpdateGradeInput) (*types.Grade, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.Score != nil {
		set["score"] = *in.Score
	}
	if in.GradedBy != nil {
		iid, err := repos.ParseID(*in.GradedBy)
		if err != nil {
			return nil, err
		}
		if _, err := s.instructorRepo.GetByID(ctx, iid); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.RefNotFound("instructor", *in.GradedBy)
			}
			return nil, err
		}
		set["gradedBy"] = iid
	}
	if in.GradedAt != nil {
		set["gradedAt"] = *in.GradedAt
	}
	if in.Feedback != nil {
		set["feedback"] = *in.Feedback
	}
	if in.RubricScores != nil {
		set["rubricScores"] = in.RubricScores
	}

	grade, err := s.gradeRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Grade", id)
	}
	return grade, err
}

func (s *gradeService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.gradeRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Grade", id)
		}
		return err
	}
	return nil
}
