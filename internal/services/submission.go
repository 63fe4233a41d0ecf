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

type SubmissionService interface {
	Create(ctx context.Context, in types.CreateSubmissionInput) (*types.Submission, error)
	List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Submission], error)
	ListByStudent(ctx context.Context, studentID string, page types.PageRequest) (*types.Paginated[*types.Submission], error)
	ListByAssignment(ctx context.Context, assignmentID string, page types.PageRequest) (*types.Paginated[*types.Submission], error)
	Get(ctx context.Context, id string) (*types.Submission, error)
	GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID string) (*types.Submission, error)
	Update(ctx context.Context, id string, in types.UpdateSubmissionInput) (*types.Submission, error)
	Delete(ctx context.Context, id string) error
	AddFeedback(ctx context.Context, id string, in types.SubmissionFeedbackInput) (*types.Submission, error)
}

type submissionService struct {
	log            *logger.Logger
	submissionRepo repos.SubmissionRepo
	studentRepo    repos.StudentRepo
	assignmentRepo repos.AssignmentRepo
	courseRepo     repos.CourseRepo
}

func NewSubmissionService(
	baseLog *logger.Logger,
	submissionRepo repos.SubmissionRepo,
	studentRepo repos.StudentRepo,
	assignmentRepo repos.AssignmentRepo,
	courseRepo repos.CourseRepo,
) SubmissionService {
	return &submissionService{
		log:            baseLog.With("service", "SubmissionService"),
		submissionRepo: submissionRepo,
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
	}
}

func (s *submissionService) Create(ctx context.Context, in types.CreateSubmissionInput) (*types.Submission, error) {
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
	exists, err := s.assignmentRepo.Exists(ctx, aid)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.RefNotFound("assignment", in.Assignment)
	}

	var courseID *primitive.ObjectID
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
		courseID = &cid
	}

	status := in.Status
	if status == "" {
		status = types.SubmissionStatusSubmitted
	}
	attempt := in.AttemptNumber
	if attempt <= 0 {
		attempt = 1
	}
	submittedAt := time.Now().UTC()
	if in.SubmittedAt != nil {
		submittedAt = *in.SubmittedAt
	}
	submission := &types.Submission{
		Student:       sid,
		Assignment:    aid,
		Course:        courseID,
		Status:        status,
		Content:       in.Content,
		SubmittedAt:   submittedAt,
		AttemptNumber: attempt,
		IsLate:        in.IsLate,
	}
	return s.submissionRepo.Create(ctx, submission)
}

func (s *submissionService) List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Submission], error) {
	submissions, total, err := s.submissionRepo.List(ctx, bson.M{}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(submissions, total, page), nil
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID string, page types.PageRequest) (*types.Paginated[*types.Submission], error) {
	sid, err := repos.ParseID(studentID)
	if err != nil {
		return nil, err
	}
	submissions, total, err := s.submissionRepo.List(ctx, bson.M{"student": sid}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(submissions, total, page), nil
}

func (s *submissionService) ListByAssignment(ctx context.Context, assignmentID string, page types.PageRequest) (*types.Paginated[*types.Submission], error) {
	aid, err := repos.ParseID(assignmentID)
	if err != nil {
		return nil, err
	}
	submissions, total, err := s.submissionRepo.List(ctx, bson.M{"assignment": aid}, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(submissions, total, page), nil
}

func (s *submissionService) Get(ctx context.Context, id string) (*types.Submission, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Submission", id)
	}
	return submission, err
}

func (s *submissionService) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID string) (*types.Submission, error) {
	sid, err := repos.ParseID(studentID)
	if err != nil {
		return nil, err
	}
	aid, err := repos.ParseID(assignmentID)
	if err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.GetByStudentAndAssignment(ctx, sid, aid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Submission", studentID+"/"+assignmentID)
	}
	return submission, err
}

func (s *submissionService) Update(ctx context.Context, id string, in types.UpdateSubmissionInput) (*types.Submission, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.Student != nil {
		sid, err := repos.ParseID(*in.Student)
		if err != nil {
			return nil, err
		}
		if _, err := s.studentRepo.GetByID(ctx, sid); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.RefNotFound("student", *in.Student)
			}
			return nil, err
		}
		set["student"] = sid
	}
	if in.Assignment != nil {
		aid, err := repos.ParseID(*in.Assignment)
		if err != nil {
			return nil, err
		}
		exists, err := s.assignmentRepo.Exists(ctx, aid)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.RefNotFound("assignment", *in.Assignment)
		}
		set["assignment"] = aid
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
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Content != nil {
		set["content"] = in.Content
	}
	if in.SubmittedAt != nil {
		set["submittedAt"] = *in.SubmittedAt
	}
	if in.AttemptNumber != nil {
		set["attemptNumber"] = *in.AttemptNumber
	}
	if in.IsLate != nil {
		set["isLate"] = *in.IsLate
	}

	submission, err := s.submissionRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Submission", id)
	}
	return submission, err
}

func (s *submissionService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.submissionRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Submission", id)
		}
		return err
	}
	return nil
}

// AddFeedback attaches instructor feedback and flips the submission to
// returned in one update.
func (s *submissionService) AddFeedback(ctx context.Context, id string, in types.SubmissionFeedbackInput) (*types.Submission, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"feedback": types.SubmissionFeedback{
			Text:      in.Text,
			FileURLs:  in.FileURLs,
			CreatedAt: time.Now().UTC(),
		},
		"status": types.SubmissionStatusReturned,
	}
	submission, err := s.submissionRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Submission", id)
	}
	return submission, err
}
