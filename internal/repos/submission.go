package repos

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/types"
)

type SubmissionRepo interface {
	Create(ctx context.Context, submission *types.Submission) (*types.Submission, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Submission, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Submission, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Submission, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID primitive.ObjectID) (*types.Submission, error)
	Statistics(ctx context.Context, studentID primitive.ObjectID) (*types.SubmissionStatistics, error)
}

type submissionRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewSubmissionRepo(db *mongo.Database, baseLog *logger.Logger) SubmissionRepo {
	return &submissionRepo{
		col: db.Collection(types.Submission{}.CollectionName()),
		log: baseLog.With("repo", "SubmissionRepo"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, submission *types.Submission) (*types.Submission, error) {
	submission.ID = primitive.NewObjectID()
	submission.CreatedAt = now()
	submission.UpdatedAt = submission.CreatedAt
	if _, err := r.col.InsertOne(ctx, submission); err != nil {
		// (student, assignment, attemptNumber) unique index.
		if isDuplicateKey(err) {
			return nil, apperr.ErrDuplicateAttempt
		}
		return nil, err
	}
	return submission, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Submission, error) {
	return getByID[types.Submission](ctx, r.col, id)
}

func (r *submissionRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return existsByFilter(ctx, r.col, bson.M{"_id": id})
}

func (r *submissionRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Submission, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Submission](ctx, r.col, filter, bson.D{{Key: "submittedAt", Value: -1}}, page)
}

func (r *submissionRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Submission, error) {
	submission, err := updateByID[types.Submission](ctx, r.col, id, set)
	if err != nil && isDuplicateKey(err) {
		return nil, apperr.ErrDuplicateAttempt
	}
	return submission, err
}

func (r *submissionRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *submissionRepo) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID primitive.ObjectID) (*types.Submission, error) {
	var out types.Submission
	err := r.col.FindOne(ctx, bson.M{"student": studentID, "assignment": assignmentID}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *submissionRepo) Statistics(ctx context.Context, studentID primitive.ObjectID) (*types.SubmissionStatistics, error) {
	cur, err := r.col.Aggregate(ctx, submissionStatisticsPipeline(studentID))
	if err != nil {
		return nil, err
	}
	var rows []types.SubmissionStatistics
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	stats := rows[0]
	if stats.StatusBreakdown == nil {
		stats.StatusBreakdown = []types.StatusGroup{}
	}
	return &stats, nil
}
