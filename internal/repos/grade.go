package repos

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/types"
)

type GradeRepo interface {
	Create(ctx context.Context, grade *types.Grade) (*types.Grade, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Grade, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Grade, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Grade, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	PerformanceByStudent(ctx context.Context, studentID primitive.ObjectID) (*types.StudentPerformance, error)
}

type gradeRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewGradeRepo(db *mongo.Database, baseLog *logger.Logger) GradeRepo {
	return &gradeRepo{
		col: db.Collection(types.Grade{}.CollectionName()),
		log: baseLog.With("repo", "GradeRepo"),
	}
}

func (r *gradeRepo) Create(ctx context.Context, grade *types.Grade) (*types.Grade, error) {
	grade.ID = primitive.NewObjectID()
	grade.CreatedAt = now()
	grade.UpdatedAt = grade.CreatedAt
	if _, err := r.col.InsertOne(ctx, grade); err != nil {
		// One grade per submission, enforced by the unique index.
		if isDuplicateKey(err) {
			return nil, apperr.ErrDuplicateGrade
		}
		return nil, err
	}
	return grade, nil
}

func (r *gradeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Grade, error) {
	return getByID[types.Grade](ctx, r.col, id)
}

func (r *gradeRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Grade, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Grade](ctx, r.col, filter, bson.D{{Key: "createdAt", Value: -1}}, page)
}

func (r *gradeRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Grade, error) {
	return updateByID[types.Grade](ctx, r.col, id, set)
}

func (r *gradeRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *gradeRepo) PerformanceByStudent(ctx context.Context, studentID primitive.ObjectID) (*types.StudentPerformance, error) {
	cur, err := r.col.Aggregate(ctx, studentPerformancePipeline(studentID))
	if err != nil {
		return nil, err
	}
	var rows []types.StudentPerformance
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	perf := rows[0]
	if perf.CoursePerformance == nil {
		perf.CoursePerformance = []types.CoursePerformance{}
	}
	return &perf, nil
}
