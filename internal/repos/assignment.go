package repos

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/types"
)

type AssignmentRepo interface {
	Create(ctx context.Context, assignment *types.Assignment) (*types.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Assignment, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Assignment, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Assignment, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
	DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type assignmentRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewAssignmentRepo(db *mongo.Database, baseLog *logger.Logger) AssignmentRepo {
	return &assignmentRepo{
		col: db.Collection(types.Assignment{}.CollectionName()),
		log: baseLog.With("repo", "AssignmentRepo"),
	}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *types.Assignment) (*types.Assignment, error) {
	assignment.ID = primitive.NewObjectID()
	assignment.CreatedAt = now()
	assignment.UpdatedAt = assignment.CreatedAt
	if _, err := r.col.InsertOne(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Assignment, error) {
	return getByID[types.Assignment](ctx, r.col, id)
}

func (r *assignmentRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return existsByFilter(ctx, r.col, bson.M{"_id": id})
}

func (r *assignmentRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Assignment, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Assignment](ctx, r.col, filter, bson.D{{Key: "dueDate", Value: 1}}, page)
}

func (r *assignmentRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Assignment, error) {
	return updateByID[types.Assignment](ctx, r.col, id, set)
}

func (r *assignmentRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *assignmentRepo) CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"course": courseID})
}

func (r *assignmentRepo) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"course": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
