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

type LessonRepo interface {
	Create(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Lesson, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Lesson, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Lesson, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	OrderTaken(ctx context.Context, moduleID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error)
	ExistsByModule(ctx context.Context, moduleID primitive.ObjectID) (bool, error)
	CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
	DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type lessonRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewLessonRepo(db *mongo.Database, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{
		col: db.Collection(types.Lesson{}.CollectionName()),
		log: baseLog.With("repo", "LessonRepo"),
	}
}

func (r *lessonRepo) Create(ctx context.Context, lesson *types.Lesson) (*types.Lesson, error) {
	lesson.ID = primitive.NewObjectID()
	lesson.CreatedAt = now()
	lesson.UpdatedAt = lesson.CreatedAt
	if _, err := r.col.InsertOne(ctx, lesson); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.DuplicateOrder("module", lesson.Order)
		}
		return nil, err
	}
	return lesson, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Lesson, error) {
	return getByID[types.Lesson](ctx, r.col, id)
}

func (r *lessonRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Lesson, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Lesson](ctx, r.col, filter, bson.D{{Key: "order", Value: 1}}, page)
}

func (r *lessonRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Lesson, error) {
	lesson, err := updateByID[types.Lesson](ctx, r.col, id, set)
	if err != nil && isDuplicateKey(err) {
		if order, ok := set["order"].(int); ok {
			return nil, apperr.DuplicateOrder("module", order)
		}
		return nil, apperr.DuplicateOrder("module", 0)
	}
	return lesson, err
}

func (r *lessonRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *lessonRepo) OrderTaken(ctx context.Context, moduleID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"module": moduleID, "order": order}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return existsByFilter(ctx, r.col, filter)
}

func (r *lessonRepo) ExistsByModule(ctx context.Context, moduleID primitive.ObjectID) (bool, error) {
	return existsByFilter(ctx, r.col, bson.M{"module": moduleID})
}

func (r *lessonRepo) CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"course": courseID})
}

func (r *lessonRepo) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"course": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
