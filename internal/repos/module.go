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

type ModuleRepo interface {
	Create(ctx context.Context, module *types.Module) (*types.Module, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Module, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Module, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Module, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	OrderTaken(ctx context.Context, courseID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error)
	ExistsInCourse(ctx context.Context, moduleID, courseID primitive.ObjectID) (bool, error)
	CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
	DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}

type moduleRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewModuleRepo(db *mongo.Database, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{
		col: db.Collection(types.Module{}.CollectionName()),
		log: baseLog.With("repo", "ModuleRepo"),
	}
}

func (r *moduleRepo) Create(ctx context.Context, module *types.Module) (*types.Module, error) {
	module.ID = primitive.NewObjectID()
	module.CreatedAt = now()
	module.UpdatedAt = module.CreatedAt
	if _, err := r.col.InsertOne(ctx, module); err != nil {
		// The unique (course, order) index is the real arbiter; a racing
		// insert that slipped past the pre-check lands here.
		if isDuplicateKey(err) {
			return nil, apperr.DuplicateOrder("course", module.Order)
		}
		return nil, err
	}
	return module, nil
}

func (r *moduleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Module, error) {
	return getByID[types.Module](ctx, r.col, id)
}

func (r *moduleRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Module, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Module](ctx, r.col, filter, bson.D{{Key: "order", Value: 1}}, page)
}

func (r *moduleRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Module, error) {
	module, err := updateByID[types.Module](ctx, r.col, id, set)
	if err != nil && isDuplicateKey(err) {
		if order, ok := set["order"].(int); ok {
			return nil, apperr.DuplicateOrder("course", order)
		}
		return nil, apperr.DuplicateOrder("course", 0)
	}
	return module, err
}

func (r *moduleRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *moduleRepo) OrderTaken(ctx context.Context, courseID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"course": courseID, "order": order}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return existsByFilter(ctx, r.col, filter)
}

func (r *moduleRepo) ExistsInCourse(ctx context.Context, moduleID, courseID primitive.ObjectID) (bool, error) {
	return existsByFilter(ctx, r.col, bson.M{"_id": moduleID, "course": courseID})
}

func (r *moduleRepo) CountByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"course": courseID})
}

func (r *moduleRepo) DeleteByCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"course": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
