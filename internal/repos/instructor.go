package repos

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/types"
)

type InstructorRepo interface {
	Create(ctx context.Context, instructor *types.Instructor) (*types.Instructor, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Instructor, error)
	List(ctx context.Context, page types.PageRequest) ([]*types.Instructor, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Instructor, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	EmailTaken(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error)
	AddCourseRef(ctx context.Context, instructorID, courseID primitive.ObjectID) error
	RemoveCourseRef(ctx context.Context, instructorID, courseID primitive.ObjectID) error
	ListIDs(ctx context.Context) ([]primitive.ObjectID, error)
	SetCourseRefs(ctx context.Context, instructorID primitive.ObjectID, courseIDs []primitive.ObjectID) error
}

type instructorRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewInstructorRepo(db *mongo.Database, baseLog *logger.Logger) InstructorRepo {
	return &instructorRepo{
		col: db.Collection(types.Instructor{}.CollectionName()),
		log: baseLog.With("repo", "InstructorRepo"),
	}
}

func (r *instructorRepo) Create(ctx context.Context, instructor *types.Instructor) (*types.Instructor, error) {
	instructor.ID = primitive.NewObjectID()
	instructor.CreatedAt = now()
	instructor.UpdatedAt = instructor.CreatedAt
	if instructor.Courses == nil {
		instructor.Courses = []primitive.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, instructor); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, err
	}
	return instructor, nil
}

func (r *instructorRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Instructor, error) {
	return getByID[types.Instructor](ctx, r.col, id)
}

func (r *instructorRepo) List(ctx context.Context, page types.PageRequest) ([]*types.Instructor, int64, error) {
	return findPage[types.Instructor](ctx, r.col, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, page)
}

func (r *instructorRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Instructor, error) {
	instructor, err := updateByID[types.Instructor](ctx, r.col, id, set)
	if err != nil && isDuplicateKey(err) {
		return nil, apperr.ErrEmailTaken
	}
	return instructor, err
}

func (r *instructorRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *instructorRepo) EmailTaken(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return existsByFilter(ctx, r.col, filter)
}

// AddCourseRef and RemoveCourseRef maintain the courses back-reference.
// Both are idempotent; Course.instructor stays the source of truth.
func (r *instructorRepo) AddCourseRef(ctx context.Context, instructorID, courseID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": instructorID},
		bson.M{"$addToSet": bson.M{"courses": courseID}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *instructorRepo) RemoveCourseRef(ctx context.Context, instructorID, courseID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": instructorID},
		bson.M{"$pull": bson.M{"courses": courseID}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *instructorRepo) ListIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *instructorRepo) SetCourseRefs(ctx context.Context, instructorID primitive.ObjectID, courseIDs []primitive.ObjectID) error {
	if courseIDs == nil {
		courseIDs = []primitive.ObjectID{}
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": instructorID},
		bson.M{"$set": bson.M{"courses": courseIDs, "updatedAt": now()}},
	)
	return err
}
