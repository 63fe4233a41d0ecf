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

type CourseRepo interface {
	Create(ctx context.Context, course *types.Course) (*types.Course, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Course, int64, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID, page types.PageRequest) ([]*types.Course, error)
	Search(ctx context.Context, term string, page types.PageRequest) ([]*types.Course, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Course, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	IncrementEnrollment(ctx context.Context, id primitive.ObjectID) error
	DecrementEnrollment(ctx context.Context, id primitive.ObjectID) error
	Details(ctx context.Context, id primitive.ObjectID) (*types.CourseDetails, error)
	InstructorCourseGroups(ctx context.Context) ([]types.InstructorCourseGroup, error)
	ResetEnrollmentCounts(ctx context.Context) (int64, error)
	SetEnrollmentCount(ctx context.Context, id primitive.ObjectID, count int64) error
}

type courseRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewCourseRepo(db *mongo.Database, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{
		col: db.Collection(types.Course{}.CollectionName()),
		log: baseLog.With("repo", "CourseRepo"),
	}
}

func (r *courseRepo) Create(ctx context.Context, course *types.Course) (*types.Course, error) {
	course.ID = primitive.NewObjectID()
	course.CreatedAt = now()
	course.UpdatedAt = course.CreatedAt
	if _, err := r.col.InsertOne(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (r *courseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Course, error) {
	return getByID[types.Course](ctx, r.col, id)
}

func (r *courseRepo) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return existsByFilter(ctx, r.col, bson.M{"_id": id})
}

func (r *courseRepo) List(ctx context.Context, filter bson.M, page types.PageRequest) ([]*types.Course, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return findPage[types.Course](ctx, r.col, filter, bson.D{{Key: "createdAt", Value: -1}}, page)
}

// ListByIDs pages through an explicit id set (an instructor's back-reference
// list); the caller already knows the total.
func (r *courseRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID, page types.PageRequest) ([]*types.Course, error) {
	if len(ids) == 0 {
		return []*types.Course{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	var courses []*types.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) Search(ctx context.Context, term string, page types.PageRequest) ([]*types.Course, int64, error) {
	filter := bson.M{"$text": bson.M{"$search": term}}
	sort := bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	return findPage[types.Course](ctx, r.col, filter, sort, page)
}

func (r *courseRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Course, error) {
	return updateByID[types.Course](ctx, r.col, id, set)
}

func (r *courseRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

// IncrementEnrollment and DecrementEnrollment are single atomic store
// updates; the decrement filter keeps the counter floored at zero without a
// read-modify-write cycle.
func (r *courseRepo) IncrementEnrollment(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"enrollmentCount": 1}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *courseRepo) DecrementEnrollment(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "enrollmentCount": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"enrollmentCount": -1}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *courseRepo) Details(ctx context.Context, id primitive.ObjectID) (*types.CourseDetails, error) {
	cur, err := r.col.Aggregate(ctx, courseDetailsPipeline(id))
	if err != nil {
		return nil, err
	}
	var rows []types.CourseDetails
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	details := rows[0]
	if details.Modules == nil {
		details.Modules = []types.ModuleNode{}
	}
	for i := range details.Modules {
		if details.Modules[i].Lessons == nil {
			details.Modules[i].Lessons = []types.LessonNode{}
		}
	}
	if details.Assignments == nil {
		details.Assignments = []types.AssignmentNode{}
	}
	return &details, nil
}

// InstructorCourseGroups recomputes each instructor's course list from the
// authoritative Course.instructor field.
func (r *courseRepo) InstructorCourseGroups(ctx context.Context) ([]types.InstructorCourseGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     "$instructor",
			"courses": bson.M{"$push": "$_id"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []types.InstructorCourseGroup
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *courseRepo) ResetEnrollmentCounts(ctx context.Context) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{"enrollmentCount": 0}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *courseRepo) SetEnrollmentCount(ctx context.Context, id primitive.ObjectID, count int64) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"enrollmentCount": count}})
	return err
}
