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

type StudentRepo interface {
	Create(ctx context.Context, student *types.Student) (*types.Student, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error)
	List(ctx context.Context, page types.PageRequest) ([]*types.Student, int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Student, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	EmailTaken(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error)
	AddEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error
	RemoveEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error
	EnrollmentDetails(ctx context.Context, studentID primitive.ObjectID) (*types.StudentDashboard, error)
	EnrollmentCountGroups(ctx context.Context) ([]types.CourseEnrollmentCount, error)
}

type studentRepo struct {
	col *mongo.Collection
	log *logger.Logger
}

func NewStudentRepo(db *mongo.Database, baseLog *logger.Logger) StudentRepo {
	return &studentRepo{
		col: db.Collection(types.Student{}.CollectionName()),
		log: baseLog.With("repo", "StudentRepo"),
	}
}

func (r *studentRepo) Create(ctx context.Context, student *types.Student) (*types.Student, error) {
	student.ID = primitive.NewObjectID()
	student.CreatedAt = now()
	student.UpdatedAt = student.CreatedAt
	if student.EnrolledCourses == nil {
		student.EnrolledCourses = []primitive.ObjectID{}
	}
	if _, err := r.col.InsertOne(ctx, student); err != nil {
		if isDuplicateKey(err) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, err
	}
	return student, nil
}

func (r *studentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*types.Student, error) {
	return getByID[types.Student](ctx, r.col, id)
}

func (r *studentRepo) List(ctx context.Context, page types.PageRequest) ([]*types.Student, int64, error) {
	return findPage[types.Student](ctx, r.col, bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, page)
}

func (r *studentRepo) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*types.Student, error) {
	student, err := updateByID[types.Student](ctx, r.col, id, set)
	if err != nil && isDuplicateKey(err) {
		return nil, apperr.ErrEmailTaken
	}
	return student, err
}

func (r *studentRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.col, id)
}

func (r *studentRepo) EmailTaken(ctx context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	return existsByFilter(ctx, r.col, filter)
}

// AddEnrolledCourse and RemoveEnrolledCourse are idempotent; retries after a
// partial failure cannot duplicate or over-remove memberships.
func (r *studentRepo) AddEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$addToSet": bson.M{"enrolledCourses": courseID}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *studentRepo) RemoveEnrolledCourse(ctx context.Context, studentID, courseID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": studentID},
		bson.M{"$pull": bson.M{"enrolledCourses": courseID}, "$set": bson.M{"updatedAt": now()}},
	)
	return err
}

func (r *studentRepo) EnrollmentDetails(ctx context.Context, studentID primitive.ObjectID) (*types.StudentDashboard, error) {
	cur, err := r.col.Aggregate(ctx, enrollmentDetailsPipeline(studentID))
	if err != nil {
		return nil, err
	}
	var rows []types.StudentDashboard
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrNotFound
	}
	dashboard := rows[0]
	if dashboard.Courses == nil {
		dashboard.Courses = []types.DashboardCourse{}
	}
	return &dashboard, nil
}

// EnrollmentCountGroups recomputes per-course enrollment from the
// authoritative enrolledCourses sets.
func (r *studentRepo) EnrollmentCountGroups(ctx context.Context) ([]types.CourseEnrollmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$enrolledCourses"}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$enrolledCourses",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []types.CourseEnrollmentCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
