package repos

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/types"
)

// ParseID validates an id's shape before any store round trip.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.ErrInvalidID
	}
	return oid, nil
}

func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func now() time.Time { return time.Now().UTC() }

// findPage runs the filtered find and the matching count concurrently, the
// way every list endpoint pages its results.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, page types.PageRequest) ([]*T, int64, error) {
	var (
		items []*T
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(sort).
			SetSkip(page.Skip()).
			SetLimit(int64(page.Limit))
		cur, err := col.Find(gctx, filter, opts)
		if err != nil {
			return err
		}
		return cur.All(gctx, &items)
	})
	g.Go(func() error {
		var err error
		total, err = col.CountDocuments(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func getByID[T any](ctx context.Context, col *mongo.Collection, id primitive.ObjectID) (*T, error) {
	var out T
	err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// updateByID applies a partial $set merge and returns the updated document.
func updateByID[T any](ctx context.Context, col *mongo.Collection, id primitive.ObjectID, set bson.M) (*T, error) {
	set["updatedAt"] = now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	err := col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id primitive.ObjectID) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func existsByFilter(ctx context.Context, col *mongo.Collection, filter bson.M) (bool, error) {
	err := col.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
