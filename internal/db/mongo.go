package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/types"
	"github.com/openlearn/lms-backend/internal/utils"
)

type MongoService struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func NewMongoService(log *logger.Logger) (*MongoService, error) {
	serviceLog := log.With("service", "MongoService")

	uri := utils.GetEnv("MONGO_URI", "mongodb://localhost:27017", log)
	name := utils.GetEnv("MONGO_DB", "lms", log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	serviceLog.Info("Connecting to MongoDB...", "db", name)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		serviceLog.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		serviceLog.Error("Failed to ping MongoDB", "error", err)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoService{
		client: client,
		db:     client.Database(name),
		log:    serviceLog,
	}, nil
}

func (s *MongoService) Database() *mongo.Database { return s.db }

func (s *MongoService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique indexes that act as the final arbiter for
// the uniqueness invariants; application-level pre-checks only exist for
// friendlier error messages. Safe to call repeatedly.
func (s *MongoService) EnsureIndexes(ctx context.Context) error {
	s.log.Info("Ensuring MongoDB indexes...")

	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		types.Student{}.CollectionName(): {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		types.Instructor{}.CollectionName(): {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		types.Course{}.CollectionName(): {
			{Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "tags", Value: "text"},
			}},
			{Keys: bson.D{{Key: "instructor", Value: 1}}},
		},
		types.Module{}.CollectionName(): {
			{Keys: bson.D{{Key: "course", Value: 1}, {Key: "order", Value: 1}}, Options: unique},
		},
		types.Lesson{}.CollectionName(): {
			{Keys: bson.D{{Key: "module", Value: 1}, {Key: "order", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "course", Value: 1}}},
		},
		types.Assignment{}.CollectionName(): {
			{Keys: bson.D{{Key: "course", Value: 1}}},
		},
		types.Submission{}.CollectionName(): {
			{Keys: bson.D{
				{Key: "student", Value: 1},
				{Key: "assignment", Value: 1},
				{Key: "attemptNumber", Value: 1},
			}, Options: unique},
		},
		types.Grade{}.CollectionName(): {
			{Keys: bson.D{{Key: "submission", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "student", Value: 1}}},
		},
	}

	for coll, models := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			s.log.Error("Failed to create indexes", "collection", coll, "error", err)
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	s.log.Info("MongoDB indexes ensured")
	return nil
}
