package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LessonTypeText       = "text"
	LessonTypeVideo      = "video"
	LessonTypeQuiz       = "quiz"
	LessonTypeAssignment = "assignment"
)

type Lesson struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Module      primitive.ObjectID `bson:"module" json:"module"`
	// Course is a denormalized convenience reference; Module is the parent.
	Course          *primitive.ObjectID    `bson:"course,omitempty" json:"course,omitempty"`
	Order           int                    `bson:"order" json:"order"`
	Type            string                 `bson:"type" json:"type"`
	Content         map[string]interface{} `bson:"content,omitempty" json:"content,omitempty"`
	IsPublished     bool                   `bson:"isPublished" json:"isPublished"`
	DurationMinutes int                    `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

func (Lesson) CollectionName() string { return "lessons" }
