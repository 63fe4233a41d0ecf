package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RubricScore struct {
	CriterionID   string  `bson:"criterionId" json:"criterionId"`
	CriterionName string  `bson:"criterionName" json:"criterionName"`
	Score         float64 `bson:"score" json:"score"`
	MaxScore      float64 `bson:"maxScore" json:"maxScore"`
	Feedback      string  `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

type Grade struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	// Submission is 1:1 with a grade, enforced by a unique index.
	Submission   primitive.ObjectID  `bson:"submission" json:"submission"`
	Student      primitive.ObjectID  `bson:"student" json:"student"`
	Assignment   primitive.ObjectID  `bson:"assignment" json:"assignment"`
	Course       *primitive.ObjectID `bson:"course,omitempty" json:"course,omitempty"`
	Score        float64             `bson:"score" json:"score"`
	GradedBy     *primitive.ObjectID `bson:"gradedBy,omitempty" json:"gradedBy,omitempty"`
	GradedAt     time.Time           `bson:"gradedAt" json:"gradedAt"`
	Feedback     string              `bson:"feedback,omitempty" json:"feedback,omitempty"`
	RubricScores []RubricScore       `bson:"rubricScores,omitempty" json:"rubricScores,omitempty"`
	CreatedAt    time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (Grade) CollectionName() string { return "grades" }
