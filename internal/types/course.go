package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CoverImage  string             `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	// Instructor is the owning reference and the source of truth; the
	// instructor's courses array is a rebuildable index over it.
	Instructor      primitive.ObjectID     `bson:"instructor" json:"instructor"`
	Status          string                 `bson:"status" json:"status"`
	StartDate       *time.Time             `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time             `bson:"endDate,omitempty" json:"endDate,omitempty"`
	EnrollmentCount int64                  `bson:"enrollmentCount" json:"enrollmentCount"`
	Tags            []string               `bson:"tags,omitempty" json:"tags,omitempty"`
	Settings        map[string]interface{} `bson:"settings,omitempty" json:"settings,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

func (Course) CollectionName() string { return "courses" }
