package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Module struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Course      primitive.ObjectID `bson:"course" json:"course"`
	// Order is unique per course, enforced by a compound unique index.
	Order           int       `bson:"order" json:"order"`
	IsPublished     bool      `bson:"isPublished" json:"isPublished"`
	DurationMinutes int       `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (Module) CollectionName() string { return "modules" }
