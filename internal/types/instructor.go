package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	InstructorStatusActive   = "active"
	InstructorStatusInactive = "inactive"
)

type Instructor struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	FirstName      string               `bson:"firstName" json:"firstName"`
	LastName       string               `bson:"lastName" json:"lastName"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	Phone          string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         string               `bson:"status" json:"status"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	Specialization string               `bson:"specialization,omitempty" json:"specialization,omitempty"`
	ProfilePicture string               `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Courses        []primitive.ObjectID `bson:"courses" json:"courses"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (Instructor) CollectionName() string { return "instructors" }

func (i *Instructor) FullName() string { return i.FirstName + " " + i.LastName }
