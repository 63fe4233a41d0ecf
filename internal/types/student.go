package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusSuspended = "suspended"
)

type Student struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"_id"`
	FirstName       string                 `bson:"firstName" json:"firstName"`
	LastName        string                 `bson:"lastName" json:"lastName"`
	Email           string                 `bson:"email" json:"email"`
	Password        string                 `bson:"password" json:"-"`
	Phone           string                 `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth     *time.Time             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Status          string                 `bson:"status" json:"status"`
	EnrolledCourses []primitive.ObjectID   `bson:"enrolledCourses" json:"enrolledCourses"`
	Profile         map[string]interface{} `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
}

func (Student) CollectionName() string { return "students" }

// IsEnrolledIn reports membership in the denormalized enrollment set.
func (s *Student) IsEnrolledIn(courseID primitive.ObjectID) bool {
	for _, id := range s.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

func (s *Student) FullName() string { return s.FirstName + " " + s.LastName }
