package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentStatusActive   = "active"
	AssignmentStatusInactive = "inactive"
	AssignmentStatusArchived = "archived"
)

type AssignmentResource struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"`
}

type SubmissionSettings struct {
	AllowLateSubmissions bool     `bson:"allowLateSubmissions,omitempty" json:"allowLateSubmissions,omitempty"`
	MaxAttempts          int      `bson:"maxAttempts,omitempty" json:"maxAttempts,omitempty"`
	SubmissionType       string   `bson:"submissionType,omitempty" json:"submissionType,omitempty"`
	FileTypes            []string `bson:"fileTypes,omitempty" json:"fileTypes,omitempty"`
	MaxFileSize          int64    `bson:"maxFileSize,omitempty" json:"maxFileSize,omitempty"`
}

type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Course      primitive.ObjectID `bson:"course" json:"course"`
	// Module and Lesson are optional anchors; when both are present the
	// lesson must belong to the module.
	Module             *primitive.ObjectID  `bson:"module,omitempty" json:"module,omitempty"`
	Lesson             *primitive.ObjectID  `bson:"lesson,omitempty" json:"lesson,omitempty"`
	DueDate            time.Time            `bson:"dueDate" json:"dueDate"`
	TotalPoints        float64              `bson:"totalPoints" json:"totalPoints"`
	Status             string               `bson:"status" json:"status"`
	Resources          []AssignmentResource `bson:"resources,omitempty" json:"resources,omitempty"`
	SubmissionSettings *SubmissionSettings  `bson:"submissionSettings,omitempty" json:"submissionSettings,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (Assignment) CollectionName() string { return "assignments" }
