package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SubmissionStatusDraft       = "draft"
	SubmissionStatusSubmitted   = "submitted"
	SubmissionStatusResubmitted = "resubmitted"
	SubmissionStatusReturned    = "returned"
)

type SubmissionContent struct {
	Text     string   `bson:"text,omitempty" json:"text,omitempty"`
	FileURLs []string `bson:"fileUrls,omitempty" json:"fileUrls,omitempty"`
	Links    []string `bson:"links,omitempty" json:"links,omitempty"`
}

type SubmissionFeedback struct {
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	FileURLs  []string  `bson:"fileUrls,omitempty" json:"fileUrls,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Submission struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Student    primitive.ObjectID  `bson:"student" json:"student"`
	Assignment primitive.ObjectID  `bson:"assignment" json:"assignment"`
	Course     *primitive.ObjectID `bson:"course,omitempty" json:"course,omitempty"`
	Status     string              `bson:"status" json:"status"`
	Content    *SubmissionContent  `bson:"content,omitempty" json:"content,omitempty"`
	SubmittedAt time.Time          `bson:"submittedAt" json:"submittedAt"`
	// AttemptNumber distinguishes resubmissions; (student, assignment,
	// attemptNumber) is unique.
	AttemptNumber int                 `bson:"attemptNumber" json:"attemptNumber"`
	IsLate        bool                `bson:"isLate" json:"isLate"`
	Feedback      *SubmissionFeedback `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt     time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updatedAt" json:"updatedAt"`
}

func (Submission) CollectionName() string { return "submissions" }
