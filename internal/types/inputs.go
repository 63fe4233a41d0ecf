package types

import "time"

// Service-layer write payloads. Reference fields are hex strings; services
// validate the shape before any store call. Update payloads use pointers so
// absent fields are left untouched (partial merge).

type CreateStudentInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Phone       string
	DateOfBirth *time.Time
	Status      string
	Profile     map[string]interface{}
}

type UpdateStudentInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	Phone       *string
	DateOfBirth *time.Time
	Status      *string
	Profile     map[string]interface{}
}

type CreateInstructorInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	Phone          string
	Status         string
	Bio            string
	Specialization string
	ProfilePicture string
}

type UpdateInstructorInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Password       *string
	Phone          *string
	Status         *string
	Bio            *string
	Specialization *string
	ProfilePicture *string
}

type CreateCourseInput struct {
	Title       string
	Description string
	CoverImage  string
	Instructor  string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	Tags        []string
	Settings    map[string]interface{}
}

type UpdateCourseInput struct {
	Title       *string
	Description *string
	CoverImage  *string
	Instructor  *string
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
	Tags        []string
	Settings    map[string]interface{}
}

type CreateModuleInput struct {
	Title           string
	Description     string
	Course          string
	Order           int
	IsPublished     *bool
	DurationMinutes int
}

type UpdateModuleInput struct {
	Title           *string
	Description     *string
	Course          *string
	Order           *int
	IsPublished     *bool
	DurationMinutes *int
}

type CreateLessonInput struct {
	Title           string
	Description     string
	Module          string
	Course          string
	Order           int
	Type            string
	Content         map[string]interface{}
	IsPublished     *bool
	DurationMinutes int
}

type UpdateLessonInput struct {
	Title           *string
	Description     *string
	Module          *string
	Course          *string
	Order           *int
	Type            *string
	Content         map[string]interface{}
	IsPublished     *bool
	DurationMinutes *int
}

type CreateAssignmentInput struct {
	Title              string
	Description        string
	Course             string
	Module             string
	Lesson             string
	DueDate            time.Time
	TotalPoints        float64
	Status             string
	Resources          []AssignmentResource
	SubmissionSettings *SubmissionSettings
}

type UpdateAssignmentInput struct {
	Title              *string
	Description        *string
	Course             *string
	Module             *string
	Lesson             *string
	DueDate            *time.Time
	TotalPoints        *float64
	Status             *string
	Resources          []AssignmentResource
	SubmissionSettings *SubmissionSettings
}

type CreateSubmissionInput struct {
	Student       string
	Assignment    string
	Course        string
	Status        string
	Content       *SubmissionContent
	SubmittedAt   *time.Time
	AttemptNumber int
	IsLate        bool
}

type UpdateSubmissionInput struct {
	Student       *string
	Assignment    *string
	Course        *string
	Status        *string
	Content       *SubmissionContent
	SubmittedAt   *time.Time
	AttemptNumber *int
	IsLate        *bool
}

type SubmissionFeedbackInput struct {
	Text     string
	FileURLs []string
}

type CreateGradeInput struct {
	Submission   string
	Student      string
	Assignment   string
	Course       string
	Score        float64
	GradedBy     string
	GradedAt     *time.Time
	Feedback     string
	RubricScores []RubricScore
}

type UpdateGradeInput struct {
	Score        *float64
	GradedBy     *string
	GradedAt     *time.Time
	Feedback     *string
	RubricScores []RubricScore
}
