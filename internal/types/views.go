package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Composite read views assembled by the aggregation pipelines. The bson tags
// mirror the pipeline projections; the json tags are the wire contract.

type InstructorSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	FullName  string             `bson:"fullName" json:"fullName"`
}

type StudentSummary struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	FullName  string             `bson:"fullName" json:"fullName"`
}

type LessonNode struct {
	ID              primitive.ObjectID     `bson:"_id" json:"_id"`
	Title           string                 `bson:"title" json:"title"`
	Description     string                 `bson:"description,omitempty" json:"description,omitempty"`
	Order           int                    `bson:"order" json:"order"`
	Type            string                 `bson:"type" json:"type"`
	Content         map[string]interface{} `bson:"content,omitempty" json:"content,omitempty"`
	IsPublished     bool                   `bson:"isPublished" json:"isPublished"`
	DurationMinutes int                    `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
}

type ModuleNode struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Order           int                `bson:"order" json:"order"`
	IsPublished     bool               `bson:"isPublished" json:"isPublished"`
	DurationMinutes int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Lessons         []LessonNode       `bson:"lessons" json:"lessons"`
}

type AssignmentNode struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     time.Time          `bson:"dueDate" json:"dueDate"`
	TotalPoints float64            `bson:"totalPoints" json:"totalPoints"`
	Status      string             `bson:"status" json:"status"`
}

// CourseDetails is the full course tree: instructor flattened, modules
// order-sorted with their order-sorted lessons, assignments unsorted.
type CourseDetails struct {
	ID              primitive.ObjectID     `bson:"_id" json:"_id"`
	Title           string                 `bson:"title" json:"title"`
	Description     string                 `bson:"description" json:"description"`
	CoverImage      string                 `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Status          string                 `bson:"status" json:"status"`
	StartDate       *time.Time             `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate         *time.Time             `bson:"endDate,omitempty" json:"endDate,omitempty"`
	EnrollmentCount int64                  `bson:"enrollmentCount" json:"enrollmentCount"`
	Tags            []string               `bson:"tags,omitempty" json:"tags,omitempty"`
	Settings        map[string]interface{} `bson:"settings,omitempty" json:"settings,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt" json:"updatedAt"`
	Instructor      InstructorSummary      `bson:"instructor" json:"instructor"`
	Modules         []ModuleNode           `bson:"modules" json:"modules"`
	Assignments     []AssignmentNode       `bson:"assignments" json:"assignments"`
}

type DashboardCourse struct {
	ID                primitive.ObjectID `bson:"_id" json:"_id"`
	Title             string             `bson:"title" json:"title"`
	Description       string             `bson:"description" json:"description"`
	Status            string             `bson:"status" json:"status"`
	StartDate         *time.Time         `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate           *time.Time         `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Instructor        primitive.ObjectID `bson:"instructor" json:"instructor"`
	InstructorDetails InstructorSummary  `bson:"instructorDetails" json:"instructorDetails"`
	// Progress is submissions over active assignments, in percent.
	Progress float64 `bson:"progress" json:"progress"`
	// AverageGrade is null when the student has no grades in the course.
	AverageGrade      *float64 `bson:"averageGrade" json:"averageGrade"`
	SubmissionCount   int      `bson:"submissionCount" json:"submissionCount"`
	GradedAssignments int      `bson:"gradedAssignments" json:"gradedAssignments"`
}

type StudentDashboard struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Courses   []DashboardCourse  `bson:"courses" json:"courses"`
}

type AssignmentScore struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	Score           float64            `bson:"score" json:"score"`
	TotalPoints     float64            `bson:"totalPoints" json:"totalPoints"`
	PercentageScore float64            `bson:"percentageScore" json:"percentageScore"`
	GradedAt        time.Time          `bson:"gradedAt" json:"gradedAt"`
}

type CoursePerformance struct {
	CourseID         primitive.ObjectID `bson:"_id" json:"courseId"`
	CourseTitle      string             `bson:"courseTitle" json:"courseTitle"`
	AverageScore     float64            `bson:"averageScore" json:"averageScore"`
	TotalAssignments int                `bson:"totalAssignments" json:"totalAssignments"`
	Assignments      []AssignmentScore  `bson:"assignments" json:"assignments"`
}

type StudentPerformance struct {
	Student                   StudentSummary      `bson:"-" json:"student"`
	OverallAverage            float64             `bson:"overallAverage" json:"overallAverage"`
	TotalCompletedAssignments int                 `bson:"totalCompletedAssignments" json:"totalCompletedAssignments"`
	CoursePerformance         []CoursePerformance `bson:"coursePerformance" json:"coursePerformance"`
}

type SubmissionDigest struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Assignment      primitive.ObjectID `bson:"assignment" json:"assignment"`
	AssignmentTitle string             `bson:"assignmentTitle" json:"assignmentTitle"`
	Status          string             `bson:"status" json:"status"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
	IsLate          bool               `bson:"isLate" json:"isLate"`
}

type StatusGroup struct {
	Status      string             `bson:"status" json:"status"`
	Count       int                `bson:"count" json:"count"`
	Submissions []SubmissionDigest `bson:"submissions" json:"submissions"`
}

type SubmissionStatistics struct {
	Student              StudentSummary `bson:"-" json:"student"`
	TotalSubmissions     int            `bson:"totalSubmissions" json:"totalSubmissions"`
	LateSubmissionsCount int            `bson:"lateSubmissionsCount" json:"lateSubmissionsCount"`
	StatusBreakdown      []StatusGroup  `bson:"statusBreakdown" json:"statusBreakdown"`
}

type CourseStatistics struct {
	Course            CourseStatisticsHeader `json:"course"`
	ModulesCount      int64                  `json:"modulesCount"`
	LessonsCount      int64                  `json:"lessonsCount"`
	AssignmentsCount  int64                  `json:"assignmentsCount"`
	TotalContentItems int64                  `json:"totalContentItems"`
}

type CourseStatisticsHeader struct {
	ID              primitive.ObjectID `json:"_id"`
	Title           string             `json:"title"`
	Status          string             `json:"status"`
	EnrollmentCount int64              `json:"enrollmentCount"`
}

// InstructorCourseGroup and CourseEnrollmentCount are recompute rows used by
// the back-reference rebuild operation.
type InstructorCourseGroup struct {
	InstructorID primitive.ObjectID   `bson:"_id"`
	Courses      []primitive.ObjectID `bson:"courses"`
}

type CourseEnrollmentCount struct {
	CourseID primitive.ObjectID `bson:"_id"`
	Count    int64              `bson:"count"`
}

type RebuildReport struct {
	InstructorsUpdated int64 `json:"instructorsUpdated"`
	CoursesUpdated     int64 `json:"coursesUpdated"`
}
