package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

// Hand-written fakes over the repo interfaces. Each fake embeds the
// interface so only the methods a test overrides need a function field;
// calling anything else panics, which surfaces unexpected repo traffic.

func testLog() *logger.Logger { return logger.NewNop() }

type fakeStudentRepo struct {
	repos.StudentRepo
	create            func(st *types.Student) (*types.Student, error)
	getByID           func(id primitive.ObjectID) (*types.Student, error)
	emailTaken        func(email string, excludeID primitive.ObjectID) (bool, error)
	addEnrolled       func(studentID, courseID primitive.ObjectID) error
	removeEnrolled    func(studentID, courseID primitive.ObjectID) error
	enrollmentDetails func(id primitive.ObjectID) (*types.StudentDashboard, error)
	enrollmentCounts  func() ([]types.CourseEnrollmentCount, error)
}

func (f *fakeStudentRepo) Create(_ context.Context, st *types.Student) (*types.Student, error) {
	return f.create(st)
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Student, error) {
	return f.getByID(id)
}

func (f *fakeStudentRepo) EmailTaken(_ context.Context, email string, excludeID primitive.ObjectID) (bool, error) {
	return f.emailTaken(email, excludeID)
}

func (f *fakeStudentRepo) AddEnrolledCourse(_ context.Context, studentID, courseID primitive.ObjectID) error {
	return f.addEnrolled(studentID, courseID)
}

func (f *fakeStudentRepo) RemoveEnrolledCourse(_ context.Context, studentID, courseID primitive.ObjectID) error {
	return f.removeEnrolled(studentID, courseID)
}

func (f *fakeStudentRepo) EnrollmentDetails(_ context.Context, id primitive.ObjectID) (*types.StudentDashboard, error) {
	return f.enrollmentDetails(id)
}

func (f *fakeStudentRepo) EnrollmentCountGroups(_ context.Context) ([]types.CourseEnrollmentCount, error) {
	return f.enrollmentCounts()
}

type fakeCourseRepo struct {
	repos.CourseRepo
	create              func(c *types.Course) (*types.Course, error)
	getByID             func(id primitive.ObjectID) (*types.Course, error)
	exists              func(id primitive.ObjectID) (bool, error)
	updateByID          func(id primitive.ObjectID, set bson.M) (*types.Course, error)
	deleteByID          func(id primitive.ObjectID) error
	incrementEnrollment func(id primitive.ObjectID) error
	decrementEnrollment func(id primitive.ObjectID) error
	instructorGroups    func() ([]types.InstructorCourseGroup, error)
	resetCounts         func() (int64, error)
	setEnrollmentCount  func(id primitive.ObjectID, count int64) error
}

func (f *fakeCourseRepo) Create(_ context.Context, c *types.Course) (*types.Course, error) {
	return f.create(c)
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Course, error) {
	return f.getByID(id)
}

func (f *fakeCourseRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.exists(id)
}

func (f *fakeCourseRepo) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*types.Course, error) {
	return f.updateByID(id, set)
}

func (f *fakeCourseRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	return f.deleteByID(id)
}

func (f *fakeCourseRepo) IncrementEnrollment(_ context.Context, id primitive.ObjectID) error {
	return f.incrementEnrollment(id)
}

func (f *fakeCourseRepo) DecrementEnrollment(_ context.Context, id primitive.ObjectID) error {
	return f.decrementEnrollment(id)
}

func (f *fakeCourseRepo) InstructorCourseGroups(_ context.Context) ([]types.InstructorCourseGroup, error) {
	return f.instructorGroups()
}

func (f *fakeCourseRepo) ResetEnrollmentCounts(_ context.Context) (int64, error) {
	return f.resetCounts()
}

func (f *fakeCourseRepo) SetEnrollmentCount(_ context.Context, id primitive.ObjectID, count int64) error {
	return f.setEnrollmentCount(id, count)
}

type fakeInstructorRepo struct {
	repos.InstructorRepo
	getByID         func(id primitive.ObjectID) (*types.Instructor, error)
	addCourseRef    func(instructorID, courseID primitive.ObjectID) error
	removeCourseRef func(instructorID, courseID primitive.ObjectID) error
	listIDs         func() ([]primitive.ObjectID, error)
	setCourseRefs   func(instructorID primitive.ObjectID, courseIDs []primitive.ObjectID) error
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Instructor, error) {
	return f.getByID(id)
}

func (f *fakeInstructorRepo) AddCourseRef(_ context.Context, instructorID, courseID primitive.ObjectID) error {
	return f.addCourseRef(instructorID, courseID)
}

func (f *fakeInstructorRepo) RemoveCourseRef(_ context.Context, instructorID, courseID primitive.ObjectID) error {
	return f.removeCourseRef(instructorID, courseID)
}

func (f *fakeInstructorRepo) ListIDs(_ context.Context) ([]primitive.ObjectID, error) {
	return f.listIDs()
}

func (f *fakeInstructorRepo) SetCourseRefs(_ context.Context, instructorID primitive.ObjectID, courseIDs []primitive.ObjectID) error {
	return f.setCourseRefs(instructorID, courseIDs)
}

type fakeModuleRepo struct {
	repos.ModuleRepo
	create         func(m *types.Module) (*types.Module, error)
	getByID        func(id primitive.ObjectID) (*types.Module, error)
	orderTaken     func(courseID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error)
	existsInCourse func(moduleID, courseID primitive.ObjectID) (bool, error)
	deleteByID     func(id primitive.ObjectID) error
	deleteByCourse func(courseID primitive.ObjectID) (int64, error)
	countByCourse  func(courseID primitive.ObjectID) (int64, error)
}

func (f *fakeModuleRepo) Create(_ context.Context, m *types.Module) (*types.Module, error) {
	return f.create(m)
}

func (f *fakeModuleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Module, error) {
	return f.getByID(id)
}

func (f *fakeModuleRepo) OrderTaken(_ context.Context, courseID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error) {
	return f.orderTaken(courseID, order, excludeID)
}

func (f *fakeModuleRepo) ExistsInCourse(_ context.Context, moduleID, courseID primitive.ObjectID) (bool, error) {
	return f.existsInCourse(moduleID, courseID)
}

func (f *fakeModuleRepo) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	return f.deleteByID(id)
}

func (f *fakeModuleRepo) DeleteByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.deleteByCourse(courseID)
}

func (f *fakeModuleRepo) CountByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.countByCourse(courseID)
}

type fakeLessonRepo struct {
	repos.LessonRepo
	create         func(l *types.Lesson) (*types.Lesson, error)
	getByID        func(id primitive.ObjectID) (*types.Lesson, error)
	orderTaken     func(moduleID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error)
	existsByModule func(moduleID primitive.ObjectID) (bool, error)
	deleteByCourse func(courseID primitive.ObjectID) (int64, error)
	countByCourse  func(courseID primitive.ObjectID) (int64, error)
}

func (f *fakeLessonRepo) Create(_ context.Context, l *types.Lesson) (*types.Lesson, error) {
	return f.create(l)
}

func (f *fakeLessonRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Lesson, error) {
	return f.getByID(id)
}

func (f *fakeLessonRepo) OrderTaken(_ context.Context, moduleID primitive.ObjectID, order int, excludeID primitive.ObjectID) (bool, error) {
	return f.orderTaken(moduleID, order, excludeID)
}

func (f *fakeLessonRepo) ExistsByModule(_ context.Context, moduleID primitive.ObjectID) (bool, error) {
	return f.existsByModule(moduleID)
}

func (f *fakeLessonRepo) DeleteByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.deleteByCourse(courseID)
}

func (f *fakeLessonRepo) CountByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.countByCourse(courseID)
}

type fakeAssignmentRepo struct {
	repos.AssignmentRepo
	create         func(a *types.Assignment) (*types.Assignment, error)
	getByID        func(id primitive.ObjectID) (*types.Assignment, error)
	exists         func(id primitive.ObjectID) (bool, error)
	updateByID     func(id primitive.ObjectID, set bson.M) (*types.Assignment, error)
	deleteByCourse func(courseID primitive.ObjectID) (int64, error)
	countByCourse  func(courseID primitive.ObjectID) (int64, error)
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a *types.Assignment) (*types.Assignment, error) {
	return f.create(a)
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*types.Assignment, error) {
	return f.getByID(id)
}

func (f *fakeAssignmentRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.exists(id)
}

func (f *fakeAssignmentRepo) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*types.Assignment, error) {
	return f.updateByID(id, set)
}

func (f *fakeAssignmentRepo) DeleteByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.deleteByCourse(courseID)
}

func (f *fakeAssignmentRepo) CountByCourse(_ context.Context, courseID primitive.ObjectID) (int64, error) {
	return f.countByCourse(courseID)
}

type fakeSubmissionRepo struct {
	repos.SubmissionRepo
	create     func(sub *types.Submission) (*types.Submission, error)
	exists     func(id primitive.ObjectID) (bool, error)
	updateByID func(id primitive.ObjectID, set bson.M) (*types.Submission, error)
	statistics func(studentID primitive.ObjectID) (*types.SubmissionStatistics, error)
}

func (f *fakeSubmissionRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	return f.exists(id)
}

func (f *fakeSubmissionRepo) Create(_ context.Context, sub *types.Submission) (*types.Submission, error) {
	return f.create(sub)
}

func (f *fakeSubmissionRepo) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*types.Submission, error) {
	return f.updateByID(id, set)
}

func (f *fakeSubmissionRepo) Statistics(_ context.Context, studentID primitive.ObjectID) (*types.SubmissionStatistics, error) {
	return f.statistics(studentID)
}

type fakeGradeRepo struct {
	repos.GradeRepo
	create      func(g *types.Grade) (*types.Grade, error)
	performance func(studentID primitive.ObjectID) (*types.StudentPerformance, error)
}

func (f *fakeGradeRepo) Create(_ context.Context, g *types.Grade) (*types.Grade, error) {
	return f.create(g)
}

func (f *fakeGradeRepo) PerformanceByStudent(_ context.Context, studentID primitive.ObjectID) (*types.StudentPerformance, error) {
	return f.performance(studentID)
}
