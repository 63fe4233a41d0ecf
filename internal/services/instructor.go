package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type InstructorService interface {
	Create(ctx context.Context, in types.CreateInstructorInput) (*types.Instructor, error)
	List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Instructor], error)
	Get(ctx context.Context, id string) (*types.Instructor, error)
	Update(ctx context.Context, id string, in types.UpdateInstructorInput) (*types.Instructor, error)
	Delete(ctx context.Context, id string) error
	ListCourses(ctx context.Context, id string, page types.PageRequest) (*types.Paginated[*types.Course], error)
	AddCourse(ctx context.Context, instructorID, courseID string) (*types.Instructor, error)
}

type instructorService struct {
	log            *logger.Logger
	instructorRepo repos.InstructorRepo
	courseRepo     repos.CourseRepo
}

func NewInstructorService(
	baseLog *logger.Logger,
	instructorRepo repos.InstructorRepo,
	courseRepo repos.CourseRepo,
) InstructorService {
	return &instructorService{
		log:            baseLog.With("service", "InstructorService"),
		instructorRepo: instructorRepo,
		courseRepo:     courseRepo,
	}
}

func (s *instructorService) Create(ctx context.Context, in types.CreateInstructorInput) (*types.Instructor, error) {
	taken, err := s.instructorRepo.EmailTaken(ctx, in.Email, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.ErrEmailTaken
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = types.InstructorStatusActive
	}
	instructor := &types.Instructor{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Password:       hashed,
		Phone:          in.Phone,
		Status:         status,
		Bio:            in.Bio,
		Specialization: in.Specialization,
		ProfilePicture: in.ProfilePicture,
	}
	return s.instructorRepo.Create(ctx, instructor)
}

func (s *instructorService) List(ctx context.Context, page types.PageRequest) (*types.Paginated[*types.Instructor], error) {
	instructors, total, err := s.instructorRepo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(instructors, total, page), nil
}

func (s *instructorService) Get(ctx context.Context, id string) (*types.Instructor, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	instructor, err := s.instructorRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Instructor", id)
	}
	return instructor, err
}

func (s *instructorService) Update(ctx context.Context, id string, in types.UpdateInstructorInput) (*types.Instructor, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.FirstName != nil {
		set["firstName"] = *in.FirstName
	}
	if in.LastName != nil {
		set["lastName"] = *in.LastName
	}
	if in.Email != nil {
		taken, err := s.instructorRepo.EmailTaken(ctx, *in.Email, oid)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.ErrEmailTaken
		}
		set["email"] = *in.Email
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = hashed
	}
	if in.Phone != nil {
		set["phone"] = *in.Phone
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.Bio != nil {
		set["bio"] = *in.Bio
	}
	if in.Specialization != nil {
		set["specialization"] = *in.Specialization
	}
	if in.ProfilePicture != nil {
		set["profilePicture"] = *in.ProfilePicture
	}
	instructor, err := s.instructorRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Instructor", id)
	}
	return instructor, err
}

func (s *instructorService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.instructorRepo.DeleteByID(ctx, oid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("Instructor", id)
		}
		return err
	}
	return nil
}

// ListCourses expands the instructor's course back-references page by page.
// The total comes from the reference list itself, not a count query.
func (s *instructorService) ListCourses(ctx context.Context, id string, page types.PageRequest) (*types.Paginated[*types.Course], error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	instructor, err := s.instructorRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Instructor", id)
	}
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.ListByIDs(ctx, instructor.Courses, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(courses, int64(len(instructor.Courses)), page), nil
}

// AddCourse assigns a course to an instructor. When the course already
// belongs to another instructor it is detached there first, so the course's
// instructor field and the back-reference lists stay consistent.
func (s *instructorService) AddCourse(ctx context.Context, instructorID, courseID string) (*types.Instructor, error) {
	iid, err := repos.ParseID(instructorID)
	if err != nil {
		return nil, err
	}
	cid, err := repos.ParseID(courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.instructorRepo.GetByID(ctx, iid); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Instructor", instructorID)
		}
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, cid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Course", courseID)
	}
	if err != nil {
		return nil, err
	}

	// Assignment is keyed on the course's instructor field alone; the
	// back-reference list may lag behind it and is not consulted.
	if course.Instructor == iid {
		return nil, apperr.ErrAlreadyAssigned
	}
	if course.Instructor != primitive.NilObjectID {
		if err := s.instructorRepo.RemoveCourseRef(ctx, course.Instructor, cid); err != nil {
			s.log.Warn("add course: detach from previous instructor failed",
				"error", err, "previous_instructor_id", course.Instructor.Hex(), "course_id", courseID)
		}
	}

	if _, err := s.courseRepo.UpdateByID(ctx, cid, bson.M{"instructor": iid}); err != nil {
		return nil, err
	}
	if err := s.instructorRepo.AddCourseRef(ctx, iid, cid); err != nil {
		s.log.Warn("add course: back-reference update failed",
			"error", err, "instructor_id", instructorID, "course_id", courseID)
	}
	return s.instructorRepo.GetByID(ctx, iid)
}
