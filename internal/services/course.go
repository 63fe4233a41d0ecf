package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/sync/errgroup"

	"github.com/openlearn/lms-backend/internal/pkg/apperr"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
	"github.com/openlearn/lms-backend/internal/repos"
	"github.com/openlearn/lms-backend/internal/types"
)

type CourseFilter struct {
	Status     string
	Instructor string
	Tag        string
}

type CourseService interface {
	Create(ctx context.Context, in types.CreateCourseInput) (*types.Course, error)
	List(ctx context.Context, filter CourseFilter, page types.PageRequest) (*types.Paginated[*types.Course], error)
	Get(ctx context.Context, id string) (*types.Course, error)
	Update(ctx context.Context, id string, in types.UpdateCourseInput) (*types.Course, error)
	Delete(ctx context.Context, id string) error
	Details(ctx context.Context, id string) (*types.CourseDetails, error)
	Search(ctx context.Context, term string, page types.PageRequest) (*types.Paginated[*types.Course], error)
	Statistics(ctx context.Context, id string) (*types.CourseStatistics, error)
}

type courseService struct {
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	instructorRepo repos.InstructorRepo
	moduleRepo     repos.ModuleRepo
	lessonRepo     repos.LessonRepo
	assignmentRepo repos.AssignmentRepo
}

func NewCourseService(
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	instructorRepo repos.InstructorRepo,
	moduleRepo repos.ModuleRepo,
	lessonRepo repos.LessonRepo,
	assignmentRepo repos.AssignmentRepo,
) CourseService {
	return &courseService{
		log:            baseLog.With("service", "CourseService"),
		courseRepo:     courseRepo,
		instructorRepo: instructorRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Create inserts the course, then attaches it to the instructor's course
// list. A failed attach is logged and the create still succeeds; the
// back-reference can be rebuilt later.
func (s *courseService) Create(ctx context.Context, in types.CreateCourseInput) (*types.Course, error) {
	iid, err := repos.ParseID(in.Instructor)
	if err != nil {
		return nil, err
	}
	instructor, err := s.instructorRepo.GetByID(ctx, iid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.RefNotFound("instructor", in.Instructor)
	}
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = types.CourseStatusDraft
	}
	course := &types.Course{
		Title:       in.Title,
		Description: in.Description,
		CoverImage:  in.CoverImage,
		Instructor:  instructor.ID,
		Status:      status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Tags:        in.Tags,
		Settings:    in.Settings,
	}
	created, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	if err := s.instructorRepo.AddCourseRef(ctx, instructor.ID, created.ID); err != nil {
		s.log.Warn("create course: instructor back-reference update failed",
			"error", err, "instructor_id", in.Instructor, "course_id", created.ID.Hex())
	}
	return created, nil
}

func (s *courseService) List(ctx context.Context, filter CourseFilter, page types.PageRequest) (*types.Paginated[*types.Course], error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Instructor != "" {
		iid, err := repos.ParseID(filter.Instructor)
		if err != nil {
			return nil, err
		}
		query["instructor"] = iid
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}
	courses, total, err := s.courseRepo.List(ctx, query, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(courses, total, page), nil
}

func (s *courseService) Get(ctx context.Context, id string) (*types.Course, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Course", id)
	}
	return course, err
}

func (s *courseService) Update(ctx context.Context, id string, in types.UpdateCourseInput) (*types.Course, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.CoverImage != nil {
		set["coverImage"] = *in.CoverImage
	}
	if in.Status != nil {
		set["status"] = *in.Status
	}
	if in.StartDate != nil {
		set["startDate"] = *in.StartDate
	}
	if in.EndDate != nil {
		set["endDate"] = *in.EndDate
	}
	if in.Tags != nil {
		set["tags"] = in.Tags
	}
	if in.Settings != nil {
		set["settings"] = in.Settings
	}

	if in.Instructor != nil {
		newIID, err := repos.ParseID(*in.Instructor)
		if err != nil {
			return nil, err
		}
		if _, err := s.instructorRepo.GetByID(ctx, newIID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.RefNotFound("instructor", *in.Instructor)
			}
			return nil, err
		}

		current, err := s.courseRepo.GetByID(ctx, oid)
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("Course", id)
		}
		if err != nil {
			return nil, err
		}
		if current.Instructor != newIID {
			if err := s.instructorRepo.RemoveCourseRef(ctx, current.Instructor, oid); err != nil {
				s.log.Warn("update course: detach from previous instructor failed",
					"error", err, "previous_instructor_id", current.Instructor.Hex(), "course_id", id)
			}
			if err := s.instructorRepo.AddCourseRef(ctx, newIID, oid); err != nil {
				s.log.Warn("update course: attach to new instructor failed",
					"error", err, "instructor_id", *in.Instructor, "course_id", id)
			}
		}
		set["instructor"] = newIID
	}

	course, err := s.courseRepo.UpdateByID(ctx, oid, set)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Course", id)
	}
	return course, err
}

// Delete cascades: modules, lessons and assignments of the course are
// removed first, then the instructor back-reference, then the course
// document itself.
func (s *courseService) Delete(ctx context.Context, id string) error {
	oid, err := repos.ParseID(id)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound("Course", id)
	}
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.moduleRepo.DeleteByCourse(gctx, oid)
		return err
	})
	g.Go(func() error {
		_, err := s.lessonRepo.DeleteByCourse(gctx, oid)
		return err
	})
	g.Go(func() error {
		_, err := s.assignmentRepo.DeleteByCourse(gctx, oid)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.instructorRepo.RemoveCourseRef(ctx, course.Instructor, oid); err != nil {
		s.log.Warn("delete course: instructor back-reference removal failed",
			"error", err, "instructor_id", course.Instructor.Hex(), "course_id", id)
	}
	return s.courseRepo.DeleteByID(ctx, oid)
}

func (s *courseService) Details(ctx context.Context, id string) (*types.CourseDetails, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	details, err := s.courseRepo.Details(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Course", id)
	}
	return details, err
}

func (s *courseService) Search(ctx context.Context, term string, page types.PageRequest) (*types.Paginated[*types.Course], error) {
	courses, total, err := s.courseRepo.Search(ctx, term, page)
	if err != nil {
		return nil, err
	}
	return types.NewPaginated(courses, total, page), nil
}

// Statistics counts the course's content items in parallel.
func (s *courseService) Statistics(ctx context.Context, id string) (*types.CourseStatistics, error) {
	oid, err := repos.ParseID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, oid)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("Course", id)
	}
	if err != nil {
		return nil, err
	}

	var modules, lessons, assignments int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		modules, err = s.moduleRepo.CountByCourse(gctx, oid)
		return err
	})
	g.Go(func() error {
		var err error
		lessons, err = s.lessonRepo.CountByCourse(gctx, oid)
		return err
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignmentRepo.CountByCourse(gctx, oid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &types.CourseStatistics{
		Course: types.CourseStatisticsHeader{
			ID:              course.ID,
			Title:           course.Title,
			Status:          course.Status,
			EnrollmentCount: course.EnrollmentCount,
		},
		ModulesCount:      modules,
		LessonsCount:      lessons,
		AssignmentsCount:  assignments,
		TotalContentItems: modules + lessons + assignments,
	}, nil
}
