// Command seed loads fixture data from a YAML file and optionally rebuilds
// the denormalized back-references afterwards.
//
//	seed -file fixtures.yaml [-rebuild]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openlearn/lms-backend/internal/app"
	"github.com/openlearn/lms-backend/internal/types"
)

type fixtures struct {
	Instructors []instructorFixture `yaml:"instructors"`
	Students    []studentFixture    `yaml:"students"`
	Courses     []courseFixture     `yaml:"courses"`
}

type instructorFixture struct {
	Key            string `yaml:"key"`
	FirstName      string `yaml:"firstName"`
	LastName       string `yaml:"lastName"`
	Email          string `yaml:"email"`
	Password       string `yaml:"password"`
	Specialization string `yaml:"specialization"`
}

type studentFixture struct {
	FirstName string   `yaml:"firstName"`
	LastName  string   `yaml:"lastName"`
	Email     string   `yaml:"email"`
	Password  string   `yaml:"password"`
	EnrollIn  []string `yaml:"enrollIn"`
}

type courseFixture struct {
	Key         string          `yaml:"key"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Instructor  string          `yaml:"instructor"`
	Status      string          `yaml:"status"`
	Tags        []string        `yaml:"tags"`
	Modules     []moduleFixture `yaml:"modules"`
}

type moduleFixture struct {
	Title   string          `yaml:"title"`
	Order   int             `yaml:"order"`
	Lessons []lessonFixture `yaml:"lessons"`
}

type lessonFixture struct {
	Title string `yaml:"title"`
	Order int    `yaml:"order"`
	Type  string `yaml:"type"`
}

func main() {
	file := flag.String("file", "fixtures.yaml", "fixture file to load")
	rebuild := flag.Bool("rebuild", false, "rebuild back-references after seeding")
	flag.Parse()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	raw, err := os.ReadFile(*file)
	if err != nil {
		a.Log.Error("read fixture file failed", "error", err, "file", *file)
		os.Exit(1)
	}
	var fx fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		a.Log.Error("parse fixture file failed", "error", err, "file", *file)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := seed(ctx, a, fx); err != nil {
		a.Log.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	if *rebuild {
		report, err := a.Services.Maintenance.RebuildBackReferences(ctx)
		if err != nil {
			a.Log.Error("rebuild back-references failed", "error", err)
			os.Exit(1)
		}
		a.Log.Info("back-references rebuilt",
			"instructors_updated", report.InstructorsUpdated,
			"courses_updated", report.CoursesUpdated)
	}
	a.Log.Info("seeding complete", "file", *file)
}

func seed(ctx context.Context, a *app.App, fx fixtures) error {
	instructorIDs := make(map[string]string, len(fx.Instructors))
	for _, in := range fx.Instructors {
		instructor, err := a.Services.Instructor.Create(ctx, types.CreateInstructorInput{
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Email:          in.Email,
			Password:       in.Password,
			Specialization: in.Specialization,
		})
		if err != nil {
			return fmt.Errorf("instructor %q: %w", in.Email, err)
		}
		instructorIDs[in.Key] = instructor.ID.Hex()
	}

	courseIDs := make(map[string]string, len(fx.Courses))
	for _, cf := range fx.Courses {
		instructorID, ok := instructorIDs[cf.Instructor]
		if !ok {
			return fmt.Errorf("course %q references unknown instructor key %q", cf.Title, cf.Instructor)
		}
		course, err := a.Services.Course.Create(ctx, types.CreateCourseInput{
			Title:       cf.Title,
			Description: cf.Description,
			Instructor:  instructorID,
			Status:      cf.Status,
			Tags:        cf.Tags,
		})
		if err != nil {
			return fmt.Errorf("course %q: %w", cf.Title, err)
		}
		courseIDs[cf.Key] = course.ID.Hex()

		for _, mf := range cf.Modules {
			module, err := a.Services.Module.Create(ctx, types.CreateModuleInput{
				Title:  mf.Title,
				Course: course.ID.Hex(),
				Order:  mf.Order,
			})
			if err != nil {
				return fmt.Errorf("module %q: %w", mf.Title, err)
			}
			for _, lf := range mf.Lessons {
				if _, err := a.Services.Lesson.Create(ctx, types.CreateLessonInput{
					Title:  lf.Title,
					Module: module.ID.Hex(),
					Order:  lf.Order,
					Type:   lf.Type,
				}); err != nil {
					return fmt.Errorf("lesson %q: %w", lf.Title, err)
				}
			}
		}
	}

	for _, sf := range fx.Students {
		student, err := a.Services.Student.Create(ctx, types.CreateStudentInput{
			FirstName: sf.FirstName,
			LastName:  sf.LastName,
			Email:     sf.Email,
			Password:  sf.Password,
		})
		if err != nil {
			return fmt.Errorf("student %q: %w", sf.Email, err)
		}
		for _, key := range sf.EnrollIn {
			courseID, ok := courseIDs[key]
			if !ok {
				return fmt.Errorf("student %q references unknown course key %q", sf.Email, key)
			}
			if _, err := a.Services.Student.Enroll(ctx, student.ID.Hex(), courseID); err != nil {
				return fmt.Errorf("enroll %q in %q: %w", sf.Email, key, err)
			}
		}
	}
	return nil
}
