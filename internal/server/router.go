package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openlearn/lms-backend/internal/handlers"
	"github.com/openlearn/lms-backend/internal/middleware"
	"github.com/openlearn/lms-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	CORSOrigins        []string
	StudentHandler     *handlers.StudentHandler
	InstructorHandler  *handlers.InstructorHandler
	CourseHandler      *handlers.CourseHandler
	ModuleHandler      *handlers.ModuleHandler
	LessonHandler      *handlers.LessonHandler
	AssignmentHandler  *handlers.AssignmentHandler
	SubmissionHandler  *handlers.SubmissionHandler
	GradeHandler       *handlers.GradeHandler
	MaintenanceHandler *handlers.MaintenanceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	students := router.Group("/students")
	{
		students.POST("", cfg.StudentHandler.Create)
		students.GET("", cfg.StudentHandler.List)
		students.GET("/:id", cfg.StudentHandler.Get)
		students.PATCH("/:id", cfg.StudentHandler.Update)
		students.DELETE("/:id", cfg.StudentHandler.Delete)
		students.POST("/:id/enroll/:courseId", cfg.StudentHandler.Enroll)
		students.POST("/:id/unenroll/:courseId", cfg.StudentHandler.Unenroll)
		students.GET("/:id/dashboard", cfg.StudentHandler.Dashboard)
		students.GET("/:id/performance", cfg.StudentHandler.Performance)
	}

	instructors := router.Group("/instructors")
	{
		instructors.POST("", cfg.InstructorHandler.Create)
		instructors.GET("", cfg.InstructorHandler.List)
		instructors.GET("/:id", cfg.InstructorHandler.Get)
		instructors.PATCH("/:id", cfg.InstructorHandler.Update)
		instructors.DELETE("/:id", cfg.InstructorHandler.Delete)
		instructors.GET("/:id/courses", cfg.InstructorHandler.ListCourses)
		instructors.POST("/:id/add-course/:courseId", cfg.InstructorHandler.AddCourse)
	}

	courses := router.Group("/courses")
	{
		courses.POST("", cfg.CourseHandler.Create)
		courses.GET("", cfg.CourseHandler.List)
		courses.GET("/search", cfg.CourseHandler.Search)
		courses.GET("/:id", cfg.CourseHandler.Get)
		courses.PATCH("/:id", cfg.CourseHandler.Update)
		courses.DELETE("/:id", cfg.CourseHandler.Delete)
		courses.GET("/:id/details", cfg.CourseHandler.Details)
		courses.GET("/:id/statistics", cfg.CourseHandler.Statistics)
		courses.GET("/:id/modules", cfg.ModuleHandler.ListByCourse)
		courses.GET("/:id/assignments", cfg.AssignmentHandler.ListByCourse)
	}

	modules := router.Group("/modules")
	{
		modules.POST("", cfg.ModuleHandler.Create)
		modules.GET("", cfg.ModuleHandler.List)
		modules.GET("/:id", cfg.ModuleHandler.Get)
		modules.PATCH("/:id", cfg.ModuleHandler.Update)
		modules.DELETE("/:id", cfg.ModuleHandler.Delete)
		modules.GET("/:id/lessons", cfg.LessonHandler.ListByModule)
	}

	lessons := router.Group("/lessons")
	{
		lessons.POST("", cfg.LessonHandler.Create)
		lessons.GET("", cfg.LessonHandler.List)
		lessons.GET("/:id", cfg.LessonHandler.Get)
		lessons.PATCH("/:id", cfg.LessonHandler.Update)
		lessons.DELETE("/:id", cfg.LessonHandler.Delete)
	}

	assignments := router.Group("/assignments")
	{
		assignments.POST("", cfg.AssignmentHandler.Create)
		assignments.GET("", cfg.AssignmentHandler.List)
		assignments.GET("/:id", cfg.AssignmentHandler.Get)
		assignments.PATCH("/:id", cfg.AssignmentHandler.Update)
		assignments.DELETE("/:id", cfg.AssignmentHandler.Delete)
	}

	submissions := router.Group("/submissions")
	{
		submissions.POST("", cfg.SubmissionHandler.Create)
		submissions.GET("", cfg.SubmissionHandler.List)
		submissions.GET("/student/:studentId", cfg.SubmissionHandler.ListByStudent)
		submissions.GET("/assignment/:assignmentId", cfg.SubmissionHandler.ListByAssignment)
		submissions.GET("/student/:studentId/assignment/:assignmentId", cfg.SubmissionHandler.GetByStudentAndAssignment)
		submissions.GET("/statistics/student/:studentId", cfg.SubmissionHandler.Statistics)
		submissions.GET("/:id", cfg.SubmissionHandler.Get)
		submissions.PATCH("/:id", cfg.SubmissionHandler.Update)
		submissions.DELETE("/:id", cfg.SubmissionHandler.Delete)
		submissions.POST("/:id/feedback", cfg.SubmissionHandler.AddFeedback)
	}

	grades := router.Group("/grades")
	{
		grades.POST("", cfg.GradeHandler.Create)
		grades.GET("", cfg.GradeHandler.List)
		grades.GET("/student/:studentId", cfg.GradeHandler.ListByStudent)
		grades.GET("/assignment/:assignmentId", cfg.GradeHandler.ListByAssignment)
		grades.GET("/:id", cfg.GradeHandler.Get)
		grades.PATCH("/:id", cfg.GradeHandler.Update)
		grades.DELETE("/:id", cfg.GradeHandler.Delete)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/maintenance/rebuild-references", cfg.MaintenanceHandler.RebuildBackReferences)
	}

	return router
}
