package app

import (
	"learning_platform_backend/docs"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/middleware"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)
	a.registerStudentRoutes(router, c, cfg)
	a.registerInstructorRoutes(router, c, cfg)
}

// Public and optionally-authenticated catalog reads.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/categories", c.category.List)
		public.GET("/categories/:slug/courses", c.category.Courses)

		// Course visibility widens for owners and staff, so the token is
		// parsed when present but never required.
		public.GET("/courses", middleware.TryAuthMiddleware(cfg), c.course.List)
		public.GET("/courses/:slug", middleware.TryAuthMiddleware(cfg), c.course.Get)
		public.GET("/lessons/:id", middleware.TryAuthMiddleware(cfg), c.lesson.Get)
	}
}

// Authenticated learner surface: profile, enrollments, progress, quizzes.
func (a *App) registerStudentRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/users/me", c.user.GetProfile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.POST("/users/me/avatar", c.user.UploadAvatar)

		authGroup.POST("/enrollments", c.enrollment.Enroll)
		authGroup.GET("/enrollments", c.enrollment.List)
		authGroup.GET("/enrollments/:id", c.enrollment.Get)
		authGroup.POST("/enrollments/:id/complete", c.enrollment.Complete)
		authGroup.GET("/courses/:slug/progress", c.enrollment.CourseProgress)

		authGroup.POST("/lessons/:id/complete", c.lesson.Complete)
		authGroup.POST("/lessons/:id/track_time", c.lesson.TrackTime)

		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.POST("/quizzes/:id/submit", c.quiz.Submit)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.Attempts)
		authGroup.GET("/attempts", c.quiz.MyAttempts)
	}
}

// Course authoring surface, limited to instructors and admins.
func (a *App) registerInstructorRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	instructorGroup := router.Group("/api")
	instructorGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
	{
		instructorGroup.POST("/courses", c.course.Create)
		instructorGroup.PUT("/courses/:slug", c.course.Update)
		instructorGroup.DELETE("/courses/:slug", c.course.Delete)
		instructorGroup.POST("/courses/:slug/thumbnail", c.course.UploadThumbnail)

		instructorGroup.POST("/courses/:slug/modules", c.course.CreateModule)
		instructorGroup.PUT("/modules/:id", c.course.UpdateModule)
		instructorGroup.DELETE("/modules/:id", c.course.DeleteModule)
		instructorGroup.POST("/modules/:id/lessons", c.course.CreateLesson)

		instructorGroup.PUT("/lessons/:id", c.lesson.Update)
		instructorGroup.DELETE("/lessons/:id", c.lesson.Delete)
		instructorGroup.POST("/lessons/:id/video", c.lesson.UploadVideo)

		instructorGroup.POST("/lessons/:id/quiz", c.quiz.Create)
		instructorGroup.PUT("/quizzes/:id", c.quiz.Update)
		instructorGroup.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
		instructorGroup.PUT("/questions/:id", c.quiz.UpdateQuestion)
	}
}
