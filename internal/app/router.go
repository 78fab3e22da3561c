package app

import (
	"course_market_backend/internal/config"
	"course_market_backend/internal/middleware"
	"course_market_backend/internal/model"
	"course_market_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Check)

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}
}

// Public: browsing, auth, and the shareable certificate page.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	api := router.Group("/api")
	{
		api.POST("/auth/register", c.auth.Register)
		api.POST("/auth/login", c.auth.Login)

		api.GET("/courses", c.catalog.ListCourses)
		api.GET("/courses/:id", c.catalog.GetCourseDetail)

		api.GET("/certificate/:courseId/:userId", c.certificate.GetCertificate)
	}
}

// Authenticated student surface: enrollment, dashboard, viewer, progress.
func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/profile", c.auth.GetProfile)
	group.PUT("/profile", c.user.UpdateProfile)
	group.POST("/profile/avatar", c.user.UploadAvatar)

	group.POST("/courses/:id/enroll", c.enrollment.Enroll)
	group.GET("/my/courses", c.enrollment.GetMyCourses)

	group.GET("/learn/:id", c.learning.GetCourseViewer)
	group.POST("/lessons/:id/complete", c.learning.MarkLessonComplete)
	group.POST("/lessons/:id/watch", c.learning.RecordWatchTime)
}

// Instructor surface: course CRUD, publishing, lesson batches, uploads.
func (a *App) registerInstructorRoutes(group *gin.RouterGroup, c *controllers) {
	instructor := group.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.GET("/courses", c.course.GetMyCourses)
		instructor.GET("/courses/:id", c.course.GetCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.PATCH("/courses/:id/publish", c.course.SetPublished)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)

		instructor.POST("/upload/thumbnail", c.course.UploadThumbnail)
		instructor.POST("/upload/video", c.course.UploadVideo)
	}
}
