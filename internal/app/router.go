package app

import (
	"odigyan_backend/docs"
	"odigyan_backend/internal/config"
	"odigyan_backend/internal/middleware"
	"odigyan_backend/internal/model"
	"odigyan_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的学员路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员路由
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/google", c.auth.GoogleSignIn)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/banners", c.banner.ListActive)
		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)

	group.POST("/students/register", c.student.Register)
	group.GET("/students/me", c.student.Me)
	group.GET("/students/me/results", c.student.TestHistory)

	group.POST("/courses/:id/enroll", c.course.Enroll)
	group.PUT("/courses/:id/progress", c.course.UpdateProgress)
	group.GET("/enrollments", c.course.MyCourses)
	group.GET("/courses/:id/materials", c.material.ListByCourse)
	group.GET("/materials/:id", c.material.Get)

	tests := group.Group("/tests")
	{
		tests.POST("", c.mockTest.Start)
		tests.GET("/current", c.mockTest.State)
		tests.POST("/current/answer", c.mockTest.Answer)
		tests.POST("/current/goto", c.mockTest.GoTo)
		tests.POST("/current/next", c.mockTest.Next)
		tests.POST("/current/previous", c.mockTest.Previous)
		tests.POST("/current/submit", c.mockTest.Submit)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/students", c.student.List)
		admin.GET("/courses/:id/results", c.student.CourseResults)

		admin.GET("/courses", c.course.ListAll)
		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)

		admin.GET("/banners", c.banner.ListAll)
		admin.POST("/banners", c.banner.Create)
		admin.PUT("/banners/:id", c.banner.Update)
		admin.POST("/banners/upload", c.banner.UploadImage)
		admin.DELETE("/banners/:id", c.banner.Delete)

		admin.POST("/courses/:id/materials", c.material.Upload)
		admin.DELETE("/materials/:id", c.material.Delete)

		admin.GET("/courses/:id/questions", c.mockTest.ListQuestions)
		admin.POST("/courses/:id/questions", c.mockTest.AddQuestion)
		admin.PUT("/questions/:id", c.mockTest.UpdateQuestion)
		admin.DELETE("/questions/:id", c.mockTest.DeleteQuestion)
	}
}
