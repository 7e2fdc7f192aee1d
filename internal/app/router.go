package app

import (
	"reda_kids_backend/docs"
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/middleware"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. public
	a.registerPublicRoutes(router, c)

	// 2. any authenticated user
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActiveUserMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.Profile)
		authGroup.GET("/games", c.game.ListGames)
		authGroup.GET("/games/:gameId", c.game.GetGame)
		authGroup.GET("/games/:gameId/levels", c.game.ListLevels)

		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	statistics := group.Group("/statistics")
	statistics.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		statistics.POST("", c.statistics.SubmitAttempt)
		statistics.GET("", c.statistics.ListStatistics)
	}

	me := group.Group("/students/me")
	me.Use(middleware.RoleMiddleware(model.RoleStudent))
	{
		me.GET("", c.student.Me)
		me.PUT("", c.student.UpdateMe)
		me.GET("/courses", c.student.MyCourses)
		me.GET("/summary", c.statistics.MySummary)
		me.GET("/progress", c.statistics.MyProgress)
		me.GET("/progress/:gameId", c.statistics.MyGameProgress)
		me.GET("/max-level/:gameId", c.statistics.MyMaxLevel)
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.RoleTeacher))
	{
		teacher.GET("/courses", c.course.ListCourses)
		teacher.POST("/courses", c.course.CreateCourse)
		teacher.PUT("/courses/:id", c.course.UpdateCourse)
		teacher.DELETE("/courses/:id", c.course.DeleteCourse)
		teacher.GET("/courses/:id/students", c.course.ListStudents)
		teacher.POST("/courses/:id/students", c.course.EnrollStudents)
		teacher.DELETE("/courses/:id/students/:studentId", c.course.RemoveStudent)

		teacher.GET("/students/:studentId/summary", c.statistics.StudentSummary)
		teacher.GET("/students/:studentId/progress/:gameId", c.statistics.StudentGameProgress)
		teacher.GET("/students/:studentId/statistics", c.statistics.StudentStatistics)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.GetUsers)
		admin.POST("/users", c.user.CreateUser)
		admin.PUT("/users/:id", c.user.UpdateUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)
		admin.PUT("/users/:id/disable", c.user.SetDisabled)
		admin.PUT("/users/:id/reset-password", c.user.ResetPassword)

		admin.GET("/students", c.user.ListStudents)
		admin.GET("/teachers", c.user.ListTeachers)
		admin.GET("/courses", c.course.ListCourses)

		admin.POST("/games", c.game.CreateGame)
		admin.PUT("/games/:gameId", c.game.UpdateGame)
		admin.POST("/games/:gameId/levels", c.game.CreateLevel)
		admin.PUT("/levels/:id", c.game.UpdateLevel)
		admin.DELETE("/levels/:id", c.game.DeleteLevel)
	}
}
