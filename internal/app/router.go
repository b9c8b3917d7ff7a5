package app

import (
	"cleanleb_backend/docs"
	"cleanleb_backend/internal/config"
	"cleanleb_backend/internal/middleware"
	"cleanleb_backend/internal/model"

	"cleanleb_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, repos)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCitizenRoutes(authGroup, c)
		a.registerStaffRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Browsing is open to guests.
		public.GET("/reports", middleware.TryAuthMiddleware(a.Config), c.report.List)
		public.GET("/reports/:id", middleware.TryAuthMiddleware(a.Config), c.report.Get)
		public.GET("/education/quizzes", c.quiz.List)
		public.GET("/education/quizzes/:id", c.quiz.Get)
		public.GET("/users/leaderboard", c.user.Leaderboard)
	}
}

func (a *App) registerCitizenRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/reports", c.report.Create)
	rg.PUT("/reports/:id/vote", c.report.Vote)
	rg.POST("/reports/:id/comments", c.report.AddComment)

	rg.POST("/education/quizzes/:id/submit", c.quiz.Submit)
	rg.GET("/education/history", c.quiz.History)

	rg.GET("/users/profile", c.user.Profile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
}

func (a *App) registerStaffRoutes(rg *gin.RouterGroup, c *controllers) {
	staff := rg.Group("")
	staff.Use(middleware.RoleMiddleware(model.Municipal, model.Admin))
	{
		staff.PUT("/reports/:id/status", c.report.UpdateStatus)
		staff.PUT("/admin/reports/:id", c.admin.UpdateReport)
		staff.GET("/admin/stats", c.admin.Stats)
	}

	admin := rg.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/education/quizzes", c.quiz.Create)
	}
}
