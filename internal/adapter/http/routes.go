package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kamal845/task-management/internal/adapter/http/handlers"
	"github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/core/ports"
)

func RegisterRoutes(
	r *gin.Engine,
	authService ports.AuthService,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	userHandler *handlers.UserHandler,
) {
	protect := middleware.AuthMiddleware(authService)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", protect, authHandler.Me)
			auth.PUT("/update-profile", protect, authHandler.UpdateProfile)
			auth.PUT("/update-password", protect, authHandler.UpdatePassword)
		}

		tasks := api.Group("/tasks", protect)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats", taskHandler.TaskStats)
			tasks.GET("/search", taskHandler.SearchTasks)
			tasks.GET("/status/:status", taskHandler.TasksByStatus)
			tasks.GET("/overdue", taskHandler.OverdueTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/archive", taskHandler.ArchiveTask)
			tasks.PATCH("/:id/unarchive", taskHandler.UnarchiveTask)
		}

		users := api.Group("/users", protect)
		{
			users.GET("", middleware.RequireAdmin(), userHandler.ListUsers)
			users.GET("/stats", userHandler.UserStats)
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
			users.PATCH("/:id/role", middleware.RequireAdmin(), userHandler.UpdateUserRole)
		}
	}
}
