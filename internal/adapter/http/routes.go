package http

import (
	"cmms/internal/adapter/http/handlers"
	"cmms/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Tasks     *handlers.TaskHandler
	Buildings *handlers.BuildingHandler
	Audit     *handlers.AuditHandler
	Dashboard *handlers.DashboardHandler
	Users     *handlers.UserHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, auth gin.HandlerFunc) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
	}

	secured := api.Group("")
	secured.Use(auth)
	{
		secured.GET("/tasks", h.Tasks.ListTasks)
		secured.POST("/tasks", h.Tasks.CreateTask)
		secured.GET("/tasks/:id", h.Tasks.GetTask)
		secured.PUT("/tasks/:id", h.Tasks.UpdateTask)
		secured.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		secured.POST("/tasks/:id/status/:status", h.Tasks.SetStatusManagerGet)
		secured.POST("/tasks/:id/decline", h.Tasks.DeclineTask)
		secured.POST("/tasks/:id/employee-status/:status", h.Tasks.SetStatusEmployee)
		secured.POST("/tasks/:id/comments", h.Tasks.AddComment)

		secured.GET("/buildings", h.Buildings.ListBuildings)
		secured.POST("/buildings", h.Buildings.CreateBuilding)
		secured.PUT("/buildings/:id", h.Buildings.UpdateBuilding)
		secured.DELETE("/buildings/:id", h.Buildings.DeleteBuilding)

		secured.GET("/audit", h.Audit.ListEntries)
		secured.GET("/dashboard", h.Dashboard.GetDashboard)
		secured.GET("/users", h.Users.ListUsers)
	}
}
