package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/RomeoThePickleTec/task-management-system-sub001/controllers"
	"github.com/RomeoThePickleTec/task-management-system-sub001/middleware"
)

// Deps carries the constructed collaborators into route registration.
type Deps struct {
	Auth  *controllers.AuthController
	Users *controllers.UserController
	Tasks *controllers.TaskController
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	syncController := controllers.SyncController{}

	// Public routes, no session required.
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", deps.Auth.Login)
		public.POST("/auth/register", deps.Auth.Register)
	}

	// Session-protected routes.
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		private.GET("/users", deps.Users.ListUsers)
		private.GET("/users/:id", deps.Users.GetUser)
		private.PUT("/users/:id", deps.Users.UpdateProfile)
		private.DELETE("/users/:id", deps.Users.DeleteUser)
		private.POST("/users/reconcile", deps.Users.ReconcileAll)

		private.GET("/tasks", deps.Tasks.ListTasks)
		private.POST("/tasks", deps.Tasks.CreateTask)
		private.GET("/tasks/:id", deps.Tasks.GetTask)
		private.PUT("/tasks/:id/status", deps.Tasks.SetStatus)
		private.POST("/tasks/:id/subtasks", deps.Tasks.AddSubtask)
		private.DELETE("/tasks/:id/subtasks/:subId", deps.Tasks.RemoveSubtask)
		private.POST("/tasks/:id/suggest", deps.Tasks.SuggestSubtasks)

		private.GET("/sync/updates", syncController.GetUpdates)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
