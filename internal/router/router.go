package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/ministryflow/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Team    *apiHandler.TeamHandler
	Board   *apiHandler.BoardHandler
	Task    *apiHandler.TaskHandler
	View    *apiHandler.ViewHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	api := r.Group("/api/v1")

	// Auth routes
	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)
	api.POST("/auth/refresh", authMiddleware(handlers.Auth.Refresh))
	api.POST("/auth/logout", authMiddleware(handlers.Auth.Logout))

	// Protected routes
	api.GET("/profile", authMiddleware(handlers.Profile.GetProfile))
	api.PUT("/profile", authMiddleware(handlers.Profile.UpdateProfile))

	api.GET("/teams", authMiddleware(handlers.Team.ListTeams))
	api.POST("/teams", authMiddleware(handlers.Team.CreateTeam))
	api.GET("/teams/{teamID}", authMiddleware(handlers.Team.GetTeam))

	api.GET("/teams/{teamID}/boards", authMiddleware(handlers.Board.ListBoards))
	api.POST("/teams/{teamID}/boards", authMiddleware(handlers.Board.CreateBoard))
	api.DELETE("/boards/{boardID}", authMiddleware(handlers.Board.DeleteBoard))

	api.GET("/boards/{boardID}/tasks", authMiddleware(handlers.Task.ListTasks))
	api.POST("/boards/{boardID}/tasks", authMiddleware(handlers.Task.CreateTask))
	api.GET("/boards/{boardID}/dashboard", authMiddleware(handlers.View.Dashboard))
	api.GET("/boards/{boardID}/kanban", authMiddleware(handlers.View.Kanban))
	api.GET("/boards/{boardID}/table", authMiddleware(handlers.View.Table))
	api.GET("/boards/{boardID}/calendar", authMiddleware(handlers.View.Calendar))

	api.GET("/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	api.PUT("/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	api.DELETE("/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	api.PUT("/tasks/{id}/status", authMiddleware(handlers.Task.MoveTask))
	api.POST("/tasks/{id}/comments", authMiddleware(handlers.Task.AddComment))

	return r
}
