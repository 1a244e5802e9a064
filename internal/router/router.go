package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasklight/backend/api/handler"
)

type Handlers struct {
	Pages   *apiHandler.PageHandler
	Account *apiHandler.AccountHandler
	Session *apiHandler.SessionHandler
	Task    *apiHandler.TaskHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Pages
	r.GET("/", handlers.Pages.Index)
	r.GET("/signup", handlers.Pages.Signup)
	r.GET("/dashboard", handlers.Pages.Dashboard)

	// Account and session routes
	r.POST("/api/signup", handlers.Account.Signup)
	r.POST("/api/login", handlers.Session.Login)
	r.POST("/api/logout", handlers.Session.Logout)

	// Protected routes
	r.GET("/api/user", authMiddleware(handlers.Session.CurrentUser))
	r.GET("/api/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/tasks", authMiddleware(handlers.Task.Create))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.Delete))

	return r
}
