package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/owgcode2202/todoapp/api/handler"
)

type Handlers struct {
	Pages  *apiHandler.PageHandler
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/", handlers.Pages.Landing)
	r.GET("/health", handlers.Health.Check)

	// Account routes
	r.GET("/register", handlers.Auth.RegisterPage)
	r.POST("/register", handlers.Auth.Register)
	r.GET("/login", handlers.Auth.LoginPage)
	r.POST("/login", handlers.Auth.Login)

	// Protected routes
	r.GET("/logout", authMiddleware(handlers.Auth.Logout))
	r.GET("/dashboard", authMiddleware(handlers.Task.Dashboard))
	r.POST("/dashboard", authMiddleware(handlers.Task.CreateTask))
	r.GET("/update/{id}", authMiddleware(handlers.Task.EditPage))
	r.POST("/update/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.GET("/toggle/{id}", authMiddleware(handlers.Task.ToggleTask))
	r.GET("/delete/{id}", authMiddleware(handlers.Task.DeleteTask))

	return r
}
