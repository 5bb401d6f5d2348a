package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/academic-voice-hub/avh-go-api/internal/config"
	"github.com/academic-voice-hub/avh-go-api/internal/handler"
	"github.com/academic-voice-hub/avh-go-api/internal/middleware"
	"github.com/academic-voice-hub/avh-go-api/internal/models"
	"github.com/academic-voice-hub/avh-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	StudentHandler *handler.StudentHandler
	TeacherHandler *handler.TeacherHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)

		protected := api.Group("", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.StudentHandler != nil {
		student := api.Group("/student", jwtMiddleware, middleware.RequireRole(string(models.RoleStudent)))
		deps.StudentHandler.Register(student)
	}

	if deps.TeacherHandler != nil {
		teacher := api.Group("/teacher", jwtMiddleware, middleware.RequireRole(string(models.RoleTeacher)))
		deps.TeacherHandler.Register(teacher)
	}
}
