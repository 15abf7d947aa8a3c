// @title AI Quiz API
// @version 1.0
// @description Quiz session and leaderboard API for the AI knowledge quiz.
// @BasePath /api
// @schemes http
package handler

import (
	"ai-quiz/internal/config"
	"ai-quiz/internal/domain"
	"ai-quiz/internal/metrics"
	"ai-quiz/internal/middleware"
	"ai-quiz/internal/service"
	"ai-quiz/internal/validation"

	_ "ai-quiz/internal/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the HTTP API is built from.
type Deps struct {
	Service  service.QuizService
	Storage  Pinger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Server   config.ServerConfig
}

// NewApp builds the fiber app with every route registered.
func NewApp(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "ai-quiz",
		ReadTimeout:  d.Server.ReadTimeout,
		WriteTimeout: d.Server.WriteTimeout,
		IdleTimeout:  d.Server.ReadTimeout,
		BodyLimit:    64 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(d.Metrics))
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))

	v := validation.NewValidator()
	validate := middleware.NewValidationMiddleware(v)
	sessionHandler := NewSessionHandler(d.Service, v)
	leaderboardHandler := NewLeaderboardHandler(d.Service)
	healthHandler := NewHealthHandler(d.Storage)

	app.Get("/healthz", healthHandler.Health)
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	sessionGroup := api.Group("/session")
	sessionGroup.Get("/", sessionHandler.GetSession)
	sessionGroup.Post("/start", sessionHandler.Start)
	sessionGroup.Post("/answer", sessionHandler.Answer)
	sessionGroup.Post("/next", sessionHandler.Next)
	sessionGroup.Post("/restart", sessionHandler.Restart)
	sessionGroup.Post("/retry", sessionHandler.Retry)
	sessionGroup.Post("/home", sessionHandler.Home)

	api.Get("/leaderboard", validate.ValidateLimit(DefaultListLimit, domain.DefaultLeaderboardLimit), leaderboardHandler.List)
	api.Delete("/leaderboard", leaderboardHandler.Reset)

	return app
}
