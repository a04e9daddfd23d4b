package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"campaignkit-go/pkg/logger"
)

const APIPrefix = "/v1"

type AppConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
	// Registerer and Gatherer back /metrics; nil means the default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Logger     *logger.Logger
}

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(cfg AppConfig, ctrl *Controller) *fiber.App {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	log := cfg.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	app := fiber.New(fiber.Config{
		AppName:               "campaignkit",
		ErrorHandler:          ErrorHandler,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	app.Use(AccessLog(log.Component("http")))
	app.Use(NewHTTPMetrics(cfg.Registerer).Middleware())

	app.Get("/healthz", HealthCheck)
	app.Get("/metrics", MetricsHandler(cfg.Gatherer))
	ctrl.Register(app.Group(APIPrefix))

	return app
}
