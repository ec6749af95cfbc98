package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"

	"weatherapi/docs"
	"weatherapi/internal/http/middleware"
	"weatherapi/internal/service"
)

// Deps carries what the routes need. DB and Gatherer may be nil.
type Deps struct {
	Weather  service.WeatherService
	DB       *sql.DB
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/", Welcome())

	// The current-weather city is optional so an empty city still reaches
	// the provider. "/weather/forecast" alone is a current lookup for the
	// city "forecast".
	app.Get("/weather/:city?", CurrentWeather(d.Weather))
	app.Get("/weather/forecast/:city", Forecast(d.Weather))

	app.Get("/lookups", ListLookups(d.Weather))
	app.Get("/lookups/:id", GetLookup(d.Weather))
	app.Get("/lookups/:id/payload", LookupPayload(d.Weather))

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get(middleware.MetricsPath, Metrics(d.Gatherer))
	}

	app.Get("/swagger/*", Swagger())
}

// Swagger serves the UI with host and scheme taken from the request.
func Swagger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Hostname()
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
