package middleware

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request on tp. A nil tp disables tracing.
// Probe and scrape endpoints are not traced.
func Tracing(tp trace.TracerProvider) fiber.Handler {
	if tp == nil {
		return Noop()
	}
	return otelfiber.Middleware(
		otelfiber.WithTracerProvider(tp),
		otelfiber.WithNext(func(c *fiber.Ctx) bool {
			switch c.Path() {
			case MetricsPath, "/healthz", "/health":
				return true
			}
			return false
		}),
	)
}
