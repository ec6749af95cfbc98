package handler

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"weatherapi/internal/service"
	"weatherapi/internal/upstream"
)

// WelcomeMessage is the fixed body of GET /.
const WelcomeMessage = "Welcome to the Weather API"

type welcomeResponse struct {
	Message string `json:"message"`
}

// Welcome answers GET / with the static welcome object.
//
// @Summary  Welcome message
// @Produce  json
// @Success  200 {object} welcomeResponse
// @Router   / [get]
func Welcome() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(welcomeResponse{Message: WelcomeMessage})
	}
}

// CurrentWeather proxies GET /weather/:city to the provider's current-weather endpoint.
//
// @Summary  Current weather, proxied verbatim from the provider
// @Produce  json
// @Param    city path string true "City name"
// @Success  200 {object} object "Provider document"
// @Failure  502 {object} errorPayload
// @Router   /weather/{city} [get]
func CurrentWeather(svc service.WeatherService) fiber.Handler {
	return proxy(svc.Current)
}

// Forecast proxies GET /weather/forecast/:city to the provider's forecast endpoint.
//
// @Summary  Forecast, proxied verbatim from the provider
// @Produce  json
// @Param    city path string true "City name"
// @Success  200 {object} object "Provider document"
// @Failure  502 {object} errorPayload
// @Router   /weather/forecast/{city} [get]
func Forecast(svc service.WeatherService) fiber.Handler {
	return proxy(svc.Forecast)
}

func proxy(fetch func(ctx context.Context, city string) (*upstream.Response, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := fetch(c.UserContext(), cityParam(c))
		if err != nil {
			if errors.Is(err, upstream.ErrUpstreamTransport) || errors.Is(err, upstream.ErrUpstreamPayload) {
				return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "weather provider unavailable")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return writeUpstream(c, resp)
	}
}

// cityParam returns the unescaped city path segment. It is not validated;
// a segment that fails to unescape is passed on as sent.
func cityParam(c *fiber.Ctx) string {
	raw := c.Params("city")
	if city, err := url.PathUnescape(raw); err == nil {
		return utils.CopyString(city)
	}
	return utils.CopyString(raw)
}

// writeUpstream sends the provider's status and body unchanged.
func writeUpstream(c *fiber.Ctx, resp *upstream.Response) error {
	ct := resp.ContentType
	if ct == "" {
		ct = fiber.MIMEApplicationJSONCharsetUTF8
	}
	c.Set(fiber.HeaderContentType, ct)
	return c.Status(resp.StatusCode).Send(resp.Body)
}
