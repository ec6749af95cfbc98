package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"weatherapi/internal/service"
)

// ListLookups serves GET /lookups?limit=&offset= from the journal.
//
// @Summary  List journaled lookups
// @Produce  json
// @Param    limit  query int false "Page size" default(10)
// @Param    offset query int false "Offset"    default(0)
// @Success  200 {object} service.LookupListResult
// @Failure  404 {object} errorPayload "Journal disabled"
// @Router   /lookups [get]
func ListLookups(svc service.WeatherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListLookups(c.UserContext(), limit, offset)
		if err != nil {
			return writeLookupError(c, err)
		}
		return c.JSON(res)
	}
}

// GetLookup serves GET /lookups/:id.
//
// @Summary  Get one journaled lookup
// @Produce  json
// @Param    id path string true "Lookup ID" format(uuid)
// @Success  200 {object} service.LookupDetail
// @Failure  404 {object} errorPayload "Not found"
// @Router   /lookups/{id} [get]
func GetLookup(svc service.WeatherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		l, err := svc.GetLookup(c.UserContext(), id)
		if err != nil {
			return writeLookupError(c, err)
		}
		return c.JSON(l)
	}
}

// LookupPayload serves GET /lookups/:id/payload by streaming the archived
// upstream body.
//
// @Summary  Archived raw provider body of a lookup
// @Produce  json
// @Param    id path string true "Lookup ID" format(uuid)
// @Success  200 {object} object "Provider document"
// @Failure  404 {object} errorPayload "Not archived"
// @Router   /lookups/{id}/payload [get]
func LookupPayload(svc service.WeatherService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, info, err := svc.OpenPayload(c.UserContext(), id)
		if err != nil {
			return writeLookupError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEApplicationJSON
		}
		c.Set(fiber.HeaderContentType, ct)
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		return c.SendStream(rc, size)
	}
}

func writeLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrJournalDisabled):
		return writeError(c, fiber.StatusNotFound, "JOURNAL_DISABLED", "lookup journal is not configured")
	case errors.Is(err, service.ErrArchiveDisabled):
		return writeError(c, fiber.StatusNotFound, "ARCHIVE_DISABLED", "payload archive is not configured")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "lookup not found")
	case errors.Is(err, service.ErrNotArchived):
		return writeError(c, fiber.StatusNotFound, "NOT_ARCHIVED", "lookup has no archived payload")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
