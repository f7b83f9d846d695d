package httpapi

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"forecastd/internal/cache"
	"forecastd/internal/forecast"
)

var validate = validator.New()

// Forecaster is the slice of the orchestrator the HTTP layer needs.
type Forecaster interface {
	Fetch(ctx context.Context, query string, refresh bool) forecast.Result
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Forecaster, fc *cache.ForecastCache) {
	v1 := app.Group("/api/v1")

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		query := strings.TrimSpace(c.Query("query"))
		refresh := c.QueryBool("refresh")

		result := svc.Fetch(c.UserContext(), query, refresh)
		if result.IsError() {
			// Empty input is the caller's mistake; everything else means a
			// well-formed request we could not fulfil.
			status := fiber.StatusUnprocessableEntity
			if result.ErrorMessage == forecast.MsgEmptyQuery {
				status = fiber.StatusBadRequest
			}
			return c.Status(status).JSON(result)
		}

		return c.JSON(result)
	})

	v1.Delete("/forecast/cache", func(c *fiber.Ctx) error {
		coords, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := fc.Delete(c.UserContext(), coords.Lat, coords.Lon); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete cache entry")
		}

		return c.SendStatus(fiber.StatusNoContent)
	})
}

// coordsQuery holds query parameters identifying a cache entry.
type coordsQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	var q coordsQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}

	q.Lat = lat
	q.Lon = lon
	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
