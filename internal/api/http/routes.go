package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-style/internal/weather"
)

var validate = validator.New()

// Recommender is the slice of the weather service the routes need.
type Recommender interface {
	Recommendation(ctx context.Context, lat, lon float64, unit weather.UnitSystem) (*weather.Recommendation, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Recommender) {
	v1 := app.Group("/api/v1")

	v1.Get("/recommend", func(c *fiber.Ctx) error {
		req, err := parseRecommendQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Validated by oneof, cannot fail here.
		unit, _ := weather.ParseUnitSystem(req.Units)

		rec, err := service.Recommendation(c.Context(), req.Lat, req.Lon, unit)
		if err != nil {
			if errors.Is(err, weather.ErrDataUnavailable) {
				return fiber.NewError(fiber.StatusBadGateway, "weather data unavailable")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}

		return c.JSON(rec)
	})
}

// recommendQuery holds the bound and validated query parameters.
type recommendQuery struct {
	Lat   float64 `validate:"min=-90,max=90"`
	Lon   float64 `validate:"min=-180,max=180"`
	Units string  `validate:"omitempty,oneof=imperial metric"`
}

func parseRecommendQuery(c *fiber.Ctx) (recommendQuery, error) {
	var q recommendQuery

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, errors.New("lon must be a number")
	}

	q.Lat = lat
	q.Lon = lon
	q.Units = c.Query("units")

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
