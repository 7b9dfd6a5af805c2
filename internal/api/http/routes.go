package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/norway-weather/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// topN is the number of wettest cities returned when a request does not ask for a limit.
func RegisterRoutes(app *fiber.App, service *weather.Service, topN int) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": service.Cities(),
		})
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		var q cityQuery
		if err := bindQuery(c, &q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cond, err := service.Current(c.UserContext(), q.City)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(cond)
	})

	v1.Get("/weather/timeline", func(c *fiber.Ctx) error {
		var q cityQuery
		if err := bindQuery(c, &q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points, err := service.Timeline(c.UserContext(), q.City)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(fiber.Map{
			"city":   q.City,
			"points": points,
		})
	})

	v1.Get("/precipitation/top", func(c *fiber.Ctx) error {
		q := topQuery{Limit: topN}
		if err := bindQuery(c, &q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ranking, err := service.TopPrecipitation(c.UserContext(), q.Limit, q.Refresh)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(ranking)
	})

	v1.Post("/precipitation/refresh", func(c *fiber.Ctx) error {
		ranking, err := service.RefreshRanking(c.UserContext())
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(ranking)
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		var q dashboardQuery
		if err := bindQuery(c, &q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		dash, err := service.Dashboard(c.UserContext(), q.City, q.Refresh, topN)
		if err != nil {
			return toHTTPError(err)
		}

		return c.JSON(dash)
	})
}

// cityQuery holds query parameters for identifying a city.
type cityQuery struct {
	City string `query:"city" validate:"required"`
}

// topQuery holds query parameters for the precipitation ranking endpoint.
type topQuery struct {
	Limit   int  `query:"limit" validate:"min=1,max=41"`
	Refresh bool `query:"refresh"`
}

// dashboardQuery holds query parameters for the dashboard endpoint.
type dashboardQuery struct {
	City    string `query:"city" validate:"required"`
	Refresh bool   `query:"refresh"`
}

func bindQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

// toHTTPError maps pipeline errors onto HTTP statuses.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, "could not fetch weather data, try again later")
	case errors.Is(err, weather.ErrMalformedPayload):
		return fiber.NewError(fiber.StatusBadGateway, "weather data was incomplete, try again later")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build weather view")
	}
}

// ErrorHandler renders every error as a JSON body with the matching status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
