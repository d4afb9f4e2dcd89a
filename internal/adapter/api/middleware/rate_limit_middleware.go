package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"telemart/pkg/errors"
	"telemart/pkg/logger"
	"telemart/pkg/response"
)

// NewRateLimiter limits each client IP to perMinute requests with a burst of
// the same size. It guards order placement and the public lead forms.
func NewRateLimiter(perMinute float64) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 20
	}
	burst := int(perMinute)
	if burst < 1 {
		burst = 1
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perMinute / 60),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Error(c, errors.Internal("Failed to identify client", err))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("RATE LIMIT: blocked %s %s from %s", c.Request().Method, c.Path(), identifier)
			return response.Error(c, errors.TooManyRequests("Too many requests, please slow down"))
		},
	})
}
