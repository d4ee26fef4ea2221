package apimiddleware

import (
	"fmt"
	"net/http"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserContextKey is where APIKeyAuth stores the authenticated *aemodel.User.
const UserContextKey = "user"

type GetUserByAPIKeyFN func(string) (*aemodel.User, error)

type APIKeyConfig struct {
	Skipper         middleware.Skipper
	Keyname         string
	GetUserByAPIKey GetUserByAPIKeyFN
}

func APIKeyAuth(config APIKeyConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Keyname == "" {
		config.Keyname = "apikey"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			value, err := getAPIKeyFromRequest(config.Keyname, c)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			user, err := config.GetUserByAPIKey(value)
			switch {
			case err != nil:
				return echo.ErrUnauthorized
			case user == nil:
				return echo.ErrUnauthorized
			default:
				c.Set(UserContextKey, user)
				return next(c)
			}
		}
	}
}

// UserFromContext returns the user APIKeyAuth authenticated, or nil.
func UserFromContext(c echo.Context) *aemodel.User {
	user, _ := c.Get(UserContextKey).(*aemodel.User)
	return user
}

func getAPIKeyFromRequest(key string, c echo.Context) (string, error) {
	if value := c.Request().Header.Get(key); value != "" {
		return value, nil
	}

	if value := c.QueryParam(key); value != "" {
		return value, nil
	}

	return "", fmt.Errorf("no apikey '%s' as query param or header", key)
}
