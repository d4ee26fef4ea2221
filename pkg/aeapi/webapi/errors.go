package webapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"github.com/alterego-vtt/alterego/pkg/assets"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps the service error kinds to status codes.
func toHTTPError(err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, aeerr.ErrConfiguration):
		code = http.StatusBadRequest
	case errors.Is(err, aeerr.ErrDisplayUpdate) && errors.Is(err, aeerr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, aeerr.ErrDisplayUpdate):
		code = http.StatusConflict
	case errors.Is(err, aeerr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, aeerr.ErrPersistence):
		code = http.StatusInternalServerError
	case errors.Is(err, assets.ErrOutsideRoot), errors.Is(err, assets.ErrUnknownKind):
		code = http.StatusBadRequest
	}

	return echo.NewHTTPError(code, err.Error())
}

func intParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}

	return id, nil
}
