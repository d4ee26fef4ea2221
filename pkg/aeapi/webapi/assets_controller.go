package webapi

import (
	"net/http"

	"github.com/alterego-vtt/alterego/pkg/assets"
	"github.com/labstack/echo/v4"
)

type AssetsController struct {
	browser assets.Browser
}

func NewAssetsController(browser assets.Browser) *AssetsController {
	return &AssetsController{browser: browser}
}

func (c *AssetsController) BrowseAssets(ctx echo.Context) error {
	kind, err := assets.ParseKind(ctx.QueryParam("kind"))
	if err != nil {
		return toHTTPError(err)
	}

	listing, err := c.browser.Browse(ctx.Request().Context(), ctx.QueryParam("dir"), kind)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, listing)
}

func (c *AssetsController) SearchAssets(ctx echo.Context) error {
	kind, err := assets.ParseKind(ctx.QueryParam("kind"))
	if err != nil {
		return toHTTPError(err)
	}

	matches, err := c.browser.Search(ctx.Request().Context(), ctx.QueryParam("q"), kind)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, matches)
}
