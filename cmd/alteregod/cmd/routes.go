package cmd

import (
	"github.com/alterego-vtt/alterego/pkg/aeapi/webapi"
	"github.com/alterego-vtt/alterego/pkg/aeapi/webapi/apimiddleware"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/aehub"
	"github.com/alterego-vtt/alterego/pkg/assets"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/labstack/echo/v4"
)

type RouteOpts struct {
	stors    *stor.Stors
	variants *variants.Store
	bus      events.Bus
	cycler   webapi.Cycler
	catalog  *effects.Catalog
	browser  assets.Browser
	hub      *aehub.Hub
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	// The hub checks the api key itself before upgrading.
	e.GET("/ws", opts.hub.HandleWS)

	apikeyCache := apimiddleware.NewAPIKeyCache(opts.stors.UserStor)
	g := e.Group("/api", apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		Keyname:         "apikey",
		GetUserByAPIKey: apikeyCache.GetUserByAPIKey,
	}))

	variantsController := webapi.NewVariantsController(opts.variants, opts.bus)
	g.GET("/actors/:id/variants", variantsController.GetVariants)
	g.PUT("/actors/:id/variants", variantsController.SaveVariants)

	cycleController := webapi.NewCycleController(opts.cycler, opts.stors.TokenStor)
	g.POST("/actors/:id/cycle", cycleController.CycleActor)
	g.POST("/tokens/:id/cycle", cycleController.CycleToken)
	g.POST("/shortcuts/cycle", cycleController.CycleShortcut)

	tokensController := webapi.NewTokensController(opts.stors.TokenStor, opts.variants)
	g.GET("/tokens/:id", tokensController.GetToken)
	g.GET("/tokens/:id/actions", tokensController.GetTokenActions)

	effectsController := webapi.NewEffectsController(opts.catalog)
	g.GET("/effects", effectsController.SearchEffects)

	if opts.browser != nil {
		assetsController := webapi.NewAssetsController(opts.browser)
		g.GET("/assets", assetsController.BrowseAssets)
		g.GET("/assets/search", assetsController.SearchAssets)
	}
}
