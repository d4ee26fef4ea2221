package webapi

import (
	"net/http"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/labstack/echo/v4"
)

type VariantsController struct {
	store *variants.Store
	bus   events.Bus
}

func NewVariantsController(store *variants.Store, bus events.Bus) *VariantsController {
	return &VariantsController{store: store, bus: bus}
}

type VariantsResponse struct {
	ActorID  int                 `json:"actor_id"`
	Variants aemodel.VariantList `json:"variants"`
}

func (c *VariantsController) GetVariants(ctx echo.Context) error {
	actorID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	list, err := c.store.Load(actorID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, VariantsResponse{ActorID: actorID, Variants: list})
}

// SaveVariants replaces the actor's whole list with the submitted rows.
func (c *VariantsController) SaveVariants(ctx echo.Context) error {
	var req struct {
		Variants []variants.Row `json:"variants"`
	}

	actorID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	list, err := c.store.Save(actorID, req.Variants)
	if err != nil {
		return toHTTPError(err)
	}

	if c.bus != nil {
		c.bus.Publish(ctx.Request().Context(), events.Event{
			Topic:   events.TopicVariantsSaved,
			Payload: events.VariantsSaved{ActorID: actorID, Count: len(list)},
		})
	}

	return ctx.JSON(http.StatusOK, VariantsResponse{ActorID: actorID, Variants: list})
}
