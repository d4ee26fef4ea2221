package webapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/cycle"
	"github.com/labstack/echo/v4"
)

type Cycler interface {
	Cycle(ctx context.Context, tokenID int) (*cycle.Result, error)
}

// Notice is a message for the user when a cycle request could not pick a
// token. Level is "warn" or "info".
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type CycleResponse struct {
	Notice *Notice       `json:"notice,omitempty"`
	Result *cycle.Result `json:"result,omitempty"`
}

type CycleController struct {
	cycler    Cycler
	tokenStor stor.TokenStor
}

func NewCycleController(cycler Cycler, tokenStor stor.TokenStor) *CycleController {
	return &CycleController{cycler: cycler, tokenStor: tokenStor}
}

func (c *CycleController) CycleToken(ctx echo.Context) error {
	tokenID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	return c.cycle(ctx, tokenID)
}

// CycleShortcut handles the keyboard shortcut, which acts on exactly one
// controlled token.
func (c *CycleController) CycleShortcut(ctx echo.Context) error {
	var req struct {
		TokenIDs []int `json:"token_ids"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	switch len(req.TokenIDs) {
	case 0:
		return ctx.JSON(http.StatusOK, CycleResponse{Notice: &Notice{Level: "warn", Message: "Select a token first."}})
	case 1:
		return c.cycle(ctx, req.TokenIDs[0])
	default:
		return ctx.JSON(http.StatusOK, CycleResponse{Notice: &Notice{Level: "warn", Message: "Select only one token."}})
	}
}

// CycleActor handles the actor sheet button, which cycles the actor's token
// in the given scene when there is exactly one.
func (c *CycleController) CycleActor(ctx echo.Context) error {
	var req struct {
		SceneID int `json:"scene_id"`
	}

	actorID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	tokens, err := c.tokenStor.ListTokensForActorInScene(actorID, req.SceneID)
	if err != nil {
		return toHTTPError(err)
	}

	switch len(tokens) {
	case 0:
		return ctx.JSON(http.StatusOK, CycleResponse{Notice: &Notice{Level: "warn", Message: "No token for this actor on the scene."}})
	case 1:
		return c.cycle(ctx, tokens[0].ID)
	default:
		msg := fmt.Sprintf("%d tokens for this actor on the scene, select one and use the shortcut.", len(tokens))
		return ctx.JSON(http.StatusOK, CycleResponse{Notice: &Notice{Level: "info", Message: msg}})
	}
}

func (c *CycleController) cycle(ctx echo.Context, tokenID int) error {
	result, err := c.cycler.Cycle(ctx.Request().Context(), tokenID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, CycleResponse{Result: result})
}
