package webapi

import (
	"net/http"

	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/labstack/echo/v4"
)

const CycleActionID = "cycle-image"

// TokenAction is an entry in a token's context menu.
type TokenAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

type TokensController struct {
	tokenStor stor.TokenStor
	store     *variants.Store
}

func NewTokensController(tokenStor stor.TokenStor, store *variants.Store) *TokensController {
	return &TokensController{tokenStor: tokenStor, store: store}
}

func (c *TokensController) GetToken(ctx echo.Context) error {
	tokenID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	token, err := c.tokenStor.GetTokenByID(tokenID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, token)
}

// GetTokenActions lists the context actions for a token. The cycle action is
// only offered when the token's actor has something to cycle through.
func (c *TokensController) GetTokenActions(ctx echo.Context) error {
	tokenID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}

	token, err := c.tokenStor.GetTokenByID(tokenID)
	if err != nil {
		return toHTTPError(err)
	}

	actions := []TokenAction{}
	if c.store.HasVariants(token.ActorID) {
		actions = append(actions, TokenAction{ID: CycleActionID, Label: "Cycle Alter Ego", Icon: "fas fa-sync"})
	}

	return ctx.JSON(http.StatusOK, actions)
}
