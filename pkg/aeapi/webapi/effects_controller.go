package webapi

import (
	"net/http"
	"strings"

	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/labstack/echo/v4"
)

// EffectsController serves the effect browser's catalogue lookups.
type EffectsController struct {
	catalog *effects.Catalog
}

func NewEffectsController(catalog *effects.Catalog) *EffectsController {
	return &EffectsController{catalog: catalog}
}

// SearchEffects returns catalogue entries under namespace (if given) whose
// path contains q.
func (c *EffectsController) SearchEffects(ctx echo.Context) error {
	var (
		q         = ctx.QueryParam("q")
		namespace = ctx.QueryParam("namespace")
		entries   []string
	)

	if namespace != "" {
		for _, p := range c.catalog.PathsUnder(namespace) {
			if q == "" || containsFold(p, q) {
				entries = append(entries, p)
			}
		}
	} else {
		entries = c.catalog.Search(q)
	}

	if entries == nil {
		entries = []string{}
	}

	return ctx.JSON(http.StatusOK, entries)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
