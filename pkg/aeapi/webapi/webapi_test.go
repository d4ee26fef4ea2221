package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/assets"
	"github.com/alterego-vtt/alterego/pkg/cycle"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// setupEchoContext creates a test Echo context for the request, with the
// given path params set as name/value pairs.
func setupEchoContext(t *testing.T, method, target string, body []byte, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	c.Set("user", &aemodel.User{ID: 1, Slug: "gm"})

	return c, rec
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected an echo.HTTPError, got %v", err)
	assert.Equal(t, code, httpErr.Code)
}

type testEnv struct {
	actors  *stor.InMemoryActorStor
	tokens  *stor.InMemoryTokenStor
	store   *variants.Store
	bus     *events.LocalBus
	cycler  *cycle.Controller
	effects []effects.PlayRequest
}

func (e *testEnv) Dispatch(req effects.PlayRequest) {
	e.effects = append(e.effects, req)
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	list, err := aemodel.EncodeVariantList(aemodel.VariantList{
		{ImagePath: "a.png", Size: aemodel.SizeMedium},
		{ImagePath: "b.png", EffectPath: "fx.nova", Size: aemodel.SizeLarge},
	})
	require.NoError(t, err)

	env := &testEnv{
		actors: stor.NewInMemoryActorStor([]aemodel.Actor{
			{ID: 1, Name: "Wizard", TokenImages: list},
			{ID: 2, Name: "Commoner"},
			{ID: 3, Name: "Broken", TokenImages: datatypes.JSON(`"not a list"`)},
		}),
		tokens: stor.NewInMemoryTokenStor([]aemodel.Token{
			{ID: 10, ActorID: 1, SceneID: 5, TextureSrc: "a.png", Width: 1, Height: 1},
			{ID: 11, ActorID: 2, SceneID: 5, TextureSrc: "c.png", Width: 1, Height: 1},
			{ID: 12, ActorID: 2, SceneID: 5, TextureSrc: "c.png", Width: 1, Height: 1},
		}),
		bus: events.NewLocalBus(nil),
	}
	env.store = variants.NewStore(env.actors)
	env.cycler = cycle.NewController(cycle.Options{
		Variants:  env.store,
		Tokens:    env.tokens,
		Index:     env.tokens,
		Effects:   env,
		Bus:       env.bus,
		Serialize: true,
	})

	return env
}

func TestVariantsController(t *testing.T) {
	env := newTestEnv(t)
	controller := NewVariantsController(env.store, env.bus)

	t.Run("Get", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/actors/1/variants", nil, "id", "1")
		require.NoError(t, controller.GetVariants(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp VariantsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.ActorID)
		require.Len(t, resp.Variants, 2)
		assert.Equal(t, "fx.nova", resp.Variants[1].EffectPath)
	})

	t.Run("GetEmpty", func(t *testing.T) {
		ctx, rec := setupEchoContext(t, http.MethodGet, "/api/actors/2/variants", nil, "id", "2")
		require.NoError(t, controller.GetVariants(ctx))
		assert.JSONEq(t, `{"actor_id":2,"variants":[]}`, rec.Body.String())
	})

	t.Run("GetErrors", func(t *testing.T) {
		ctx, _ := setupEchoContext(t, http.MethodGet, "/api/actors/x/variants", nil, "id", "x")
		requireHTTPError(t, controller.GetVariants(ctx), http.StatusBadRequest)

		ctx, _ = setupEchoContext(t, http.MethodGet, "/api/actors/99/variants", nil, "id", "99")
		requireHTTPError(t, controller.GetVariants(ctx), http.StatusNotFound)

		ctx, _ = setupEchoContext(t, http.MethodGet, "/api/actors/3/variants", nil, "id", "3")
		requireHTTPError(t, controller.GetVariants(ctx), http.StatusBadRequest)
	})

	t.Run("Save", func(t *testing.T) {
		var saved []events.VariantsSaved
		unsubscribe := env.bus.Subscribe(events.TopicVariantsSaved, func(_ context.Context, e events.Event) error {
			saved = append(saved, e.Payload.(events.VariantsSaved))
			return nil
		})
		defer unsubscribe()

		body := []byte(`{"variants":[{"path":""},{"path":" x.png "},{"path":"  "}]}`)
		ctx, rec := setupEchoContext(t, http.MethodPut, "/api/actors/2/variants", body, "id", "2")
		require.NoError(t, controller.SaveVariants(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"actor_id":2,"variants":[{"path":"x.png","effect":"","size":"medium"}]}`, rec.Body.String())
		assert.Equal(t, []events.VariantsSaved{{ActorID: 2, Count: 1}}, saved)

		list, err := env.store.Load(2)
		require.NoError(t, err)
		assert.Equal(t, aemodel.VariantList{{ImagePath: "x.png", Size: aemodel.SizeMedium}}, list)
	})

	t.Run("SaveFailure", func(t *testing.T) {
		env.actors.WriteErr = errors.New("permission denied")
		defer func() { env.actors.WriteErr = nil }()

		body := []byte(`{"variants":[{"path":"x.png"}]}`)
		ctx, _ := setupEchoContext(t, http.MethodPut, "/api/actors/2/variants", body, "id", "2")
		requireHTTPError(t, controller.SaveVariants(ctx), http.StatusInternalServerError)
	})

	t.Run("SaveUnknownActor", func(t *testing.T) {
		body := []byte(`{"variants":[{"path":"x.png"}]}`)
		ctx, _ := setupEchoContext(t, http.MethodPut, "/api/actors/99/variants", body, "id", "99")
		requireHTTPError(t, controller.SaveVariants(ctx), http.StatusNotFound)
	})
}

func TestTokensController(t *testing.T) {
	env := newTestEnv(t)
	controller := NewTokensController(env.tokens, env.store)

	ctx, rec := setupEchoContext(t, http.MethodGet, "/api/tokens/10", nil, "id", "10")
	require.NoError(t, controller.GetToken(ctx))
	assert.Contains(t, rec.Body.String(), `"texture_src":"a.png"`)

	ctx, _ = setupEchoContext(t, http.MethodGet, "/api/tokens/99", nil, "id", "99")
	requireHTTPError(t, controller.GetToken(ctx), http.StatusNotFound)

	ctx, rec = setupEchoContext(t, http.MethodGet, "/api/tokens/10/actions", nil, "id", "10")
	require.NoError(t, controller.GetTokenActions(ctx))
	var actions []TokenAction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &actions))
	require.Len(t, actions, 1)
	assert.Equal(t, CycleActionID, actions[0].ID)

	ctx, rec = setupEchoContext(t, http.MethodGet, "/api/tokens/11/actions", nil, "id", "11")
	require.NoError(t, controller.GetTokenActions(ctx))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func decodeCycleResponse(t *testing.T, rec *httptest.ResponseRecorder) CycleResponse {
	t.Helper()

	var resp CycleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCycleController(t *testing.T) {
	t.Run("CycleToken", func(t *testing.T) {
		env := newTestEnv(t)
		controller := NewCycleController(env.cycler, env.tokens)

		ctx, rec := setupEchoContext(t, http.MethodPost, "/api/tokens/10/cycle", nil, "id", "10")
		require.NoError(t, controller.CycleToken(ctx))
		resp := decodeCycleResponse(t, rec)
		require.NotNil(t, resp.Result)
		assert.Nil(t, resp.Notice)
		assert.Equal(t, 1, resp.Result.Index)
		assert.Equal(t, "b.png", resp.Result.Token.TextureSrc)
		assert.Equal(t, 2.0, resp.Result.Token.Width)
		require.Len(t, env.effects, 1)
		assert.Equal(t, "fx.nova", env.effects[0].EffectPath)
	})

	t.Run("CycleTokenErrors", func(t *testing.T) {
		env := newTestEnv(t)
		controller := NewCycleController(env.cycler, env.tokens)

		env.tokens.DisplayErr = errors.New("update rejected")
		ctx, _ := setupEchoContext(t, http.MethodPost, "/api/tokens/10/cycle", nil, "id", "10")
		requireHTTPError(t, controller.CycleToken(ctx), http.StatusConflict)
		env.tokens.DisplayErr = nil

		env.tokens.RemoveToken(10)
		ctx, _ = setupEchoContext(t, http.MethodPost, "/api/tokens/10/cycle", nil, "id", "10")
		requireHTTPError(t, controller.CycleToken(ctx), http.StatusNotFound)
	})

	t.Run("CycleShortcut", func(t *testing.T) {
		env := newTestEnv(t)
		controller := NewCycleController(env.cycler, env.tokens)

		tests := []struct {
			body       string
			wantNotice string
		}{
			{body: `{"token_ids":[]}`, wantNotice: "Select a token first."},
			{body: `{"token_ids":[10,11]}`, wantNotice: "Select only one token."},
			{body: `{"token_ids":[10]}`},
		}

		for _, test := range tests {
			ctx, rec := setupEchoContext(t, http.MethodPost, "/api/shortcuts/cycle", []byte(test.body))
			require.NoError(t, controller.CycleShortcut(ctx), test.body)
			resp := decodeCycleResponse(t, rec)

			if test.wantNotice != "" {
				require.NotNil(t, resp.Notice, test.body)
				assert.Equal(t, "warn", resp.Notice.Level)
				assert.Equal(t, test.wantNotice, resp.Notice.Message)
				assert.Nil(t, resp.Result)
				continue
			}

			require.NotNil(t, resp.Result, test.body)
			assert.Equal(t, 10, resp.Result.TokenID)
		}
	})

	t.Run("CycleActor", func(t *testing.T) {
		env := newTestEnv(t)
		controller := NewCycleController(env.cycler, env.tokens)

		ctx, rec := setupEchoContext(t, http.MethodPost, "/api/actors/1/cycle", []byte(`{"scene_id":5}`), "id", "1")
		require.NoError(t, controller.CycleActor(ctx))
		resp := decodeCycleResponse(t, rec)
		require.NotNil(t, resp.Result)
		assert.Equal(t, 10, resp.Result.TokenID)

		ctx, rec = setupEchoContext(t, http.MethodPost, "/api/actors/1/cycle", []byte(`{"scene_id":6}`), "id", "1")
		require.NoError(t, controller.CycleActor(ctx))
		resp = decodeCycleResponse(t, rec)
		require.NotNil(t, resp.Notice)
		assert.Equal(t, "warn", resp.Notice.Level)

		ctx, rec = setupEchoContext(t, http.MethodPost, "/api/actors/2/cycle", []byte(`{"scene_id":5}`), "id", "2")
		require.NoError(t, controller.CycleActor(ctx))
		resp = decodeCycleResponse(t, rec)
		require.NotNil(t, resp.Notice)
		assert.Equal(t, "info", resp.Notice.Level)
		assert.Contains(t, resp.Notice.Message, "2 tokens")
	})
}

func TestEffectsController(t *testing.T) {
	catalog := effects.NewCatalog([]string{
		"jb2a.explosion.01.orange",
		"jb2a.misty_step.01.blue",
		"custom.nova",
	})
	controller := NewEffectsController(catalog)

	tests := []struct {
		target string
		want   string
	}{
		{target: "/api/effects", want: `["custom.nova","jb2a.explosion.01.orange","jb2a.misty_step.01.blue"]`},
		{target: "/api/effects?q=BLUE", want: `["jb2a.misty_step.01.blue"]`},
		{target: "/api/effects?namespace=jb2a", want: `["jb2a.explosion.01.orange","jb2a.misty_step.01.blue"]`},
		{target: "/api/effects?namespace=jb2a&q=nova", want: `[]`},
	}

	for _, test := range tests {
		ctx, rec := setupEchoContext(t, http.MethodGet, test.target, nil)
		require.NoError(t, controller.SearchEffects(ctx))
		assert.JSONEq(t, test.want, rec.Body.String(), test.target)
	}

	empty := NewEffectsController(nil)
	ctx, rec := setupEchoContext(t, http.MethodGet, "/api/effects", nil)
	require.NoError(t, empty.SearchEffects(ctx))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAssetsController(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tokens"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tokens", "wolf.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tokens", "howl.webm"), []byte("x"), 0644))

	controller := NewAssetsController(assets.NewLocalBrowser(root))

	ctx, rec := setupEchoContext(t, http.MethodGet, "/api/assets?dir=tokens&kind=image", nil)
	require.NoError(t, controller.BrowseAssets(ctx))
	assert.JSONEq(t, `{"dir":"tokens","dirs":[],"files":["tokens/wolf.png"]}`, rec.Body.String())

	ctx, rec = setupEchoContext(t, http.MethodGet, "/api/assets/search?q=howl&kind=effect", nil)
	require.NoError(t, controller.SearchAssets(ctx))
	assert.JSONEq(t, `["tokens/howl.webm"]`, rec.Body.String())

	ctx, _ = setupEchoContext(t, http.MethodGet, "/api/assets?dir=../..", nil)
	requireHTTPError(t, controller.BrowseAssets(ctx), http.StatusBadRequest)

	ctx, _ = setupEchoContext(t, http.MethodGet, "/api/assets?kind=audio", nil)
	requireHTTPError(t, controller.BrowseAssets(ctx), http.StatusBadRequest)
}
