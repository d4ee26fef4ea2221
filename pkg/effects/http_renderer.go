package effects

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPRenderer talks to a remote effect renderer:
//
//	GET  /health          renderer is up
//	GET  /entries/{name}  200 if catalogued, 404 if not
//	POST /play            PlayRequest body
type HTTPRenderer struct {
	client    *resty.Client
	available atomic.Bool
}

// ErrorResponse is the JSON a renderer answers with when a call fails.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &HTTPRenderer{client: client}
}

// Probe checks the renderer's health endpoint and records the result for
// Available.
func (r *HTTPRenderer) Probe(ctx context.Context) bool {
	resp, err := r.client.R().SetContext(ctx).Get("/health")
	ok := err == nil && resp.IsSuccess()
	r.available.Store(ok)
	return ok
}

func (r *HTTPRenderer) Available() bool {
	return r.available.Load()
}

func (r *HTTPRenderer) EntryExists(ctx context.Context, name string) (bool, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Get("/entries/{name}")
	if err != nil {
		return false, err
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, errorFromResponse(resp)
	}
}

func (r *HTTPRenderer) Play(ctx context.Context, req PlayRequest) error {
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/play")
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return errorFromResponse(resp)
	}

	return nil
}

func errorFromResponse(resp *resty.Response) error {
	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err != nil || errorResponse.Message == "" {
		return fmt.Errorf("renderer returned HTTP %d", resp.StatusCode())
	}

	return fmt.Errorf("renderer returned HTTP %d: %s: %s", resp.StatusCode(), errorResponse.Code, errorResponse.Message)
}
