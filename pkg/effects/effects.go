// Package effects plays the optional animation that accompanies a variant
// change. Playback is best-effort: a failed effect never reverts the token
// update, and a missing renderer simply means nothing plays.
package effects

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultDuration = 2000 * time.Millisecond
	DefaultFadeIn   = 200 * time.Millisecond
	DefaultFadeOut  = 500 * time.Millisecond
)

// fileExtensions mark an effect path as a direct file reference.
var fileExtensions = []string{".webm", ".mp4", ".gif", ".apng"}

// IsFilePath reports whether effectPath names an animation file rather than a
// catalogued effect. Anything with a path separator or a known animation
// extension is a file.
func IsFilePath(effectPath string) bool {
	if strings.ContainsAny(effectPath, `/\`) {
		return true
	}

	ext := strings.ToLower(filepath.Ext(effectPath))
	for _, e := range fileExtensions {
		if ext == e {
			return true
		}
	}

	return false
}

// PlayRequest is one effect to play at a token. Durations are milliseconds
// on the wire.
type PlayRequest struct {
	EffectPath string  `json:"effect"`
	TokenID    int     `json:"token_id"`
	SceneID    int     `json:"scene_id"`
	Scale      float64 `json:"scale"`
	DurationMs int64   `json:"duration_ms"`
	FadeInMs   int64   `json:"fade_in_ms"`
	FadeOutMs  int64   `json:"fade_out_ms"`
}

func NewPlayRequest(effectPath string, tokenID, sceneID int, scale float64) PlayRequest {
	return PlayRequest{
		EffectPath: effectPath,
		TokenID:    tokenID,
		SceneID:    sceneID,
		Scale:      scale,
		DurationMs: DefaultDuration.Milliseconds(),
		FadeInMs:   DefaultFadeIn.Milliseconds(),
		FadeOutMs:  DefaultFadeOut.Milliseconds(),
	}
}

// Renderer is the effect rendering subsystem.
type Renderer interface {
	// Available reports whether a renderer is present at all.
	Available() bool

	// EntryExists reports whether name is in the effect catalogue. Only
	// meaningful for catalogued names, never for file paths.
	EntryExists(ctx context.Context, name string) (bool, error)

	Play(ctx context.Context, req PlayRequest) error
}

// NullRenderer stands in when no effect subsystem is configured.
type NullRenderer struct{}

func (NullRenderer) Available() bool { return false }

func (NullRenderer) EntryExists(context.Context, string) (bool, error) { return false, nil }

func (NullRenderer) Play(context.Context, PlayRequest) error { return nil }
