package effects

import (
	"context"
	"errors"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"github.com/apex/log"
)

var ErrUnknownEffect = errors.New("effect not in catalogue")

// submitTimeout bounds the catalogue lookup and hand-off to the renderer.
// Playback itself finishes on the renderer's side.
const submitTimeout = 5 * time.Second

// Dispatcher sends play requests to a Renderer. Dispatch hands the request
// over before returning and only logs the outcome.
type Dispatcher struct {
	renderer Renderer
	log      *log.Entry
}

func NewDispatcher(renderer Renderer, logger *log.Entry) *Dispatcher {
	if renderer == nil {
		renderer = NullRenderer{}
	}

	if logger == nil {
		logger = log.WithField("ctx", "effects")
	}

	return &Dispatcher{renderer: renderer, log: logger}
}

func (d *Dispatcher) Available() bool {
	return d.renderer.Available()
}

// Dispatch submits req to the renderer and returns once it has been handed
// over, so an effect issued ahead of a display update reaches clients first.
// Failures are logged, never returned.
func (d *Dispatcher) Dispatch(req PlayRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	l := d.log.WithFields(log.Fields{"effect": req.EffectPath, "token": req.TokenID})
	if err := d.Play(ctx, req); err != nil {
		l.WithError(err).Warn("effect not played")
		return
	}
	l.Debug("effect dispatched")
}

// Play plays req synchronously. A missing renderer is not an error; the
// request is dropped. Catalogued names are checked before playing, file paths
// are passed straight through.
func (d *Dispatcher) Play(ctx context.Context, req PlayRequest) error {
	if req.EffectPath == "" {
		return nil
	}

	if !d.renderer.Available() {
		d.log.WithField("effect", req.EffectPath).Debug("no effect renderer, dropping request")
		return nil
	}

	if !IsFilePath(req.EffectPath) {
		exists, err := d.renderer.EntryExists(ctx, req.EffectPath)
		if err != nil {
			return aeerr.EffectPlayback(err, "unable to look up effect %q", req.EffectPath)
		}

		if !exists {
			return aeerr.EffectPlayback(ErrUnknownEffect, "effect %q", req.EffectPath)
		}
	}

	if err := d.renderer.Play(ctx, req); err != nil {
		return aeerr.EffectPlayback(err, "unable to play effect %q", req.EffectPath)
	}

	return nil
}
