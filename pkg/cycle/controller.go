// Package cycle advances tokens through their actor's variant list.
package cycle

import (
	"context"
	"errors"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/aeerr"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/alterego-vtt/alterego/pkg/lock"
	"github.com/apex/log"
)

// VariantLoader returns an actor's variant list.
type VariantLoader interface {
	Load(actorID int) (aemodel.VariantList, error)
}

// EffectDispatcher submits an effect to the renderer. It returns once the
// request is handed over and never reports playback failures.
type EffectDispatcher interface {
	Dispatch(req effects.PlayRequest)
}

// Result describes what a cycle did.
type Result struct {
	TokenID       int                   `json:"token_id"`
	ActorID       int                   `json:"actor_id"`
	PreviousIndex int                   `json:"previous_index"`
	Index         int                   `json:"index"`
	Variant       aemodel.VariantRecord `json:"variant"`
	Token         *aemodel.Token        `json:"token,omitempty"`

	// Skipped is set when the actor has no variants and nothing happened.
	Skipped bool `json:"skipped"`

	EffectRequested bool `json:"effect_requested"`

	// IndexPersisted is false when the display changed but the new index
	// could not be stored. The next cycle recomputes from whatever index
	// is stored.
	IndexPersisted bool `json:"index_persisted"`
}

type Options struct {
	Variants VariantLoader
	Tokens   stor.TokenStor
	Index    stor.CycleIndexStor
	Effects  EffectDispatcher
	Bus      events.Bus
	Logger   *log.Entry

	// Serialize makes concurrent cycles of one token run one after another.
	// When false two concurrent cycles can read the same index and advance
	// the token a single step.
	Serialize bool
}

type Controller struct {
	variants VariantLoader
	tokens   stor.TokenStor
	index    stor.CycleIndexStor
	effects  EffectDispatcher
	bus      events.Bus
	locker   *lock.IdLocker
	log      *log.Entry
}

func NewController(opts Options) *Controller {
	c := &Controller{
		variants: opts.Variants,
		tokens:   opts.Tokens,
		index:    opts.Index,
		effects:  opts.Effects,
		bus:      opts.Bus,
		log:      opts.Logger,
	}

	if c.effects == nil {
		c.effects = effects.NewDispatcher(nil, nil)
	}

	if c.log == nil {
		c.log = log.WithField("ctx", "cycle")
	}

	if opts.Serialize {
		c.locker = lock.NewIdLocker()
	}

	return c
}

// Cycle advances the token to the next variant of its actor's list.
//
// The effect, if the variant has one, is handed off before the display is
// updated; the two are not synchronized beyond that ordering. A display
// update failure aborts the cycle and leaves the stored index unchanged. A
// failure to store the new index after the display changed is only logged.
func (c *Controller) Cycle(ctx context.Context, tokenID int) (*Result, error) {
	if c.locker == nil {
		return c.cycle(ctx, tokenID)
	}

	var result *Result
	err := c.locker.WithLock(tokenID, func() error {
		var err error
		result, err = c.cycle(ctx, tokenID)
		return err
	})

	return result, err
}

func (c *Controller) cycle(ctx context.Context, tokenID int) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, err := c.tokens.GetTokenByID(tokenID)
	if err != nil {
		return nil, aeerr.DisplayUpdate(err, "token %d", tokenID)
	}

	l := c.log.WithFields(log.Fields{"token": tokenID, "actor": token.ActorID})

	list, err := c.variants.Load(token.ActorID)
	if err != nil {
		return nil, err
	}

	result := &Result{TokenID: tokenID, ActorID: token.ActorID, Token: token}
	if list.Empty() {
		result.Skipped = true
		l.Debug("actor has no variants, nothing to cycle")
		return result, nil
	}

	current := c.currentIndex(tokenID, len(list), l)
	next := (current + 1) % len(list)
	record := list[next]

	result.PreviousIndex = current
	result.Index = next
	result.Variant = record

	scale := record.Scale()

	if record.HasEffect() {
		c.effects.Dispatch(effects.NewPlayRequest(record.EffectPath, tokenID, token.SceneID, scale))
		result.EffectRequested = true
	}

	updated, err := c.tokens.UpdateTokenDisplay(tokenID, record.ImagePath, scale, scale)
	if err != nil {
		return nil, aeerr.DisplayUpdate(err, "unable to update token %d", tokenID)
	}
	result.Token = updated

	if c.bus != nil {
		c.bus.Publish(ctx, events.Event{Topic: events.TopicTokenUpdated, Payload: updated})
	}

	if err := c.index.SetCurrentIndex(tokenID, next); err != nil {
		l.WithError(err).Debug("unable to store cycle index")
	} else {
		result.IndexPersisted = true
	}

	l.WithFields(log.Fields{"index": next, "image": record.ImagePath}).Info("token cycled")

	return result, nil
}

// currentIndex reads the stored index, treating unreadable, negative or out
// of range values as 0.
func (c *Controller) currentIndex(tokenID, listLen int, l *log.Entry) int {
	current, err := c.index.GetCurrentIndex(tokenID)
	switch {
	case err != nil:
		if !errors.Is(err, aeerr.ErrNotFound) {
			l.WithError(err).Debug("unable to read cycle index, starting from 0")
		}
		return 0
	case current < 0, current >= listLen:
		return 0
	default:
		return current
	}
}

// HandleCycleRequested is an events.Handler for TopicCycleRequested.
func (c *Controller) HandleCycleRequested(ctx context.Context, e events.Event) error {
	req, ok := e.Payload.(events.CycleRequest)
	if !ok {
		return errors.New("cycle.requested payload is not a CycleRequest")
	}

	_, err := c.Cycle(ctx, req.TokenID)
	return err
}

// Subscribe registers the controller for cycle requests on bus.
func (c *Controller) Subscribe(bus events.Bus) (unsubscribe func()) {
	return bus.Subscribe(events.TopicCycleRequested, c.HandleCycleRequested)
}
