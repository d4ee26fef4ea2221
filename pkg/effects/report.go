package effects

import (
	"context"

	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/apex/log"
)

// ReportDependencies logs what effect support is present: whether a renderer
// is reachable and how many catalogued effects are known.
func ReportDependencies(renderer Renderer, catalog *Catalog, logger *log.Entry) {
	if renderer == nil || !renderer.Available() {
		logger.Warn("no effect renderer available, effects disabled")
		return
	}

	if catalog.Len() == 0 {
		logger.Warn("effect renderer available but no effect catalogue loaded, only file effects will play")
		return
	}

	logger.WithField("entries", catalog.Len()).Info("effect renderer available")
}

// ReportOnReady runs ReportDependencies when the service publishes TopicReady.
func ReportOnReady(bus events.Bus, renderer Renderer, catalog *Catalog, logger *log.Entry) (unsubscribe func()) {
	return bus.Subscribe(events.TopicReady, func(_ context.Context, _ events.Event) error {
		ReportDependencies(renderer, catalog, logger)
		return nil
	})
}
