package cmd

import (
	"context"
	"time"

	"github.com/alterego-vtt/alterego/pkg/aedb"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/aehub"
	"github.com/alterego-vtt/alterego/pkg/assets"
	"github.com/alterego-vtt/alterego/pkg/clog"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/alterego-vtt/alterego/pkg/cycle"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/apex/log"
	"github.com/redis/go-redis/v9"
)

// services is everything the daemon and the one-shot commands share.
type services struct {
	stors      *stor.Stors
	bus        *events.LocalBus
	variants   *variants.Store
	catalog    *effects.Catalog
	renderer   effects.Renderer
	dispatcher *effects.Dispatcher
	cycler     *cycle.Controller
	hub        *aehub.Hub
	browser    assets.Browser
	redis      *redis.Client
}

// mustBuildServices connects to the database and the optional backends named
// in c. The websocket hub is only created when withHub is set; it then
// becomes the effect renderer unless ALTEREGO_EFFECTS_URL names another one.
func mustBuildServices(c config.Configer, withHub bool) *services {
	db := aedb.MustConnectToDB(c)

	svc := &services{
		stors: stor.NewGormStors(db),
		bus:   events.NewLocalBus(clog.Global()),
	}
	svc.variants = variants.NewStore(svc.stors.ActorStor)

	if catalogPath := c.GetKey(config.KeyEffectsCatalog); catalogPath != "" {
		catalog, err := effects.LoadCatalog(catalogPath)
		if err != nil {
			log.Warnf("Unable to load effect catalogue %s: %s", catalogPath, err)
		}
		svc.catalog = catalog
	}

	if withHub {
		svc.hub = aehub.NewHub(svc.stors.UserStor, svc.bus, svc.catalog, clog.UsingCtx(clog.HubCtx))
	}

	svc.renderer = svc.selectRenderer(c)
	svc.dispatcher = effects.NewDispatcher(svc.renderer, clog.UsingCtx(clog.EffectsCtx))

	indexStor := svc.stors.CycleIndexStor
	if c.GetKeyWithDefault(config.KeyIndexBackend, "db") == "redis" {
		client, err := stor.ConnectRedis(c.GetKey(config.KeyRedisAddr), c.GetKey(config.KeyRedisPassword), c.GetIntKeyWithDefault(config.KeyRedisDB, 0))
		if err != nil {
			log.Fatalf("Unable to connect to redis: %s", err)
		}
		svc.redis = client
		indexStor = stor.NewRedisCycleIndexStor(client)
	}

	svc.cycler = cycle.NewController(cycle.Options{
		Variants:  svc.variants,
		Tokens:    svc.stors.TokenStor,
		Index:     indexStor,
		Effects:   svc.dispatcher,
		Bus:       svc.bus,
		Logger:    clog.UsingCtx(clog.CycleCtx),
		Serialize: c.GetBoolKeyWithDefault(config.KeySerializeCycles, true),
	})

	svc.browser = mustSelectBrowser(c)

	return svc
}

func (svc *services) selectRenderer(c config.Configer) effects.Renderer {
	if url := c.GetKey(config.KeyEffectsURL); url != "" {
		r := effects.NewHTTPRenderer(url)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if !r.Probe(ctx) {
			log.Warnf("Effect renderer at %s is not responding", url)
		}
		return r
	}

	if svc.hub != nil {
		return svc.hub
	}

	return effects.NullRenderer{}
}

func mustSelectBrowser(c config.Configer) assets.Browser {
	if endpoint := c.GetKey(config.KeyMinioEndpoint); endpoint != "" {
		b, err := assets.NewMinioBrowser(endpoint,
			c.MustGetKey(config.KeyMinioAccessKey),
			c.MustGetKey(config.KeyMinioSecretKey),
			c.MustGetKey(config.KeyMinioBucket),
			c.GetBoolKeyWithDefault(config.KeyMinioUseSSL, false))
		if err != nil {
			log.Fatalf("Unable to set up asset bucket: %s", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := b.CheckBucket(ctx); err != nil {
			log.Warnf("Asset bucket not usable: %s", err)
		}

		return b
	}

	if dir := c.GetKey(config.KeyAssetsDir); dir != "" {
		return assets.NewLocalBrowser(dir)
	}

	return nil
}

func (svc *services) close() {
	if svc.redis != nil {
		_ = svc.redis.Close()
	}
}
