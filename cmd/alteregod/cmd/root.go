/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alterego-vtt/alterego/pkg/clog"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/alterego-vtt/alterego/pkg/effects"
	"github.com/alterego-vtt/alterego/pkg/events"
	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alteregod",
	Short: "Run the alter ego token cycling server",
	Long: `alteregod serves the alter ego API and websocket hub. Tabletop clients
connect to the hub to receive token updates and effects, and call the API to
edit an actor's variant list and cycle tokens through it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.GetConfig()
		svc := mustBuildServices(c, true)
		defer svc.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go svc.hub.Run(ctx)
		svc.hub.Subscribe(svc.bus)
		svc.cycler.Subscribe(svc.bus)
		effects.ReportOnReady(svc.bus, svc.renderer, svc.catalog, clog.UsingCtx(clog.EffectsCtx))

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		setupRoutes(e, RouteOpts{
			stors:    svc.stors,
			variants: svc.variants,
			bus:      svc.bus,
			cycler:   svc.cycler,
			catalog:  svc.catalog,
			browser:  svc.browser,
			hub:      svc.hub,
		})

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Errorf("Server shutdown failed: %s", err)
			}
		}()

		svc.bus.Publish(ctx, events.Event{Topic: events.TopicReady})

		port := c.GetKeyWithDefault(config.KeyPort, "8470")
		log.Infof("Listening on port %s", port)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file, .env files are read as dotenv")
}

// loadConfig installs the configer for --config. A missing default config
// file is fine, settings then come from the environment.
func loadConfig() error {
	c, err := config.ForPath(cfgFile)
	if err != nil {
		return err
	}

	if err := c.Load(); err != nil {
		if !(cfgFile == config.DefaultConfigFile && defaultConfigMissing()) {
			return err
		}
	}

	config.SetConfig(c)

	return clog.SetAllLevelsFromString(c.GetKeyWithDefault(config.KeyLogLevel, "info"))
}

func defaultConfigMissing() bool {
	path, err := homedir.Expand(config.DefaultConfigFile)
	if err != nil {
		return true
	}

	_, err = os.Stat(path)
	return os.IsNotExist(err)
}
