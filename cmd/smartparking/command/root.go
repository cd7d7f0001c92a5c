// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the smart
// parking server. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db",
// "places", and "config" sub-commands manage the database, the parking
// places, and the configuration file respectively.
//
//	./smartparking [-c /path/of/config.yaml]           # start web server
//	./smartparking db init-dev [-c /path/of/config.yaml]
//	./smartparking db init-prod [-c /path/of/config.yaml]
//	./smartparking places list [-c /path/of/config.yaml]
//	./smartparking places book <id> [-c /path/of/config.yaml]
//	./smartparking config show [-c /path/of/config.yaml]
//
// A .env file in the working directory is loaded before the config
// file, so SMARTPARKING_* variables may be kept there.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/mapview"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/routes"
	"github.com/momeni/smart-parking/pkg/adapter/scene"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "smartparking",
	Short: "Smart parking places booking server",
	Long: `Smart parking places booking server which keeps the parking
places of the parking lots, books at most one of them at a time, and
remembers where the user left the car.
An AR client reports its camera pose per rendered frame, so the booked
place and the car mark can be anchored in its scene, while the map
markers of the user, the car, and the places are kept up to date and
may be published on NATS.`,
	PersistentPreRunE: loadDotEnv,
	RunE:              startWebServer,
	SilenceUsage:      true,
}

// loadDotEnv loads the .env file, if it exists, and then resolves the
// config file path. Variables which are already set are not overridden.
func loadDotEnv(_ *cobra.Command, _ []string) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	fixConfigPath()
	return nil
}

func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Logging.Setup(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err = prepareStore(ctx, c, p); err != nil {
		return err
	}
	prefs, err := c.Preferences.NewStore()
	if err != nil {
		return fmt.Errorf("creating preference store: %w", err)
	}
	defer prefs.Close()

	var viewOpts []mapview.Option
	pub, err := c.Events.NewPublisher()
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	if pub != nil {
		defer pub.Close()
		viewOpts = append(viewOpts, mapview.WithPublisher(pub))
	}
	view := mapview.New(viewOpts...)
	sess := scene.New(scene.WithUserTracker(view))

	if !*c.Gin.Logger {
		gin.SetReleaseMode()
	}
	var e *gin.Engine = c.Gin.NewEngine()
	if _, err = routes.Register(ctx, e, p, c, prefs, sess, view); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	srv := &http.Server{Addr: c.Gin.Address, Handler: e}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", log.Stringer("version", c.Version()),
			slog.String("address", c.Gin.Address))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err = <-errCh:
		return fmt.Errorf("running HTTP server: %w", err)
	case <-ctx.Done():
	}
	log.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(
		context.Background(), c.Gin.ShutdownTimeout.Std(),
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	return nil
}

// prepareStore creates the tables (recreating them on a schema version
// change) and seeds the mock lot and places into an empty store.
func prepareStore(ctx context.Context, c *config.Config, p repo.Pool) error {
	places, err := c.NewPlacesUseCase(
		p, c.NewPlacesRepo(), c.NewLotsRepo(), c.NewSchemaRepo(),
	)
	if err != nil {
		return fmt.Errorf("creating places use case: %w", err)
	}
	recreated, err := places.CreateSchema(ctx)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if recreated {
		log.Warn(ctx, "tables are recreated for a new schema version")
	}
	n, err := places.SeedIfEmpty(ctx, model.MockParkingPlaces())
	if err != nil {
		return fmt.Errorf("seeding places: %w", err)
	}
	if n == 0 {
		return nil
	}
	err = places.InsertLot(ctx, model.MockParkingLot())
	if err != nil && !cerr.Is(err, cerr.KindConflict) {
		return fmt.Errorf("seeding lot: %w", err)
	}
	log.Info(ctx, "mock places are seeded", slog.Int("count", n))
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = "configs/sample-config.yaml"
	}
}
