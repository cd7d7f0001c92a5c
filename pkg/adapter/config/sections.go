// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/momeni/smart-parking/pkg/adapter/config/settings"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/events/natsev"
	"github.com/momeni/smart-parking/pkg/adapter/metrics"
	"github.com/momeni/smart-parking/pkg/adapter/prefs/fileprefs"
	"github.com/momeni/smart-parking/pkg/adapter/prefs/valkeyprefs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// Database contains the database connection settings.
type Database struct {
	// Driver is one of sqlite (default), postgres, or mysql.
	Driver string `yaml:"driver" mapstructure:"driver"`

	// DSN is the driver specific data source name. For the sqlite
	// driver, it is the database file path and defaults to
	// gormdb.DefaultSQLiteFile.
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// LogLevel is the gorm logger level, namely silent, error, warn
	// (default), or info.
	LogLevel string `yaml:"log-level" mapstructure:"log-level"`
}

// ValidateAndNormalize fills the default driver and data source name
// and ensures that the driver and log level are supported.
func (d *Database) ValidateAndNormalize() error {
	d.Driver = strings.ToLower(d.Driver)
	if d.Driver == "" {
		d.Driver = gormdb.DriverSQLite
	}
	if d.Driver == gormdb.DriverSQLite && d.DSN == "" {
		d.DSN = gormdb.DefaultSQLiteFile
	}
	if _, err := gormdb.Dialector(d.Driver, d.DSN); err != nil {
		return err
	}
	if d.DSN == "" {
		return fmt.Errorf("%s driver requires a dsn", d.Driver)
	}
	if d.LogLevel == "" {
		d.LogLevel = "warn"
	}
	_, err := gormdb.ParseLogLevel(d.LogLevel)
	return err
}

// ConnectionPool creates a new database connection pool.
func (d Database) ConnectionPool(ctx context.Context) (*gormdb.Pool, error) {
	lvl, err := gormdb.ParseLogLevel(d.LogLevel)
	if err != nil {
		return nil, err
	}
	return gormdb.NewPool(ctx, d.Driver, d.DSN, lvl)
}

// Gin contains the gin-gonic related configuration settings.
// Boolean fields are defined as pointers, so it is possible to detect
// if they are or are not initialized.
type Gin struct {
	Address  string `yaml:"address" mapstructure:"address"` // listening address
	Logger   *bool  `mapstructure:"logger"`                 // Whether to register the gin.Logger() middleware
	Recovery *bool  `mapstructure:"recovery"`               // Whether to register the gin.Recovery() middleware
	Metrics  *bool  `mapstructure:"metrics"`                // Whether to expose GET /metrics

	ShutdownTimeout *settings.Duration `yaml:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// DefaultAddress is the default listening address of the server.
const DefaultAddress = ":8080"

// Normalize fills the missing settings with their defaults.
func (g *Gin) Normalize() {
	if g.Address == "" {
		g.Address = DefaultAddress
	}
	settings.Nil2Zero(&g.Logger)
	settings.Nil2Zero(&g.Recovery)
	settings.Nil2Zero(&g.Metrics)
	settings.Default(&g.ShutdownTimeout, settings.Duration(5*time.Second))
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if *g.Metrics {
		middlewares = append(middlewares, metrics.Middleware())
	}
	e := gin.New(middlewares...)
	if *g.Metrics {
		e.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	return e
}

// Logging contains the structured logging settings.
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, or error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// ValidateAndNormalize fills the default level and format and ensures
// that they are supported.
func (l *Logging) ValidateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	if _, err := log.ParseLevel(l.Level); err != nil {
		return err
	}
	switch l.Format = strings.ToLower(l.Format); l.Format {
	case "":
		l.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", l.Format)
	}
	return nil
}

// Setup configures the default slog logger to write into w.
func (l Logging) Setup(w io.Writer) error {
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	return log.Setup(w, lvl, l.Format)
}

// Supported preference store backends.
const (
	PrefsBackendFile   = "file"
	PrefsBackendValkey = "valkey"
)

// Preferences contains the preference store settings. The store keeps
// the car mark between restarts.
type Preferences struct {
	Backend       string `yaml:"backend" mapstructure:"backend"`
	Path          string `yaml:"path,omitempty" mapstructure:"path"`
	ValkeyAddress string `yaml:"valkey-address,omitempty" mapstructure:"valkey-address"`
	ValkeyKey     string `yaml:"valkey-key,omitempty" mapstructure:"valkey-key"`
}

// DefaultPrefsPath is the default file of the file backend.
const DefaultPrefsPath = "SmartParking.prefs.json"

// ValidateAndNormalize fills the default backend and its settings.
func (p *Preferences) ValidateAndNormalize() error {
	switch p.Backend = strings.ToLower(p.Backend); p.Backend {
	case "", PrefsBackendFile:
		p.Backend = PrefsBackendFile
		if p.Path == "" {
			p.Path = DefaultPrefsPath
		}
	case PrefsBackendValkey:
		if p.ValkeyAddress == "" {
			return errors.New("valkey backend requires valkey-address")
		}
		if p.ValkeyKey == "" {
			p.ValkeyKey = valkeyprefs.DefaultKey
		}
	default:
		return fmt.Errorf("unknown preferences backend %q", p.Backend)
	}
	return nil
}

// PreferenceStore is a repo.Preferences which must be closed after use.
type PreferenceStore interface {
	repo.Preferences
	io.Closer
}

// NewStore creates the configured preference store.
func (p Preferences) NewStore() (PreferenceStore, error) {
	switch p.Backend {
	case PrefsBackendValkey:
		s, err := valkeyprefs.New(p.ValkeyAddress, p.ValkeyKey)
		if err != nil {
			return nil, fmt.Errorf("connecting to valkey: %w", err)
		}
		return s, nil
	default:
		return fileprefs.New(p.Path), nil
	}
}

// Events contains the marker events publishing settings. Events are
// published only if NatsURL is not empty.
type Events struct {
	NatsURL       string             `yaml:"nats-url,omitempty" mapstructure:"nats-url"`
	ReconnectWait *settings.Duration `yaml:"reconnect-wait" mapstructure:"reconnect-wait"`
}

// Normalize fills the missing settings with their defaults.
func (e *Events) Normalize() {
	settings.Default(&e.ReconnectWait, settings.Duration(2*time.Second))
}

// NewPublisher connects to the NATS server. It returns nil if events
// publishing is disabled.
func (e Events) NewPublisher() (*natsev.Publisher, error) {
	if e.NatsURL == "" {
		return nil, nil
	}
	return natsev.Connect(e.NatsURL, e.ReconnectWait.Std())
}
