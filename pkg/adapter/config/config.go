// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config contains the configuration settings of the smart
// parking server. Settings are read from a versioned YAML file and may
// be overridden by environment variables having the SMARTPARKING_
// prefix (e.g., SMARTPARKING_DATABASE_DSN overrides the database.dsn
// key). A loaded Config instance knows how to create the database
// connection pool, preference store, events publisher, and use case
// objects, so it implements the appuc.Builder and migrationuc.Settings
// interfaces.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/momeni/smart-parking/pkg/adapter/config/comment"
	"github.com/momeni/smart-parking/pkg/adapter/config/settings"
	"github.com/momeni/smart-parking/pkg/adapter/config/vers"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// These constants define the configuration file format version.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of the configuration file format.
var Version = model.SemVer{Major, Minor, Patch}

// EnvPrefix is prepended to the upper-cased configuration keys in order
// to find their overriding environment variables.
const EnvPrefix = "SMARTPARKING"

// Config contains all configuration settings.
type Config struct {
	Database    Database    `mapstructure:"database"`
	Gin         Gin         `mapstructure:"gin"`
	Logging     Logging     `mapstructure:"logging"`
	Preferences Preferences `mapstructure:"preferences"`
	Events      Events      `mapstructure:"events"`
	Usecases    Usecases    `mapstructure:"usecases"`

	Vers vers.Config `yaml:",inline" mapstructure:",squash"`

	// Comments keeps the comments of the configuration file, so they
	// can be preserved by MarshalYAML.
	Comments *comment.Comment `yaml:"-" mapstructure:"-"`
}

// envKeys lists all keys which may be overridden by an environment
// variable. Keys which are missing from the configuration file are
// known by viper only if they are listed here.
var envKeys = []string{
	"database.driver",
	"database.dsn",
	"database.log-level",
	"gin.address",
	"gin.logger",
	"gin.recovery",
	"gin.metrics",
	"gin.shutdown-timeout",
	"logging.level",
	"logging.format",
	"preferences.backend",
	"preferences.path",
	"preferences.valkey-address",
	"preferences.valkey-key",
	"events.nats-url",
	"events.reconnect-wait",
	"usecases.booking.retap-policy",
	"usecases.marks.altitude-offset",
	"usecases.marks.altitude-offset-minimum",
	"usecases.marks.altitude-offset-maximum",
}

// Load reads the configuration file from the given path, verifies its
// versions, and parses it with Parse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	v, err := vers.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if err = v.Expect(Version, gormdb.Version); err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes the YAML data, applies the environment variables,
// fills the defaults, and validates the result. Comments of the YAML
// data are kept in the returned Config.
func Parse(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %q env: %w", k, err)
		}
	}
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading yaml by viper: %w", err)
	}
	c := &Config{}
	if err := v.Unmarshal(c, settings.DecodeHook()); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	cmnts, err := comment.LoadFrom(n.Content[0])
	if err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}
	c.Comments = cmnts
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and fills
// the missing optional settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	c.Gin.Normalize()
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	if err := c.Preferences.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating preferences settings: %w", err)
	}
	c.Events.Normalize()
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	return nil
}

// Clone creates a deep copy of `c`, so it can be mutated without
// affecting the `c` instance.
func (c *Config) Clone() *Config {
	cc := &Config{
		Database:    c.Database,
		Logging:     c.Logging,
		Preferences: c.Preferences,
		Vers:        c.Vers,
		Comments:    c.Comments,
	}
	cc.Gin.Address = c.Gin.Address
	settings.OverwriteUnconditionally(&cc.Gin.Logger, c.Gin.Logger)
	settings.OverwriteUnconditionally(&cc.Gin.Recovery, c.Gin.Recovery)
	settings.OverwriteUnconditionally(&cc.Gin.Metrics, c.Gin.Metrics)
	settings.OverwriteUnconditionally(
		&cc.Gin.ShutdownTimeout, c.Gin.ShutdownTimeout,
	)
	cc.Events.NatsURL = c.Events.NatsURL
	settings.OverwriteUnconditionally(
		&cc.Events.ReconnectWait, c.Events.ReconnectWait,
	)
	cc.Usecases = c.Usecases.Clone()
	return cc
}

// SchemaVersion returns the database schema version.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// Version returns the configuration format version.
func (c *Config) Version() model.SemVer {
	return c.Vers.Versions.Config
}
