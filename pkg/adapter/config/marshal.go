// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/momeni/smart-parking/pkg/adapter/config/vers"
	"gopkg.in/yaml.v3"
)

// Marshalled is the YAML friendly representation of Config. Durations
// and versions are kept as human-readable strings and unset optional
// settings are omitted.
type Marshalled struct {
	Database Database
	Gin      struct {
		Address         string
		Logger          *bool
		Recovery        *bool
		Metrics         *bool
		ShutdownTimeout *string `yaml:"shutdown-timeout,omitempty"`
	}
	Logging     Logging
	Preferences Preferences
	Events      struct {
		NatsURL       string  `yaml:"nats-url,omitempty"`
		ReconnectWait *string `yaml:"reconnect-wait,omitempty"`
	}
	Usecases struct {
		Booking Booking
		Marks   struct {
			AltitudeOffset    *float64 `yaml:"altitude-offset,omitempty"`
			MinAltitudeOffset *float64 `yaml:"altitude-offset-minimum,omitempty"`
			MaxAltitudeOffset *float64 `yaml:"altitude-offset-maximum,omitempty"`
		}
	}
	Vers *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML implements the yaml.Marshaler interface. The comments
// which were loaded from the configuration file are preserved.
func (c *Config) MarshalYAML() (interface{}, error) {
	m := c.Marshal()
	n := &yaml.Node{}
	if err := n.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding *Marshalled as YAML: %w", err)
	}
	if err := c.Comments.SaveInto(n); err != nil {
		return nil, fmt.Errorf("saving YAML nodes comments: %w", err)
	}
	return n, nil
}

// Marshal converts `c` to a Marshalled instance.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Database = c.Database
	m.Gin.Address = c.Gin.Address
	m.Gin.Logger = c.Gin.Logger
	m.Gin.Recovery = c.Gin.Recovery
	m.Gin.Metrics = c.Gin.Metrics
	m.Gin.ShutdownTimeout = c.Gin.ShutdownTimeout.Marshal()
	m.Logging = c.Logging
	m.Preferences = c.Preferences
	m.Events.NatsURL = c.Events.NatsURL
	m.Events.ReconnectWait = c.Events.ReconnectWait.Marshal()
	m.Usecases.Booking = c.Usecases.Booking
	m.Usecases.Marks.AltitudeOffset = c.Usecases.Marks.AltitudeOffset
	m.Usecases.Marks.MinAltitudeOffset = c.Usecases.Marks.MinAltitudeOffset
	m.Usecases.Marks.MaxAltitudeOffset = c.Usecases.Marks.MaxAltitudeOffset
	m.Vers = c.Vers.Marshal()
	return m
}
