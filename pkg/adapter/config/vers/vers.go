// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers contains the versions parsing which is performed before
// the actual configuration settings are decoded. Two versions are
// tracked here, namely the configuration file and the database schema.
// The idea is that versions should be known and verified before trying
// to decode the rest of the data, so an outdated configuration file
// is reported as such instead of failing with a confusing decoding
// error.
package vers

import (
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config contains the configuration file and database schema versions.
// It is embedded with the inline format in the config.Config struct.
type Config struct {
	Versions Versions `yaml:"versions" mapstructure:"versions"`
}

// Versions contains the configuration file and database schema versions
// which are used for detecting their relevant formats.
type Versions struct {
	Database model.SemVer `yaml:"database" mapstructure:"database"`
	Config   model.SemVer `yaml:"config" mapstructure:"config"`
}

// Marshalled is the YAML friendly representation of Config which keeps
// versions as dotted strings.
type Marshalled struct {
	Versions struct {
		Database string
		Config   string
	}
}

// Marshal converts `vc` to a Marshalled instance.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Database = vc.Versions.Database.Marshal()
	m.Versions.Config = vc.Versions.Config.Marshal()
	return m
}

// Load decodes the versions out of the YAML data, ignoring all other
// keys.
func Load(data []byte) (*Config, error) {
	vc := &Config{}
	if err := yaml.Unmarshal(data, vc); err != nil {
		return nil, err
	}
	return vc, nil
}

// Validate ensures that the configuration version has the given major
// version and its minor version is not newer than the given minor.
func (vc *Config) Validate(major, minor uint) error {
	v := vc.Versions.Config
	if v[0] != major {
		return fmt.Errorf("incompatible major version: %d", v[0])
	}
	if v[1] > minor {
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}

// Expect verifies that the configuration file and database schema
// versions are exactly equal to cv and dv respectively. A mismatch is
// reported as a cerr.MismatchingSemVerError.
func (vc *Config) Expect(cv, dv model.SemVer) error {
	if vc.Versions.Config != cv {
		return fmt.Errorf(
			"unexpected config version: %w",
			&cerr.MismatchingSemVerError{cv, vc.Versions.Config},
		)
	}
	if vc.Versions.Database != dv {
		return fmt.Errorf(
			"unexpected database schema version: %w",
			&cerr.MismatchingSemVerError{dv, vc.Versions.Database},
		)
	}
	return nil
}
