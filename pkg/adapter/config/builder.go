// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"fmt"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/migrationuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
)

var (
	_ appuc.Builder        = (*Config)(nil)
	_ migrationuc.Settings = (*Config)(nil)
)

// ConnectionPool creates a new database connection pool based on the
// database settings.
func (c *Config) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	p, err := c.Database.ConnectionPool(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"%s.ConnectionPool: %w", c.Database.Driver, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a new schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return schemarp.New()
}

// NewPlacesRepo instantiates a new parking places repository.
func (c *Config) NewPlacesRepo() repo.Places {
	return placesrp.New()
}

// NewLotsRepo instantiates a new parking lots repository.
func (c *Config) NewLotsRepo() repo.Lots {
	return lotsrp.New()
}

// NewAppUseCase creates a new application use case.
func (c *Config) NewAppUseCase(
	p repo.Pool,
	s appuc.SettingsRepo,
	places repo.Places,
	lots repo.Lots,
	schema repo.Schema,
	prefs repo.Preferences,
	opts ...appuc.Option,
) (*appuc.UseCase, error) {
	return appuc.New(p, s, places, lots, schema, prefs, opts...)
}

// NewPlacesUseCase creates a new parking places use case which expects
// the configured schema version.
func (c *Config) NewPlacesUseCase(
	p repo.Pool, places repo.Places, lots repo.Lots, schema repo.Schema,
) (*placesuc.UseCase, error) {
	return placesuc.New(p, places, lots, schema, c.SchemaVersion()), nil
}

// NewBookingUseCase creates a new booking coordinator.
func (c *Config) NewBookingUseCase(
	p repo.Pool, places repo.Places, opts ...bookinguc.Option,
) (*bookinguc.UseCase, error) {
	return c.Usecases.Booking.NewUseCase(p, places, opts...)
}

// NewMarksUseCase creates a new car mark use case.
func (c *Config) NewMarksUseCase(
	prefs repo.Preferences, opts ...marksuc.Option,
) (*marksuc.UseCase, error) {
	return c.Usecases.Marks.NewUseCase(prefs, opts...)
}
