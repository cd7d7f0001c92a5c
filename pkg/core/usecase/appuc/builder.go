// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
)

// Builder interface represents the expectations from the application
// use case builders. All use cases which can be instantiated by a
// configuration struct have one NewX method here which takes database
// connection pool and their repository packages dependencies. The
// configuration struct must implement this interface, take repository
// packages and create use case objects based on its contained settings.
// When new settings are loaded from a database, they may override some
// of the configuration settings, hence, produce a new Builder instance.
type Builder interface {
	// NewAppUseCase creates a new application use case. This use case
	// needs a SettingsRepo in order to fetch or update mutable settings
	// from the database. It also needs to take all repository instances
	// which may be required by other use cases because it needs to
	// pass them to the Builder instance again after reloading or
	// updating settings.
	//
	// Other use case objects (e.g., bookinguc.UseCase) are replaced
	// as opaque objects when settings change. This replacement strategy
	// requires the resources packages to ask this application UseCase
	// for the actual use case objects, right before using them.
	NewAppUseCase(
		p repo.Pool,
		s SettingsRepo,
		places repo.Places,
		lots repo.Lots,
		schema repo.Schema,
		prefs repo.Preferences,
		opts ...Option,
	) (*UseCase, error)

	// NewPlacesUseCase creates a new placesuc UseCase object having the
	// provided database connection pool and repositories.
	NewPlacesUseCase(
		p repo.Pool, places repo.Places, lots repo.Lots, schema repo.Schema,
	) (*placesuc.UseCase, error)

	// NewBookingUseCase creates a new bookinguc UseCase object. The
	// opts carry the scene and markers collaborators, while the
	// settings dependent options are added by the builder.
	NewBookingUseCase(
		p repo.Pool, places repo.Places, opts ...bookinguc.Option,
	) (*bookinguc.UseCase, error)

	// NewMarksUseCase creates a new marksuc UseCase object which keeps
	// the car mark in the prefs store.
	NewMarksUseCase(
		prefs repo.Preferences, opts ...marksuc.Option,
	) (*marksuc.UseCase, error)
}
