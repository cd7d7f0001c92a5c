// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
)

// managedUseCases holds the use case objects which are created by a
// Builder and published together by updateAll.
type managedUseCases struct {
	placesUseCase  *placesuc.UseCase
	bookingUseCase *bookinguc.UseCase
	marksUseCase   *marksuc.UseCase
}

// Settings returns a copy of visible settings which are currently in
// effect, in addition to the minimum and maximum boundary settings.
// The effective settings and use case objects which are built
// based on them (and other invisible settings) may be updated
// atomically, while they are exposed by a series of getter methods. At
// least one of Reload or UpdateSettings methods must be called before
// this (and other use case objects getter methods) may be called.
func (app *UseCase) Settings() (vs model.VisibleSettings, minb, maxb model.Settings) {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return *app.settings, *app.minBounds, *app.maxBounds
}

// updateAll atomically updates the visible settings and all other use
// case objects which are built based on these (visible and invisible)
// settings. This method minimizes the scope which needs to take a
// writing lock (after instantiating all relevant use case objects).
func (app *UseCase) updateAll(
	vs *model.VisibleSettings,
	minb, maxb *model.Settings,
	managed managedUseCases,
) {
	app.rwlock.Lock()
	defer app.rwlock.Unlock()
	app.settings = vs
	app.minBounds = minb
	app.maxBounds = maxb
	app.placesUseCase = managed.placesUseCase
	app.bookingUseCase = managed.bookingUseCase
	app.marksUseCase = managed.marksUseCase
}

// PlacesUseCase returns the currently effective parking places use
// case object.
func (app *UseCase) PlacesUseCase() *placesuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.placesUseCase
}

// BookingUseCase returns the currently effective booking coordinator.
// A coordinator which is replaced by a settings update forwards its
// calls to the new one, so callers may keep it for one request.
func (app *UseCase) BookingUseCase() *bookinguc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.bookingUseCase
}

// MarksUseCase returns the currently effective car mark use case.
func (app *UseCase) MarksUseCase() *marksuc.UseCase {
	app.rwlock.RLock()
	defer app.rwlock.RUnlock()
	return app.marksUseCase
}
