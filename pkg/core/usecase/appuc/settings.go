// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
)

// UpdateSettings stores s and rebuilds the places, booking, and car
// mark use cases from it. The new use cases are built before the
// settings transaction commits, so a failing build leaves the stored
// settings unchanged. After the commit the current booking moves from
// the old coordinator to the new one and the switch becomes visible to
// the other goroutines at once.
//
// Only one UpdateSettings or Reload runs at a time (app.mutex), while
// readers keep using the previous use cases until updateAll swaps them
// under app.rwlock. The returned structs are shared and must not be
// modified by the caller.
func (app *UseCase) UpdateSettings(
	ctx context.Context, s *model.Settings,
) (vs *model.VisibleSettings, minb, maxb *model.Settings, err error) {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	var managed managedUseCases
	update := func(ctx context.Context, tx repo.Tx) error {
		b, v, mn, mx, err := app.settingsRepo.Tx(tx).Update(ctx, s)
		if err != nil {
			return fmt.Errorf("storing settings: %w", err)
		}
		if managed, err = app.newManagedUseCases(b); err != nil {
			return fmt.Errorf("creating use cases: %w", err)
		}
		vs, minb, maxb = v, mn, mx
		return nil
	}
	err = app.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, update)
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("updating settings: %w", err)
	}
	if err = app.adopt(ctx, managed); err != nil {
		return nil, nil, nil, err
	}
	app.updateAll(vs, minb, maxb, managed)
	log.Info(ctx, "settings are updated", log.Valuer("settings", vs))
	return vs, minb, maxb, nil
}

// Reload rebuilds the use cases from the stored settings overlaid on
// the configuration file. On the first Reload, the booked place and
// the car mark are restored from their stores.
func (app *UseCase) Reload(ctx context.Context) error {
	app.mutex.Lock()
	defer app.mutex.Unlock()
	var (
		b          Builder
		vs         *model.VisibleSettings
		minb, maxb *model.Settings
		err        error
	)
	err = app.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		b, vs, minb, maxb, err = app.settingsRepo.Conn(c).Fetch(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("fetching settings: %w", err)
	}
	managed, err := app.newManagedUseCases(b)
	if err != nil {
		return fmt.Errorf("creating use cases: %w", err)
	}
	if err = app.adopt(ctx, managed); err != nil {
		return err
	}
	app.updateAll(vs, minb, maxb, managed)
	return nil
}

// newManagedUseCases builds the use cases from b, wiring the scene and
// map view ports when they were configured. Nothing is published here;
// see adopt and updateAll.
func (app *UseCase) newManagedUseCases(
	b Builder,
) (managedUseCases, error) {
	var nilm managedUseCases
	placesUseCase, err := b.NewPlacesUseCase(
		app.pool, app.placesRepo, app.lotsRepo, app.schemaRepo,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating places use case: %w", err)
	}
	var bopts []bookinguc.Option
	var mopts []marksuc.Option
	if app.scene != nil {
		bopts = append(bopts, bookinguc.WithScene(app.scene))
		mopts = append(mopts, marksuc.WithScene(app.scene))
	}
	if app.markers != nil {
		bopts = append(bopts, bookinguc.WithMarkers(app.markers))
		mopts = append(mopts, marksuc.WithCarMarker(app.markers))
	}
	bookingUseCase, err := b.NewBookingUseCase(
		app.pool, app.placesRepo, bopts...,
	)
	if err != nil {
		return nilm, fmt.Errorf("creating booking use case: %w", err)
	}
	marksUseCase, err := b.NewMarksUseCase(app.prefs, mopts...)
	if err != nil {
		return nilm, fmt.Errorf("creating marks use case: %w", err)
	}
	return managedUseCases{
		placesUseCase:  placesUseCase,
		bookingUseCase: bookingUseCase,
		marksUseCase:   marksUseCase,
	}, nil
}

// adopt moves the runtime state into the managed use cases. The first
// time, the booking and car mark are restored from their stores.
// Afterwards, the previous coordinator hands its booking over.
func (app *UseCase) adopt(ctx context.Context, managed managedUseCases) error {
	prev := app.BookingUseCase()
	if prev != nil {
		prev.Handover(managed.bookingUseCase)
	} else {
		_, err := managed.bookingUseCase.Restore(ctx)
		if err != nil && !errors.Is(err, bookinguc.ErrNothingToRestore) {
			return fmt.Errorf("restoring booking: %w", err)
		}
	}
	if _, _, err := managed.marksUseCase.LoadMark(ctx); err != nil {
		log.Warn(ctx, "car mark is not restored", log.Err("err", err))
	}
	return nil
}
