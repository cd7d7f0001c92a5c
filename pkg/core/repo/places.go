// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"errors"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// ErrConcurrentCreate reports that a Create call picked an ID which a
// concurrent Create had taken first. It is wrapped in a cerr.Conflict
// and the caller may repeat the whole request.
var ErrConcurrentCreate = errors.New("id was taken by a concurrent create")

type PlacesConnQueryer interface {
	PlacesQueryer
}

type PlacesTxQueryer interface {
	PlacesQueryer
}

// PlacesQueryer lists the ParkingPlace table operations. They can run
// with a connection or in a transaction alike.
type PlacesQueryer interface {
	// Insert adds p keeping its ID. An existing row with the same ID
	// causes a cerr.Conflict error.
	Insert(ctx context.Context, p model.ParkingPlace) error

	// Create adds p with a fresh ID (one more than the largest one)
	// and returns the stored place. Losing an ID race to another
	// Create causes a cerr.Conflict wrapping ErrConcurrentCreate.
	Create(ctx context.Context, p model.ParkingPlace) (*model.ParkingPlace, error)

	// Update overwrites all columns of the p.ID row. A missing row
	// causes a cerr.NotFound error.
	Update(ctx context.Context, p model.ParkingPlace) error

	// List returns all places in no specific order.
	List(ctx context.Context) ([]model.ParkingPlace, error)

	// Get returns the id place or a cerr.NotFound error.
	Get(ctx context.Context, id int64) (*model.ParkingPlace, error)

	// ListBooked returns the booked places.
	ListBooked(ctx context.Context) ([]model.ParkingPlace, error)

	// Count returns the number of stored places.
	Count(ctx context.Context) (int64, error)
}

type Places interface {
	Conn(Conn) PlacesConnQueryer
	Tx(Tx) PlacesTxQueryer
}
