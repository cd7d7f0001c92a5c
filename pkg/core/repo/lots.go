// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
)

type LotsConnQueryer interface {
	LotsQueryer
}

type LotsTxQueryer interface {
	LotsQueryer
}

// LotsQueryer lists the Parking table operations.
type LotsQueryer interface {
	Insert(ctx context.Context, l model.ParkingLot) error
	// Create behaves like PlacesQueryer.Create for lots.
	Create(ctx context.Context, l model.ParkingLot) (*model.ParkingLot, error)
	List(ctx context.Context) ([]model.ParkingLot, error)
	Get(ctx context.Context, id int64) (*model.ParkingLot, error)
}

type Lots interface {
	Conn(Conn) LotsConnQueryer
	Tx(Tx) LotsTxQueryer
}
