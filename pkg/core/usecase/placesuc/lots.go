// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package placesuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// InsertLot stores l with its given ID.
func (places *UseCase) InsertLot(ctx context.Context, l model.ParkingLot) error {
	if err := validateLot(l); err != nil {
		return err
	}
	return places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return places.lotsrp.Conn(c).Insert(ctx, l)
	})
}

// CreateLot stores l with a fresh ID and returns the stored lot.
func (places *UseCase) CreateLot(ctx context.Context, l model.ParkingLot) (pl *model.ParkingLot, err error) {
	if err := validateLot(l); err != nil {
		return nil, err
	}
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			pl, err = places.lotsrp.Tx(tx).Create(ctx, l)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return pl, nil
}

// ListLots returns a snapshot of all lots in no specific order.
func (places *UseCase) ListLots(ctx context.Context) (lots []model.ParkingLot, err error) {
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		lots, err = places.lotsrp.Conn(c).List(ctx)
		return err
	})
	return
}

// GetLot returns the id lot or a cerr.NotFound error.
func (places *UseCase) GetLot(ctx context.Context, id int64) (pl *model.ParkingLot, err error) {
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pl, err = places.lotsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		pl = nil
	}
	return
}

func validateLot(l model.ParkingLot) error {
	if l.Name == "" {
		return cerr.BadRequest(errors.New("lot name is empty"))
	}
	if err := l.Validate(); err != nil {
		return cerr.BadRequest(fmt.Errorf("lot %q: %w", l.Name, err))
	}
	return nil
}
