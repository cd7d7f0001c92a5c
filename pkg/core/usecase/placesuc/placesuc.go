// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package placesuc contains the parking places UseCase which is the
// sole owner of the persisted parking places and lots. It creates the
// schema, seeds it, and provides the CRUD operations which are needed
// by the booking coordinator and the REST resources.
package placesuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// UseCase represents the parking places use case. It holds a database
// connection pool and the places, lots, and schema repositories.
type UseCase struct {
	pool     repo.Pool
	placesrp repo.Places
	lotsrp   repo.Lots
	schemarp repo.Schema

	version model.SemVer // expected schema version
}

// New instantiates a parking places use case. The v argument is the
// schema version which is supported by the given repositories.
func New(
	p repo.Pool,
	places repo.Places,
	lots repo.Lots,
	schema repo.Schema,
	v model.SemVer,
) *UseCase {
	return &UseCase{
		pool:     p,
		placesrp: places,
		lotsrp:   lots,
		schemarp: schema,
		version:  v,
	}
}

// CreateSchema creates the missing tables. If the recorded schema
// version differs from the supported one, all tables are dropped and
// created again, losing their rows. The recreated result reports if
// such a drop was performed.
func (places *UseCase) CreateSchema(ctx context.Context) (recreated bool, err error) {
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := places.schemarp.Tx(tx)
			v, ok, err := q.Version(ctx)
			if err != nil {
				return err
			}
			if ok && v != places.version {
				log.Warn(
					ctx, "dropping tables with mismatching version",
					log.Stringer("found", v),
					log.Stringer("expected", places.version),
				)
				if err = q.DropTables(ctx); err != nil {
					return err
				}
				recreated = true
			}
			return q.CreateTables(ctx, places.version)
		})
	})
	if err != nil {
		return false, fmt.Errorf("creating schema: %w", err)
	}
	return recreated, nil
}

// DropSchema drops all tables.
func (places *UseCase) DropSchema(ctx context.Context) error {
	return places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return places.schemarp.Conn(c).DropTables(ctx)
	})
}

// ErrBookedOnCreate is wrapped by the cerr.BadRequest error of Insert
// and Create for a booked place. Only the booking use case books
// places, so it can keep at most one of them booked.
var ErrBookedOnCreate = errors.New("a new place may not be booked")

// Insert stores p with its given ID. A cerr.Conflict error is
// returned if a place with the same ID exists.
func (places *UseCase) Insert(ctx context.Context, p model.ParkingPlace) error {
	if err := validateNew(p); err != nil {
		return err
	}
	return places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return places.placesrp.Conn(c).Insert(ctx, p)
	})
}

// Create stores p with a fresh ID, ignoring p.ID, and returns the
// stored place.
func (places *UseCase) Create(ctx context.Context, p model.ParkingPlace) (pp *model.ParkingPlace, err error) {
	if err := validateNew(p); err != nil {
		return nil, err
	}
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			pp, err = places.placesrp.Tx(tx).Create(ctx, p)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return pp, nil
}

// Update overwrites every field of the p.ID place. A cerr.NotFound
// error is returned if no such place exists.
func (places *UseCase) Update(ctx context.Context, p model.ParkingPlace) error {
	if err := p.Validate(); err != nil {
		return cerr.BadRequest(fmt.Errorf("place %d: %w", p.ID, err))
	}
	return places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return places.placesrp.Conn(c).Update(ctx, p)
	})
}

// List returns a snapshot of all places in no specific order.
func (places *UseCase) List(ctx context.Context) (pps []model.ParkingPlace, err error) {
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pps, err = places.placesrp.Conn(c).List(ctx)
		return err
	})
	return
}

// Get returns the id place or a cerr.NotFound error.
func (places *UseCase) Get(ctx context.Context, id int64) (pp *model.ParkingPlace, err error) {
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		pp, err = places.placesrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		pp = nil
	}
	return
}

// SeedIfEmpty inserts all seed places if there is no place yet.
// Either all of them are inserted or none. The number of inserted
// places is returned.
func (places *UseCase) SeedIfEmpty(ctx context.Context, seed []model.ParkingPlace) (n int, err error) {
	for _, p := range seed {
		if err := p.Validate(); err != nil {
			return 0, cerr.BadRequest(fmt.Errorf("seed place %d: %w", p.ID, err))
		}
	}
	err = places.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := places.placesrp.Tx(tx)
			count, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
			for _, p := range seed {
				if err := q.Insert(ctx, p); err != nil {
					return err
				}
			}
			n = len(seed)
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("seeding places: %w", err)
	}
	return n, nil
}

func validateNew(p model.ParkingPlace) error {
	if err := p.Validate(); err != nil {
		return cerr.BadRequest(fmt.Errorf("place %d: %w", p.ID, err))
	}
	if p.Booked {
		return cerr.BadRequest(fmt.Errorf("place %d: %w", p.ID, ErrBookedOnCreate))
	}
	return nil
}
