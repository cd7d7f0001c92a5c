// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// InitDBUseCase drops all tables and creates them again.
type InitDBUseCase struct {
	settings Settings
}

// NewInitDB instantiates an InitDBUseCase for the database which is
// described by the ss settings.
func NewInitDB(ss Settings) *InitDBUseCase {
	return &InitDBUseCase{settings: ss}
}

// InitProd recreates empty tables.
func (iduc *InitDBUseCase) InitProd(ctx context.Context) error {
	return iduc.initDB(ctx, func(context.Context, repo.Tx) error {
		return nil
	})
}

// InitDev recreates the tables and fills them with the mock parking
// lot and its six parking places.
func (iduc *InitDBUseCase) InitDev(ctx context.Context) error {
	return iduc.initDB(ctx, func(ctx context.Context, tx repo.Tx) error {
		lot := model.MockParkingLot()
		err := iduc.settings.NewLotsRepo().Tx(tx).Insert(ctx, lot)
		if err != nil {
			return fmt.Errorf("inserting mock lot: %w", err)
		}
		q := iduc.settings.NewPlacesRepo().Tx(tx)
		for _, p := range model.MockParkingPlaces() {
			if err := q.Insert(ctx, p); err != nil {
				return fmt.Errorf("inserting mock place %d: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (iduc *InitDBUseCase) initDB(
	ctx context.Context,
	fill func(ctx context.Context, tx repo.Tx) error,
) error {
	ms, err := iduc.settings.Serialize()
	if err != nil {
		return fmt.Errorf("obtaining mutable settings: %w", err)
	}
	p, err := iduc.settings.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	v := iduc.settings.SchemaVersion()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := iduc.settings.NewSchemaRepo().Tx(tx)
			if err := q.DropTables(ctx); err != nil {
				return fmt.Errorf("dropping tables: %w", err)
			}
			if err := q.CreateTables(ctx, v); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			if err := fill(ctx, tx); err != nil {
				return err
			}
			if err := q.PersistSettings(ctx, ms); err != nil {
				return fmt.Errorf("saving mutable settings: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	log.Info(ctx, "database is initialized", log.Stringer("version", v))
	return nil
}
