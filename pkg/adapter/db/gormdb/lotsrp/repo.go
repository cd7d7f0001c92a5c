// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsrp is the adapter for the parking lots repository.
package lotsrp

import (
	"context"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

func (lots *Repo) Conn(c repo.Conn) repo.LotsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, l model.ParkingLot) error {
	return Insert(ctx, cq.Conn, l)
}

func (cq connQueryer) Create(ctx context.Context, l model.ParkingLot) (*model.ParkingLot, error) {
	return Create(ctx, cq.Conn, l)
}

func (cq connQueryer) List(ctx context.Context) ([]model.ParkingLot, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.ParkingLot, error) {
	return Get(ctx, cq.Conn, id)
}

type txQueryer struct {
	*gormdb.Tx
}

func (lots *Repo) Tx(tx repo.Tx) repo.LotsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, l model.ParkingLot) error {
	return Insert(ctx, tq.Tx, l)
}

func (tq txQueryer) Create(ctx context.Context, l model.ParkingLot) (*model.ParkingLot, error) {
	return Create(ctx, tq.Tx, l)
}

func (tq txQueryer) List(ctx context.Context) ([]model.ParkingLot, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.ParkingLot, error) {
	return Get(ctx, tq.Tx, id)
}
