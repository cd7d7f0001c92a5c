// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package placesrp is the adapter for the parking places repository.
// It exposes the placesrp.Repo type which reifies repo.Places.
package placesrp

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

func (places *Repo) Conn(c repo.Conn) repo.PlacesConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, p model.ParkingPlace) error {
	return Insert(ctx, cq.Conn, p)
}

func (cq connQueryer) Create(ctx context.Context, p model.ParkingPlace) (*model.ParkingPlace, error) {
	return Create(ctx, cq.Conn, p)
}

func (cq connQueryer) Update(ctx context.Context, p model.ParkingPlace) error {
	return Update(ctx, cq.Conn, p)
}

func (cq connQueryer) List(ctx context.Context) ([]model.ParkingPlace, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Get(ctx context.Context, id int64) (*model.ParkingPlace, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) ListBooked(ctx context.Context) ([]model.ParkingPlace, error) {
	return ListBooked(ctx, cq.Conn)
}

func (cq connQueryer) Count(ctx context.Context) (int64, error) {
	return Count(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

func (places *Repo) Tx(tx repo.Tx) repo.PlacesTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, p model.ParkingPlace) error {
	return Insert(ctx, tq.Tx, p)
}

func (tq txQueryer) Create(ctx context.Context, p model.ParkingPlace) (*model.ParkingPlace, error) {
	return Create(ctx, tq.Tx, p)
}

func (tq txQueryer) Update(ctx context.Context, p model.ParkingPlace) error {
	return Update(ctx, tq.Tx, p)
}

func (tq txQueryer) List(ctx context.Context) ([]model.ParkingPlace, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Get(ctx context.Context, id int64) (*model.ParkingPlace, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) ListBooked(ctx context.Context) ([]model.ParkingPlace, error) {
	return ListBooked(ctx, tq.Tx)
}

func (tq txQueryer) Count(ctx context.Context) (int64, error) {
	return Count(ctx, tq.Tx)
}
