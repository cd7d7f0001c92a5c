// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemarp provides a reification of the repo.Schema interface
// making it possible to create or drop the parking tables and to keep
// track of their schema version. It also stores the serialized mutable
// settings in the Settings table for the settingsrp package.
package schemarp

import (
	"context"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// Repo represents a schema management repository.
type Repo struct {
}

// New instantiates a schema management Repo struct. Although this New
// function does not perform complex operations, and users may use
// a &schemarp.Repo{} directly too, but schemarp.New() makes the
// package to look alike a data type.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*gormdb.Conn
}

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *gormdb.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (schema *Repo) Conn(c repo.Conn) repo.SchemaConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Version(ctx context.Context) (model.SemVer, bool, error) {
	return Version(ctx, cq.Conn)
}

func (cq connQueryer) CreateTables(ctx context.Context, v model.SemVer) error {
	return CreateTables(ctx, cq.Conn, v)
}

func (cq connQueryer) DropTables(ctx context.Context) error {
	return DropTables(ctx, cq.Conn)
}

type txQueryer struct {
	*gormdb.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *gormdb.Tx as created by this adapter layer. Otherwise, it will
// panic. MySQL commits DDL statements implicitly, so only SQLite and
// PostgreSQL can roll back a failed CreateTables or DropTables.
func (schema *Repo) Tx(tx repo.Tx) repo.SchemaTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Version(ctx context.Context) (model.SemVer, bool, error) {
	return Version(ctx, tq.Tx)
}

func (tq txQueryer) CreateTables(ctx context.Context, v model.SemVer) error {
	return CreateTables(ctx, tq.Tx, v)
}

func (tq txQueryer) DropTables(ctx context.Context) error {
	return DropTables(ctx, tq.Tx)
}

// PersistSettings stores the serialized mutable settings in the
// Settings table as part of this transaction.
func (tq txQueryer) PersistSettings(ctx context.Context, b []byte) error {
	return PersistSettings(ctx, tq.Tx, b)
}
