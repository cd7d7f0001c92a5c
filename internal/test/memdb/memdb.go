// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memdb creates throw-away SQLite connection pools for tests.
// Each pool uses its own file in a temporary directory which is
// removed when the test finishes.
package memdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// NewPool opens an empty SQLite database pool for t.
func NewPool(ctx context.Context, t *testing.T) *gormdb.Pool {
	t.Helper()
	path := filepath.Join(t.TempDir(), gormdb.DefaultSQLiteFile)
	p, err := gormdb.NewPool(ctx, gormdb.DriverSQLite, path, logger.Silent)
	require.NoError(t, err, "opening sqlite pool at %q", path)
	t.Cleanup(func() {
		_ = p.Close()
	})
	return p
}

// NewPlaces opens an SQLite pool, creates its tables, and returns
// the pool alongside a places use case which is using it.
func NewPlaces(ctx context.Context, t *testing.T) (*gormdb.Pool, *placesuc.UseCase) {
	t.Helper()
	p := NewPool(ctx, t)
	uc := placesuc.New(
		p, placesrp.New(), lotsrp.New(), schemarp.New(), gormdb.Version,
	)
	_, err := uc.CreateSchema(ctx)
	require.NoError(t, err, "creating schema")
	return p, uc
}
