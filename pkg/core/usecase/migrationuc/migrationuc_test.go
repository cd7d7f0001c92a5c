// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/smart-parking/internal/test/dbcontainer"
	"github.com/momeni/smart-parking/internal/test/schema"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/migrationuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

type testSettings struct {
	driver, dsn string
}

func (ts testSettings) ConnectionPool(ctx context.Context) (repo.Pool, error) {
	return gormdb.NewPool(ctx, ts.driver, ts.dsn, logger.Silent)
}

func (ts testSettings) SchemaVersion() model.SemVer {
	return gormdb.Version
}

func (ts testSettings) NewSchemaRepo() repo.Schema {
	return schemarp.New()
}

func (ts testSettings) NewPlacesRepo() repo.Places {
	return placesrp.New()
}

func (ts testSettings) NewLotsRepo() repo.Lots {
	return lotsrp.New()
}

func (ts testSettings) Serialize() ([]byte, error) {
	return []byte(`{"version":"1.0.0"}`), nil
}

func TestInitDBOnSQLite(t *testing.T) {
	ctx := context.Background()
	ts := testSettings{
		driver: gormdb.DriverSQLite,
		dsn:    filepath.Join(t.TempDir(), gormdb.DefaultSQLiteFile),
	}
	verifyInitDB(ctx, t, ts)
}

func TestInitDBOnPostgres(t *testing.T) {
	ctx := context.Background()
	ts := testSettings{
		driver: gormdb.DriverPostgres,
		dsn:    dbcontainer.PostgresDSN(ctx, t, 60*time.Second),
	}
	verifyInitDB(ctx, t, ts)
}

func verifyInitDB(ctx context.Context, t *testing.T, ts testSettings) {
	iduc := migrationuc.NewInitDB(ts)
	t.Run("dev", func(t *testing.T) {
		r := require.New(t)
		r.NoError(iduc.InitDev(ctx), "initializing dev database")
		withConn(ctx, t, ts, func(ctx context.Context, c repo.Conn) {
			v := schema.NewVerifier(c)
			v.VerifySchema(ctx, t)
			v.VerifyDevData(ctx, t)
			sv, ok, err := schemarp.New().Conn(c).Version(ctx)
			r.NoError(err)
			r.True(ok)
			assert.Equal(t, gormdb.Version, sv)
		})
		// dev initialization drops the previous rows first
		r.NoError(iduc.InitDev(ctx), "initializing dev database again")
	})
	t.Run("prod", func(t *testing.T) {
		require.NoError(t, iduc.InitProd(ctx), "initializing prod database")
		withConn(ctx, t, ts, func(ctx context.Context, c repo.Conn) {
			v := schema.NewVerifier(c)
			v.VerifySchema(ctx, t)
			v.VerifyProdData(ctx, t)
		})
	})
}

func withConn(
	ctx context.Context,
	t *testing.T,
	ts testSettings,
	f func(ctx context.Context, c repo.Conn),
) {
	p, err := ts.ConnectionPool(ctx)
	require.NoError(t, err)
	defer p.Close()
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		f(ctx, c)
		return nil
	})
	require.NoError(t, err)
}
