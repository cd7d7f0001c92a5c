// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a PostgreSQL container for the
// integration tests. Tests are skipped when no container engine is
// configured by the DOCKER_HOST environment variable.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// pgStartingUp is the SQLSTATE of "the database system is starting up".
const pgStartingUp = "57P03"

// PostgresDSN starts a PostgreSQL 16 container and waits at most
// timeout until it accepts connections. The container is shut down by
// a t.Cleanup function. The returned DSN may be passed to
// gormdb.NewPool with the postgres driver.
func PostgresDSN(ctx context.Context, t *testing.T, timeout time.Duration) string {
	t.Helper()
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("DOCKER_HOST is not set; skipping PostgreSQL tests")
	}
	startCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(startCtx, "16")
	require.NoError(t, err, "starting the postgres container")
	t.Cleanup(func() {
		if err := pg.Shutdown(ctx); err != nil {
			t.Errorf("shutting down the postgres container: %v", err)
		}
	})
	dsn := pg.ConnectionString()
	for {
		pool, err := gormdb.NewPool(
			startCtx, gormdb.DriverPostgres, dsn, logger.Silent,
		)
		if err == nil {
			require.NoError(t, pool.Close())
			return dsn
		}
		require.NoError(t, startCtx.Err(), "postgres is not ready: %v", err)
		var pgErr *pgconn.PgError
		var netErr net.Error
		switch {
		case errors.As(err, &pgErr) && pgErr.SQLState() == pgStartingUp:
		case errors.As(err, &netErr):
		default:
			require.NoError(t, err, "connecting to postgres")
		}
		time.Sleep(100 * time.Millisecond)
	}
}
