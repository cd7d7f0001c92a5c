// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/momeni/smart-parking/pkg/core/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool wraps a *gorm.DB which holds the actual database/sql pool.
type Pool struct {
	*gorm.DB

	driver string
}

// NewPool opens a connection pool for the given driver and dsn and
// tests it by acquiring one connection. SQL statements are logged
// through the default slog logger with the logLevel verbosity.
func NewPool(
	ctx context.Context, driver, dsn string, logLevel logger.LogLevel,
) (*Pool, error) {
	d, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	gdb, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logLevel,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
				// Set to false in order to log with replaced vars
				ParameterizedQueries: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}
	if driver == DriverSQLite || driver == "" {
		driver = DriverSQLite
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("gdb.DB: %w", err)
		}
		// SQLite allows one writer, so concurrent use cases queue up
		// for the sole connection instead of failing with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}
	pool := &Pool{DB: gdb, driver: driver}
	err = pool.Conn(ctx, NoOpConnHandler)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("testing connection: %w", err)
	}
	return pool, nil
}

type ConnHandler = repo.ConnHandler

func NoOpConnHandler(context.Context, repo.Conn) error {
	return nil
}

// Conn acquires a dedicated connection from the pool and passes it to
// f. The connection returns to the pool when f returns.
func (p *Pool) Conn(ctx context.Context, f ConnHandler) error {
	return p.DB.WithContext(ctx).Connection(func(c *gorm.DB) error {
		cc := &Conn{DB: c}
		return f(ctx, cc)
	})
}

// Driver returns the normalized driver name of this pool.
func (p *Pool) Driver() string {
	return p.driver
}

func (p *Pool) Close() error {
	db, err := p.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
