// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is one connection which is dedicated to a use case for the
// duration of a Pool.Conn callback. Statements which run outside of Tx
// are committed one by one.
type Conn struct {
	*gorm.DB
}

// Tx runs handler in a new transaction on c. A nil result commits the
// transaction. An error result or a panic in handler rolls it back and
// the panic is returned as an error, so the single SQLite connection
// is never left in the middle of a transaction.
func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) (err error) {
	gtx := c.DB.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return Classify(err, "begin")
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			err = fmt.Errorf("tx handler panicked: %v", r)
		}
		if rbErr := gtx.Rollback().Error; rbErr != nil {
			err = fmt.Errorf("%w (rollback: %w)", err, rbErr)
		}
	}()
	if err = handler(ctx, &Tx{DB: gtx}); err != nil {
		return fmt.Errorf("tx handler: %w", err)
	}
	if err = gtx.Commit().Error; err != nil {
		return Classify(err, "commit")
	}
	committed = true
	return nil
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, c.DB, sql, args...)
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, c.DB, sql, args...)
}

func (c *Conn) IsConn() {
}

// GORM returns a session of the connection bound to ctx for the
// repository packages.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
