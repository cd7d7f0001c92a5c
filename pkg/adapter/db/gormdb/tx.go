// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx is an open transaction which is only valid inside the handler
// passed to Conn.Tx. It must not be used concurrently and a Rows
// returned by Query must be closed before the next statement.
type Tx struct {
	*gorm.DB
}

func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, tx.DB, sql, args...)
}

func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, tx.DB, sql, args...)
}

func (tx *Tx) IsTx() {
}

func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
