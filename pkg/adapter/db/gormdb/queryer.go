// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"context"
	"database/sql"

	"github.com/momeni/smart-parking/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic query functions in
// the repository packages, so each query is written once and runs on
// both of connections and transactions.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// exec runs a raw statement on db for both of Conn and Tx.
// The sql placeholders use ? and are expanded by GORM, so clause.Table
// and clause.Column arguments are quoted for the current dialect.
func exec(
	ctx context.Context, db *gorm.DB, sql string, args ...any,
) (int64, error) {
	res := db.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, Classify(err, "exec")
	}
	return res.RowsAffected, nil
}

func query(
	ctx context.Context, db *gorm.DB, sql string, args ...any,
) (repo.Rows, error) {
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, Classify(err, "query")
	}
	return cursor{rows}, nil
}

// cursor adapts *sql.Rows to repo.Rows. Close errors are reported by
// the following Err call, as database/sql does.
type cursor struct {
	*sql.Rows
}

func (c cursor) Close() {
	_ = c.Rows.Close()
}
