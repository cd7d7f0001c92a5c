// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schema verifies the database tables and their initial rows
// in the integration tests, using nothing but the repo.Conn interface.
package schema

import (
	"context"
	"testing"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

// Verifier checks the tables through its wrapped connection.
type Verifier struct {
	c repo.Conn // database connection which is used for testing
}

func NewVerifier(c repo.Conn) *Verifier {
	return &Verifier{c}
}

// VerifySchema verifies that the tables and their columns exist.
// The schema contents (i.e., existing rows) are not checked.
func (v *Verifier) VerifySchema(ctx context.Context, t *testing.T) {
	rows, err := v.c.Query(
		ctx, "SELECT ?, ?, ?, ? FROM ? WHERE 1 = 0",
		clause.Column{Name: "id"},
		clause.Column{Name: "name"},
		clause.Column{Name: "latitude"},
		clause.Column{Name: "longitude"},
		clause.Table{Name: lotsrp.TableName},
	)
	require.NoError(t, err, "querying parking lots columns")
	rows.Close()
	rows, err = v.c.Query(
		ctx, "SELECT ?, ?, ?, ?, ?, ? FROM ? WHERE 1 = 0",
		clause.Column{Name: "id"},
		clause.Column{Name: "latitude"},
		clause.Column{Name: "longitude"},
		clause.Column{Name: "employed"},
		clause.Column{Name: "booked"},
		clause.Column{Name: "parking_id"},
		clause.Table{Name: placesrp.TableName},
	)
	require.NoError(t, err, "querying parking places columns")
	rows.Close()
}

// VerifyDevData verifies that the mock parking lot and places exist.
// Extra rows are not reported.
func (v *Verifier) VerifyDevData(ctx context.Context, t *testing.T) {
	lot := model.MockParkingLot()
	var name string
	v.scanOne(
		ctx, t, []any{&name}, "SELECT ? FROM ? WHERE ? = ?",
		clause.Column{Name: "name"},
		clause.Table{Name: lotsrp.TableName},
		clause.Column{Name: "id"},
		lot.ID,
	)
	assert.Equal(t, lot.Name, name)
	for _, p := range model.MockParkingPlaces() {
		var employed, booked int
		v.scanOne(
			ctx, t, []any{&employed, &booked},
			"SELECT ?, ? FROM ? WHERE ? = ?",
			clause.Column{Name: "employed"},
			clause.Column{Name: "booked"},
			clause.Table{Name: placesrp.TableName},
			clause.Column{Name: "id"},
			p.ID,
		)
		assert.Equal(t, p.Employed, employed != 0, "place %d", p.ID)
		assert.Zero(t, booked, "place %d", p.ID)
	}
}

// VerifyProdData verifies that no parking places exist.
func (v *Verifier) VerifyProdData(ctx context.Context, t *testing.T) {
	var n int64
	v.scanOne(
		ctx, t, []any{&n}, "SELECT COUNT(*) FROM ?",
		clause.Table{Name: placesrp.TableName},
	)
	assert.Zero(t, n)
}

func (v *Verifier) scanOne(
	ctx context.Context, t *testing.T, dst []any, sql string, args ...any,
) {
	t.Helper()
	rows, err := v.c.Query(ctx, sql, args...)
	require.NoError(t, err, "query: %s", sql)
	defer rows.Close()
	require.True(t, rows.Next(), "expected one row: %s", sql)
	require.NoError(t, rows.Scan(dst...))
	require.NoError(t, rows.Err())
}
