// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package lotsrp

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"gorm.io/gorm/clause"
)

// TableName is the name of the parking lots table.
const TableName = "Parking"

type gLot struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string  `gorm:"column:name;size:255;not null"`
	Latitude  float64 `gorm:"column:latitude;type:double precision;not null"`
	Longitude float64 `gorm:"column:longitude;type:double precision;not null"`
}

func (gl *gLot) TableName() string {
	return TableName
}

// TableModel returns the GORM model of the parking lots table.
func TableModel() any {
	return &gLot{}
}

func (gl *gLot) Model() *model.ParkingLot {
	return &model.ParkingLot{
		ID:         gl.ID,
		Name:       gl.Name,
		Coordinate: model.Coordinate{Lat: gl.Latitude, Lon: gl.Longitude},
	}
}

func Insert[Q gormdb.Queryer](ctx context.Context, q Q, l model.ParkingLot) error {
	var n int64
	err := q.GORM(ctx).Model(&gLot{}).Where("id = ?", l.ID).Count(&n).Error
	if err != nil {
		return gormdb.Classify(err, fmt.Sprintf("counting lot %d", l.ID))
	}
	if n > 0 {
		return cerr.Conflict(fmt.Errorf("lot %d already exists", l.ID))
	}
	return insert(ctx, q, l)
}

func insert[Q gormdb.Queryer](ctx context.Context, q Q, l model.ParkingLot) error {
	err := q.GORM(ctx).Exec(
		"INSERT INTO ? (?, ?, ?, ?) VALUES (?, ?, ?, ?)",
		clause.Table{Name: TableName},
		clause.Column{Name: "id"},
		clause.Column{Name: "name"},
		clause.Column{Name: "latitude"},
		clause.Column{Name: "longitude"},
		l.ID, l.Name, l.Lat, l.Lon,
	).Error
	if err != nil {
		return gormdb.Classify(err, fmt.Sprintf("inserting lot %d", l.ID))
	}
	return nil
}

// Create picks MAX(id)+1 without locking the table. A concurrent
// Create which took the same ID first turns this one into a
// cerr.Conflict wrapping repo.ErrConcurrentCreate.
func Create[Q gormdb.Queryer](ctx context.Context, q Q, l model.ParkingLot) (*model.ParkingLot, error) {
	var maxID sql.NullInt64
	err := q.GORM(ctx).Model(&gLot{}).Select("MAX(id)").Row().Scan(&maxID)
	if err != nil {
		return nil, gormdb.Classify(err, "querying max lot id")
	}
	l.ID = 1
	if maxID.Valid {
		l.ID = maxID.Int64 + 1
	}
	return createAs(ctx, q, l)
}

func createAs[Q gormdb.Queryer](ctx context.Context, q Q, l model.ParkingLot) (*model.ParkingLot, error) {
	if err := insert(ctx, q, l); err != nil {
		if cerr.Is(err, cerr.KindConflict) {
			return nil, cerr.Conflict(fmt.Errorf(
				"lot %d: %w: %w", l.ID, repo.ErrConcurrentCreate, err,
			))
		}
		return nil, err
	}
	return &l, nil
}

func List[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.ParkingLot, error) {
	var gls []gLot
	if err := q.GORM(ctx).Find(&gls).Error; err != nil {
		return nil, gormdb.Classify(err, "listing lots")
	}
	lots := make([]model.ParkingLot, 0, len(gls))
	for i := range gls {
		lots = append(lots, *gls[i].Model())
	}
	return lots, nil
}

func Get[Q gormdb.Queryer](ctx context.Context, q Q, id int64) (*model.ParkingLot, error) {
	var gl gLot
	err := q.GORM(ctx).Where("id = ?", id).Take(&gl).Error
	if err != nil {
		return nil, gormdb.Classify(err, fmt.Sprintf("getting lot %d", id))
	}
	return gl.Model(), nil
}
