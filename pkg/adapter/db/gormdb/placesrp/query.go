// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package placesrp

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

// TableName is the name of the parking places table.
const TableName = "ParkingPlace"

type gPlace struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Latitude  float64 `gorm:"column:latitude;type:double precision;not null"`
	Longitude float64 `gorm:"column:longitude;type:double precision;not null"`
	Employed  int     `gorm:"column:employed;type:integer;not null"`
	Booked    int     `gorm:"column:booked;type:integer;not null"`
	ParkingID int64   `gorm:"column:parking_id;not null"`
}

func (gp *gPlace) TableName() string {
	return TableName
}

// TableModel returns the GORM model of the parking places table, so
// the schema repository may create or drop it.
func TableModel() any {
	return &gPlace{}
}

func fromModel(p model.ParkingPlace) gPlace {
	return gPlace{
		ID:        p.ID,
		Latitude:  p.Lat,
		Longitude: p.Lon,
		Employed:  b2i(p.Employed),
		Booked:    b2i(p.Booked),
		ParkingID: p.ParkingLotID,
	}
}

func (gp *gPlace) Model() *model.ParkingPlace {
	return &model.ParkingPlace{
		ID:           gp.ID,
		Coordinate:   model.Coordinate{Lat: gp.Latitude, Lon: gp.Longitude},
		Employed:     gp.Employed != 0,
		Booked:       gp.Booked != 0,
		ParkingLotID: gp.ParkingID,
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func Insert[Q gormdb.Queryer](ctx context.Context, q Q, p model.ParkingPlace) error {
	found, err := exists(ctx, q, p.ID)
	if err != nil {
		return err
	}
	if found {
		return cerr.Conflict(fmt.Errorf("place %d already exists", p.ID))
	}
	return insert(ctx, q, fromModel(p))
}

// insert writes the id column explicitly because GORM skips a zero
// auto-increment primary key, while the seed places begin at zero.
func insert[Q gormdb.Queryer](ctx context.Context, q Q, gp gPlace) error {
	err := q.GORM(ctx).Exec(
		"INSERT INTO ? (?, ?, ?, ?, ?, ?) VALUES (?, ?, ?, ?, ?, ?)",
		clause.Table{Name: TableName},
		clause.Column{Name: "id"},
		clause.Column{Name: "latitude"},
		clause.Column{Name: "longitude"},
		clause.Column{Name: "employed"},
		clause.Column{Name: "booked"},
		clause.Column{Name: "parking_id"},
		gp.ID, gp.Latitude, gp.Longitude,
		gp.Employed, gp.Booked, gp.ParkingID,
	).Error
	if err != nil {
		return gormdb.Classify(err, fmt.Sprintf("inserting place %d", gp.ID))
	}
	return nil
}

func exists[Q gormdb.Queryer](ctx context.Context, q Q, id int64) (bool, error) {
	var n int64
	err := q.GORM(ctx).Model(&gPlace{}).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, gormdb.Classify(err, fmt.Sprintf("counting place %d", id))
	}
	return n > 0, nil
}

// Create picks MAX(id)+1 without locking the table, so two concurrent
// creations on PostgreSQL or MySQL may pick the same ID. The loser
// fails on the primary key and gets a cerr.Conflict which wraps
// repo.ErrConcurrentCreate. It is not retried here.
func Create[Q gormdb.Queryer](ctx context.Context, q Q, p model.ParkingPlace) (*model.ParkingPlace, error) {
	var maxID sql.NullInt64
	err := q.GORM(ctx).Model(&gPlace{}).Select("MAX(id)").Row().Scan(&maxID)
	if err != nil {
		return nil, gormdb.Classify(err, "querying max place id")
	}
	p.ID = 1
	if maxID.Valid {
		p.ID = maxID.Int64 + 1
	}
	return createAs(ctx, q, p)
}

func createAs[Q gormdb.Queryer](ctx context.Context, q Q, p model.ParkingPlace) (*model.ParkingPlace, error) {
	gp := fromModel(p)
	if err := insert(ctx, q, gp); err != nil {
		if cerr.Is(err, cerr.KindConflict) {
			return nil, cerr.Conflict(fmt.Errorf(
				"place %d: %w: %w", p.ID, repo.ErrConcurrentCreate, err,
			))
		}
		return nil, err
	}
	return gp.Model(), nil
}

func Update[Q gormdb.Queryer](ctx context.Context, q Q, p model.ParkingPlace) error {
	gp := fromModel(p)
	res := q.GORM(ctx).Model(&gPlace{}).Where("id = ?", p.ID).Updates(
		map[string]any{
			"latitude":   gp.Latitude,
			"longitude":  gp.Longitude,
			"employed":   gp.Employed,
			"booked":     gp.Booked,
			"parking_id": gp.ParkingID,
		},
	)
	if err := res.Error; err != nil {
		return gormdb.Classify(err, fmt.Sprintf("updating place %d", p.ID))
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// MySQL reports zero affected rows when values are unchanged.
	found, err := exists(ctx, q, p.ID)
	switch {
	case err != nil:
		return err
	case !found:
		return cerr.NotFound(fmt.Errorf("place %d does not exist", p.ID))
	}
	return nil
}

func List[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.ParkingPlace, error) {
	return find(ctx, q, "listing places")
}

func ListBooked[Q gormdb.Queryer](ctx context.Context, q Q) ([]model.ParkingPlace, error) {
	return find(ctx, q, "listing booked places", "booked <> ?", 0)
}

func find[Q gormdb.Queryer](
	ctx context.Context, q Q, what string, conds ...any,
) ([]model.ParkingPlace, error) {
	var gps []gPlace
	if err := q.GORM(ctx).Find(&gps, conds...).Error; err != nil {
		return nil, gormdb.Classify(err, what)
	}
	places := make([]model.ParkingPlace, 0, len(gps))
	for i := range gps {
		places = append(places, *gps[i].Model())
	}
	return places, nil
}

func Get[Q gormdb.Queryer](ctx context.Context, q Q, id int64) (*model.ParkingPlace, error) {
	var gp gPlace
	err := q.GORM(ctx).Where("id = ?", id).Take(&gp).Error
	if err != nil {
		return nil, gormdb.Classify(err, fmt.Sprintf("getting place %d", id))
	}
	return gp.Model(), nil
}

func Count[Q gormdb.Queryer](ctx context.Context, q Q) (int64, error) {
	var n int64
	if err := q.GORM(ctx).Model(&gPlace{}).Count(&n).Error; err != nil {
		return 0, gormdb.Classify(err, "counting places")
	}
	return n, nil
}
