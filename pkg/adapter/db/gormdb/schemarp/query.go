// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/lotsrp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"gorm.io/gorm"
)

type gSchemaVersion struct {
	Version string `gorm:"column:version;primaryKey;size:32"`
}

func (gsv *gSchemaVersion) TableName() string {
	return "SchemaVersion"
}

type gSettings struct {
	Name    string `gorm:"column:name;primaryKey;size:64"`
	Payload string `gorm:"column:payload;type:text;not null"`
}

func (gs *gSettings) TableName() string {
	return "Settings"
}

// tables lists the GORM models of all tables, parents first.
func tables() []any {
	return []any{
		lotsrp.TableModel(),
		placesrp.TableModel(),
		&gSchemaVersion{},
		&gSettings{},
	}
}

// Version queries the recorded schema version. The ok result is false
// if the SchemaVersion table or its row are missing.
func Version[Q gormdb.Queryer](ctx context.Context, q Q) (
	v model.SemVer, ok bool, err error,
) {
	gdb := q.GORM(ctx)
	if !gdb.Migrator().HasTable(&gSchemaVersion{}) {
		return v, false, nil
	}
	var gsv gSchemaVersion
	err = gdb.Take(&gsv).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return v, false, nil
	case err != nil:
		return v, false, gormdb.Classify(err, "querying schema version")
	}
	if err = v.UnmarshalText([]byte(gsv.Version)); err != nil {
		return v, false, cerr.Storage(
			fmt.Errorf("parsing schema version %q: %w", gsv.Version, err),
		)
	}
	return v, true, nil
}

// CreateTables creates the missing tables and records v as the only
// row of the SchemaVersion table.
func CreateTables[Q gormdb.Queryer](
	ctx context.Context, q Q, v model.SemVer,
) error {
	gdb := q.GORM(ctx)
	m := gdb.Migrator()
	for _, t := range tables() {
		if m.HasTable(t) {
			continue
		}
		if err := m.CreateTable(t); err != nil {
			return gormdb.Classify(err, fmt.Sprintf("creating %T", t))
		}
	}
	err := gdb.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(
		&gSchemaVersion{},
	).Error
	if err != nil {
		return gormdb.Classify(err, "clearing schema version")
	}
	if err = gdb.Create(&gSchemaVersion{Version: v.String()}).Error; err != nil {
		return gormdb.Classify(err, "recording schema version")
	}
	return nil
}

// DropTables drops all tables, ignoring the missing ones.
func DropTables[Q gormdb.Queryer](ctx context.Context, q Q) error {
	ts := tables()
	// children first
	for i := len(ts) - 1; i >= 0; i-- {
		if err := q.GORM(ctx).Migrator().DropTable(ts[i]); err != nil {
			return gormdb.Classify(err, fmt.Sprintf("dropping %T", ts[i]))
		}
	}
	return nil
}

// LoadSettings returns the serialized mutable settings, or nil if
// they were never stored.
func LoadSettings[Q gormdb.Queryer](ctx context.Context, q Q) ([]byte, error) {
	gdb := q.GORM(ctx)
	if !gdb.Migrator().HasTable(&gSettings{}) {
		return nil, nil
	}
	var gs gSettings
	err := gdb.Where("name = ?", settingsName).Take(&gs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	case err != nil:
		return nil, gormdb.Classify(err, "loading settings")
	}
	return []byte(gs.Payload), nil
}

// PersistSettings stores the serialized mutable settings, replacing
// the previous ones.
func PersistSettings[Q gormdb.Queryer](ctx context.Context, q Q, b []byte) error {
	gdb := q.GORM(ctx)
	err := gdb.Where("name = ?", settingsName).Delete(&gSettings{}).Error
	if err != nil {
		return gormdb.Classify(err, "clearing settings")
	}
	err = gdb.Create(&gSettings{Name: settingsName, Payload: string(b)}).Error
	if err != nil {
		return gormdb.Classify(err, "persisting settings")
	}
	return nil
}

const settingsName = "mutable"
