// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gormdb is the GORM based database adapter. It reifies the
// repo.Pool, repo.Conn, and repo.Tx interfaces for the SQLite,
// PostgreSQL, and MySQL drivers, while its sub-packages implement the
// table repositories on top of them.
package gormdb

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/momeni/smart-parking/pkg/core/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. Whenever the recorded
// version of an existing database differs, its tables are dropped and
// created again.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DefaultSQLiteFile is the database file which is used by the sqlite
// driver when no DSN is configured.
const DefaultSQLiteFile = "SmartParking.db"

// Dialector returns the GORM dialector of the driver, opening dsn.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite, "":
		if dsn == "" {
			dsn = DefaultSQLiteFile
		}
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// ParseLogLevel converts the silent, error, warn, or info names into
// their GORM logger levels. An empty name is taken as warn.
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn", "":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	default:
		return logger.Warn, fmt.Errorf("unknown gorm log level %q", level)
	}
}
