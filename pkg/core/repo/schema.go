// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// Schema interface presents expectations from a repository which
// manages the parking tables and their recorded schema version.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

type SchemaConnQueryer interface {
	SchemaQueryer
}

type SchemaTxQueryer interface {
	SchemaQueryer
	SettingsPersister
}

// SettingsPersister stores the serialized mutable settings. The
// persistence applies whenever the caller commits its transaction.
type SettingsPersister interface {
	PersistSettings(ctx context.Context, mutableSettings []byte) error
}

// SchemaQueryer creates, drops, or inspects the tables.
type SchemaQueryer interface {
	// Version returns the recorded schema version. The ok result is
	// false when no version is recorded yet, for example because the
	// tables were never created.
	Version(ctx context.Context) (v model.SemVer, ok bool, err error)

	// CreateTables creates the missing tables and records v as the
	// schema version. Existing tables are kept as is.
	CreateTables(ctx context.Context, v model.SemVer) error

	// DropTables drops all tables if they exist.
	DropTables(ctx context.Context) error
}
