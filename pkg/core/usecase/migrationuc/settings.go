// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc contains the database initialization use cases
// which drop and recreate the parking tables, filling them with the
// development or production suitable rows.
package migrationuc

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// Settings interface specifies the requirements of the initialization
// use cases from the configuration settings. It is reified by the
// adapters layer configuration package.
type Settings interface {
	// ConnectionPool creates a new database connection pool. Caller
	// is responsible to close it.
	ConnectionPool(ctx context.Context) (repo.Pool, error)

	// SchemaVersion returns the schema version which is created.
	SchemaVersion() model.SemVer

	NewSchemaRepo() repo.Schema
	NewPlacesRepo() repo.Places
	NewLotsRepo() repo.Lots

	// Serialize returns the mutable settings in their serialized form,
	// so they can be persisted alongside the created tables.
	Serialize() ([]byte, error)
}
