// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// SettingsRepo persists the runtime settings (the retap policy and the
// car mark altitude offset) which an operator may change while the
// service runs. The repository keeps the configuration file settings
// as its base. Each Fetch or Update overlays the stored settings on a
// clone of that base and returns the result as a Builder, so appuc can
// rebuild its booking and mark use cases from it.
type SettingsRepo interface {
	Conn(repo.Conn) SettingsConnQueryer
	Tx(repo.Tx) SettingsTxQueryer
}

// SettingsConnQueryer contains the queries which decide their own
// transaction boundaries.
type SettingsConnQueryer interface {
	SettingsQueryer

	// Fetch loads the stored settings and overlays them on the base
	// settings. Stored settings of another config version are ignored.
	// Out of range stored values are clamped to the nearest bound and
	// logged as warnings instead of failing the startup. The minb and
	// maxb results are the bounds from the base settings, so clients
	// can validate their input before an Update.
	Fetch(ctx context.Context) (
		b Builder,
		vs *model.VisibleSettings,
		minb, maxb *model.Settings,
		err error,
	)
}

// SettingsTxQueryer contains the queries which must run in a caller
// provided transaction.
type SettingsTxQueryer interface {
	SettingsQueryer

	// Update validates s against the base bounds, stores it as the
	// current settings version, and returns the overlaid Builder like
	// Fetch. An out of range s is rejected with cerr.BadRequest and
	// nothing is stored. The caller commits only after the new use
	// cases were built, so a failing rebuild keeps the old settings.
	Update(ctx context.Context, s *model.Settings) (
		b Builder,
		vs *model.VisibleSettings,
		minb, maxb *model.Settings,
		err error,
	)
}

// SettingsQueryer is the common part of the conn and tx queryers.
// It has no methods yet.
type SettingsQueryer interface {
}
