// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settingsrp implements the appuc.SettingsRepo interface. The
// mutable settings are stored as JSON in the Settings table and are
// applied on top of the configuration file settings.
package settingsrp

import (
	"context"

	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

// Repo represents the settings repository. It keeps the base settings
// which are read from the configuration file.
type Repo struct {
	baseConfs *config.Config
}

// New instantiates a settings repository with `c` base settings.
func New(c *config.Config) *Repo {
	return &Repo{
		baseConfs: c,
	}
}

type connQueryer struct {
	*gormdb.Conn
	baseConfs *config.Config
}

// Conn takes a repo.Conn which must be a *gormdb.Conn instance and
// returns a settings connection-based queryer.
func (settings *Repo) Conn(c repo.Conn) appuc.SettingsConnQueryer {
	cc := c.(*gormdb.Conn)
	return connQueryer{Conn: cc, baseConfs: settings.baseConfs}
}

func (cq connQueryer) Fetch(ctx context.Context) (
	appuc.Builder,
	*model.VisibleSettings,
	*model.Settings,
	*model.Settings,
	error,
) {
	return Fetch(ctx, cq.Conn, cq.baseConfs)
}

type txQueryer struct {
	*gormdb.Tx
	baseConfs *config.Config
}

// Tx takes a repo.Tx which must be a *gormdb.Tx instance and returns
// a settings transaction-based queryer.
func (settings *Repo) Tx(tx repo.Tx) appuc.SettingsTxQueryer {
	tt := tx.(*gormdb.Tx)
	return txQueryer{Tx: tt, baseConfs: settings.baseConfs}
}

func (tq txQueryer) Update(ctx context.Context, s *model.Settings) (
	appuc.Builder,
	*model.VisibleSettings,
	*model.Settings,
	*model.Settings,
	error,
) {
	return Update(ctx, tq.Tx, tq.baseConfs, s)
}
