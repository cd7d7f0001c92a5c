// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settingsrp

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

// Fetch loads the mutable settings from the database and applies them
// on a clone of the baseConfs. Missing settings, or settings which were
// stored by another configuration version, leave the base settings
// intact. Out of range settings are adjusted and logged.
func Fetch[Q gormdb.Queryer](
	ctx context.Context, q Q, baseConfs *config.Config,
) (
	b appuc.Builder,
	vs *model.VisibleSettings,
	minb, maxb *model.Settings,
	err error,
) {
	data, err := schemarp.LoadSettings(ctx, q)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("schemarp.LoadSettings: %w", err)
	}
	confs := baseConfs.Clone()
	if data != nil {
		var ser config.Serializable
		if err = json.Unmarshal(data, &ser); err != nil {
			return nil, nil, nil, nil, cerr.Storage(
				fmt.Errorf("deserializing json: %w", err),
			)
		}
		err = confs.Mutate(ser)
		var msve *cerr.MismatchingSemVerError
		var boundsErr *config.OutOfBoundsSettingsError
		switch {
		case errors.As(err, &msve):
			log.Warn(
				ctx, "ignoring stored settings",
				log.Err("err", err),
			)
			confs = baseConfs.Clone()
		case errors.As(err, &boundsErr):
			log.Warn(
				ctx, "stored settings are adjusted by boundary values",
				log.Err("violation", err),
			)
		case err != nil:
			return nil, nil, nil, nil, fmt.Errorf("confs.Mutate: %w", err)
		}
	}
	minb, maxb = confs.Bounds()
	return confs, confs.VisibleSettings(), minb, maxb, nil
}

// Update applies the `s` settings on a clone of the baseConfs and
// stores them in the database. Invalid or out of range settings are
// rejected with a cerr.BadRequest error and nothing is stored.
func Update(
	ctx context.Context,
	tx *gormdb.Tx,
	baseConfs *config.Config,
	s *model.Settings,
) (
	b appuc.Builder,
	vs *model.VisibleSettings,
	minb, maxb *model.Settings,
	err error,
) {
	ser := config.NewSerializable(s)
	confs := baseConfs.Clone()
	err = confs.Mutate(ser)
	var boundsErr *config.OutOfBoundsSettingsError
	switch {
	case errors.As(err, &boundsErr):
		return nil, nil, nil, nil, cerr.BadRequest(err)
	case err != nil:
		return nil, nil, nil, nil, fmt.Errorf("confs.Mutate: %w", err)
	}
	data, err := json.Marshal(ser)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("serializing json: %w", err)
	}
	if err = schemarp.PersistSettings(ctx, tx, data); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("persisting settings: %w", err)
	}
	minb, maxb = confs.Bounds()
	return confs, confs.VisibleSettings(), minb, maxb, nil
}
