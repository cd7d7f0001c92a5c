// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settingsrp_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/internal/test/memdb"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/schemarp"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/settingsrp"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const confs = `usecases:
  marks:
    altitude-offset-minimum: 0
    altitude-offset-maximum: 10
versions:
  database: 1.0.0
  config: 1.0.0
`

func fetch(ctx context.Context, t *testing.T, p repo.Pool, r *settingsrp.Repo) *model.VisibleSettings {
	t.Helper()
	var vs *model.VisibleSettings
	err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		_, v, _, _, err := r.Conn(c).Fetch(ctx)
		vs = v
		return err
	})
	require.NoError(t, err, "fetching settings")
	return vs
}

func update(ctx context.Context, p repo.Pool, r *settingsrp.Repo, s *model.Settings) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			_, _, _, _, err := r.Tx(tx).Update(ctx, s)
			return err
		})
	})
}

func TestFetchAndUpdate(t *testing.T) {
	ctx := context.Background()
	p, _ := memdb.NewPlaces(ctx, t)
	base, err := config.Parse([]byte(confs))
	require.NoError(t, err)
	r := settingsrp.New(base)

	vs := fetch(ctx, t, p, r)
	assert.Equal(t, "unbook", *vs.Booking.RetapPolicy)
	assert.Equal(t, 3.0, *vs.Marks.AltitudeOffset)
	assert.Equal(t, "sqlite", vs.Driver)

	ignore, offset := "ignore", 5.0
	s := &model.Settings{}
	s.Booking.RetapPolicy = &ignore
	s.Marks.AltitudeOffset = &offset
	require.NoError(t, update(ctx, p, r, s))
	vs = fetch(ctx, t, p, r)
	assert.Equal(t, "ignore", *vs.Booking.RetapPolicy)
	assert.Equal(t, 5.0, *vs.Marks.AltitudeOffset)
	assert.Equal(t, 3.0, *base.Usecases.Marks.AltitudeOffset, "base is kept")

	tooHigh := 50.0
	s.Marks.AltitudeOffset = &tooHigh
	err = update(ctx, p, r, s)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), "got %v", err)
	vs = fetch(ctx, t, p, r)
	assert.Equal(t, 5.0, *vs.Marks.AltitudeOffset)

	s = &model.Settings{}
	require.NoError(t, update(ctx, p, r, s), "nil settings reset")
	vs = fetch(ctx, t, p, r)
	assert.Equal(t, "unbook", *vs.Booking.RetapPolicy)
	assert.Equal(t, 3.0, *vs.Marks.AltitudeOffset)
}

func TestFetchStoredSettings(t *testing.T) {
	ctx := context.Background()
	p, _ := memdb.NewPlaces(ctx, t)
	base, err := config.Parse([]byte(confs))
	require.NoError(t, err)
	r := settingsrp.New(base)

	persist := func(ser config.Serializable) {
		b, err := json.Marshal(ser)
		require.NoError(t, err)
		err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return schemarp.PersistSettings(ctx, c.(*gormdb.Conn), b)
		})
		require.NoError(t, err)
	}

	tooHigh, policy := 50.0, "ignore"
	ser := config.Serializable{Version: config.Version}
	ser.Visible.Booking.RetapPolicy = &policy
	ser.Visible.Marks.AltitudeOffset = &tooHigh
	persist(ser)
	vs := fetch(ctx, t, p, r)
	assert.Equal(t, "ignore", *vs.Booking.RetapPolicy)
	assert.Equal(t, 10.0, *vs.Marks.AltitudeOffset, "clamped to maximum")

	ser.Version = model.SemVer{0, 9, 0}
	persist(ser)
	vs = fetch(ctx, t, p, r)
	assert.Equal(t, "unbook", *vs.Booking.RetapPolicy, "other versions are ignored")
	assert.Equal(t, 3.0, *vs.Marks.AltitudeOffset)
}
