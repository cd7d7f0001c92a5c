// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/momeni/smart-parking/internal/test/memdb"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/settingsrp"
	"github.com/momeni/smart-parking/pkg/adapter/mapview"
	"github.com/momeni/smart-parking/pkg/adapter/prefs/fileprefs"
	"github.com/momeni/smart-parking/pkg/adapter/scene"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
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

type fixture struct {
	ctx    context.Context
	places *placesuc.UseCase
	prefs  *fileprefs.Store
	view   *mapview.View
	scene  *scene.Session
	app    *appuc.UseCase
}

func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	p, places := memdb.NewPlaces(ctx, t)
	_, err := places.SeedIfEmpty(ctx, model.MockParkingPlaces())
	require.NoError(t, err)
	c, err := config.Parse([]byte(confs))
	require.NoError(t, err)
	prefs := fileprefs.New(filepath.Join(t.TempDir(), "prefs.json"))
	view, sess := mapview.New(), scene.New()
	app, err := c.NewAppUseCase(
		p, settingsrp.New(c),
		c.NewPlacesRepo(), c.NewLotsRepo(), c.NewSchemaRepo(), prefs,
		appuc.WithScene(sess),
		appuc.WithMarkers(view),
	)
	require.NoError(t, err)
	return &fixture{
		ctx: ctx, places: places, prefs: prefs, view: view, scene: sess,
		app: app,
	}
}

func TestNewRejectsDuplicateOptions(t *testing.T) {
	s := scene.New()
	_, err := appuc.New(
		nil, nil, nil, nil, nil, nil,
		appuc.WithScene(s), appuc.WithScene(s),
	)
	assert.Error(t, err)
}

func TestReloadRestores(t *testing.T) {
	f := newFixture(t)
	pp, err := f.places.Get(f.ctx, 2)
	require.NoError(t, err)
	pp.Booked = true
	require.NoError(t, f.places.Update(f.ctx, *pp))
	mark := model.Mark{
		Coordinate: model.Coordinate{Lat: 55.75, Lon: 37.61}, Alt: 140,
	}
	require.NoError(t, f.prefs.SaveMark(f.ctx, mark))

	require.NoError(t, f.app.Reload(f.ctx))
	id, ok := f.app.BookingUseCase().Current()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
	m, ok := f.view.Place(2)
	assert.True(t, ok)
	assert.Equal(t, model.ColorBookedPlace, m.Color)

	got, ok := f.app.MarksUseCase().Mark()
	assert.True(t, ok)
	assert.Equal(t, mark, got)
	assert.True(t, f.view.Markers()[1].Visible, "car marker")

	assert.Empty(t, f.scene.Anchors(), "anchors wait for tracking")
	pose := model.GeospatialPose{Mark: model.Mark{
		Coordinate: model.Coordinate{Lat: 55.7515, Lon: 37.618}, Alt: 150,
	}}
	require.NoError(t, f.scene.UpdateFrame(
		f.ctx, pose, model.TrackingStateTracking,
	))
	as := f.scene.Anchors()
	require.Len(t, as, 2)
	assert.Equal(t, mark, as[0].Mark)
	assert.Equal(t, pp.Coordinate, as[1].Mark.Coordinate)
	assert.Equal(t, 150.0, as[1].Mark.Alt)

	vs, minb, maxb := f.app.Settings()
	assert.Equal(t, "unbook", *vs.Booking.RetapPolicy)
	assert.Equal(t, 0.0, *minb.Marks.AltitudeOffset)
	assert.Equal(t, 10.0, *maxb.Marks.AltitudeOffset)
}

func TestUpdateSettingsHandsOverBooking(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Reload(f.ctx))
	old := f.app.BookingUseCase()
	res, err := old.BookPlace(f.ctx, 1)
	require.NoError(t, err)
	require.Equal(t, model.BookingOutcomeBooked, res.Outcome)

	ignore, offset := "ignore", 4.0
	s := &model.Settings{}
	s.Booking.RetapPolicy = &ignore
	s.Marks.AltitudeOffset = &offset
	vs, _, _, err := f.app.UpdateSettings(f.ctx, s)
	require.NoError(t, err)
	assert.Equal(t, "ignore", *vs.Booking.RetapPolicy)
	assert.Equal(t, 4.0, f.app.MarksUseCase().AltitudeOffset())

	current := f.app.BookingUseCase()
	assert.NotSame(t, old, current)
	assert.Equal(t, model.RetapPolicyIgnore, current.RetapPolicy())
	id, ok := current.Current()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	res, err = old.BookPlace(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeUnchanged, res.Outcome, "forwarded")
}

func TestUpdateSettingsRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Reload(f.ctx))
	before := f.app.BookingUseCase()

	tooHigh := 11.0
	s := &model.Settings{}
	s.Marks.AltitudeOffset = &tooHigh
	_, _, _, err := f.app.UpdateSettings(f.ctx, s)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), "got %v", err)

	toggle := "toggle"
	s = &model.Settings{}
	s.Booking.RetapPolicy = &toggle
	_, _, _, err = f.app.UpdateSettings(f.ctx, s)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), "got %v", err)

	assert.Same(t, before, f.app.BookingUseCase())
	vs, _, _ := f.app.Settings()
	assert.Equal(t, 3.0, *vs.Marks.AltitudeOffset)
}
