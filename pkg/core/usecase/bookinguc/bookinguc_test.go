// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookinguc_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/momeni/smart-parking/internal/test/memdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/placesrp"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/placesuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	mutex    sync.Mutex
	tracking bool
	alt      float64
	anchors  map[model.AnchorKey]model.Mark
	restored int
}

func (fs *fakeScene) CameraPose() (model.GeospatialPose, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	if !fs.tracking {
		return model.GeospatialPose{}, cerr.TrackingUnavailable(
			errors.New("paused"),
		)
	}
	return model.GeospatialPose{Mark: model.Mark{Alt: fs.alt}}, nil
}

func (fs *fakeScene) PlaceAnchor(
	_ context.Context, key model.AnchorKey, m model.Mark,
) (model.Anchor, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.anchors[key] = m
	return model.Anchor{ID: string(key), Key: key, Mark: m}, nil
}

func (fs *fakeScene) RestoreAnchor(
	_ context.Context, key model.AnchorKey, m model.Mark,
) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	fs.restored++
	fs.anchors[key] = m
	return nil
}

func (fs *fakeScene) DetachAnchor(_ context.Context, key model.AnchorKey) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()
	delete(fs.anchors, key)
	return nil
}

type fakeMarkers struct {
	mutex   sync.Mutex
	updates []model.ParkingPlace
}

func (fm *fakeMarkers) UpdatePlace(_ context.Context, p model.ParkingPlace) {
	fm.mutex.Lock()
	defer fm.mutex.Unlock()
	fm.updates = append(fm.updates, p)
}

type fixture struct {
	ctx     context.Context
	pool    *gormdb.Pool
	places  *placesuc.UseCase
	booking *bookinguc.UseCase
	scene   *fakeScene
	markers *fakeMarkers
}

func newFixture(t *testing.T, opts ...bookinguc.Option) *fixture {
	ctx := context.Background()
	pool, places := memdb.NewPlaces(ctx, t)
	_, err := places.SeedIfEmpty(ctx, model.MockParkingPlaces())
	require.NoError(t, err)
	f := &fixture{
		ctx:     ctx,
		pool:    pool,
		places:  places,
		scene:   &fakeScene{tracking: true, alt: 150, anchors: map[model.AnchorKey]model.Mark{}},
		markers: &fakeMarkers{},
	}
	opts = append(
		opts, bookinguc.WithScene(f.scene), bookinguc.WithMarkers(f.markers),
	)
	f.booking, err = bookinguc.New(pool, placesrp.New(), opts...)
	require.NoError(t, err)
	return f
}

func (f *fixture) booked(t *testing.T) []int64 {
	t.Helper()
	places, err := f.places.List(f.ctx)
	require.NoError(t, err)
	var ids []int64
	for _, p := range places {
		if p.Booked {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func TestBookingScenario(t *testing.T) {
	f := newFixture(t)
	r := require.New(t)

	res, err := f.booking.BookPlace(f.ctx, 2)
	r.NoError(err)
	assert.Equal(t, model.BookingOutcomeBooked, res.Outcome)
	assert.Nil(t, res.Released)
	assert.True(t, res.AnchorPlaced)
	assert.Equal(t, []int64{2}, f.booked(t))
	id, ok := f.booking.Current()
	assert.True(t, ok)
	assert.EqualValues(t, 2, id)

	res, err = f.booking.BookPlace(f.ctx, 4)
	r.NoError(err)
	assert.Equal(t, model.BookingOutcomeBooked, res.Outcome)
	r.NotNil(res.Released)
	assert.EqualValues(t, 2, res.Released.ID)
	assert.False(t, res.Released.Booked)
	assert.Equal(t, []int64{4}, f.booked(t))
	place4 := model.MockParkingPlaces()[4]
	assert.Equal(
		t,
		model.Mark{Coordinate: place4.Coordinate, Alt: 150},
		f.scene.anchors[model.AnchorParking],
	)

	res, err = f.booking.BookPlace(f.ctx, 4)
	r.NoError(err)
	assert.Equal(t, model.BookingOutcomeUnbooked, res.Outcome)
	assert.False(t, res.Place.Booked)
	assert.Empty(t, f.booked(t))
	_, ok = f.booking.Current()
	assert.False(t, ok)
	assert.NotContains(t, f.scene.anchors, model.AnchorParking)

	// released, booked, released, booked, unbooked
	ids := make([]int64, 0, len(f.markers.updates))
	for _, p := range f.markers.updates {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{2, 2, 4, 4}, ids)
}

func TestRetapIgnore(t *testing.T) {
	f := newFixture(t, bookinguc.WithRetapPolicy(model.RetapPolicyIgnore))
	_, err := f.booking.BookPlace(f.ctx, 1)
	require.NoError(t, err)
	res, err := f.booking.BookPlace(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeUnchanged, res.Outcome)
	assert.True(t, res.Place.Booked)
	assert.Equal(t, []int64{1}, f.booked(t))
}

func TestBookMissingPlace(t *testing.T) {
	f := newFixture(t)
	_, err := f.booking.BookPlace(f.ctx, 2)
	require.NoError(t, err)
	before, err := f.places.List(f.ctx)
	require.NoError(t, err)

	_, err = f.booking.BookPlace(f.ctx, 99)
	assert.True(t, cerr.Is(err, cerr.KindNotFound), "err: %v", err)
	after, err := f.places.List(f.ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after, "no row may be mutated")
	id, ok := f.booking.Current()
	assert.True(t, ok)
	assert.EqualValues(t, 2, id)
}

func TestBookEmployedPlace(t *testing.T) {
	f := newFixture(t)
	_, err := f.booking.BookPlace(f.ctx, 5)
	assert.True(t, cerr.Is(err, cerr.KindConflict), "err: %v", err)
	assert.Empty(t, f.booked(t))
}

func TestBookWhileNotTracking(t *testing.T) {
	f := newFixture(t)
	f.scene.tracking = false
	res, err := f.booking.BookPlace(f.ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeBooked, res.Outcome)
	assert.False(t, res.AnchorPlaced)
	assert.Equal(t, []int64{3}, f.booked(t), "booking must be kept")
	assert.Empty(t, f.scene.anchors)
}

func TestAtMostOneBooked(t *testing.T) {
	f := newFixture(t)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		id := int64(rnd.Intn(7)) // 5 is employed and 6 is missing
		_, err := f.booking.BookPlace(f.ctx, id)
		switch id {
		case 5:
			require.True(t, cerr.Is(err, cerr.KindConflict))
		case 6:
			require.True(t, cerr.Is(err, cerr.KindNotFound))
		default:
			require.NoError(t, err)
		}
		assert.LessOrEqual(t, len(f.booked(t)), 1, "after tapping %d", id)
	}
}

func TestConcurrentBooking(t *testing.T) {
	f := newFixture(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := f.booking.BookPlace(f.ctx, id)
			assert.NoError(t, err)
		}(int64(i % 5))
	}
	wg.Wait()
	assert.LessOrEqual(t, len(f.booked(t)), 1)
}

func TestRestore(t *testing.T) {
	f := newFixture(t)
	_, err := f.booking.Restore(f.ctx)
	assert.ErrorIs(t, err, bookinguc.ErrNothingToRestore)
	assert.Zero(t, f.scene.restored)

	for _, id := range []int64{3, 1} {
		p, err := f.places.Get(f.ctx, id)
		require.NoError(t, err)
		p.Booked = true
		require.NoError(t, f.places.Update(f.ctx, *p))
	}
	p, err := f.booking.Restore(f.ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.ID)
	assert.Equal(t, []int64{1}, f.booked(t))
	assert.Equal(t, 1, f.scene.restored)
	assert.Equal(
		t, model.Mark{Coordinate: p.Coordinate},
		f.scene.anchors[model.AnchorParking],
		"parking anchor is restored at the camera altitude",
	)

	res, err := f.booking.BookPlace(f.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeUnbooked, res.Outcome)
	assert.NotContains(t, f.scene.anchors, model.AnchorParking)
}

func TestCreatedPlacesAreNeverBooked(t *testing.T) {
	f := newFixture(t)
	_, err := f.booking.BookPlace(f.ctx, 2)
	require.NoError(t, err)

	extra := model.ParkingPlace{
		Coordinate:   model.Coordinate{Lat: 55.7519, Lon: 37.6189},
		Booked:       true,
		ParkingLotID: model.MockParkingLotID,
	}
	_, err = f.places.Create(f.ctx, extra)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), "err: %v", err)
	extra.ID = 40
	err = f.places.Insert(f.ctx, extra)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest), "err: %v", err)

	extra.Booked = false
	created, err := f.places.Create(f.ctx, extra)
	require.NoError(t, err)
	assert.False(t, created.Booked)

	_, err = f.booking.BookPlace(f.ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, f.booked(t))
}

func TestHandover(t *testing.T) {
	f := newFixture(t)
	_, err := f.booking.BookPlace(f.ctx, 2)
	require.NoError(t, err)

	next, err := bookinguc.New(
		f.pool, placesrp.New(),
		bookinguc.WithRetapPolicy(model.RetapPolicyIgnore),
	)
	require.NoError(t, err)
	f.booking.Handover(next)
	id, ok := next.Current()
	require.True(t, ok)
	assert.EqualValues(t, 2, id)

	// the old instance forwards to next, so the ignore policy applies
	res, err := f.booking.BookPlace(f.ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeUnchanged, res.Outcome)
	res, err = f.booking.BookPlace(f.ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.BookingOutcomeBooked, res.Outcome)
	assert.EqualValues(t, 2, res.Released.ID)
	id, ok = next.Current()
	require.True(t, ok)
	assert.EqualValues(t, 3, id)
	assert.Equal(t, []int64{3}, f.booked(t))
	f.booking.Handover(next)
}

func TestInvalidOptions(t *testing.T) {
	_, err := bookinguc.New(nil, nil, bookinguc.WithRetapPolicy(model.RetapPolicyInvalid))
	assert.Error(t, err)
	_, err = bookinguc.New(
		nil, nil,
		bookinguc.WithRetapPolicy(model.RetapPolicyIgnore),
		bookinguc.WithRetapPolicy(model.RetapPolicyUnbook),
	)
	assert.Error(t, err)
	uc, err := bookinguc.New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RetapPolicyUnbook, uc.RetapPolicy())
}
