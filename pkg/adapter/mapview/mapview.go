// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package mapview keeps the state of the map markers, namely the user
// position, the parked car, and one marker per parking place. Each
// change is also passed to an optional Publisher.
package mapview

import (
	"context"
	"sort"
	"sync"

	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// Publisher receives the changed markers.
type Publisher interface {
	PublishMarker(ctx context.Context, m model.Marker) error
}

// View is the map markers state.
type View struct {
	pub Publisher

	rwlock sync.RWMutex
	user   model.Marker
	car    model.Marker
	places map[int64]model.Marker
}

// Option represents an optional setting of the View.
type Option func(v *View)

// WithPublisher sets the publisher of the changed markers.
func WithPublisher(p Publisher) Option {
	return func(v *View) {
		v.pub = p
	}
}

// New instantiates a map view. The user and car markers stay hidden
// until the first pose and mark are reported.
func New(opts ...Option) *View {
	v := &View{
		user: model.Marker{
			Kind:  model.MarkerUser,
			Color: model.ColorUser,
			Flat:  true,
		},
		car: model.Marker{
			Kind:  model.MarkerCar,
			Color: model.ColorCar,
		},
		places: make(map[int64]model.Marker),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetPlaces creates one marker per place, replacing all place markers.
func (v *View) SetPlaces(ctx context.Context, pps []model.ParkingPlace) {
	v.rwlock.Lock()
	v.places = make(map[int64]model.Marker, len(pps))
	ms := make([]model.Marker, 0, len(pps))
	for _, pp := range pps {
		m := model.PlaceMarker(pp)
		v.places[pp.ID] = m
		ms = append(ms, m)
	}
	v.rwlock.Unlock()
	for _, m := range ms {
		v.publish(ctx, m)
	}
}

// UpdatePlace recolors the marker of the p place, creating it if it is
// missing.
func (v *View) UpdatePlace(ctx context.Context, p model.ParkingPlace) {
	m := model.PlaceMarker(p)
	v.rwlock.Lock()
	v.places[p.ID] = m
	v.rwlock.Unlock()
	v.publish(ctx, m)
}

// ShowCar moves the car marker to the m mark and makes it visible.
func (v *View) ShowCar(ctx context.Context, m model.Mark) {
	v.rwlock.Lock()
	v.car.Coordinate = m.Coordinate
	v.car.Visible = true
	car := v.car
	v.rwlock.Unlock()
	v.publish(ctx, car)
}

// MoveUser moves the flat user marker to the pose position, rotated
// by its heading.
func (v *View) MoveUser(ctx context.Context, pose model.GeospatialPose) {
	v.rwlock.Lock()
	v.user.Coordinate = pose.Coordinate
	v.user.Rotation = pose.Heading
	v.user.Visible = true
	user := v.user
	v.rwlock.Unlock()
	v.publish(ctx, user)
}

// Markers returns a snapshot of all markers: user, car, and then the
// places ordered by their IDs.
func (v *View) Markers() []model.Marker {
	v.rwlock.RLock()
	defer v.rwlock.RUnlock()
	ms := make([]model.Marker, 0, len(v.places)+2)
	ms = append(ms, v.user, v.car)
	start := len(ms)
	for _, m := range v.places {
		ms = append(ms, m)
	}
	places := ms[start:]
	sort.Slice(places, func(i, j int) bool {
		return *places[i].PlaceID < *places[j].PlaceID
	})
	return ms
}

// Place returns the marker of the id place.
func (v *View) Place(id int64) (m model.Marker, ok bool) {
	v.rwlock.RLock()
	defer v.rwlock.RUnlock()
	m, ok = v.places[id]
	return
}

func (v *View) publish(ctx context.Context, m model.Marker) {
	if v.pub == nil {
		return
	}
	if err := v.pub.PublishMarker(ctx, m); err != nil {
		log.Warn(
			ctx, "publishing marker",
			log.Valuer("marker", m), log.Err("err", err),
		)
	}
}
