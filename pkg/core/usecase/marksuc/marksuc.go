// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package marksuc contains the car mark UseCase. A car mark is the
// location where the user left the car. It is taken from the AR camera
// pose (raised by an altitude offset), kept in the preferences store,
// anchored in the AR scene, and shown on the map.
package marksuc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// Scene is the AR scene which provides the camera pose and anchors the
// car mark. CameraPose must return a cerr.TrackingUnavailable error
// while the scene is not tracking. RestoreAnchor must accept an anchor
// before tracking starts and place it once the scene tracks.
type Scene interface {
	CameraPose() (model.GeospatialPose, error)
	PlaceAnchor(ctx context.Context, key model.AnchorKey, m model.Mark) (model.Anchor, error)
	RestoreAnchor(ctx context.Context, key model.AnchorKey, m model.Mark) error
	DetachAnchor(ctx context.Context, key model.AnchorKey) error
}

// CarMarker shows the car mark on the map.
type CarMarker interface {
	ShowCar(ctx context.Context, m model.Mark)
}

// DefaultAltitudeOffset is added to the camera altitude, in meters,
// unless WithAltitudeOffset is used.
const DefaultAltitudeOffset = 3.0

// UseCase represents the car mark use case.
type UseCase struct {
	prefs  repo.Preferences
	scene  Scene
	marker CarMarker

	altitudeOffset *float64

	mutex sync.Mutex
	mark  model.Mark // last placed or loaded mark
}

// New instantiates a car mark use case which persists marks in the
// prefs store.
func New(prefs repo.Preferences, opts ...Option) (*UseCase, error) {
	uc := &UseCase{prefs: prefs}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.altitudeOffset == nil {
		o := DefaultAltitudeOffset
		uc.altitudeOffset = &o
	}
	return uc, nil
}

// AltitudeOffset returns the effective altitude offset in meters.
func (marks *UseCase) AltitudeOffset() float64 {
	return *marks.altitudeOffset
}

// PlaceMark places the car mark at the current camera pose. It fails
// with a cerr.TrackingUnavailable error (and changes nothing) if there
// is no scene or it is not tracking. The previous car anchor is
// replaced.
func (marks *UseCase) PlaceMark(ctx context.Context) (model.Mark, error) {
	marks.mutex.Lock()
	defer marks.mutex.Unlock()
	if marks.scene == nil {
		return model.Mark{}, cerr.TrackingUnavailable(
			errors.New("no AR scene is attached"),
		)
	}
	pose, err := marks.scene.CameraPose()
	if err != nil {
		return model.Mark{}, fmt.Errorf("camera pose: %w", err)
	}
	m := model.Mark{
		Coordinate: pose.Coordinate,
		Alt:        pose.Alt + *marks.altitudeOffset,
	}
	if err = marks.prefs.SaveMark(ctx, m); err != nil {
		return model.Mark{}, fmt.Errorf("saving mark: %w", err)
	}
	marks.mark = m
	if err = marks.scene.DetachAnchor(ctx, model.AnchorCar); err != nil {
		log.Warn(ctx, "detaching previous car anchor", log.Err("err", err))
	}
	if _, err = marks.scene.PlaceAnchor(ctx, model.AnchorCar, m); err != nil {
		log.Warn(ctx, "placing car anchor", log.Err("err", err))
	}
	if marks.marker != nil {
		marks.marker.ShowCar(ctx, m)
	}
	log.Info(ctx, "car mark is placed", log.Valuer("mark", m))
	return m, nil
}

// LoadMark restores the persisted mark, shows it on the map, and asks
// the scene to re-create the car anchor at it (on the first tracking
// frame if the scene is not tracking yet). The ok result is false if
// no complete mark was persisted, that is, if any of its latitude,
// longitude, or altitude is zero.
func (marks *UseCase) LoadMark(ctx context.Context) (m model.Mark, ok bool, err error) {
	marks.mutex.Lock()
	defer marks.mutex.Unlock()
	m, err = marks.prefs.LoadMark(ctx)
	if err != nil {
		return model.Mark{}, false, fmt.Errorf("loading mark: %w", err)
	}
	if !m.Restorable() {
		return model.Mark{}, false, nil
	}
	marks.mark = m
	if marks.scene != nil {
		if err := marks.scene.RestoreAnchor(ctx, model.AnchorCar, m); err != nil {
			log.Warn(ctx, "restoring car anchor", log.Err("err", err))
		}
	}
	if marks.marker != nil {
		marks.marker.ShowCar(ctx, m)
	}
	return m, true, nil
}

// Mark returns the last placed or loaded mark. The ok result is false
// if there is no such mark.
func (marks *UseCase) Mark() (m model.Mark, ok bool) {
	marks.mutex.Lock()
	defer marks.mutex.Unlock()
	return marks.mark, marks.mark.Restorable()
}
