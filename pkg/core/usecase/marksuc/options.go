// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package marksuc

import (
	"errors"
	"fmt"
	"math"
)

// Option is a functional option for the car mark use case.
type Option func(uc *UseCase) error

// WithAltitudeOffset option configures how many meters are added to
// the camera altitude of a new mark. The offset must be a finite
// number and may not exceed 100 meters in magnitude.
func WithAltitudeOffset(offset float64) Option {
	return func(uc *UseCase) error {
		if math.IsNaN(offset) || math.Abs(offset) > 100 {
			return fmt.Errorf("altitude offset (%v) is out of range", offset)
		}
		if uc.altitudeOffset != nil {
			return errors.New("altitude offset is already configured")
		}
		uc.altitudeOffset = &offset
		return nil
	}
}

// WithScene option attaches the AR scene. Without a scene, marks may
// be loaded but not placed.
func WithScene(s Scene) Option {
	return func(uc *UseCase) error {
		if s == nil {
			return errors.New("scene is nil")
		}
		uc.scene = s
		return nil
	}
}

// WithCarMarker option makes the use case show the mark on a map.
func WithCarMarker(m CarMarker) Option {
	return func(uc *UseCase) error {
		if m == nil {
			return errors.New("car marker is nil")
		}
		uc.marker = m
		return nil
	}
}
