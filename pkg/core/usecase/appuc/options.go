// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package appuc

import "errors"

// Option represents an optional setting for the application use case.
type Option func(uc *UseCase) error

// WithScene sets the AR scene which is passed to the booking and car
// mark use cases.
func WithScene(s Scene) Option {
	return func(uc *UseCase) error {
		if uc.scene != nil {
			return errors.New("scene is already set")
		}
		uc.scene = s
		return nil
	}
}

// WithMarkers sets the map view which is passed to the booking and car
// mark use cases.
func WithMarkers(m Markers) Option {
	return func(uc *UseCase) error {
		if uc.markers != nil {
			return errors.New("markers are already set")
		}
		uc.markers = m
		return nil
	}
}
