// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookinguc

import (
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// Option is a functional option for the booking use case.
type Option func(uc *UseCase) error

// WithRetapPolicy option configures what happens when the currently
// booked place is tapped again. The default policy is unbooking it.
func WithRetapPolicy(p model.RetapPolicy) Option {
	return func(uc *UseCase) error {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("retap policy: %w", err)
		}
		if uc.retap != model.RetapPolicyInvalid {
			return errors.New("retap policy is already configured")
		}
		uc.retap = p
		return nil
	}
}

// WithScene option makes the use case anchor the booked place in the
// given AR scene. Without a scene, no anchor is placed.
func WithScene(s Scene) Option {
	return func(uc *UseCase) error {
		if s == nil {
			return errors.New("scene is nil")
		}
		uc.scene = s
		return nil
	}
}

// WithMarkers option makes the use case report the changed places
// to the given map markers.
func WithMarkers(m Markers) Option {
	return func(uc *UseCase) error {
		if m == nil {
			return errors.New("markers is nil")
		}
		uc.markers = m
		return nil
	}
}
