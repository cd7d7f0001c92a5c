// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/momeni/smart-parking/pkg/adapter/config/settings"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
)

// Usecases contains the settings of the supported use cases.
type Usecases struct {
	Booking Booking `mapstructure:"booking"` // booking coordinator settings
	Marks   Marks   `mapstructure:"marks"`   // car mark settings
}

// ValidateAndNormalize validates the use cases settings and fills
// their defaults.
func (u *Usecases) ValidateAndNormalize() error {
	if err := u.Booking.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	if err := u.Marks.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("marks: %w", err)
	}
	return nil
}

// Clone creates a deep copy of `u`.
func (u Usecases) Clone() Usecases {
	var uu Usecases
	settings.OverwriteUnconditionally(
		&uu.Booking.RetapPolicy, u.Booking.RetapPolicy,
	)
	settings.OverwriteUnconditionally(
		&uu.Marks.AltitudeOffset, u.Marks.AltitudeOffset,
	)
	settings.OverwriteUnconditionally(
		&uu.Marks.MinAltitudeOffset, u.Marks.MinAltitudeOffset,
	)
	settings.OverwriteUnconditionally(
		&uu.Marks.MaxAltitudeOffset, u.Marks.MaxAltitudeOffset,
	)
	return uu
}

// Booking contains the booking coordinator settings.
type Booking struct {
	// RetapPolicy decides how a tap on the booked place is handled.
	// It may be unbook (default) or ignore.
	RetapPolicy *string `yaml:"retap-policy" mapstructure:"retap-policy"`
}

// ValidateAndNormalize ensures that the retap policy is known.
func (b *Booking) ValidateAndNormalize() error {
	settings.Default(&b.RetapPolicy, model.RetapPolicyUnbook.String())
	p, err := model.ParseRetapPolicy(*b.RetapPolicy)
	if err != nil {
		return err
	}
	*b.RetapPolicy = p.String()
	return nil
}

// NewUseCase creates a booking coordinator based on the `b` settings.
// The opts may carry the scene and markers collaborators.
func (b Booking) NewUseCase(
	p repo.Pool, places repo.Places, opts ...bookinguc.Option,
) (*bookinguc.UseCase, error) {
	if b.RetapPolicy != nil {
		rp, err := model.ParseRetapPolicy(*b.RetapPolicy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bookinguc.WithRetapPolicy(rp))
	}
	return bookinguc.New(p, places, opts...)
}

// Marks contains the car mark settings. The altitude offset is
// mutable by end-users within its minimum and maximum boundaries.
type Marks struct {
	AltitudeOffset    *float64 `yaml:"altitude-offset" mapstructure:"altitude-offset"`
	MinAltitudeOffset *float64 `yaml:"altitude-offset-minimum" mapstructure:"altitude-offset-minimum"`
	MaxAltitudeOffset *float64 `yaml:"altitude-offset-maximum" mapstructure:"altitude-offset-maximum"`
}

// ValidateAndNormalize fills the default altitude offset and ensures
// that it lies between its boundaries.
func (m *Marks) ValidateAndNormalize() error {
	settings.Default(&m.AltitudeOffset, marksuc.DefaultAltitudeOffset)
	for _, f := range []*float64{
		m.AltitudeOffset, m.MinAltitudeOffset, m.MaxAltitudeOffset,
	} {
		if err := settings.VerifyFinite(f); err != nil {
			return err
		}
	}
	if err := settings.VerifyRange(
		&m.AltitudeOffset, m.MinAltitudeOffset, m.MaxAltitudeOffset,
	); err != nil {
		return fmt.Errorf(
			"VerifyRange(altitude offset=%v, minb=%v, maxb=%v): %w",
			err.Value, m.MinAltitudeOffset, m.MaxAltitudeOffset, err,
		)
	}
	return nil
}

// NewUseCase creates a car mark use case based on the `m` settings.
func (m Marks) NewUseCase(
	prefs repo.Preferences, opts ...marksuc.Option,
) (*marksuc.UseCase, error) {
	if m.AltitudeOffset != nil {
		opts = append(opts, marksuc.WithAltitudeOffset(*m.AltitudeOffset))
	}
	return marksuc.New(prefs, opts...)
}
