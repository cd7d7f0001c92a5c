// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/adapter/config/settings"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/marksuc"
)

// Serializable contains the mutable settings which are stored in the
// database as JSON, in addition to the configuration version which
// describes their format.
type Serializable struct {
	Version model.SemVer `json:"version"`

	Settings
}

// Settings contains the mutable settings. There is no mutable and
// invisible setting in this version.
type Settings struct {
	Visible
}

// Visible contains the mutable and visible settings.
type Visible struct {
	Booking struct {
		RetapPolicy *string `json:"retap_policy"`
	} `json:"booking"`
	Marks struct {
		AltitudeOffset *float64 `json:"altitude_offset"`
	} `json:"marks"`
}

// OutOfBoundsSettingsError reports the mutable settings which were out
// of their acceptable range. Those settings are replaced by their
// nearest boundary values.
type OutOfBoundsSettingsError struct {
	Marks struct {
		AltitudeOffset *settings.OutOfRangeError[float64]
	}
}

// Error implements the error interface.
func (e *OutOfBoundsSettingsError) Error() string {
	return fmt.Sprintf(
		"altitude offset is out of bounds: %v", e.Marks.AltitudeOffset,
	)
}

// Mutate overwrites the mutable settings of `c` by `s` settings. A nil
// setting in `s` resets the corresponding setting to its default.
// Invalid settings are reported as cerr.BadRequest errors without
// changing `c`, while out of range settings are adjusted and reported
// as an OutOfBoundsSettingsError.
func (c *Config) Mutate(s Serializable) error {
	if v1 := c.Version(); v1 != s.Version {
		return &cerr.MismatchingSemVerError{v1, s.Version}
	}
	rp := s.Visible.Booking.RetapPolicy
	if rp != nil {
		p, err := model.ParseRetapPolicy(*rp)
		if err != nil {
			return cerr.BadRequest(err)
		}
		name := p.String()
		rp = &name
	}
	ao := s.Visible.Marks.AltitudeOffset
	if err := settings.VerifyFinite(ao); err != nil {
		return cerr.BadRequest(fmt.Errorf("altitude offset: %w", err))
	}
	settings.OverwriteUnconditionally(&c.Usecases.Booking.RetapPolicy, rp)
	settings.Default(
		&c.Usecases.Booking.RetapPolicy, model.RetapPolicyUnbook.String(),
	)
	m := &c.Usecases.Marks
	settings.OverwriteUnconditionally(&m.AltitudeOffset, ao)
	settings.Default(&m.AltitudeOffset, marksuc.DefaultAltitudeOffset)
	if err := settings.VerifyRange(
		&m.AltitudeOffset, m.MinAltitudeOffset, m.MaxAltitudeOffset,
	); err != nil {
		boundsErr := &OutOfBoundsSettingsError{}
		boundsErr.Marks.AltitudeOffset = err
		return boundsErr
	}
	return nil
}

// Serializable returns the mutable settings of `c`.
func (c *Config) Serializable() *Serializable {
	s := &Serializable{Version: c.Version()}
	settings.OverwriteUnconditionally(
		&s.Visible.Booking.RetapPolicy, c.Usecases.Booking.RetapPolicy,
	)
	settings.OverwriteUnconditionally(
		&s.Visible.Marks.AltitudeOffset, c.Usecases.Marks.AltitudeOffset,
	)
	return s
}

// Serialize encodes the mutable settings of `c` as JSON, so they can
// be stored in the database.
func (c *Config) Serialize() ([]byte, error) {
	return json.Marshal(c.Serializable())
}

// NewSerializable converts the version-independent model.Settings into
// the mutable settings of the current configuration version.
func NewSerializable(s *model.Settings) Serializable {
	ser := Serializable{Version: Version}
	settings.OverwriteUnconditionally(
		&ser.Visible.Booking.RetapPolicy, s.Booking.RetapPolicy,
	)
	settings.OverwriteUnconditionally(
		&ser.Visible.Marks.AltitudeOffset, s.Marks.AltitudeOffset,
	)
	return ser
}

// VisibleSettings returns the visible settings of `c`, including the
// immutable ones.
func (c *Config) VisibleSettings() *model.VisibleSettings {
	vs := &model.VisibleSettings{
		ImmutableSettings: &model.ImmutableSettings{
			Logger:      *c.Gin.Logger,
			Driver:      c.Database.Driver,
			Preferences: c.Preferences.Backend,
		},
	}
	settings.OverwriteUnconditionally(
		&vs.Booking.RetapPolicy, c.Usecases.Booking.RetapPolicy,
	)
	settings.OverwriteUnconditionally(
		&vs.Marks.AltitudeOffset, c.Usecases.Marks.AltitudeOffset,
	)
	return vs
}

// Bounds returns the minimum and maximum boundary values of the mutable
// settings. Settings without a boundary are left nil.
func (c *Config) Bounds() (minb, maxb *model.Settings) {
	minb, maxb = &model.Settings{}, &model.Settings{}
	settings.OverwriteUnconditionally(
		&minb.Marks.AltitudeOffset, c.Usecases.Marks.MinAltitudeOffset,
	)
	settings.OverwriteUnconditionally(
		&maxb.Marks.AltitudeOffset, c.Usecases.Marks.MaxAltitudeOffset,
	)
	return minb, maxb
}
