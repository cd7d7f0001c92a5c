// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "log/slog"

// Settings contains those settings which are mutable & invisible,
// that is, write-only settings. It also embeds the VisibleSettings
// struct, so it effectively contains all kinds of settings.
// There is no mutable & invisible setting in this version.
//
// This model layer struct is required (in addition to its adapters
// layer counterpart) because settings should be reported to and taken
// from end-users as required from the use cases layer. A repository
// package is responsible to manage conversion between these structs.
type Settings struct {
	VisibleSettings
}

// VisibleSettings contains settings which are visible by end-users.
// These settings may be mutable or immutable. The immutable & visible
// settings are managed by the embedded ImmutableSettings struct.
// When it is desired to serialize and transmit settings to end-users,
// the ImmutableSettings pointer should be non-nil and its fields should
// be poppulated. However, when it is desired to fetch settings from
// end-users and deserialize them, the ImmutableSettings pointer should
// be set to nil in order to abandon them.
type VisibleSettings struct {
	// Booking contains the booking coordinator related settings.
	Booking BookingSettings `json:"booking"`

	// Marks contains the car mark placement related settings.
	Marks MarksSettings `json:"marks"`

	*ImmutableSettings
}

// LogValue implements slog.LogValuer interface.
func (vs VisibleSettings) LogValue() slog.Value {
	var attrs []slog.Attr
	if p := vs.Booking.RetapPolicy; p != nil {
		attrs = append(attrs, slog.String("retap_policy", *p))
	}
	if o := vs.Marks.AltitudeOffset; o != nil {
		attrs = append(attrs, slog.Float64("altitude_offset", *o))
	}
	return slog.GroupValue(attrs...)
}

// BookingSettings represents the booking coordinator settings.
// These settings are considered both visible and mutable.
type BookingSettings struct {
	// RetapPolicy is the name of the effective RetapPolicy.
	RetapPolicy *string `json:"retap_policy"`
}

// MarksSettings represents the car mark placement settings.
// These settings are considered both visible and mutable.
type MarksSettings struct {
	// AltitudeOffset is added to the camera altitude (in meters)
	// when a car mark is placed.
	AltitudeOffset *float64 `json:"altitude_offset"`
}

// ImmutableSettings contains settings which are immutable (and can be
// configured only using the configuration file or environment variables
// alone), but are visible by end-users.
type ImmutableSettings struct {
	// Logger reports if server-side REST API logging is enabled.
	Logger bool `json:"logger"`

	// Driver is the name of the database driver in use.
	Driver string `json:"database_driver"`

	// Preferences is the name of the preference store backend.
	Preferences string `json:"preferences_backend"`
}
