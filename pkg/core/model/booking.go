// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
)

// BookingOutcome describes the effect of a single booking request.
type BookingOutcome int

// Valid values for the BookingOutcome enum.
const (
	BookingOutcomeInvalid BookingOutcome = iota

	BookingOutcomeBooked    // target place is booked now
	BookingOutcomeUnbooked  // target place was booked and is released
	BookingOutcomeUnchanged // target place was booked and remains so
)

// String returns the lower-case name of the o outcome.
// Invalid outcomes are reported with their numeric value.
func (o BookingOutcome) String() string {
	switch o {
	case BookingOutcomeBooked:
		return "booked"
	case BookingOutcomeUnbooked:
		return "unbooked"
	case BookingOutcomeUnchanged:
		return "unchanged"
	default:
		return fmt.Sprintf("invalid(%d)", int(o))
	}
}

// MarshalText implements encoding.TextMarshaler, so outcomes are
// reported by their names in JSON responses and published events.
func (o BookingOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// BookingResult reports the settled state after a booking request.
type BookingResult struct {
	// Outcome describes what happened to the target place.
	Outcome BookingOutcome `json:"outcome"`

	// Place is the target place as persisted after the request.
	Place ParkingPlace `json:"place"`

	// Released is the previously booked place which was unbooked in
	// favor of the target place, or nil if there was no such place.
	Released *ParkingPlace `json:"released,omitempty"`

	// AnchorPlaced reports if the parking anchor could be placed in
	// the AR scene for a newly booked place. It is false when scene
	// tracking was unavailable, which leaves the booking persisted.
	AnchorPlaced bool `json:"anchor_placed"`
}

// LogValue implements the slog.LogValuer interface.
func (br BookingResult) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("outcome", br.Outcome.String()),
		slog.Int64("place", br.Place.ID),
		slog.Bool("anchor", br.AnchorPlaced),
	}
	if br.Released != nil {
		attrs = append(attrs, slog.Int64("released", br.Released.ID))
	}
	return slog.GroupValue(attrs...)
}
