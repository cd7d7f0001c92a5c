// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
)

// MarkerKind indicates what a map marker stands for.
type MarkerKind string

// Supported marker kinds.
const (
	MarkerUser  MarkerKind = "user"  // current camera position
	MarkerCar   MarkerKind = "car"   // parked car mark
	MarkerPlace MarkerKind = "place" // one parking place
)

// Color is an ARGB color which is used for tinting marker icons.
type Color struct {
	A, R, G, B uint8
}

// Marker icon colors.
var (
	ColorUser        = Color{A: 255, R: 97, G: 189, B: 16}
	ColorCar         = Color{A: 255, R: 125, G: 125, B: 125}
	ColorFreePlace   = Color{A: 255, R: 45, G: 92, B: 163}
	ColorBookedPlace = Color{A: 255, R: 196, G: 43, B: 28}
)

// String returns the #AARRGGBB hexadecimal form of c.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Marker is the state of one marker on the map view.
// Place markers carry the place ID as their tag, so a tap on them can
// be resolved to a booking request.
type Marker struct {
	Kind       MarkerKind `json:"kind"`
	PlaceID    *int64     `json:"place_id,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
	Rotation   float64    `json:"rotation"`
	Color      Color      `json:"color"`
	Visible    bool       `json:"visible"`
	Flat       bool       `json:"flat"`
}

// PlaceMarker builds the marker of pp parking place. Employed places
// are hidden and booked places are tinted differently from the free
// places.
func PlaceMarker(pp ParkingPlace) Marker {
	id := pp.ID
	m := Marker{
		Kind:       MarkerPlace,
		PlaceID:    &id,
		Coordinate: pp.Coordinate,
		Color:      ColorFreePlace,
		Visible:    !pp.Employed,
	}
	if pp.Booked {
		m.Color = ColorBookedPlace
	}
	return m
}

// LogValue implements the slog.LogValuer interface.
func (m Marker) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", string(m.Kind)),
		slog.Any("coordinate", m.Coordinate),
		slog.Bool("visible", m.Visible),
	}
	if m.PlaceID != nil {
		attrs = append(attrs, slog.Int64("place", *m.PlaceID))
	}
	return slog.GroupValue(attrs...)
}
