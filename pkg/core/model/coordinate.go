// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
)

// Coordinate represents a geographical location with a latitude and
// longitude in the WGS-84 datum. It is embedded in the ParkingLot,
// ParkingPlace, and Mark structs.
type Coordinate struct {
	Lat float64 `json:"latitude"`  // latitude in degrees
	Lon float64 `json:"longitude"` // longitude in degrees
}

// IsZero reports if both latitude and longitude are zero.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// LogValue implements the slog.LogValuer interface.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat),
		slog.Float64("lon", c.Lon),
	)
}

// Validate returns an error if the latitude is not in [-90, 90] or
// the longitude is not in [-180, 180] degrees.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v is out of [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v is out of [-180, 180]", c.Lon)
	}
	return nil
}
