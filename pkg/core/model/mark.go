// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "log/slog"

// Mark models the remembered location of the user's parked car.
// It is a geographical coordinate plus an altitude (in meters above
// the WGS-84 ellipsoid) which is used for placing an anchor in the
// AR scene. The mark is persisted as three independent scalars in
// the preference store and is only restorable when all of them are
// non-zero (see the Restorable method).
type Mark struct {
	Coordinate
	Alt float64 `json:"altitude"` // altitude in meters
}

// Restorable reports if the m mark may be restored after loading it
// from the preference store. Missing scalars are loaded as zero, so
// a mark with any zero component is considered as not saved.
func (m Mark) Restorable() bool {
	return m.Lat != 0 && m.Lon != 0 && m.Alt != 0
}

// LogValue implements the slog.LogValuer interface.
func (m Mark) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", m.Lat),
		slog.Float64("lon", m.Lon),
		slog.Float64("alt", m.Alt),
	)
}
