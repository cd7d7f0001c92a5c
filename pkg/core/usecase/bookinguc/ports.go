// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookinguc

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// Scene is the AR scene which is asked to anchor the booked place.
// CameraPose must return a cerr.TrackingUnavailable error while the
// scene is not tracking. RestoreAnchor must accept an anchor before
// tracking starts and place it once the scene tracks, taking the
// camera altitude when m.Alt is zero.
type Scene interface {
	CameraPose() (model.GeospatialPose, error)
	PlaceAnchor(ctx context.Context, key model.AnchorKey, m model.Mark) (model.Anchor, error)
	RestoreAnchor(ctx context.Context, key model.AnchorKey, m model.Mark) error
	DetachAnchor(ctx context.Context, key model.AnchorKey) error
}

// Markers receives the changed places, so their map markers may be
// recolored.
type Markers interface {
	UpdatePlace(ctx context.Context, p model.ParkingPlace)
}
