// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"log/slog"
	"time"
)

// TrackingState describes if the geospatial tracking of an AR scene
// can be trusted. Only the TrackingStateTracking state allows anchors
// to be placed or the camera pose to be used.
type TrackingState int

// Valid values for the TrackingState enum.
const (
	TrackingStateInvalid TrackingState = iota

	TrackingStateTracking // pose is reliable
	TrackingStatePaused   // tracking is lost temporarily
	TrackingStateStopped  // tracking was stopped and will not resume
)

// ErrUnknownTrackingState indicates that a given string may not be
// parsed as a valid/known tracking state.
var ErrUnknownTrackingState = errors.New("unknown tracking state")

// String converts the TrackingState enum to a string.
// Invalid tracking state is reported as "invalid".
func (s TrackingState) String() string {
	switch s {
	case TrackingStateTracking:
		return "tracking"
	case TrackingStatePaused:
		return "paused"
	case TrackingStateStopped:
		return "stopped"
	default:
		return "invalid"
	}
}

// ParseTrackingState parses the given string and returns a
// TrackingState. For invalid strings, TrackingStateInvalid and
// ErrUnknownTrackingState will be returned.
func ParseTrackingState(s string) (TrackingState, error) {
	switch s {
	case "tracking":
		return TrackingStateTracking, nil
	case "paused":
		return TrackingStatePaused, nil
	case "stopped":
		return TrackingStateStopped, nil
	default:
		return TrackingStateInvalid, ErrUnknownTrackingState
	}
}

// GeospatialPose is the camera pose of an AR scene in the WGS-84
// frame as reported for each rendered frame.
type GeospatialPose struct {
	Mark

	// Heading is the camera heading in degrees, clockwise from north.
	Heading float64 `json:"heading"`

	HorizontalAccuracy float64 `json:"horizontal_accuracy"` // meters
	VerticalAccuracy   float64 `json:"vertical_accuracy"`   // meters
	HeadingAccuracy    float64 `json:"heading_accuracy"`    // degrees
}

// LogValue implements the slog.LogValuer interface.
func (gp GeospatialPose) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("mark", gp.Mark),
		slog.Float64("heading", gp.Heading),
	)
}

// AnchorKey names one of the anchors which may exist in the AR scene
// simultaneously. At most one anchor exists for each key.
type AnchorKey string

// Supported anchor keys.
const (
	AnchorCar     AnchorKey = "car"     // parked car mark
	AnchorParking AnchorKey = "parking" // currently booked place
)

// Anchor is a fixed pose in the AR scene, created at a geospatial
// mark with the identity rotation quaternion.
type Anchor struct {
	ID        string    `json:"id"`
	Key       AnchorKey `json:"key"`
	Mark      Mark      `json:"mark"`
	CreatedAt time.Time `json:"created_at"`
}
