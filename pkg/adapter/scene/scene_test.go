// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package scene_test

import (
	"context"
	"testing"
	"time"

	"github.com/momeni/smart-parking/pkg/adapter/mapview"
	"github.com/momeni/smart-parking/pkg/adapter/scene"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pose = model.GeospatialPose{
	Mark: model.Mark{
		Coordinate: model.Coordinate{Lat: 55.7515, Lon: 37.618},
		Alt:        150,
	},
	Heading: 30,
}

func TestTracking(t *testing.T) {
	ctx := context.Background()
	v := mapview.New()
	s := scene.New(scene.WithUserTracker(v))

	_, err := s.CameraPose()
	assert.True(t, cerr.Is(err, cerr.KindTrackingUnavailable))

	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	got, err := s.CameraPose()
	require.NoError(t, err)
	assert.Equal(t, pose, got)
	assert.True(t, v.Markers()[0].Visible)

	require.NoError(t, s.UpdateFrame(
		ctx, model.GeospatialPose{}, model.TrackingStatePaused,
	))
	assert.Equal(t, model.TrackingStatePaused, s.State())
	_, err = s.CameraPose()
	assert.True(t, cerr.Is(err, cerr.KindTrackingUnavailable))
}

func TestUpdateFrameValidation(t *testing.T) {
	ctx := context.Background()
	s := scene.New()
	bad := pose
	bad.Lat = 91
	err := s.UpdateFrame(ctx, bad, model.TrackingStateTracking)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest))
	err = s.UpdateFrame(ctx, pose, model.TrackingStateInvalid)
	assert.True(t, cerr.Is(err, cerr.KindBadRequest))
	assert.Equal(t, model.TrackingStateStopped, s.State())
}

func TestAnchors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := scene.New(scene.WithClock(func() time.Time { return now }))

	_, err := s.PlaceAnchor(ctx, model.AnchorCar, pose.Mark)
	assert.True(t, cerr.Is(err, cerr.KindTrackingUnavailable))
	assert.Empty(t, s.Anchors())

	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	a1, err := s.PlaceAnchor(ctx, model.AnchorCar, pose.Mark)
	require.NoError(t, err)
	assert.Equal(t, now, a1.CreatedAt)
	a2, err := s.PlaceAnchor(ctx, model.AnchorCar, pose.Mark)
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a2.ID)
	_, err = s.PlaceAnchor(ctx, model.AnchorParking, pose.Mark)
	require.NoError(t, err)

	as := s.Anchors()
	require.Len(t, as, 2)
	assert.Equal(t, a2, as[0])
	assert.Equal(t, model.AnchorParking, as[1].Key)

	require.NoError(t, s.DetachAnchor(ctx, model.AnchorParking))
	require.NoError(t, s.DetachAnchor(ctx, model.AnchorParking))
	assert.Len(t, s.Anchors(), 1)
}

func TestRestoredAnchorsWaitForTracking(t *testing.T) {
	ctx := context.Background()
	s := scene.New()
	car := model.Mark{
		Coordinate: model.Coordinate{Lat: 55.75, Lon: 37.61}, Alt: 143,
	}
	parking := model.Mark{Coordinate: model.Coordinate{Lat: 55.7517, Lon: 37.6183}}
	require.NoError(t, s.RestoreAnchor(ctx, model.AnchorCar, car))
	require.NoError(t, s.RestoreAnchor(ctx, model.AnchorParking, parking))
	assert.Empty(t, s.Anchors(), "nothing is placed before tracking")

	require.NoError(t, s.UpdateFrame(
		ctx, model.GeospatialPose{}, model.TrackingStatePaused,
	))
	assert.Empty(t, s.Anchors())

	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	as := s.Anchors()
	require.Len(t, as, 2)
	assert.Equal(t, car, as[0].Mark)
	wantParking := parking
	wantParking.Alt = pose.Alt
	assert.Equal(t, wantParking, as[1].Mark, "zero altitude takes the camera one")

	// pending anchors are placed only once
	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	assert.Equal(t, as, s.Anchors())
}

func TestRestoredAnchorWhileTracking(t *testing.T) {
	ctx := context.Background()
	s := scene.New()
	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	require.NoError(t, s.RestoreAnchor(ctx, model.AnchorCar, pose.Mark))
	require.Len(t, s.Anchors(), 1)
}

func TestDetachDropsPendingAnchor(t *testing.T) {
	ctx := context.Background()
	s := scene.New()
	require.NoError(t, s.RestoreAnchor(ctx, model.AnchorParking, pose.Mark))
	require.NoError(t, s.DetachAnchor(ctx, model.AnchorParking))
	require.NoError(t, s.UpdateFrame(ctx, pose, model.TrackingStateTracking))
	assert.Empty(t, s.Anchors())
}

func TestReportFailure(t *testing.T) {
	s := scene.New()
	adv := s.ReportFailure(
		context.Background(), model.VendorFailureApkTooOld, "",
	)
	assert.Equal(t, "apk-too-old", adv.Code)
	assert.Equal(t, "Please update ARCore", adv.Message)

	adv = s.ReportFailure(context.Background(), model.VendorFailureUnknown, "boom")
	assert.Equal(t, "unknown", adv.Code)
	assert.Equal(t, "Failed to create AR session: boom", adv.Message)
}
