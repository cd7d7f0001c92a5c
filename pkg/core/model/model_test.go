// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockParkingPlaces(t *testing.T) {
	places := model.MockParkingPlaces()
	require.Len(t, places, 6)
	employed := 0
	for i, p := range places {
		assert.Equal(t, int64(i), p.ID)
		assert.False(t, p.Booked, "seed places may not be booked")
		assert.Equal(t, int64(model.MockParkingLotID), p.ParkingLotID)
		if p.Employed {
			employed++
		}
	}
	assert.Equal(t, 1, employed)
	assert.True(t, places[5].Employed)
}

func TestRetapPolicy(t *testing.T) {
	for _, s := range []string{"unbook", "ignore"} {
		p, err := model.ParseRetapPolicy(s)
		require.NoError(t, err)
		assert.NoError(t, p.Validate())
		assert.Equal(t, s, p.String())
	}
	p, err := model.ParseRetapPolicy("toggle")
	assert.ErrorIs(t, err, model.ErrUnknownRetapPolicy)
	assert.Equal(t, model.RetapPolicyInvalid, p)
	assert.Equal(t, model.RetapPolicyError(0), p.Validate())
	assert.Panics(t, func() { _ = p.String() })
}

func TestVendorFailureAdvice(t *testing.T) {
	for _, tc := range []struct {
		code, msg string
	}{
		{
			"user-declined-installation",
			"Please install Google Play Services for AR",
		},
		{"apk-too-old", "Please update ARCore"},
		{"sdk-too-old", "Please update this app"},
		{"device-not-compatible", "This device does not support AR"},
		{
			"camera-not-available",
			"Camera not available. Try restarting the app.",
		},
	} {
		f := model.ParseVendorFailure(tc.code)
		a := f.Advise("ignored detail")
		assert.Equal(t, tc.code, a.Code)
		assert.Equal(t, tc.msg, a.Message)
	}
	f := model.ParseVendorFailure("out-of-memory")
	assert.Equal(t, model.VendorFailureUnknown, f)
	assert.Equal(t, model.Advisory{
		Code:    "unknown",
		Message: "Failed to create AR session: out of memory",
	}, f.Advise("out of memory"))
	assert.Equal(t, "unknown", model.VendorFailure(42).Code())
}

func TestPlaceMarker(t *testing.T) {
	places := model.MockParkingPlaces()
	m := model.PlaceMarker(places[0])
	assert.True(t, m.Visible)
	assert.Equal(t, model.ColorFreePlace, m.Color)
	require.NotNil(t, m.PlaceID)
	assert.Equal(t, int64(0), *m.PlaceID)

	places[1].Booked = true
	assert.Equal(t, model.ColorBookedPlace, model.PlaceMarker(places[1]).Color)
	assert.False(t, model.PlaceMarker(places[5]).Visible)

	b, err := json.Marshal(model.ColorUser)
	require.NoError(t, err)
	assert.Equal(t, `"#ff61bd10"`, string(b))
}

func TestMarkRestorable(t *testing.T) {
	m := model.Mark{Coordinate: model.Coordinate{Lat: 1, Lon: 2}, Alt: 3}
	assert.True(t, m.Restorable())
	m.Alt = 0
	assert.False(t, m.Restorable())
	assert.False(t, model.Mark{}.Restorable())
}

func TestSemVerText(t *testing.T) {
	var sv model.SemVer
	require.NoError(t, sv.UnmarshalText([]byte("1.2.3")))
	assert.Equal(t, model.SemVer{1, 2, 3}, sv)
	assert.Error(t, sv.UnmarshalText([]byte("1.x.3")))
	assert.Equal(t, "1.2.3", sv.String())
	require.NoError(t, sv.UnmarshalText([]byte("v2.1")))
	assert.Equal(t, model.SemVer{2, 1, 0}, sv)
	assert.Error(t, sv.UnmarshalText([]byte("1.2.3.4")))
	assert.Error(t, sv.UnmarshalText([]byte("1.-2.3")))
	assert.Equal(t, model.SemVer{2, 1, 0}, sv)
}

func TestCoordinateValidate(t *testing.T) {
	assert.NoError(t, model.MockParkingLot().Validate())
	assert.NoError(t, model.Coordinate{Lat: -90, Lon: 180}.Validate())
	assert.Error(t, model.Coordinate{Lat: 90.5}.Validate())
	assert.Error(t, model.Coordinate{Lon: -180.01}.Validate())
}
