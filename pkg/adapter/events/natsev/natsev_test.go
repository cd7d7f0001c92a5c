// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package natsev_test

import (
	"testing"

	"github.com/momeni/smart-parking/pkg/adapter/events/natsev"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	pm := model.PlaceMarker(model.ParkingPlace{ID: 4})
	assert.Equal(t, "smartparking.markers.place.4", natsev.Subject(pm))
	assert.Equal(t, "smartparking.markers.user", natsev.Subject(
		model.Marker{Kind: model.MarkerUser},
	))
	assert.Equal(t, "smartparking.markers.car", natsev.Subject(
		model.Marker{Kind: model.MarkerCar},
	))
}
