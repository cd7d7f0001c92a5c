// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingrs realizes the current booking resource.
package bookingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

type resource struct {
	app *appuc.UseCase
}

// BookingResp reports the currently booked place ID, or null.
type BookingResp struct {
	PlaceID *int64 `json:"place_id"`
}

// Register instantiates a resource adapting the app use case instance
// with the GET request to /api/smartparking/v1/booking.
func Register(r *gin.RouterGroup, app *appuc.UseCase) {
	rs := &resource{app: app}
	r.GET("booking", rs.FetchBooking)
}

func (rs *resource) FetchBooking(c *gin.Context) {
	resp := BookingResp{}
	if id, ok := rs.app.BookingUseCase().Current(); ok {
		resp.PlaceID = &id
	}
	c.JSON(http.StatusOK, resp)
}
