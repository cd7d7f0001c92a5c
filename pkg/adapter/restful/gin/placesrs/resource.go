// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package placesrs realizes the parking places resource, allowing the
// places listing, creation, and booking REST APIs to be accepted and
// delegated to the places and booking use cases respectively.
package placesrs

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/adapter/metrics"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
	"github.com/momeni/smart-parking/pkg/core/usecase/bookinguc"
)

type resource struct {
	app     *appuc.UseCase
	markers bookinguc.Markers
}

// Register instantiates a resource adapting the app use case instance
// with the relevant REST APIs including:
//  1. GET request to /api/smartparking/v1/places
//     in order to list all parking places ordered by their IDs,
//  2. POST request to /api/smartparking/v1/places
//     in order to insert (having an id) or create a parking place,
//  3. GET request to /api/smartparking/v1/places/:pid
//     in order to fetch one parking place,
//  4. PATCH request to /api/smartparking/v1/places/:pid?op=book
//     in order to tap on a place marker, booking or unbooking it.
//
// Created places are passed to the markers, so they appear on the map.
// A POST which loses the id to a concurrent creation gets 409 and may
// be repeated by the client.
func Register(r *gin.RouterGroup, app *appuc.UseCase, markers bookinguc.Markers) {
	rs := &resource{app: app, markers: markers}
	r.GET("places", rs.ListPlaces)
	r.POST("places", rs.CreatePlace)
	r.GET("places/:pid", rs.GetPlace)
	r.PATCH("places/:pid", rs.UpdatePlace)
}

func (rs *resource) ListPlaces(c *gin.Context) {
	pps, err := rs.app.PlacesUseCase().List(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	sort.Slice(pps, func(i, j int) bool {
		return pps[i].ID < pps[j].ID
	})
	if pps == nil {
		pps = []model.ParkingPlace{}
	}
	c.JSON(http.StatusOK, pps)
}

func (rs *resource) CreatePlace(c *gin.Context) {
	req := rs.DserCreatePlaceReq(c)
	if req == nil {
		return
	}
	places := rs.app.PlacesUseCase()
	p := req.ToModel()
	pp := &p
	var err error
	if req.ID != nil {
		err = places.Insert(c, p)
	} else {
		pp, err = places.Create(c, p)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	if rs.markers != nil {
		rs.markers.UpdatePlace(c, *pp)
	}
	c.JSON(http.StatusCreated, pp)
}

func (rs *resource) GetPlace(c *gin.Context) {
	pid, ok := serdser.PlaceID(c)
	if !ok {
		return
	}
	pp, err := rs.app.PlacesUseCase().Get(c, pid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pp)
}

func (rs *resource) UpdatePlace(c *gin.Context) {
	pid, ok := serdser.PlaceID(c)
	if !ok {
		return
	}
	if !rs.DserUpdatePlaceReq(c) {
		return
	}
	res, err := rs.app.BookingUseCase().BookPlace(c, pid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	metrics.ObserveBooking(res)
	c.JSON(http.StatusOK, res)
}
