// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package lotsrs realizes the parking lots resource.
package lotsrs

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

type resource struct {
	app *appuc.UseCase
}

// Register instantiates a resource adapting the app use case instance
// with the relevant REST APIs including:
//  1. GET request to /api/smartparking/v1/lots
//     in order to list all parking lots ordered by their IDs,
//  2. POST request to /api/smartparking/v1/lots
//     in order to insert (having an id) or create a parking lot,
//  3. GET request to /api/smartparking/v1/lots/:lid
//     in order to fetch one parking lot.
//
// A POST which loses the id to a concurrent creation gets 409 and may
// be repeated by the client.
func Register(r *gin.RouterGroup, app *appuc.UseCase) {
	rs := &resource{app: app}
	r.GET("lots", rs.ListLots)
	r.POST("lots", rs.CreateLot)
	r.GET("lots/:lid", rs.GetLot)
}

type lotCreateReq struct {
	ID   *int64   `json:"id" binding:"omitempty,min=0"`
	Name string   `json:"name" binding:"required"`
	Lat  *float64 `json:"latitude" binding:"required,latitude"`
	Lon  *float64 `json:"longitude" binding:"required,longitude"`
}

func (rs *resource) ListLots(c *gin.Context) {
	lots, err := rs.app.PlacesUseCase().ListLots(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	sort.Slice(lots, func(i, j int) bool {
		return lots[i].ID < lots[j].ID
	})
	if lots == nil {
		lots = []model.ParkingLot{}
	}
	c.JSON(http.StatusOK, lots)
}

func (rs *resource) CreateLot(c *gin.Context) {
	req := &lotCreateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return
	}
	l := model.ParkingLot{
		Name:       req.Name,
		Coordinate: model.Coordinate{Lat: *req.Lat, Lon: *req.Lon},
	}
	places := rs.app.PlacesUseCase()
	pl := &l
	var err error
	if req.ID != nil {
		l.ID = *req.ID
		err = places.InsertLot(c, l)
	} else {
		pl, err = places.CreateLot(c, l)
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, pl)
}

func (rs *resource) GetLot(c *gin.Context) {
	lid, err := strconv.ParseInt(c.Param("lid"), 10, 64)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "lid", "Path param lid is not an integer.")
		c.JSON(http.StatusBadRequest, errs)
		return
	}
	pl, err := rs.app.PlacesUseCase().GetLot(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, pl)
}
