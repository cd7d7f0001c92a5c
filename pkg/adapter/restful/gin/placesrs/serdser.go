// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package placesrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// placeCreateReq has no booked field. New places start free and only
// the booking resource (PATCH ?op=book) books them.
type placeCreateReq struct {
	ID           *int64   `json:"id" binding:"omitempty,min=0"`
	Lat          *float64 `json:"latitude" binding:"required,latitude"`
	Lon          *float64 `json:"longitude" binding:"required,longitude"`
	Employed     bool     `json:"employed"`
	ParkingLotID int64    `json:"parking_lot_id" binding:"min=0"`
}

func (req *placeCreateReq) ToModel() model.ParkingPlace {
	p := model.ParkingPlace{
		Coordinate:   model.Coordinate{Lat: *req.Lat, Lon: *req.Lon},
		Employed:     req.Employed,
		ParkingLotID: req.ParkingLotID,
	}
	if req.ID != nil {
		p.ID = *req.ID
	}
	return p
}

type placeUpdateReq struct {
	Op string `form:"op" binding:"required,oneof=book"`
}

func (rs *resource) DserCreatePlaceReq(c *gin.Context) *placeCreateReq {
	req := &placeCreateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}

func (rs *resource) DserUpdatePlaceReq(c *gin.Context) bool {
	req := &placeUpdateReq{}
	return serdser.Bind(c, req, binding.Query)
}
