// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sessionrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
)

type rawPoseUpdateReq struct {
	State              string  `json:"state" binding:"required,oneof=tracking paused stopped"`
	Lat                float64 `json:"latitude" binding:"latitude"`
	Lon                float64 `json:"longitude" binding:"longitude"`
	Alt                float64 `json:"altitude"`
	Heading            float64 `json:"heading" binding:"gte=0,lt=360"`
	HorizontalAccuracy float64 `json:"horizontal_accuracy" binding:"gte=0"`
	VerticalAccuracy   float64 `json:"vertical_accuracy" binding:"gte=0"`
	HeadingAccuracy    float64 `json:"heading_accuracy" binding:"gte=0"`
}

type poseUpdateReq struct {
	Pose  model.GeospatialPose
	State model.TrackingState
}

type failureReportReq struct {
	Code   string `json:"code" binding:"required"`
	Detail string `json:"detail"`
}

func (rs *resource) DserUpdatePoseReq(c *gin.Context) *poseUpdateReq {
	req := &rawPoseUpdateReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	// oneof binding ensures the state is known
	st, _ := model.ParseTrackingState(req.State)
	return &poseUpdateReq{
		Pose: model.GeospatialPose{
			Mark: model.Mark{
				Coordinate: model.Coordinate{Lat: req.Lat, Lon: req.Lon},
				Alt:        req.Alt,
			},
			Heading:            req.Heading,
			HorizontalAccuracy: req.HorizontalAccuracy,
			VerticalAccuracy:   req.VerticalAccuracy,
			HeadingAccuracy:    req.HeadingAccuracy,
		},
		State: st,
	}
}

func (rs *resource) DserReportFailureReq(c *gin.Context) *failureReportReq {
	req := &failureReportReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return req
}
