// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sessionrs realizes the AR session resource. The AR client
// reports the camera pose of its rendered frames and its session
// creation failures here.
package sessionrs

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// Session is the geospatial AR session which keeps the reported poses.
type Session interface {
	UpdateFrame(ctx context.Context, pose model.GeospatialPose, st model.TrackingState) error
	ReportFailure(ctx context.Context, kind model.VendorFailure, detail string) model.Advisory
}

type resource struct {
	session Session
}

// Register instantiates a resource adapting the session with the
// relevant REST APIs including:
//  1. PUT request to /api/smartparking/v1/session/pose
//     in order to report the pose and tracking state of a frame,
//  2. POST request to /api/smartparking/v1/session/failures
//     in order to resolve a vendor failure into an advisory.
func Register(r *gin.RouterGroup, session Session) {
	rs := &resource{session: session}
	r.PUT("session/pose", rs.UpdatePose)
	r.POST("session/failures", rs.ReportFailure)
}

func (rs *resource) UpdatePose(c *gin.Context) {
	req := rs.DserUpdatePoseReq(c)
	if req == nil {
		return
	}
	if err := rs.session.UpdateFrame(c, req.Pose, req.State); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (rs *resource) ReportFailure(c *gin.Context) {
	req := rs.DserReportFailureReq(c)
	if req == nil {
		return
	}
	adv := rs.session.ReportFailure(
		c, model.ParseVendorFailure(req.Code), req.Detail,
	)
	c.JSON(http.StatusOK, adv)
}
