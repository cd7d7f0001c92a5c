// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package marksrs realizes the car mark resource.
package marksrs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/adapter/metrics"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

type resource struct {
	app *appuc.UseCase
}

// Register instantiates a resource adapting the app use case instance
// with the relevant REST APIs including:
//  1. POST request to /api/smartparking/v1/marks
//     in order to mark the car at the current camera pose,
//  2. GET request to /api/smartparking/v1/marks
//     in order to fetch the last car mark.
func Register(r *gin.RouterGroup, app *appuc.UseCase) {
	rs := &resource{app: app}
	r.POST("marks", rs.PlaceMark)
	r.GET("marks", rs.FetchMark)
}

func (rs *resource) PlaceMark(c *gin.Context) {
	m, err := rs.app.MarksUseCase().PlaceMark(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	metrics.ObserveMark()
	c.JSON(http.StatusCreated, m)
}

func (rs *resource) FetchMark(c *gin.Context) {
	m, ok := rs.app.MarksUseCase().Mark()
	if !ok {
		serdser.SerErr(c, cerr.NotFound(errors.New("no car mark")))
		return
	}
	c.JSON(http.StatusOK, m)
}
