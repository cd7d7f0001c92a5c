// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package maprs exposes the map markers.
package maprs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// View provides a snapshot of the map markers.
type View interface {
	Markers() []model.Marker
}

type resource struct {
	view View
}

// Register adds GET /api/smartparking/v1/map/markers to r.
func Register(r *gin.RouterGroup, view View) {
	rs := &resource{view: view}
	r.GET("map/markers", rs.ListMarkers)
}

func (rs *resource) ListMarkers(c *gin.Context) {
	c.JSON(http.StatusOK, rs.view.Markers())
}
