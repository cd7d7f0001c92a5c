// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settingsrs exposes the runtime settings of the booking and
// car mark use cases. A PUT rebuilds both use cases and hands the
// current booking over to the new booking use case.
package settingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

type resource struct {
	app *appuc.UseCase
}

// Register adds GET and PUT settings routes to r.
func Register(r *gin.RouterGroup, app *appuc.UseCase) {
	rs := &resource{app: app}
	r.GET("settings", rs.get)
	r.PUT("settings", rs.put)
}

func (rs *resource) get(c *gin.Context) {
	vs, minb, maxb := rs.app.Settings()
	c.JSON(http.StatusOK, SettingsResp{&vs, &minb, &maxb})
}

func (rs *resource) put(c *gin.Context) {
	s, ok := bindSettings(c)
	if !ok {
		return
	}
	vs, minb, maxb, err := rs.app.UpdateSettings(c, s)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SettingsResp{vs, minb, maxb})
}
