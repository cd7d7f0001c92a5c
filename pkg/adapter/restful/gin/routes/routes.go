// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/db/gormdb/settingsrp"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/bookingrs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/lotsrs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/maprs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/marksrs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/placesrs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/sessionrs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/settingsrs"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
	"github.com/momeni/smart-parking/pkg/core/usecase/appuc"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/smartparking/v1"

// Session is the AR session which serves both the use cases (as their
// scene) and the session resource.
type Session interface {
	appuc.Scene
	sessionrs.Session
}

// View is the map view which serves both the use cases (as their
// markers) and the map resource.
type View interface {
	appuc.Markers
	maprs.View
	SetPlaces(ctx context.Context, pps []model.ParkingPlace)
}

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like bookinguc and each repository package is named like placesrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like placesrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance.
//
// The prefs store keeps the car mark, while the sess and view
// collaborators stand for the AR scene and the map. The view is filled
// with the stored places before Register returns.
// Possible errors will be returned after possible wrapping.
// Actual instantiation of use case objects are delegated to the
// c Config instance and the appuc use case.
func Register(
	ctx context.Context,
	e *gin.Engine,
	p repo.Pool,
	c *config.Config,
	prefs repo.Preferences,
	sess Session,
	view View,
) (*appuc.UseCase, error) {
	settingsRepo := settingsrp.New(c)
	appUseCase, err := c.NewAppUseCase(
		p, settingsRepo,
		c.NewPlacesRepo(), c.NewLotsRepo(), c.NewSchemaRepo(),
		prefs,
		appuc.WithScene(sess),
		appuc.WithMarkers(view),
	)
	if err != nil {
		return nil, fmt.Errorf("creating application use case: %w", err)
	}
	err = appUseCase.Reload(ctx)
	if err != nil {
		return nil, fmt.Errorf("reloading use cases based on DB: %w", err)
	}
	pps, err := appUseCase.PlacesUseCase().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing places for the map: %w", err)
	}
	view.SetPlaces(ctx, pps)

	r := e.Group(BasePath)
	settingsrs.Register(r, appUseCase)
	lotsrs.Register(r, appUseCase)
	placesrs.Register(r, appUseCase, view)
	bookingrs.Register(r, appUseCase)
	marksrs.Register(r, appUseCase)
	sessionrs.Register(r, sess)
	maprs.Register(r, view)
	return appUseCase, nil
}
