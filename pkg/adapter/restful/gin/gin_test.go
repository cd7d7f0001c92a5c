// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/internal/test/memdb"
	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/mapview"
	"github.com/momeni/smart-parking/pkg/adapter/prefs/fileprefs"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/routes"
	"github.com/momeni/smart-parking/pkg/adapter/scene"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/suite"
)

const confs = `database:
  driver: sqlite
  dsn: ignored.db
usecases:
  marks:
    altitude-offset-minimum: 0
    altitude-offset-maximum: 10
versions:
  database: 1.0.0
  config: 1.0.0
`

type GinTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Gin   *gin.Engine
	Scene *scene.Session
	View  *mapview.View
}

func TestGinTestSuite(t *testing.T) {
	gin.SetReleaseMode()
	suite.Run(t, &GinTestSuite{Ctx: context.Background()})
}

func (gts *GinTestSuite) SetupTest() {
	t := gts.T()
	p, places := memdb.NewPlaces(gts.Ctx, t)
	gts.Require().NoError(places.InsertLot(gts.Ctx, model.MockParkingLot()))
	_, err := places.SeedIfEmpty(gts.Ctx, model.MockParkingPlaces())
	gts.Require().NoError(err, "failed to seed places")

	c, err := config.Parse([]byte(confs))
	gts.Require().NoError(err, "failed to parse configs")
	prefs := fileprefs.New(filepath.Join(t.TempDir(), "prefs.json"))

	gts.View = mapview.New()
	gts.Scene = scene.New(scene.WithUserTracker(gts.View))
	gts.Gin = gin.New(gin.RequestID(), gin.Recovery())
	_, err = routes.Register(
		gts.Ctx, gts.Gin, p, c, prefs, gts.Scene, gts.View,
	)
	gts.Require().NoError(err, "failed to register Gin routes")
}

func (gts *GinTestSuite) do(method, path string, body any, res any) int {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		gts.Require().NoError(err, "cannot marshal body")
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, routes.BasePath+"/"+path, r)
	gts.Require().NoError(err, "cannot create %s request", method)
	req.Header.Add("Content-Type", "application/json")
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	if res != nil {
		gts.Require().NoError(
			json.Unmarshal(w.Body.Bytes(), res), "body is not json",
		)
	}
	return w.Code
}

type detail struct {
	Detail string
	Kind   string
}

func (gts *GinTestSuite) track() {
	code := gts.do(http.MethodPut, "session/pose", map[string]any{
		"state":     "tracking",
		"latitude":  55.7515,
		"longitude": 37.618,
		"altitude":  150.0,
		"heading":   45.0,
	}, nil)
	gts.Require().Equal(http.StatusNoContent, code)
}

func (gts *GinTestSuite) TestListPlaces() {
	var pps []model.ParkingPlace
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "places", nil, &pps))
	gts.Equal(model.MockParkingPlaces(), pps)

	var pp model.ParkingPlace
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "places/5", nil, &pp))
	gts.True(pp.Employed)
}

func (gts *GinTestSuite) TestRequestID() {
	req, err := http.NewRequest(http.MethodGet, routes.BasePath+"/booking", nil)
	gts.Require().NoError(err)
	w := httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	gts.Equal(http.StatusOK, w.Code)
	gts.NotEmpty(w.Header().Get(gin.RequestIDHeader))

	req.Header.Set(gin.RequestIDHeader, "tap-1")
	w = httptest.NewRecorder()
	gts.Gin.ServeHTTP(w, req)
	gts.Equal("tap-1", w.Header().Get(gin.RequestIDHeader))
}

func (gts *GinTestSuite) TestPlaceErrors() {
	res := &detail{}
	gts.Equal(http.StatusNotFound, gts.do(http.MethodGet, "places/42", nil, res))
	gts.Equal("not-found", res.Kind)

	errs := map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodGet, "places/abc", nil, &errs))
	gts.Contains(errs, "pid")

	errs = map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPatch, "places/1", nil, &errs))
	gts.Contains(errs, "Op")

	errs = map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPatch, "places/1?op=toggle", nil, &errs))
	gts.Contains(errs, "Op")

	res = &detail{}
	gts.Equal(http.StatusNotFound, gts.do(http.MethodPatch, "places/42?op=book", nil, res))
	res = &detail{}
	gts.Equal(http.StatusConflict, gts.do(http.MethodPatch, "places/5?op=book", nil, res))
	gts.Equal("conflict", res.Kind)
}

func (gts *GinTestSuite) TestCreatePlaces() {
	body := map[string]any{
		"latitude": 55.7516, "longitude": 37.6184, "parking_lot_id": 1,
	}
	pp := &model.ParkingPlace{}
	gts.Equal(http.StatusCreated, gts.do(http.MethodPost, "places", body, pp))
	gts.Equal(int64(6), pp.ID)
	m, ok := gts.View.Place(6)
	gts.True(ok)
	gts.True(m.Visible)

	body["booked"] = true
	pp = &model.ParkingPlace{}
	gts.Equal(http.StatusCreated, gts.do(http.MethodPost, "places", body, pp))
	gts.Equal(int64(7), pp.ID)
	gts.False(pp.Booked, "places are booked only by tapping them")
	delete(body, "booked")

	body["id"] = 0
	gts.Equal(http.StatusConflict, gts.do(http.MethodPost, "places", body, &detail{}))

	errs := map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPost, "places", map[string]any{
		"latitude": 95.0, "longitude": 37.0,
	}, &errs))
	gts.Contains(errs, "Lat")
}

func (gts *GinTestSuite) TestBooking() {
	res := &model.BookingResult{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPatch, "places/1?op=book", nil, res))
	gts.Equal(model.BookingOutcomeBooked, res.Outcome)
	gts.False(res.AnchorPlaced, "scene is not tracking yet")

	b := &struct{ PlaceID *int64 `json:"place_id"` }{}
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "booking", nil, b))
	gts.Require().NotNil(b.PlaceID)
	gts.Equal(int64(1), *b.PlaceID)

	gts.track()
	res = &model.BookingResult{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPatch, "places/3?op=book", nil, res))
	gts.Equal(model.BookingOutcomeBooked, res.Outcome)
	gts.True(res.AnchorPlaced)
	gts.Require().NotNil(res.Released)
	gts.Equal(int64(1), res.Released.ID)
	m, _ := gts.View.Place(3)
	gts.Equal(model.ColorBookedPlace, m.Color)

	res = &model.BookingResult{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPatch, "places/3?op=book", nil, res))
	gts.Equal(model.BookingOutcomeUnbooked, res.Outcome)
	b = &struct{ PlaceID *int64 `json:"place_id"` }{}
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "booking", nil, b))
	gts.Nil(b.PlaceID)
}

func (gts *GinTestSuite) TestMarks() {
	gts.Equal(http.StatusNotFound, gts.do(http.MethodGet, "marks", nil, &detail{}))
	res := &detail{}
	gts.Equal(http.StatusConflict, gts.do(http.MethodPost, "marks", nil, res))
	gts.Equal("tracking-unavailable", res.Kind)

	gts.track()
	m := &model.Mark{}
	gts.Equal(http.StatusCreated, gts.do(http.MethodPost, "marks", nil, m))
	gts.Equal(153.0, m.Alt)
	got := &model.Mark{}
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "marks", nil, got))
	gts.Equal(*m, *got)

	var ms []model.Marker
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "map/markers", nil, &ms))
	gts.Require().Len(ms, 8)
	gts.True(ms[0].Visible, "user marker")
	gts.Equal(45.0, ms[0].Rotation)
	gts.True(ms[1].Visible, "car marker")
	gts.False(ms[7].Visible, "employed place")
}

func (gts *GinTestSuite) TestSession() {
	errs := map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPut, "session/pose", map[string]any{
		"state": "lost",
	}, &errs))
	gts.Contains(errs, "State")

	adv := &model.Advisory{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPost, "session/failures", map[string]any{
		"code": "sdk-too-old",
	}, adv))
	gts.Equal(model.Advisory{
		Code: "sdk-too-old", Message: "Please update this app",
	}, *adv)
}

func (gts *GinTestSuite) TestLots() {
	l := &model.ParkingLot{}
	gts.Equal(http.StatusCreated, gts.do(http.MethodPost, "lots", map[string]any{
		"name": "North", "latitude": 55.7, "longitude": 37.6,
	}, l))
	gts.Equal(int64(2), l.ID)

	var lots []model.ParkingLot
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "lots", nil, &lots))
	gts.Equal([]model.ParkingLot{model.MockParkingLot(), *l}, lots)

	gts.Equal(http.StatusNotFound, gts.do(http.MethodGet, "lots/9", nil, &detail{}))
	errs := map[string][]string{}
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPost, "lots", map[string]any{
		"latitude": 55.7, "longitude": 37.6,
	}, &errs))
	gts.Contains(errs, "Name")
}

type settingsResp struct {
	Settings struct {
		Booking struct {
			RetapPolicy *string `json:"retap_policy"`
		} `json:"booking"`
		Marks struct {
			AltitudeOffset *float64 `json:"altitude_offset"`
		} `json:"marks"`
		Driver string `json:"database_driver"`
	} `json:"settings"`
	MaxBounds struct {
		Marks struct {
			AltitudeOffset *float64 `json:"altitude_offset"`
		} `json:"marks"`
	} `json:"max_bounds"`
}

func (gts *GinTestSuite) TestSettings() {
	res := &settingsResp{}
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "settings", nil, res))
	gts.Equal("unbook", *res.Settings.Booking.RetapPolicy)
	gts.Equal(3.0, *res.Settings.Marks.AltitudeOffset)
	gts.Equal("sqlite", res.Settings.Driver)
	gts.Equal(10.0, *res.MaxBounds.Marks.AltitudeOffset)

	gts.Equal(http.StatusOK, gts.do(http.MethodPatch, "places/2?op=book", nil, nil))
	res = &settingsResp{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPut, "settings", map[string]any{
		"booking": map[string]any{"retap_policy": "ignore"},
		"marks":   map[string]any{"altitude_offset": 5.0},
	}, res))
	gts.Equal("ignore", *res.Settings.Booking.RetapPolicy)
	gts.Equal(5.0, *res.Settings.Marks.AltitudeOffset)

	br := &model.BookingResult{}
	gts.Equal(http.StatusOK, gts.do(http.MethodPatch, "places/2?op=book", nil, br))
	gts.Equal(model.BookingOutcomeUnchanged, br.Outcome, "booking is kept")

	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPut, "settings", map[string]any{
		"marks": map[string]any{"altitude_offset": 50.0},
	}, &detail{}))
	gts.Equal(http.StatusBadRequest, gts.do(http.MethodPut, "settings", map[string]any{
		"booking": map[string]any{"retap_policy": "toggle"},
	}, &detail{}))
	res = &settingsResp{}
	gts.Equal(http.StatusOK, gts.do(http.MethodGet, "settings", nil, res))
	gts.Equal("ignore", *res.Settings.Booking.RetapPolicy)
}
