// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// encoders) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import "log/slog"

// ParkingLot models a named parking area which groups a set of
// parking places. Its ID is assigned by the store when a lot is
// created, but may be given explicitly when seeding.
type ParkingLot struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Coordinate `json:"coordinate"`
}

// LogValue implements the slog.LogValuer interface.
func (pl ParkingLot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", pl.ID),
		slog.String("name", pl.Name),
		slog.Any("coordinate", pl.Coordinate),
	)
}

// ParkingPlace models a single bookable parking space.
//
// An employed place is physically occupied and may not be booked.
// The Booked flag is owned by the booking coordinator and at most one
// place may have it set after each booking operation settles. This
// invariant is not enforced by the storage layer.
//
// ParkingLotID refers to the ParkingLot which contains this place.
// It is a weak reference; a place may refer to a missing lot.
type ParkingPlace struct {
	ID           int64 `json:"id"`
	Coordinate   `json:"coordinate"`
	Employed     bool  `json:"employed"`
	Booked       bool  `json:"booked"`
	ParkingLotID int64 `json:"parking_lot_id"`
}

// LogValue implements the slog.LogValuer interface.
func (pp ParkingPlace) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("id", pp.ID),
		slog.Any("coordinate", pp.Coordinate),
		slog.Bool("employed", pp.Employed),
		slog.Bool("booked", pp.Booked),
		slog.Int64("lot", pp.ParkingLotID),
	)
}

// MockParkingLotID is the identifier of the lot which contains all
// MockParkingPlaces items.
const MockParkingLotID = 1

// MockParkingLot returns the parking lot which is seeded in the
// development environment alongside MockParkingPlaces.
func MockParkingLot() ParkingLot {
	return ParkingLot{
		ID:         MockParkingLotID,
		Name:       "Smart Parking",
		Coordinate: Coordinate{Lat: 55.75155, Lon: 37.61811},
	}
}

// MockParkingPlaces returns the fixed seed parking places.
// There are six places with IDs from 0 to 5, all of them belonging to
// the MockParkingLotID lot. The last one is employed and none of them
// is booked.
func MockParkingPlaces() []ParkingPlace {
	coords := [...]Coordinate{
		{Lat: 55.751480, Lon: 37.618020},
		{Lat: 55.751500, Lon: 37.618080},
		{Lat: 55.751520, Lon: 37.618140},
		{Lat: 55.751540, Lon: 37.618200},
		{Lat: 55.751560, Lon: 37.618260},
		{Lat: 55.751580, Lon: 37.618320},
	}
	places := make([]ParkingPlace, 0, len(coords))
	for i, c := range coords {
		places = append(places, ParkingPlace{
			ID:           int64(i),
			Coordinate:   c,
			Employed:     i == len(coords)-1,
			ParkingLotID: MockParkingLotID,
		})
	}
	return places
}
