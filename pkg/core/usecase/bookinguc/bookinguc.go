// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookinguc contains the booking coordinator UseCase. It keeps
// at most one parking place booked at any time. Tapping a free place
// books it (releasing the previous booking), while tapping the booked
// place again is handled based on the configured model.RetapPolicy.
// After each committed change, the AR parking anchor and the map
// markers are updated as a best effort.
package bookinguc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/momeni/smart-parking/pkg/core/repo"
)

// UseCase represents the booking coordinator.
type UseCase struct {
	pool     repo.Pool
	placesrp repo.Places
	scene    Scene
	markers  Markers
	retap    model.RetapPolicy

	// mutex serializes BookPlace and Restore calls, so the current
	// field always describes the last committed booking.
	mutex   sync.Mutex
	current *int64   // ID of the booked place, or nil
	next    *UseCase // successor after a Handover, or nil
}

// New instantiates a booking use case.
// Required parameters are passed individually, while optional ones
// are passed as a series of functional options.
func New(p repo.Pool, places repo.Places, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, placesrp: places}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.retap == model.RetapPolicyInvalid {
		uc.retap = model.RetapPolicyUnbook
	}
	return uc, nil
}

// RetapPolicy returns the effective retap policy.
func (booking *UseCase) RetapPolicy() model.RetapPolicy {
	return booking.retap
}

// Current returns the ID of the currently booked place. The ok result
// is false if no place is booked.
func (booking *UseCase) Current() (id int64, ok bool) {
	b := booking.lock()
	defer b.mutex.Unlock()
	if b.current == nil {
		return 0, false
	}
	return *b.current, true
}

// Handover passes the current booking to next, which is a use case
// built with fresh settings. All later calls on booking are forwarded
// to next, so callers which still hold booking observe the same state.
func (booking *UseCase) Handover(next *UseCase) {
	b := booking.lock()
	defer b.mutex.Unlock()
	if b == next {
		return
	}
	next.mutex.Lock()
	if b.current != nil {
		id := *b.current
		next.current = &id
	} else {
		next.current = nil
	}
	next.mutex.Unlock()
	b.next = next
}

// lock locks and returns the use case in charge, which is the last
// one in the handover chain starting from booking.
func (booking *UseCase) lock() *UseCase {
	b := booking
	for {
		b.mutex.Lock()
		if b.next == nil {
			return b
		}
		n := b.next
		b.mutex.Unlock()
		b = n
	}
}

// BookPlace handles a tap on the id place marker. Employed places may
// not be booked (cerr.Conflict) and missing places cause a
// cerr.NotFound error. Releasing the previous booking and changing the
// target place are committed in one transaction.
//
// The parking anchor is updated after the commit. If the scene is not
// tracking, the booking stays in effect and the AnchorPlaced field of
// the result is false.
func (booking *UseCase) BookPlace(ctx context.Context, id int64) (model.BookingResult, error) {
	b := booking.lock()
	defer b.mutex.Unlock()
	return b.bookPlace(ctx, id)
}

func (booking *UseCase) bookPlace(ctx context.Context, id int64) (res model.BookingResult, err error) {
	err = booking.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			res, err = booking.transit(ctx, booking.placesrp.Tx(tx), id)
			return err
		})
	})
	if err != nil {
		return model.BookingResult{}, fmt.Errorf("booking place %d: %w", id, err)
	}
	switch res.Outcome {
	case model.BookingOutcomeBooked:
		booking.current = &id
	case model.BookingOutcomeUnbooked:
		booking.current = nil
	}
	booking.settle(ctx, &res)
	log.Info(ctx, "place is tapped", log.Valuer("result", res))
	return res, nil
}

// transit computes and persists the booking transition. It does not
// touch the current field, so a rolled back transaction leaves the
// coordinator state intact.
func (booking *UseCase) transit(
	ctx context.Context, q repo.PlacesTxQueryer, id int64,
) (res model.BookingResult, err error) {
	target, err := q.Get(ctx, id)
	if err != nil {
		return res, err
	}
	if target.Employed {
		return res, cerr.Conflict(fmt.Errorf("place %d is employed", id))
	}
	cur := booking.current
	if cur != nil && *cur != id {
		prev, err := q.Get(ctx, *cur)
		switch {
		case cerr.Is(err, cerr.KindNotFound):
			// the booked row vanished, e.g., by a schema recreation
		case err != nil:
			return res, err
		case prev.Booked:
			prev.Booked = false
			if err = q.Update(ctx, *prev); err != nil {
				return res, err
			}
			res.Released = prev
		}
	}
	switch {
	case cur != nil && *cur == id && booking.retap == model.RetapPolicyIgnore:
		res.Outcome = model.BookingOutcomeUnchanged
	case cur != nil && *cur == id:
		target.Booked = false
		res.Outcome = model.BookingOutcomeUnbooked
	default:
		target.Booked = true
		res.Outcome = model.BookingOutcomeBooked
	}
	if res.Outcome != model.BookingOutcomeUnchanged {
		if err = q.Update(ctx, *target); err != nil {
			return res, err
		}
	}
	res.Place = *target
	return res, nil
}

// settle updates the markers and the parking anchor after a commit.
// Failures are logged and do not revert the booking.
func (booking *UseCase) settle(ctx context.Context, res *model.BookingResult) {
	if booking.markers != nil {
		if res.Released != nil {
			booking.markers.UpdatePlace(ctx, *res.Released)
		}
		booking.markers.UpdatePlace(ctx, res.Place)
	}
	if booking.scene == nil {
		return
	}
	switch res.Outcome {
	case model.BookingOutcomeBooked:
		res.AnchorPlaced = booking.anchor(ctx, res.Place)
	case model.BookingOutcomeUnbooked:
		err := booking.scene.DetachAnchor(ctx, model.AnchorParking)
		if err != nil {
			log.Warn(ctx, "detaching parking anchor", log.Err("err", err))
		}
	}
}

// anchor places the parking anchor on p at the camera altitude.
func (booking *UseCase) anchor(ctx context.Context, p model.ParkingPlace) bool {
	pose, err := booking.scene.CameraPose()
	if err != nil {
		log.Warn(
			ctx, "parking anchor is not placed",
			log.Valuer("place", p), log.Err("err", err),
		)
		return false
	}
	m := model.Mark{Coordinate: p.Coordinate, Alt: pose.Alt}
	if _, err = booking.scene.PlaceAnchor(ctx, model.AnchorParking, m); err != nil {
		log.Warn(
			ctx, "placing parking anchor",
			log.Valuer("place", p), log.Err("err", err),
		)
		return false
	}
	return true
}

// ErrNothingToRestore is returned by Restore when no place is booked.
var ErrNothingToRestore = errors.New("no booked place")

// Restore adopts the booked place of the store as the current booking
// and asks the scene to restore its parking anchor. It is called once,
// before serving the first tap. If more than one
// place is booked, the smallest ID is kept and others are released in
// one transaction.
func (booking *UseCase) Restore(ctx context.Context) (*model.ParkingPlace, error) {
	b := booking.lock()
	defer b.mutex.Unlock()
	return b.restore(ctx)
}

func (booking *UseCase) restore(ctx context.Context) (p *model.ParkingPlace, err error) {
	var released []model.ParkingPlace
	err = booking.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := booking.placesrp.Tx(tx)
			booked, err := q.ListBooked(ctx)
			if err != nil {
				return err
			}
			if len(booked) == 0 {
				return ErrNothingToRestore
			}
			keep := 0
			for i := range booked {
				if booked[i].ID < booked[keep].ID {
					keep = i
				}
			}
			for i := range booked {
				if i == keep {
					continue
				}
				booked[i].Booked = false
				if err := q.Update(ctx, booked[i]); err != nil {
					return err
				}
				released = append(released, booked[i])
			}
			p = &booked[keep]
			return nil
		})
	})
	switch {
	case errors.Is(err, ErrNothingToRestore):
		booking.current = nil
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("restoring booking: %w", err)
	}
	id := p.ID
	booking.current = &id
	if booking.markers != nil {
		for _, r := range released {
			booking.markers.UpdatePlace(ctx, r)
		}
		booking.markers.UpdatePlace(ctx, *p)
	}
	if booking.scene != nil {
		m := model.Mark{Coordinate: p.Coordinate} // at camera altitude
		err := booking.scene.RestoreAnchor(ctx, model.AnchorParking, m)
		if err != nil {
			log.Warn(
				ctx, "restoring parking anchor",
				log.Valuer("place", *p), log.Err("err", err),
			)
		}
	}
	if len(released) > 0 {
		log.Warn(
			ctx, "released extra booked places",
			log.Valuer("kept", *p),
			slog.Int("released", len(released)),
		)
	}
	return p, nil
}
