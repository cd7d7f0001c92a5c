// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scene provides an in-memory geospatial AR session. The AR
// client reports one camera pose per rendered frame and the session
// keeps the last one, so the core use cases may read it and place
// anchors at geospatial marks.
package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/smart-parking/pkg/adapter/metrics"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/log"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// ErrNotTracking is wrapped by cerr.TrackingUnavailable errors when
// the session state is not tracking.
var ErrNotTracking = errors.New("scene is not tracking")

// UserTracker follows the camera pose while the session is tracking.
type UserTracker interface {
	MoveUser(ctx context.Context, pose model.GeospatialPose)
}

// Session is the state of one AR session.
type Session struct {
	user UserTracker
	now  func() time.Time

	rwlock  sync.RWMutex
	pose    model.GeospatialPose
	state   model.TrackingState
	anchors map[model.AnchorKey]model.Anchor
	pending map[model.AnchorKey]model.Mark // restored before tracking
}

// Option represents an optional setting of the Session.
type Option func(s *Session)

// WithUserTracker makes s to move the u user marker on each tracked
// frame.
func WithUserTracker(u UserTracker) Option {
	return func(s *Session) {
		s.user = u
	}
}

// WithClock replaces time.Now for the anchor creation times.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New instantiates a session which is stopped until the first frame.
func New(opts ...Option) *Session {
	s := &Session{
		state:   model.TrackingStateStopped,
		anchors: make(map[model.AnchorKey]model.Anchor),
		pending: make(map[model.AnchorKey]model.Mark),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// UpdateFrame records the pose and tracking state of a rendered frame.
// While tracking, the pose must have a valid coordinate and the user
// marker is moved along. A non-tracking frame keeps the last pose.
// The first tracking frame also places the pending restored anchors.
func (s *Session) UpdateFrame(
	ctx context.Context, pose model.GeospatialPose, st model.TrackingState,
) error {
	switch st {
	case model.TrackingStateTracking:
		if err := pose.Coordinate.Validate(); err != nil {
			return cerr.BadRequest(fmt.Errorf("pose: %w", err))
		}
	case model.TrackingStatePaused, model.TrackingStateStopped:
	default:
		return cerr.BadRequest(model.ErrUnknownTrackingState)
	}
	s.rwlock.Lock()
	s.state = st
	if st == model.TrackingStateTracking {
		s.pose = pose
		for key, m := range s.pending {
			a := s.place(ctx, key, s.atCamera(m))
			log.Info(ctx, "restored anchor is placed",
				slog.String("key", string(key)),
				slog.String("id", a.ID),
			)
		}
		clear(s.pending)
	}
	s.rwlock.Unlock()
	metrics.ObserveFrame(st)
	if st == model.TrackingStateTracking && s.user != nil {
		s.user.MoveUser(ctx, pose)
	}
	return nil
}

// State returns the tracking state of the last frame.
func (s *Session) State() model.TrackingState {
	s.rwlock.RLock()
	defer s.rwlock.RUnlock()
	return s.state
}

// CameraPose returns the last tracked pose. It fails with a
// cerr.TrackingUnavailable error if the last frame was not tracking.
func (s *Session) CameraPose() (model.GeospatialPose, error) {
	s.rwlock.RLock()
	defer s.rwlock.RUnlock()
	if s.state != model.TrackingStateTracking {
		return model.GeospatialPose{}, cerr.TrackingUnavailable(
			ErrNotTracking,
		)
	}
	return s.pose, nil
}

// PlaceAnchor creates an anchor at the m mark, replacing the previous
// anchor of the same key.
func (s *Session) PlaceAnchor(
	ctx context.Context, key model.AnchorKey, m model.Mark,
) (model.Anchor, error) {
	s.rwlock.Lock()
	defer s.rwlock.Unlock()
	if s.state != model.TrackingStateTracking {
		return model.Anchor{}, cerr.TrackingUnavailable(
			ErrNotTracking,
		)
	}
	return s.place(ctx, key, m), nil
}

// RestoreAnchor re-creates an anchor which existed before a restart.
// It is placed at once while tracking. Otherwise it stays pending until
// the next tracking frame. A zero m.Alt is replaced by the camera
// altitude of the frame which places the anchor.
func (s *Session) RestoreAnchor(
	ctx context.Context, key model.AnchorKey, m model.Mark,
) error {
	s.rwlock.Lock()
	defer s.rwlock.Unlock()
	if s.state != model.TrackingStateTracking {
		s.pending[key] = m
		log.Debug(ctx, "anchor waits for tracking",
			slog.String("key", string(key)),
		)
		return nil
	}
	s.place(ctx, key, s.atCamera(m))
	return nil
}

func (s *Session) atCamera(m model.Mark) model.Mark {
	if m.Alt == 0 {
		m.Alt = s.pose.Alt
	}
	return m
}

// place must be called with the write lock held and while tracking.
func (s *Session) place(
	ctx context.Context, key model.AnchorKey, m model.Mark,
) model.Anchor {
	a := model.Anchor{
		ID:        uuid.NewString(),
		Key:       key,
		Mark:      m,
		CreatedAt: s.now(),
	}
	if old, ok := s.anchors[key]; ok {
		log.Debug(ctx, "replacing anchor",
			slog.String("key", string(key)),
			slog.String("old", old.ID),
		)
	}
	delete(s.pending, key)
	s.anchors[key] = a
	return a
}

// DetachAnchor removes the anchor of key, if any, along with a pending
// restored anchor of the same key.
func (s *Session) DetachAnchor(ctx context.Context, key model.AnchorKey) error {
	s.rwlock.Lock()
	defer s.rwlock.Unlock()
	delete(s.anchors, key)
	delete(s.pending, key)
	return nil
}

// Anchors lists the current anchors, sorted by their keys.
func (s *Session) Anchors() []model.Anchor {
	s.rwlock.RLock()
	defer s.rwlock.RUnlock()
	as := make([]model.Anchor, 0, len(s.anchors))
	for _, a := range s.anchors {
		as = append(as, a)
	}
	sort.Slice(as, func(i, j int) bool {
		return as[i].Key < as[j].Key
	})
	return as
}

// ReportFailure resolves a vendor failure, which was raised while the
// AR session was being created or resumed, into its advisory.
func (s *Session) ReportFailure(
	ctx context.Context, kind model.VendorFailure, detail string,
) model.Advisory {
	adv := kind.Advise(detail)
	log.Error(ctx, "AR session failure",
		slog.String("code", adv.Code),
		slog.String("detail", detail),
	)
	return adv
}
