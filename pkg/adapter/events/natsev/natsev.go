// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package natsev publishes the map marker changes on NATS subjects,
// so map clients can follow the markers without polling.
package natsev

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/nats-io/nats.go"
)

// SubjectPrefix is the common prefix of all marker subjects.
const SubjectPrefix = "smartparking.markers"

// Publisher publishes markers on a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// Connect connects to the NATS server at url. Connection failures are
// retried in the background forever, waiting reconnectWait between
// the attempts, so the server may start before NATS is reachable.
func Connect(url string, reconnectWait time.Duration) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("smartparking"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(reconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Subject returns the subject of the m marker, that is
// smartparking.markers.<kind> for the user and car markers and
// smartparking.markers.place.<id> for the place markers.
func Subject(m model.Marker) string {
	s := SubjectPrefix + "." + string(m.Kind)
	if m.PlaceID != nil {
		s += "." + strconv.FormatInt(*m.PlaceID, 10)
	}
	return s
}

// PublishMarker publishes m as JSON on its subject.
func (p *Publisher) PublishMarker(ctx context.Context, m model.Marker) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding marker: %w", err)
	}
	if err = p.conn.Publish(Subject(m), data); err != nil {
		return fmt.Errorf("publishing on %s: %w", Subject(m), err)
	}
	return nil
}

// Close flushes the pending messages and closes the connection.
func (p *Publisher) Close() error {
	return p.conn.Drain()
}
