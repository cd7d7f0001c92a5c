// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package valkeyprefs implements the repo.Preferences interface on top
// of a valkey hash, so several server instances can share the mark.
package valkeyprefs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/valkey-io/valkey-go"
)

// DefaultKey is the default hash key which keeps the mark fields.
const DefaultKey = "smartparking:mark"

const (
	fieldLatitude  = "latitude"
	fieldLongitude = "longitude"
	fieldAltitude  = "altitude"
)

// Store is a valkey-backed preference store.
type Store struct {
	client valkey.Client
	key    string
}

// New connects to the valkey server at addr.
func New(addr, key string) (*Store, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return NewWithClient(client, key), nil
}

// NewWithClient wraps an existing client. The store takes the client
// ownership and closes it by Close.
func NewWithClient(client valkey.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// LoadMark reads the mark hash fields. Missing fields are taken as
// zero, so an absent hash yields a non-restorable mark.
func (s *Store) LoadMark(ctx context.Context) (model.Mark, error) {
	cmd := s.client.B().Hgetall().Key(s.key).Build()
	fields, err := s.client.Do(ctx, cmd).AsStrMap()
	if err != nil {
		return model.Mark{}, cerr.Storage(fmt.Errorf("HGETALL %s: %w", s.key, err))
	}
	var m model.Mark
	for name, dst := range map[string]*float64{
		fieldLatitude:  &m.Lat,
		fieldLongitude: &m.Lon,
		fieldAltitude:  &m.Alt,
	} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseFloat(v, 64); err != nil {
			return model.Mark{}, cerr.Storage(
				fmt.Errorf("parsing %s field: %w", name, err),
			)
		}
	}
	return m, nil
}

// SaveMark stores all three fields of m in one HSET command.
func (s *Store) SaveMark(ctx context.Context, m model.Mark) error {
	cmd := s.client.B().Hset().Key(s.key).FieldValue().
		FieldValue(fieldLatitude, formatFloat(m.Lat)).
		FieldValue(fieldLongitude, formatFloat(m.Lon)).
		FieldValue(fieldAltitude, formatFloat(m.Alt)).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return cerr.Storage(fmt.Errorf("HSET %s: %w", s.key, err))
	}
	return nil
}

// Close releases the client.
func (s *Store) Close() error {
	s.client.Close()
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
