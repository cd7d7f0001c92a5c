// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package fileprefs implements the repo.Preferences interface on top of
// a small JSON file. The file is replaced atomically on each save, so
// a crash leaves either the old or the new mark behind.
package fileprefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// Store is a file-backed preference store.
type Store struct {
	path  string
	mutex sync.Mutex
}

type filePrefs struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// New instantiates a preference store which keeps its data in the
// given file path. The file is created by the first SaveMark call.
func New(path string) *Store {
	return &Store{path: path}
}

// LoadMark reads the persisted mark. A missing file yields a zero mark.
func (s *Store) LoadMark(ctx context.Context) (model.Mark, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return model.Mark{}, nil
	case err != nil:
		return model.Mark{}, cerr.Storage(fmt.Errorf("reading prefs: %w", err))
	}
	var fp filePrefs
	if err = json.Unmarshal(data, &fp); err != nil {
		return model.Mark{}, cerr.Storage(fmt.Errorf("decoding prefs: %w", err))
	}
	return model.Mark{
		Coordinate: model.Coordinate{Lat: fp.Latitude, Lon: fp.Longitude},
		Alt:        fp.Altitude,
	}, nil
}

// SaveMark persists the m mark, replacing the previous one.
func (s *Store) SaveMark(ctx context.Context, m model.Mark) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	data, err := json.Marshal(filePrefs{
		Latitude:  m.Lat,
		Longitude: m.Lon,
		Altitude:  m.Alt,
	})
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return cerr.Storage(fmt.Errorf("creating temp prefs: %w", err))
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename
	if _, err = f.Write(data); err != nil {
		f.Close()
		return cerr.Storage(fmt.Errorf("writing prefs: %w", err))
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return cerr.Storage(fmt.Errorf("syncing prefs: %w", err))
	}
	if err = f.Close(); err != nil {
		return cerr.Storage(fmt.Errorf("closing prefs: %w", err))
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return cerr.Storage(fmt.Errorf("replacing prefs: %w", err))
	}
	return nil
}

// Close releases nothing. It exists so Store can be used as an
// io.Closer preference store.
func (s *Store) Close() error {
	return nil
}
