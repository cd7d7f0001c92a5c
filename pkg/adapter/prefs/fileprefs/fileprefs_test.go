// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package fileprefs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/momeni/smart-parking/pkg/adapter/prefs/fileprefs"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")
	s := fileprefs.New(path)

	m, err := s.LoadMark(ctx)
	require.NoError(err)
	assert.False(t, m.Restorable())

	want := model.Mark{
		Coordinate: model.Coordinate{Lat: 40.1, Lon: -3.7},
		Alt:        652.25,
	}
	require.NoError(s.SaveMark(ctx, want))
	require.NoError(s.SaveMark(ctx, want))
	m, err = fileprefs.New(path).LoadMark(ctx)
	require.NoError(err)
	assert.Equal(t, want, m)

	entries, err := os.ReadDir(dir)
	require.NoError(err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
	require.NoError(s.Close())
}

func TestLoadCorrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err := fileprefs.New(path).LoadMark(context.Background())
	assert.True(t, cerr.Is(err, cerr.KindStorage))
}
