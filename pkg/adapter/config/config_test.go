// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/momeni/smart-parking/pkg/adapter/config"
	"github.com/momeni/smart-parking/pkg/adapter/config/settings"
	"github.com/momeni/smart-parking/pkg/adapter/config/vers"
	"github.com/momeni/smart-parking/pkg/core/cerr"
	"github.com/momeni/smart-parking/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sample = `# database connection
database:
  driver: sqlite
  dsn: parking.db
usecases:
  marks:
    # meters
    altitude-offset-minimum: 0
    altitude-offset-maximum: 10
versions:
  database: 1.0.0
  config: 1.0.0
`

func ExampleConfig_MarshalYAML() {
	l, r, m := true, true, false
	d, w := settings.Duration(5*time.Second), settings.Duration(2*time.Second)
	rp := "unbook"
	ao, mn, mx := 2.5, 0.0, 10.0
	c := &config.Config{
		Database: config.Database{
			Driver:   "sqlite",
			DSN:      "SmartParking.db",
			LogLevel: "warn",
		},
		Gin: config.Gin{
			Address:         "127.0.0.1:8080",
			Logger:          &l,
			Recovery:        &r,
			Metrics:         &m,
			ShutdownTimeout: &d,
		},
		Logging: config.Logging{Level: "info", Format: "json"},
		Preferences: config.Preferences{
			Backend: "file",
			Path:    "SmartParking.prefs.json",
		},
		Events: config.Events{ReconnectWait: &w},
		Usecases: config.Usecases{
			Booking: config.Booking{RetapPolicy: &rp},
			Marks: config.Marks{
				AltitudeOffset:    &ao,
				MinAltitudeOffset: &mn,
				MaxAltitudeOffset: &mx,
			},
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: model.SemVer{1, 0, 0},
				Config:   model.SemVer{1, 0, 0},
			},
		},
	}
	b, err := yaml.Marshal(c)
	fmt.Println(err)
	fmt.Println(string(b))
	// Output:
	// <nil>
	// database:
	//     driver: sqlite
	//     dsn: SmartParking.db
	//     log-level: warn
	// gin:
	//     address: 127.0.0.1:8080
	//     logger: true
	//     recovery: true
	//     metrics: false
	//     shutdown-timeout: 5s
	// logging:
	//     level: info
	//     format: json
	// preferences:
	//     backend: file
	//     path: SmartParking.prefs.json
	// events:
	//     reconnect-wait: 2s
	// usecases:
	//     booking:
	//         retap-policy: unbook
	//     marks:
	//         altitude-offset: 2.5
	//         altitude-offset-minimum: 0
	//         altitude-offset-maximum: 10
	// versions:
	//     database: 1.0.0
	//     config: 1.0.0
}

func TestParseDefaults(t *testing.T) {
	require := require.New(t)
	c, err := config.Parse([]byte(sample))
	require.NoError(err)
	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "parking.db", c.Database.DSN)
	assert.Equal(t, "warn", c.Database.LogLevel)
	assert.Equal(t, config.DefaultAddress, c.Gin.Address)
	require.NotNil(c.Gin.Logger)
	assert.False(t, *c.Gin.Logger)
	assert.Equal(t, 5*time.Second, c.Gin.ShutdownTimeout.Std())
	assert.Equal(t, "text", c.Logging.Format)
	assert.Equal(t, config.PrefsBackendFile, c.Preferences.Backend)
	assert.Equal(t, config.DefaultPrefsPath, c.Preferences.Path)
	require.NotNil(c.Usecases.Booking.RetapPolicy)
	assert.Equal(t, "unbook", *c.Usecases.Booking.RetapPolicy)
	require.NotNil(c.Usecases.Marks.AltitudeOffset)
	assert.Equal(t, 3.0, *c.Usecases.Marks.AltitudeOffset)
	assert.Equal(t, model.SemVer{1, 0, 0}, c.SchemaVersion())
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("SMARTPARKING_DATABASE_DSN", "other.db")
	t.Setenv("SMARTPARKING_GIN_LOGGER", "true")
	t.Setenv("SMARTPARKING_USECASES_MARKS_ALTITUDE_OFFSET", "4.5")
	t.Setenv("SMARTPARKING_USECASES_BOOKING_RETAP_POLICY", "ignore")
	t.Setenv("SMARTPARKING_EVENTS_RECONNECT_WAIT", "1m")
	require := require.New(t)
	c, err := config.Parse([]byte(sample))
	require.NoError(err)
	assert.Equal(t, "other.db", c.Database.DSN)
	assert.True(t, *c.Gin.Logger)
	assert.Equal(t, 4.5, *c.Usecases.Marks.AltitudeOffset)
	assert.Equal(t, "ignore", *c.Usecases.Booking.RetapPolicy)
	assert.Equal(t, time.Minute, c.Events.ReconnectWait.Std())
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"driver":  "database:\n  driver: oracle\n",
		"retap":   "usecases:\n  booking:\n    retap-policy: toggle\n",
		"range":   "usecases:\n  marks:\n    altitude-offset: 50\n    altitude-offset-maximum: 10\n",
		"prefs":   "preferences:\n  backend: valkey\n",
		"logging": "logging:\n  format: xml\n",
	}
	versions := "versions:\n  database: 1.0.0\n  config: 1.0.0\n"
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(data + versions))
			assert.Error(t, err)
		})
	}
	t.Run("major", func(t *testing.T) {
		_, err := config.Parse([]byte("versions:\n  database: 1.0.0\n  config: 2.0.0\n"))
		assert.Error(t, err)
	})
}

func TestLoadChecksVersions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smartparking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	c, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Version, c.Version())

	data := []byte("versions:\n  database: 0.9.0\n  config: 1.0.0\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	_, err = config.Load(path)
	var msve *cerr.MismatchingSemVerError
	assert.ErrorAs(t, err, &msve)
}

func TestMarshalKeepsComments(t *testing.T) {
	c, err := config.Parse([]byte(sample))
	require.NoError(t, err)
	b, err := yaml.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# database connection\ndatabase:")
	assert.Contains(t, string(b), "# meters\n")
}

func TestMutate(t *testing.T) {
	base, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		c := base.Clone()
		rp, ao := "ignore", 7.0
		s := config.NewSerializable(&model.Settings{
			VisibleSettings: model.VisibleSettings{
				Booking: model.BookingSettings{RetapPolicy: &rp},
				Marks:   model.MarksSettings{AltitudeOffset: &ao},
			},
		})
		require.NoError(t, c.Mutate(s))
		assert.Equal(t, "ignore", *c.Usecases.Booking.RetapPolicy)
		assert.Equal(t, 7.0, *c.Usecases.Marks.AltitudeOffset)
		assert.Equal(t, "unbook", *base.Usecases.Booking.RetapPolicy)
		assert.Equal(t, 3.0, *base.Usecases.Marks.AltitudeOffset)

		vs := c.VisibleSettings()
		assert.Equal(t, "sqlite", vs.Driver)
		assert.Equal(t, 7.0, *vs.Marks.AltitudeOffset)
		minb, maxb := c.Bounds()
		assert.Equal(t, 0.0, *minb.Marks.AltitudeOffset)
		assert.Equal(t, 10.0, *maxb.Marks.AltitudeOffset)
	})
	t.Run("defaults", func(t *testing.T) {
		c := base.Clone()
		require.NoError(t, c.Mutate(config.Serializable{Version: config.Version}))
		assert.Equal(t, "unbook", *c.Usecases.Booking.RetapPolicy)
		assert.Equal(t, 3.0, *c.Usecases.Marks.AltitudeOffset)
	})
	t.Run("out of bounds", func(t *testing.T) {
		c := base.Clone()
		s := config.Serializable{Version: config.Version}
		ao := 12.0
		s.Visible.Marks.AltitudeOffset = &ao
		var boundsErr *config.OutOfBoundsSettingsError
		require.ErrorAs(t, c.Mutate(s), &boundsErr)
		assert.Equal(t, 12.0, *boundsErr.Marks.AltitudeOffset.Value)
		assert.Equal(t, 10.0, *c.Usecases.Marks.AltitudeOffset)
	})
	t.Run("invalid retap", func(t *testing.T) {
		c := base.Clone()
		s := config.Serializable{Version: config.Version}
		rp := "toggle"
		s.Visible.Booking.RetapPolicy = &rp
		err := c.Mutate(s)
		assert.True(t, cerr.Is(err, cerr.KindBadRequest))
		assert.Equal(t, "unbook", *c.Usecases.Booking.RetapPolicy)
	})
	t.Run("version", func(t *testing.T) {
		c := base.Clone()
		err := c.Mutate(config.Serializable{Version: model.SemVer{0, 1, 0}})
		var msve *cerr.MismatchingSemVerError
		assert.ErrorAs(t, err, &msve)
	})
}

func TestSerialize(t *testing.T) {
	c, err := config.Parse([]byte(sample))
	require.NoError(t, err)
	b, err := c.Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "1.0.0",
		"booking": {"retap_policy": "unbook"},
		"marks": {"altitude_offset": 3}
	}`, string(b))
}
