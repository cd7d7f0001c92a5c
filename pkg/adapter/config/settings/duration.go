// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is written in YAML without its
// zero trailing units, e.g., 1m instead of 1m0s.
type Duration time.Duration

// UnmarshalText accepts the time.ParseDuration syntax, so viper can
// decode both of YAML values and SMARTPARKING_ environment variables.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns nil for a nil d, so the omitempty YAML fields of
// the marshalled config skip it.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := time.Duration(*d).String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return &s
}

func (d *Duration) MarshalText() ([]byte, error) {
	s := d.Marshal()
	if s == nil {
		return nil, errors.New("nil duration")
	}
	return []byte(*s), nil
}

func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("unset")
	}
	return slog.DurationValue(time.Duration(*d))
}

// Std converts d for use with the standard library, mapping nil to 0.
func (d *Duration) Std() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}
