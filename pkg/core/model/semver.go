// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a released major.minor.patch version. It versions both of
// the configuration file format and the database schema. Pre-release
// and build suffixes are not accepted.
type SemVer [3]uint

// UnmarshalText parses text as "major[.minor[.patch]]" with an optional
// leading "v" (so "v1.2" means 1.2.0). sv is unchanged on errors.
func (sv *SemVer) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "v")
	parts := strings.Split(s, ".")
	if len(parts) > len(sv) {
		return fmt.Errorf("version %q has more than three components", text)
	}
	var v SemVer
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return fmt.Errorf("version %q component %q: %w", text, p, err)
		}
		v[i] = uint(n)
	}
	*sv = v
	return nil
}

// Marshal returns the YAML form of sv.
func (sv *SemVer) Marshal() string {
	return sv.String()
}

func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}
