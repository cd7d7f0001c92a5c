// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// RetapPolicy specifies what happens when the currently booked place
// is booked again (i.e., its marker is tapped for a second time).
// Although this enum is numeric, it is (de)serialized as a string for
// readability in the adapter layer.
type RetapPolicy int

// Valid values for the RetapPolicy enum.
const (
	RetapPolicyInvalid RetapPolicy = iota // zero value is invalid

	RetapPolicyUnbook // second tap releases the booking (toggle)
	RetapPolicyIgnore // second tap leaves the booking unchanged
)

// ErrUnknownRetapPolicy indicates that a given string may not be
// parsed as a valid/known retap policy. The invalid string itself is
// not included because the caller of ParseRetapPolicy knows it.
var ErrUnknownRetapPolicy = errors.New("unknown retap policy")

// RetapPolicyError indicates an invalid retap policy. This error
// contains the invalid policy as an integer.
type RetapPolicyError int

// Error implements the error interface, returning a string
// representation of the RetapPolicyError.
func (e RetapPolicyError) Error() string {
	return fmt.Sprintf("invalid retap policy: %d", e)
}

// Validate returns nil if RetapPolicy value is valid. For invalid
// values, an instance of the RetapPolicyError will be returned.
func (p RetapPolicy) Validate() error {
	switch p {
	case RetapPolicyUnbook, RetapPolicyIgnore:
		return nil
	default:
		return RetapPolicyError(p)
	}
}

// String converts the RetapPolicy enum to a string, helping to
// serialize it in configuration files and logs. Invalid retap policy
// causes a panic.
func (p RetapPolicy) String() string {
	switch p {
	case RetapPolicyUnbook:
		return "unbook"
	case RetapPolicyIgnore:
		return "ignore"
	default:
		panic(RetapPolicyError(p))
	}
}

// ParseRetapPolicy parses the given string and returns a RetapPolicy.
// For invalid strings, RetapPolicyInvalid and ErrUnknownRetapPolicy
// will be returned.
func ParseRetapPolicy(p string) (RetapPolicy, error) {
	switch p {
	case "unbook":
		return RetapPolicyUnbook, nil
	case "ignore":
		return RetapPolicyIgnore, nil
	default:
		return RetapPolicyInvalid, ErrUnknownRetapPolicy
	}
}
