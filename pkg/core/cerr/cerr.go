// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the core errors which may be returned by the
// use cases and repositories. Each Error has a Kind, so callers may
// decide based on the failure category without knowing about the
// underlying adapter, and an HTTP status code, so the REST adapters
// may report it without any further mapping.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category of an Error.
type Kind string

// Supported error kinds.
const (
	KindBadRequest          Kind = "bad-request"
	KindNotFound            Kind = "not-found"
	KindConflict            Kind = "conflict"
	KindStorage             Kind = "storage"
	KindTrackingUnavailable Kind = "tracking-unavailable"
)

// Error wraps an error with its Kind and HTTP status code.
type Error struct {
	Err            error
	Kind           Kind
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{
		Err: err, Kind: KindBadRequest,
		HTTPStatusCode: http.StatusBadRequest,
	}
}

func NotFound(err error) *Error {
	return &Error{
		Err: err, Kind: KindNotFound,
		HTTPStatusCode: http.StatusNotFound,
	}
}

func Conflict(err error) *Error {
	return &Error{
		Err: err, Kind: KindConflict,
		HTTPStatusCode: http.StatusConflict,
	}
}

// Storage indicates that the underlying store could not be read or
// written. No retry is attempted by the core layer.
func Storage(err error) *Error {
	return &Error{
		Err: err, Kind: KindStorage,
		HTTPStatusCode: http.StatusInternalServerError,
	}
}

// TrackingUnavailable indicates that the AR scene is not tracking,
// so its camera pose may not be used and no anchor may be placed.
func TrackingUnavailable(err error) *Error {
	return &Error{
		Err: err, Kind: KindTrackingUnavailable,
		HTTPStatusCode: http.StatusConflict,
	}
}

// Is reports if an *Error with the k kind exists in the err chain.
func Is(err error, k Kind) bool {
	var ce *Error
	if !errors.As(err, &ce) {
		return false
	}
	return ce.Kind == k
}
