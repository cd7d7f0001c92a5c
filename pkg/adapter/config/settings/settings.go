// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the helpers which are used by the config
// package in order to decode, default, copy, and verify the optional
// (pointer) configuration settings.
package settings

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Nil2Zero ensures that `*t` is not nil. If it was nil, it will be
// set to a pointer to the zero value of T.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// Default sets `*t` to a pointer to a copy of `def` if it was nil.
func Default[T any](t **T, def T) {
	if (*t) == nil {
		(*t) = &def
	}
}

// OverwriteNil copies `src` into a fresh pointer and stores it in
// `*dst` only if `*dst` was nil and `src` is not nil.
func OverwriteNil[T any](dst **T, src *T) {
	if (*dst) != nil || src == nil {
		return
	}
	t := *src
	(*dst) = &t
}

// OverwriteUnconditionally stores a copy of `src` in `*dst`, so they
// do not share memory. A nil `src` makes `*dst` nil too.
func OverwriteUnconditionally[T any](dst **T, src *T) {
	if src == nil {
		(*dst) = nil
		return
	}
	t := *src
	(*dst) = &t
}

// DecodeHook returns the viper decoder option which is used for
// unmarshalling the configuration settings. Values are decoded using
// their encoding.TextUnmarshaler implementation (e.g., Duration and
// model.SemVer) whenever possible, so environment variables can
// override them as plain strings.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}
