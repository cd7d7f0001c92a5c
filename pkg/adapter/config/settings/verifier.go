// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"errors"
	"fmt"
	"math"
)

// OutOfRangeError reports a setting which violated its bounds. The
// setting has already been clamped to Bound when this error is
// returned, except for an InvalidRange where nothing is changed.
type OutOfRangeError[T cmp.Ordered] struct {
	Value        *T   // the rejected value, nil for an InvalidRange
	Bound        *T   // the violated min or max bound
	LessThanMin  bool // Bound is the min bound
	InvalidRange bool // min bound is greater than max bound
}

func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return "min is greater than max"
	case e.LessThanMin:
		return fmt.Sprintf("%v is less than min %v", *e.Value, *e.Bound)
	default:
		return fmt.Sprintf("%v is greater than max %v", *e.Value, *e.Bound)
	}
}

// VerifyRange checks *value against the optional minb and maxb bounds.
// A nil *value or a nil bound is never violated. A violating value is
// clamped in place and the returned error keeps its original value.
func VerifyRange[T cmp.Ordered](
	value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	if minb != nil && maxb != nil && *minb > *maxb {
		return &OutOfRangeError[T]{InvalidRange: true}
	}
	if *value == nil {
		return nil
	}
	v := **value
	if minb != nil && v < *minb {
		**value = *minb
		return &OutOfRangeError[T]{Value: &v, Bound: minb, LessThanMin: true}
	}
	if maxb != nil && v > *maxb {
		**value = *maxb
		return &OutOfRangeError[T]{Value: &v, Bound: maxb}
	}
	return nil
}

// ErrNotFinite is returned for NaN and infinite float settings.
var ErrNotFinite = errors.New("value is not a finite number")

func VerifyFinite(value *float64) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) {
		return ErrNotFinite
	}
	return nil
}
