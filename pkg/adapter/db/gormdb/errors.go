// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gormdb

import (
	"errors"
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/cerr"
	"gorm.io/gorm"
)

// Classify wraps err with the matching cerr constructor. Missing
// records become cerr.NotFound, unique key violations (as translated
// by the dialectors) become cerr.Conflict, and everything else is
// reported as cerr.Storage. The what argument names the failed
// operation in the error message.
func Classify(err error, what string) error {
	err = fmt.Errorf("%s: %w", what, err)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return cerr.NotFound(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return cerr.Conflict(err)
	default:
		return cerr.Storage(err)
	}
}
