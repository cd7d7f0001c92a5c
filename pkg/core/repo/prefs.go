// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// Preferences is a small key-value store which keeps the car mark
// across restarts. A missing mark is reported as a zero model.Mark
// and a nil error.
type Preferences interface {
	LoadMark(ctx context.Context) (model.Mark, error)
	SaveMark(ctx context.Context, m model.Mark) error
}
