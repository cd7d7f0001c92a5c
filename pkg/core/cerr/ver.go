// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"

	"github.com/momeni/smart-parking/pkg/core/model"
)

// MismatchingSemVerError holds the expected and the found versions of
// a config file or a stored settings record, in this order.
type MismatchingSemVerError [2]model.SemVer

func (msve *MismatchingSemVerError) Error() string {
	return fmt.Sprintf("version mismatch: want v%s, found v%s", msve[0], msve[1])
}
