// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settingsrs

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/smart-parking/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/smart-parking/pkg/core/model"
)

// bindSettings decodes the PUT body. Omitted fields are nil and reset
// to their configured defaults by the update.
func bindSettings(c *gin.Context) (*model.Settings, bool) {
	s := &model.Settings{}
	if !serdser.Bind(c, s, binding.JSON) {
		return nil, false
	}
	return s, true
}

// SettingsResp reports the effective settings along with the bounds
// which a following PUT must respect. A nil bound has no limit.
type SettingsResp struct {
	Settings  *model.VisibleSettings `json:"settings"`
	MinBounds *model.Settings        `json:"min_bounds"`
	MaxBounds *model.Settings        `json:"max_bounds"`
}
