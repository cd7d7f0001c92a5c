// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// VendorFailure is the closed set of failures which an AR vendor
// framework may report while creating or resuming its session.
// Each failure kind resolves to a diagnostic code and a user-facing
// advisory message.
type VendorFailure int

// Valid values for the VendorFailure enum. The VendorFailureUnknown
// covers any failure which is not listed explicitly.
const (
	VendorFailureUnknown VendorFailure = iota

	VendorFailureUserDeclinedInstallation
	VendorFailureApkTooOld
	VendorFailureSdkTooOld
	VendorFailureDeviceNotCompatible
	VendorFailureCameraNotAvailable
)

var vendorFailureCodes = [...]string{
	VendorFailureUnknown:                  "unknown",
	VendorFailureUserDeclinedInstallation: "user-declined-installation",
	VendorFailureApkTooOld:                "apk-too-old",
	VendorFailureSdkTooOld:                "sdk-too-old",
	VendorFailureDeviceNotCompatible:      "device-not-compatible",
	VendorFailureCameraNotAvailable:       "camera-not-available",
}

var vendorFailureMessages = [...]string{
	VendorFailureUnknown:                  "Failed to create AR session",
	VendorFailureUserDeclinedInstallation: "Please install Google Play Services for AR",
	VendorFailureApkTooOld:                "Please update ARCore",
	VendorFailureSdkTooOld:                "Please update this app",
	VendorFailureDeviceNotCompatible:      "This device does not support AR",
	VendorFailureCameraNotAvailable:       "Camera not available. Try restarting the app.",
}

// Code returns the canonical diagnostic code of f failure.
// Out of range values are reported as VendorFailureUnknown.
func (f VendorFailure) Code() string {
	if f < 0 || int(f) >= len(vendorFailureCodes) {
		f = VendorFailureUnknown
	}
	return vendorFailureCodes[f]
}

// Message returns the advisory message which should be shown to the
// user for f failure. The detail is only appended for the unknown
// failures since known failures have self-explanatory messages.
func (f VendorFailure) Message(detail string) string {
	if f <= VendorFailureUnknown || int(f) >= len(vendorFailureMessages) {
		if detail == "" {
			return vendorFailureMessages[VendorFailureUnknown]
		}
		return vendorFailureMessages[VendorFailureUnknown] + ": " + detail
	}
	return vendorFailureMessages[f]
}

// String returns the diagnostic code of f failure.
func (f VendorFailure) String() string {
	return f.Code()
}

// ParseVendorFailure maps a diagnostic code to its VendorFailure.
// Unrecognized codes are mapped to VendorFailureUnknown since the
// vendor may report failures which are not known in advance.
func ParseVendorFailure(code string) VendorFailure {
	for i, c := range vendorFailureCodes {
		if c == code {
			return VendorFailure(i)
		}
	}
	return VendorFailureUnknown
}

// Advisory is the user-facing outcome of a vendor failure.
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Advise resolves f failure and the vendor provided detail string
// into an Advisory instance.
func (f VendorFailure) Advise(detail string) Advisory {
	return Advisory{Code: f.Code(), Message: f.Message(detail)}
}
