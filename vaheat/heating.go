/*
 * This file is part of the vaheat-mate distribution (https://github.com/vaheat/vaheat-mate).
 * Copyright (c) 2026 the vaheat-mate authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, version 3.
 *
 * This program is distributed in the hope that it will be useful, but
 * WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
 * General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <http://www.gnu.org/licenses/>.
 */

package vaheat

import (
	"fmt"
	"strings"
)

// DeviceMode is the operating regime of the heater. Each mode accepts
// its own parameter subset; the wire form is lowercase.
type DeviceMode string

const (
	ModeAuto    DeviceMode = "auto"
	ModeDirect  DeviceMode = "direct"
	ModeShock   DeviceMode = "shock"
	ModeProfile DeviceMode = "profile"
)

// ParseDeviceMode resolves a mode name case-insensitively.
func ParseDeviceMode(s string) (DeviceMode, error) {
	switch mode := DeviceMode(strings.ToLower(s)); mode {
	case ModeAuto, ModeDirect, ModeShock, ModeProfile:
		return mode, nil
	}
	return "", &InvalidModeError{Mode: s}
}

// Documented parameter limits.
const (
	MinProfileNumber = 1
	MaxProfileNumber = 9
	MinDuration      = 0.1
	MaxDuration      = 9999
)

// HeatingParams is the per-mode parameter set for start_heating and
// set_mode. Each mode carries only the fields it understands, so an
// illegal combination cannot be built in the first place.
type HeatingParams interface {
	Mode() DeviceMode
	Validate() error
	payload() map[string]interface{}
}

// AutoParams holds the temperature setpoint for AUTO mode.
type AutoParams struct {
	Temperature *float64 // setpoint in degC
}

func (p AutoParams) Mode() DeviceMode { return ModeAuto }

func (p AutoParams) Validate() error { return nil }

func (p AutoParams) payload() map[string]interface{} {
	d := map[string]interface{}{"mode": string(ModeAuto)}
	if p.Temperature != nil {
		d["temperature"] = *p.Temperature
	}
	return d
}

// DirectParams holds the relative power for DIRECT mode.
type DirectParams struct {
	Power *float64 // relative power in %
}

func (p DirectParams) Mode() DeviceMode { return ModeDirect }

func (p DirectParams) Validate() error { return nil }

func (p DirectParams) payload() map[string]interface{} {
	d := map[string]interface{}{"mode": string(ModeDirect)}
	if p.Power != nil {
		d["power"] = *p.Power
	}
	return d
}

// ShockParams holds power and duration for a SHOCK pulse.
type ShockParams struct {
	Power    *float64 // relative power in %
	Duration *float64 // pulse length in seconds
}

func (p ShockParams) Mode() DeviceMode { return ModeShock }

func (p ShockParams) Validate() error {
	if p.Duration != nil && (*p.Duration < MinDuration || *p.Duration > MaxDuration) {
		return &RangeError{Field: "duration", Value: *p.Duration, Min: MinDuration, Max: MaxDuration}
	}
	return nil
}

func (p ShockParams) payload() map[string]interface{} {
	d := map[string]interface{}{"mode": string(ModeShock)}
	if p.Power != nil {
		d["power"] = *p.Power
	}
	if p.Duration != nil {
		d["duration"] = *p.Duration
	}
	return d
}

// ProfileParams selects a stored profile for PROFILE mode.
type ProfileParams struct {
	Number           *int // profile slot, 1-9
	IgnoreLimitError *bool
}

func (p ProfileParams) Mode() DeviceMode { return ModeProfile }

func (p ProfileParams) Validate() error {
	if p.Number != nil && (*p.Number < MinProfileNumber || *p.Number > MaxProfileNumber) {
		return &RangeError{Field: "profile_number", Value: float64(*p.Number), Min: MinProfileNumber, Max: MaxProfileNumber}
	}
	return nil
}

func (p ProfileParams) payload() map[string]interface{} {
	d := map[string]interface{}{"mode": string(ModeProfile)}
	if p.Number != nil {
		d["profile_number"] = *p.Number
	}
	if p.IgnoreLimitError != nil {
		d["ignore_limit_error"] = *p.IgnoreLimitError
	}
	return d
}

// HeatingParamsFromMap builds mode parameters from a loosely typed
// field map, e.g. operator JSON input. A missing mode defaults to
// auto. Fields the resolved mode does not understand are dropped, not
// rejected; range limits are checked on what remains.
func HeatingParamsFromMap(fields map[string]interface{}) (HeatingParams, error) {
	modeStr, ok := stringField(fields, "mode")
	if !ok {
		modeStr = string(ModeAuto)
	}
	mode, err := ParseDeviceMode(modeStr)
	if err != nil {
		return nil, err
	}

	var params HeatingParams
	switch mode {
	case ModeAuto:
		p := AutoParams{}
		if v, ok := floatField(fields, "temperature"); ok {
			p.Temperature = &v
		}
		params = p
	case ModeDirect:
		p := DirectParams{}
		if v, ok := floatField(fields, "power"); ok {
			p.Power = &v
		}
		params = p
	case ModeShock:
		p := ShockParams{}
		if v, ok := floatField(fields, "power"); ok {
			p.Power = &v
		}
		if v, ok := floatField(fields, "duration"); ok {
			p.Duration = &v
		}
		params = p
	case ModeProfile:
		p := ProfileParams{}
		if v, ok := intField(fields, "profile_number"); ok {
			p.Number = &v
		}
		if v, ok := boolField(fields, "ignore_limit_error"); ok {
			p.IgnoreLimitError = &v
		}
		params = p
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// ResetScope selects what do_reset erases. All wins over everything
// else: once a full reset is requested, partial flags are meaningless
// and the frame collapses to {"all": true}.
type ResetScope struct {
	All           bool `json:"all,omitempty"`
	Profiles      bool `json:"profiles,omitempty"`
	Settings      bool `json:"settings,omitempty"`
	PID           bool `json:"pid,omitempty"`
	ProfileNumber *int `json:"profile_number,omitempty"`
}

func (r ResetScope) Validate() error {
	if !r.All && !r.Profiles && !r.Settings && !r.PID && r.ProfileNumber == nil {
		return fmt.Errorf("reset scope is empty")
	}
	if r.ProfileNumber != nil && (*r.ProfileNumber < MinProfileNumber || *r.ProfileNumber > MaxProfileNumber) {
		return &RangeError{Field: "profile_number", Value: float64(*r.ProfileNumber), Min: MinProfileNumber, Max: MaxProfileNumber}
	}
	return nil
}

func (r ResetScope) payload() map[string]interface{} {
	if r.All {
		return map[string]interface{}{"all": true}
	}
	d := map[string]interface{}{}
	if r.Profiles {
		d["profiles"] = true
	}
	if r.Settings {
		d["settings"] = true
	}
	if r.PID {
		d["pid"] = true
	}
	if r.ProfileNumber != nil {
		d["profile_number"] = *r.ProfileNumber
	}
	return d
}
