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
)

// Streaming modes accepted by the device.
const (
	StreamOff        = "off"
	StreamOnce       = "once"
	StreamContinuous = "continuous"
)

// StreamingRates are the update rates the device supports, in
// samples per second.
var StreamingRates = []int{1, 2, 5, 10, 20}

// StreamingConfig is the complete streaming setup stored on the
// device: mode, rate and one enable flag per telemetry channel. The
// device only ever accepts the full object, never a partial one.
type StreamingConfig struct {
	Mode        string `json:"mode"`
	Rate        int    `json:"rate"`
	Time        bool   `json:"time"`
	Remaining   bool   `json:"remaining"`
	OnOff       bool   `json:"onoff"`
	Temperature bool   `json:"temperature"`
	Setpoint    bool   `json:"setpoint"`
	Power       bool   `json:"power"`
	ProfileStep bool   `json:"profile_step"`
	Resistance  bool   `json:"resistance"`
}

func (c *StreamingConfig) Validate() error {
	switch c.Mode {
	case StreamOff, StreamOnce, StreamContinuous:
	default:
		return fmt.Errorf("streaming mode %q: want %s, %s or %s", c.Mode, StreamOff, StreamOnce, StreamContinuous)
	}
	for _, rate := range StreamingRates {
		if c.Rate == rate {
			return nil
		}
	}
	return fmt.Errorf("streaming rate %d: want one of %v", c.Rate, StreamingRates)
}

// StreamingPatch is a partial update to the streaming setup. Nil
// fields keep the value currently stored on the device; the merged
// result is what actually goes on the wire.
type StreamingPatch struct {
	Mode        *string `json:"mode,omitempty"`
	Rate        *int    `json:"rate,omitempty"`
	Time        *bool   `json:"time,omitempty"`
	Remaining   *bool   `json:"remaining,omitempty"`
	OnOff       *bool   `json:"onoff,omitempty"`
	Temperature *bool   `json:"temperature,omitempty"`
	Setpoint    *bool   `json:"setpoint,omitempty"`
	Power       *bool   `json:"power,omitempty"`
	ProfileStep *bool   `json:"profile_step,omitempty"`
	Resistance  *bool   `json:"resistance,omitempty"`
}

func (p StreamingPatch) apply(cfg StreamingConfig) StreamingConfig {
	if p.Mode != nil {
		cfg.Mode = *p.Mode
	}
	if p.Rate != nil {
		cfg.Rate = *p.Rate
	}
	if p.Time != nil {
		cfg.Time = *p.Time
	}
	if p.Remaining != nil {
		cfg.Remaining = *p.Remaining
	}
	if p.OnOff != nil {
		cfg.OnOff = *p.OnOff
	}
	if p.Temperature != nil {
		cfg.Temperature = *p.Temperature
	}
	if p.Setpoint != nil {
		cfg.Setpoint = *p.Setpoint
	}
	if p.Power != nil {
		cfg.Power = *p.Power
	}
	if p.ProfileStep != nil {
		cfg.ProfileStep = *p.ProfileStep
	}
	if p.Resistance != nil {
		cfg.Resistance = *p.Resistance
	}
	return cfg
}
