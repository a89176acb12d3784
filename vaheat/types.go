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

// Info is the identity block returned by get_info.
type Info map[string]interface{}

// SerialNumber returns the device serial, used on MQTT topics and in
// the CLI prompt.
func (i Info) SerialNumber() string {
	v, _ := i["serial_number"].(string)
	return v
}

// Status is the live state block returned by get_status.
type Status map[string]interface{}

// NoAlarm is the only alarm token in which heating may start.
const NoAlarm = "NO_ALARM"

// Alarm returns the current alarm token, e.g. NO_ALARM or OVER_TEMP.
func (s Status) Alarm() string {
	v, _ := s["alarm"].(string)
	return v
}

// Settings is the stored configuration block returned by get_settings.
type Settings map[string]interface{}

// PIDGains are the controller gains accepted by set_settings.
type PIDGains struct {
	P int `json:"p"`
	I int `json:"i"`
	D int `json:"d"`
}

// SettingsPatch is a partial update for set_settings. Nil fields are
// omitted from the frame and keep their stored value on the device.
type SettingsPatch struct {
	Brightness       *int      `json:"brightness,omitempty"`
	HapticStrength   *int      `json:"haptic_strength,omitempty"`
	TemperatureLimit *float64  `json:"temperature_limit,omitempty"`
	LimitEnabled     *bool     `json:"limit_enabled,omitempty"`
	PID              *PIDGains `json:"pid,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p SettingsPatch) Empty() bool {
	return p.Brightness == nil && p.HapticStrength == nil &&
		p.TemperatureLimit == nil && p.LimitEnabled == nil && p.PID == nil
}
