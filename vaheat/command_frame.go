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
	"encoding/json"
)

// Commands is the device API vocabulary, mapping each command to a
// hint of the fields it accepts. The hint doubles as help text in the
// CLI; an empty hint means the command takes no parameters.
var Commands = map[string]string{
	"get_info":      "",
	"get_status":    "",
	"get_settings":  "",
	"get_streaming": "",
	"get_profile":   "profile_number,step",
	"start_heating": "mode,power,temperature,duration,profile_number,ignore_limit_error",
	"stop_heating":  "",
	"do_reset":      "all,profiles,settings,pid,profile_number",
	"set_keylock":   "(bool)",
	"set_settings":  "brightness,haptic_strength,temperature_limit,limit_enabled,pid{p,i,d}",
	"set_streaming": "mode,rate,time,remaining,onoff,temperature,setpoint,power,profile_step,resistance",
	"set_mode":      "mode,power,temperature,duration,profile_number",
	"set_profile":   "profile_number,name,steps",
}

// CommandFrame is one outgoing request. The wire format is a single
// JSON line {"<name>": <payload>} with no terminator; the device's
// reply timing delimits the exchange, not a framing byte.
type CommandFrame struct {
	Name    string
	Payload interface{}
}

// Validate checks the command name against the device vocabulary.
func (frame *CommandFrame) Validate() error {
	if _, ok := Commands[frame.Name]; !ok {
		return &UnknownCommandError{Name: frame.Name}
	}
	return nil
}

// Encode serializes the frame for the wire. A nil payload is sent as
// the literal true, the device's convention for parameterless
// commands.
func (frame *CommandFrame) Encode() ([]byte, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	payload := frame.Payload
	if payload == nil {
		payload = true
	}
	return json.Marshal(map[string]interface{}{frame.Name: payload})
}
