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

import "fmt"

// TransportError reports a failed read or write on the channel. The
// caller decides whether to reconnect; the engine never retries.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a reply that could not be parsed as a
// structured value even after separator repair. Retrying would only
// reproduce the failure, so it is surfaced as-is.
type ProtocolError struct {
	Raw string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Raw != "" {
		return fmt.Sprintf("malformed reply %q: %v", e.Raw, e.Err)
	}
	return fmt.Sprintf("malformed reply: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// DeviceError is an error the device reported itself. Message, code
// and location are surfaced verbatim from the reply.
type DeviceError struct {
	Message string
	Code    int
	Parent  string
	At      string
}

func (e *DeviceError) Error() string {
	msg := fmt.Sprintf("device error: %s", e.Message)
	if e.Code != 0 {
		msg = fmt.Sprintf("device error %d: %s", e.Code, e.Message)
	}
	if e.At != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, e.At)
	}
	return msg
}

// UnknownCommandError rejects a command name outside the device API,
// before anything is written to the channel.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// InvalidModeError rejects an operating mode outside
// auto/direct/shock/profile.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q", e.Mode)
}

// RangeError rejects a numeric field outside its documented range,
// before anything is written to the channel.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v out of range [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// AlarmError blocks a heating start while the device reports an
// active alarm. Check the hardware, clear the alarm, then retry.
type AlarmError struct {
	State string
}

func (e *AlarmError) Error() string {
	return fmt.Sprintf("alarm %q is active, refusing to start", e.State)
}
