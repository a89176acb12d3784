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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// drain collects a complete reply from the channel. The protocol has
// no length prefix or delimiter, and a reply can span several
// pretty-printed lines, so reading continues until the device stays
// quiet for one full timeout. A silent device yields an empty string
// after a single timeout wait.
func drain(ch ByteChannel, timeout time.Duration) (string, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 256)
	for {
		n, err := ch.ReadWithTimeout(chunk, timeout)
		if err != nil {
			return "", &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			break
		}
		buf.Write(chunk[:n])
	}
	return strings.TrimRightFunc(buf.String(), unicode.IsSpace), nil
}

// drainLine reads a single line, stopping at the first newline or
// when the channel goes quiet. Used where a full drain would swallow
// bytes that belong to what follows, e.g. the telemetry stream
// starting right after a set_streaming ack.
func drainLine(ch ByteChannel, timeout time.Duration) (string, error) {
	var buf bytes.Buffer
	one := make([]byte, 1)
	for {
		n, err := ch.ReadWithTimeout(one, timeout)
		if err != nil {
			return "", &TransportError{Op: "read", Err: err}
		}
		if n == 0 {
			break
		}
		buf.WriteByte(one[0])
		if one[0] == '\n' {
			break
		}
	}
	return strings.TrimRightFunc(buf.String(), unicode.IsSpace), nil
}

// ResponseFrame is one drained reply. Decode classifies it: device
// data lands in Data, a device-reported failure comes back as a
// DeviceError, and text that does not parse as a structured value
// even after repair is a ProtocolError.
type ResponseFrame struct {
	Raw  string
	Data interface{}
}

func (frame *ResponseFrame) Decode() error {
	repaired := repairJSON(frame.Raw)
	var value interface{}
	if err := json.Unmarshal([]byte(repaired), &value); err != nil {
		return &ProtocolError{Raw: frame.Raw, Err: err}
	}
	switch v := value.(type) {
	case map[string]interface{}:
		if _, ok := v["error"]; ok {
			return deviceErrorFrom(v)
		}
		if success, ok := v["success"].(bool); ok && !success {
			return &DeviceError{Message: "command rejected by device"}
		}
		if data, ok := v["data"]; ok {
			frame.Data = normalizeReply(data)
		} else {
			// Ack-style replies carry no data wrapper.
			frame.Data = normalizeReply(v)
		}
		return nil
	case []interface{}:
		frame.Data = v
		return nil
	default:
		return &ProtocolError{Raw: frame.Raw, Err: fmt.Errorf("reply is not a structured value")}
	}
}

func deviceErrorFrom(obj map[string]interface{}) *DeviceError {
	devErr := DeviceError{}
	if msg, ok := obj["error"].(string); ok {
		devErr.Message = msg
	} else {
		devErr.Message = fmt.Sprintf("%v", obj["error"])
	}
	if code, ok := obj["code"].(float64); ok {
		devErr.Code = int(code)
	}
	if parent, ok := obj["parent"].(string); ok {
		devErr.Parent = parent
	}
	if at, ok := obj["at"].(string); ok {
		devErr.At = at
	}
	return &devErr
}

// Fields the API documents as integers but the firmware reports as
// strings.
var integerFields = map[string]bool{
	"rate": true,
}

// normalizeReply coerces stringly-typed integer fields back to
// numbers, walking nested objects.
func normalizeReply(value interface{}) interface{} {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return value
	}
	for key, val := range obj {
		switch v := val.(type) {
		case string:
			if integerFields[key] {
				if n, err := strconv.Atoi(v); err == nil {
					obj[key] = n
				}
			}
		case map[string]interface{}:
			obj[key] = normalizeReply(v)
		}
	}
	return obj
}
