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
	"fmt"
	"strconv"
)

// Typed field readers for loosely shaped payload maps. JSON numbers
// arrive as float64, programmatic callers may pass native ints, and
// the firmware reports some integers as strings; these helpers accept
// all of them.

func floatField(fields map[string]interface{}, key string) (float64, bool) {
	switch v := fields[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func intField(fields map[string]interface{}, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func boolField(fields map[string]interface{}, key string) (bool, bool) {
	v, ok := fields[key].(bool)
	return v, ok
}

func stringField(fields map[string]interface{}, key string) (string, bool) {
	v, ok := fields[key].(string)
	return v, ok
}

// asObject narrows a classified reply to a JSON object.
func asObject(data interface{}) (map[string]interface{}, error) {
	obj, ok := data.(map[string]interface{})
	if !ok {
		return nil, &ProtocolError{Err: fmt.Errorf("reply payload is %T, expected an object", data)}
	}
	return obj, nil
}

// decodeInto maps a classified reply value onto a typed struct by way
// of its JSON encoding.
func decodeInto(data interface{}, target interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &ProtocolError{Err: fmt.Errorf("failed to decode reply: %w", err)}
	}
	return nil
}
