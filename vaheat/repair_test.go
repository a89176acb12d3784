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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want interface{}
	}{
		{
			name: "comma-less flat object",
			in:   "{\n\"a\":1\n\"b\":2\n}",
			want: map[string]interface{}{"a": 1.0, "b": 2.0},
		},
		{
			name: "comma-less nested object",
			in:   "{\n\"data\":{\n\"mode\":\"off\"\n\"rate\":\"5\"\n}\n}",
			want: map[string]interface{}{
				"data": map[string]interface{}{"mode": "off", "rate": "5"},
			},
		},
		{
			name: "already valid multi-line",
			in:   "{\n\"a\":1,\n\"b\":2\n}",
			want: map[string]interface{}{"a": 1.0, "b": 2.0},
		},
		{
			name: "already valid single line keeps its commas",
			in:   `{"a":1,"b":2}`,
			want: map[string]interface{}{"a": 1.0, "b": 2.0},
		},
		{
			name: "array of objects with commas intact",
			in:   "[\n{\"a\":1},\n{\"a\":2}\n]",
			want: []interface{}{
				map[string]interface{}{"a": 1.0},
				map[string]interface{}{"a": 2.0},
			},
		},
		{
			name: "comma-less array of scalars",
			in:   "[\n1\n2\n3\n]",
			want: []interface{}{1.0, 2.0, 3.0},
		},
		{
			name: "carriage returns from the serial line",
			in:   "{\r\n\"a\":1\r\n\"b\":2\r\n}",
			want: map[string]interface{}{"a": 1.0, "b": 2.0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repaired := repairJSON(tt.in)
			var got interface{}
			if err := json.Unmarshal([]byte(repaired), &got); err != nil {
				t.Fatalf("repaired text %q is not valid JSON: %v", repaired, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Repairing twice must equal repairing once, or the final comma strip
// would eat a comma the first pass legitimately added.
func TestRepairJSONIdempotent(t *testing.T) {
	inputs := []string{
		"{\n\"a\":1\n\"b\":2\n}",
		"{\n\"data\":{\n\"mode\":\"off\"\n\"rate\":\"5\"\n}\n}",
		`{"a":1,"b":2}`,
		"[\n1\n2\n]",
		"",
		"not json at all",
	}
	for _, in := range inputs {
		once := repairJSON(in)
		twice := repairJSON(once)
		if once != twice {
			t.Errorf("repair of %q is not idempotent:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestRepairJSONLeavesValidValuesAlone(t *testing.T) {
	inputs := []string{
		`{"a":1,"b":2}`,
		`[1,2,3]`,
		`{"nested":{"x":true},"tail":"s"}`,
	}
	for _, in := range inputs {
		if got := repairJSON(in); got != in {
			t.Errorf("valid input %q was rewritten to %q", in, got)
		}
	}
}
