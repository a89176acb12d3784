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

package main

import "testing"

func TestNormalizeJSONInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single quotes become double quotes",
			input: `{'mode': 'AUTO', 'temperature': 60.5}`,
			want:  `{"mode": "AUTO", "temperature": 60.5}`,
		},
		{
			name:  "python booleans become json booleans",
			input: `{"limit_enabled": True, "all": False}`,
			want:  `{"limit_enabled": true, "all": false}`,
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "  {\"rate\": 5}\n",
			want:  `{"rate": 5}`,
		},
		{
			name:  "well formed input is untouched",
			input: `{"mode": "once", "temperature": true}`,
			want:  `{"mode": "once", "temperature": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeJSONInput(tt.input)
			if got != tt.want {
				t.Errorf("normalizeJSONInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBoolInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{"1", true},
		{"on", true},
		{"yes", true},
		{"y", true},
		{"false", false},
		{"0", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseBoolInput(tt.input); got != tt.want {
				t.Errorf("parseBoolInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
