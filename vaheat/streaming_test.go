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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStreamingPatchApply(t *testing.T) {
	current := StreamingConfig{
		Mode:        StreamOff,
		Rate:        5,
		Temperature: true,
		Power:       true,
	}

	tests := []struct {
		name  string
		patch StreamingPatch
		want  StreamingConfig
	}{
		{
			name:  "mode only, everything else kept",
			patch: StreamingPatch{Mode: sptr(StreamOnce)},
			want:  StreamingConfig{Mode: StreamOnce, Rate: 5, Temperature: true, Power: true},
		},
		{
			name:  "empty patch changes nothing",
			patch: StreamingPatch{},
			want:  current,
		},
		{
			name:  "flags can be cleared",
			patch: StreamingPatch{Temperature: bptr(false), Resistance: bptr(true)},
			want:  StreamingConfig{Mode: StreamOff, Rate: 5, Power: true, Resistance: true},
		},
		{
			name:  "rate change",
			patch: StreamingPatch{Rate: iptr(20)},
			want:  StreamingConfig{Mode: StreamOff, Rate: 20, Temperature: true, Power: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.apply(current)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("merged setup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStreamingConfigValidate(t *testing.T) {
	valid := StreamingConfig{Mode: StreamContinuous, Rate: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid setup rejected: %v", err)
	}

	for _, rate := range StreamingRates {
		cfg := StreamingConfig{Mode: StreamOff, Rate: rate}
		if err := cfg.Validate(); err != nil {
			t.Errorf("rate %d rejected: %v", rate, err)
		}
	}

	bad := []StreamingConfig{
		{Mode: "sometimes", Rate: 5},
		{Mode: StreamOnce, Rate: 3},
		{Mode: StreamOnce, Rate: 0},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Errorf("setup %+v accepted", cfg)
		}
	}
}
