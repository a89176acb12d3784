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
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestResponseFrameDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want interface{}
	}{
		{
			name: "data wrapper is unwrapped",
			raw:  `{"data":{"temperature":25.1}}`,
			want: map[string]interface{}{"temperature": 25.1},
		},
		{
			name: "stringly rate is coerced",
			raw:  `{"data":{"rate":"1"}}`,
			want: map[string]interface{}{"rate": 1},
		},
		{
			name: "nested rate is coerced too",
			raw:  `{"data":{"streaming":{"rate":"20"}}}`,
			want: map[string]interface{}{
				"streaming": map[string]interface{}{"rate": 20},
			},
		},
		{
			name: "ack without data wrapper keeps the whole object",
			raw:  `{"success":true}`,
			want: map[string]interface{}{"success": true},
		},
		{
			name: "array reply",
			raw:  `[1,2]`,
			want: []interface{}{1.0, 2.0},
		},
		{
			name: "malformed reply is repaired first",
			raw:  "{\n\"data\":{\n\"alarm\":\"NO_ALARM\"\n}\n}",
			want: map[string]interface{}{"alarm": "NO_ALARM"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := ResponseFrame{Raw: tt.raw}
			if err := frame.Decode(); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, frame.Data); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResponseFrameDecodeErrors(t *testing.T) {
	t.Run("error key wins over everything", func(t *testing.T) {
		frame := ResponseFrame{Raw: `{"error":"bad","code":3,"parent":"p","at":"l","success":true,"data":{}}`}
		err := frame.Decode()
		var devErr *DeviceError
		if !errors.As(err, &devErr) {
			t.Fatalf("got %v, want DeviceError", err)
		}
		want := &DeviceError{Message: "bad", Code: 3, Parent: "p", At: "l"}
		if diff := cmp.Diff(want, devErr); diff != "" {
			t.Errorf("device error mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-string error message is stringified", func(t *testing.T) {
		frame := ResponseFrame{Raw: `{"error":42}`}
		err := frame.Decode()
		var devErr *DeviceError
		if !errors.As(err, &devErr) {
			t.Fatalf("got %v, want DeviceError", err)
		}
		if got, want := devErr.Message, "42"; got != want {
			t.Errorf("message: got %q, want %q", got, want)
		}
	})

	t.Run("success false without error key", func(t *testing.T) {
		frame := ResponseFrame{Raw: `{"success":false}`}
		err := frame.Decode()
		var devErr *DeviceError
		if !errors.As(err, &devErr) {
			t.Fatalf("got %v, want DeviceError", err)
		}
		if devErr.Code != 0 {
			t.Errorf("generic rejection carries code %d, want 0", devErr.Code)
		}
	})

	t.Run("scalar reply", func(t *testing.T) {
		frame := ResponseFrame{Raw: `42`}
		var protoErr *ProtocolError
		if !errors.As(frame.Decode(), &protoErr) {
			t.Fatal("expected ProtocolError for a bare scalar")
		}
	})

	t.Run("empty reply", func(t *testing.T) {
		frame := ResponseFrame{Raw: ""}
		var protoErr *ProtocolError
		if !errors.As(frame.Decode(), &protoErr) {
			t.Fatal("expected ProtocolError for an empty reply")
		}
	})

	t.Run("unrepairable garbage", func(t *testing.T) {
		frame := ResponseFrame{Raw: "### BOOT ###"}
		var protoErr *ProtocolError
		if !errors.As(frame.Decode(), &protoErr) {
			t.Fatal("expected ProtocolError for non-JSON text")
		}
	})
}

func TestDrain(t *testing.T) {
	t.Run("multi-chunk reply", func(t *testing.T) {
		long := strings.Repeat("x", 600)
		ch := &mockChannel{pending: []byte(long + "\r\n")}
		got, err := drain(ch, time.Millisecond)
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if got != long {
			t.Errorf("got %d bytes, want %d", len(got), len(long))
		}
	})

	t.Run("quiet channel yields empty string", func(t *testing.T) {
		ch := &mockChannel{}
		got, err := drain(ch, time.Millisecond)
		if err != nil {
			t.Fatalf("drain: %v", err)
		}
		if got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestDrainLine(t *testing.T) {
	ch := &mockChannel{pending: []byte("{\"success\":true}\n{\"temperature\":23.4}\n")}

	first, err := drainLine(ch, time.Millisecond)
	if err != nil {
		t.Fatalf("drainLine: %v", err)
	}
	if got, want := first, `{"success":true}`; got != want {
		t.Errorf("first line: got %q, want %q", got, want)
	}

	second, err := drainLine(ch, time.Millisecond)
	if err != nil {
		t.Fatalf("drainLine: %v", err)
	}
	if got, want := second, `{"temperature":23.4}`; got != want {
		t.Errorf("second line: got %q, want %q", got, want)
	}
}
