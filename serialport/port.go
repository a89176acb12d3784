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

// Package serialport opens and finds the USB serial ports a VAHEAT
// controller presents.
package serialport

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is what the controller firmware ships with.
	DefaultBaudRate = 115200
	// DefaultReadTimeout bounds one read while waiting for a reply.
	DefaultReadTimeout = 500 * time.Millisecond
)

// Port is an open connection to the device, 8N1 at the given baud
// rate. It satisfies the engine's byte channel.
type Port struct {
	name string
	port serial.Port
}

// Open connects to the named device. The caller closes the port when
// done; nothing else manages its lifetime.
func Open(name string, baudRate int) (*Port, error) {
	if baudRate <= 0 {
		baudRate = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", name, err)
	}
	log.Infof("connected to %s at %d baud", name, baudRate)
	return &Port{name: name, port: port}, nil
}

// Name reports the device path the port was opened on.
func (p *Port) Name() string {
	return p.name
}

func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// ReadWithTimeout reads once, waiting at most timeout for data. A
// timeout is not an error: it reports n == 0 and lets the caller
// decide whether the device is done talking.
func (p *Port) ReadWithTimeout(b []byte, timeout time.Duration) (int, error) {
	if err := p.port.SetReadTimeout(timeout); err != nil {
		return 0, fmt.Errorf("failed to set read timeout: %w", err)
	}
	return p.port.Read(b)
}

// Flush drops anything buffered but not yet read, e.g. stale
// telemetry from before a reconnect.
func (p *Port) Flush() error {
	return p.port.ResetInputBuffer()
}

func (p *Port) Close() error {
	log.Infof("disconnected from %s", p.name)
	return p.port.Close()
}
