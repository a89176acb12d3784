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

package serialport

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// The controller enumerates as an STM32 virtual COM port.
const (
	VendorID  = "0483"
	ProductID = "5740"
)

// Find lists the device paths of all attached VAHEAT controllers,
// matched by USB vendor and product id.
func Find() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	var found []string
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}
		if strings.EqualFold(port.VID, VendorID) && strings.EqualFold(port.PID, ProductID) {
			found = append(found, port.Name)
		}
	}
	return found, nil
}
