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
	"fmt"
)

const (
	// MaxProfileNameLen is the longest profile name the device stores.
	MaxProfileNameLen = 47
	// MaxProfileSteps is the number of steps a profile slot holds.
	MaxProfileSteps = 20
)

// ProfileStep is one segment of a temperature profile: ramp at Rate
// towards Setpoint, hold for Duration.
type ProfileStep struct {
	Duration float64 `json:"duration"` // seconds
	Rate     float64 `json:"rate"`     // degC per second from the previous setpoint
	Setpoint float64 `json:"setpoint"` // degC to hold
}

// Profile is a stored heating program, addressed by its slot number.
type Profile struct {
	Number int           `json:"profile_number"`
	Name   string        `json:"name"`
	Steps  []ProfileStep `json:"steps"`
}

func (p *Profile) Validate() error {
	if p.Number < MinProfileNumber || p.Number > MaxProfileNumber {
		return &RangeError{Field: "profile_number", Value: float64(p.Number), Min: MinProfileNumber, Max: MaxProfileNumber}
	}
	if len(p.Name) > MaxProfileNameLen {
		return fmt.Errorf("profile name is %d characters, limit is %d", len(p.Name), MaxProfileNameLen)
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("profile has no steps")
	}
	if len(p.Steps) > MaxProfileSteps {
		return fmt.Errorf("profile has %d steps, limit is %d", len(p.Steps), MaxProfileSteps)
	}
	for i, step := range p.Steps {
		if step.Duration < MinDuration || step.Duration > MaxDuration {
			return &RangeError{
				Field: fmt.Sprintf("steps[%d].duration", i),
				Value: step.Duration,
				Min:   MinDuration,
				Max:   MaxDuration,
			}
		}
	}
	return nil
}
