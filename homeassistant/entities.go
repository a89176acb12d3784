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

package homeassistant

// AllEntities lists every entity the bridge announces for a heater.
// State topics follow what the monitors publish; command topics land
// on the bridge's set/ tree.
func AllEntities() []EntityConfig {
	return []EntityConfig{
		{
			Key:         "temperature",
			Name:        "Temperature",
			EntityType:  Sensor,
			DeviceClass: "temperature",
			Unit:        "°C",
			StateTopic:  "status/temperature",
			Precision:   1,
		},
		{
			Key:         "setpoint",
			Name:        "Setpoint",
			EntityType:  Sensor,
			DeviceClass: "temperature",
			Unit:        "°C",
			StateTopic:  "status/setpoint",
			Precision:   1,
		},
		{
			Key:        "power",
			Name:       "Power",
			EntityType: Sensor,
			Icon:       "mdi:flash",
			Unit:       "%",
			StateTopic: "status/power",
			Precision:  1,
		},
		{
			Key:        "resistance",
			Name:       "Probe Resistance",
			EntityType: Sensor,
			Icon:       "mdi:omega",
			Unit:       "Ω",
			StateTopic: "status/resistance",
			Precision:  2,
		},
		{
			Key:         "time",
			Name:        "Elapsed Time",
			EntityType:  Sensor,
			DeviceClass: "duration",
			Unit:        "s",
			StateTopic:  "status/time",
		},
		{
			Key:         "remaining",
			Name:        "Remaining Time",
			EntityType:  Sensor,
			DeviceClass: "duration",
			Unit:        "s",
			StateTopic:  "status/remaining",
		},
		{
			Key:        "profile_step",
			Name:       "Profile Step",
			EntityType: Sensor,
			Icon:       "mdi:stairs",
			StateTopic: "status/profile_step",
		},
		{
			Key:        "mode",
			Name:       "Mode",
			EntityType: Sensor,
			Icon:       "mdi:tune",
			StateTopic: "status/mode",
		},
		{
			Key:            "alarm",
			Name:           "Alarm",
			EntityType:     Sensor,
			EntityCategory: "diagnostic",
			Icon:           "mdi:alert-circle",
			StateTopic:     "status/alarm",
		},
		{
			Key:         "alarm_active",
			Name:        "Alarm Active",
			EntityType:  BinarySensor,
			DeviceClass: "problem",
			StateTopic:  "status/alarm_active",
		},
		{
			Key:         "onoff",
			Name:        "Heating",
			EntityType:  BinarySensor,
			DeviceClass: "heat",
			StateTopic:  "status/onoff",
			PayloadOn:   "true",
			PayloadOff:  "false",
		},
		{
			Key:            "keylock",
			Name:           "Key Lock",
			EntityType:     Switch,
			EntityCategory: "config",
			Icon:           "mdi:lock",
			CommandTopic:   "set/keylock",
			PayloadOn:      "true",
			PayloadOff:     "false",
		},
		{
			Key:          "stop_heating",
			Name:         "Stop Heating",
			EntityType:   Button,
			Icon:         "mdi:stop",
			CommandTopic: "set/stop_heating",
			PayloadPress: "PRESS",
		},
		{
			Key:            "brightness",
			Name:           "Display Brightness",
			EntityType:     Number,
			EntityCategory: "config",
			Icon:           "mdi:brightness-6",
			StateTopic:     "settings/brightness",
			CommandTopic:   "set/brightness",
			MinValue:       0,
			MaxValue:       10,
			Step:           "1",
			Mode:           "slider",
		},
		{
			Key:            "haptic_strength",
			Name:           "Haptic Strength",
			EntityType:     Number,
			EntityCategory: "config",
			Icon:           "mdi:vibrate",
			StateTopic:     "settings/haptic_strength",
			CommandTopic:   "set/haptic_strength",
			MinValue:       0,
			MaxValue:       5,
			Step:           "1",
			Mode:           "slider",
		},
	}
}
