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

import (
	"testing"
)

func TestEntityBuild(t *testing.T) {
	devBlock := createDeviceBlock("VH123456")
	entity := EntityConfig{
		Key:         "temperature",
		Name:        "Temperature",
		EntityType:  Sensor,
		DeviceClass: "temperature",
		Unit:        "°C",
		StateTopic:  "status/temperature",
		Precision:   1,
	}

	config := entity.Build("VH123456", "vaheat/VH123456", devBlock)

	if got, want := config["uniq_id"], "vaheat_VH123456_temperature"; got != want {
		t.Errorf("uniq_id: got %v, want %v", got, want)
	}
	if got, want := config["avty_t"], "vaheat/VH123456/bridge/status"; got != want {
		t.Errorf("avty_t: got %v, want %v", got, want)
	}
	if got, want := config["stat_t"], "vaheat/VH123456/status/temperature"; got != want {
		t.Errorf("stat_t: got %v, want %v", got, want)
	}
	if got, want := config["native_unit_of_measurement"], "°C"; got != want {
		t.Errorf("unit: got %v, want %v", got, want)
	}
}

func TestEntityBuildBinarySensorPayloads(t *testing.T) {
	entity := EntityConfig{
		Key:         "onoff",
		Name:        "Heating",
		EntityType:  BinarySensor,
		DeviceClass: "heat",
		StateTopic:  "status/onoff",
		PayloadOn:   "true",
		PayloadOff:  "false",
	}

	config := entity.Build("VH123456", "vaheat/VH123456", nil)

	if got, want := config["payload_on"], "true"; got != want {
		t.Errorf("payload_on: got %v, want %v", got, want)
	}
	if got, want := config["payload_off"], "false"; got != want {
		t.Errorf("payload_off: got %v, want %v", got, want)
	}
}

func TestGetDiscoveryTopic(t *testing.T) {
	entity := EntityConfig{Key: "alarm_active", EntityType: BinarySensor}

	got := entity.GetDiscoveryTopic("homeassistant", "VH123456")
	want := "homeassistant/binary_sensor/vaheat_VH123456/alarm_active/config"
	if got != want {
		t.Errorf("topic: got %q, want %q", got, want)
	}
}

func TestAllEntitiesHaveKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, entity := range AllEntities() {
		if entity.Key == "" || entity.Name == "" {
			t.Errorf("entity %+v is missing a key or name", entity)
		}
		if seen[entity.Key] {
			t.Errorf("duplicate entity key %q", entity.Key)
		}
		seen[entity.Key] = true
		if entity.EntityType == "" {
			t.Errorf("entity %q has no type", entity.Key)
		}
	}
}
