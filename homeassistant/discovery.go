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

// Package homeassistant announces the heater to Home Assistant over
// MQTT discovery.
package homeassistant

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vaheat/vaheat-mate/mqtt"
)

// PublishDiscovery sends the discovery message for every entity. If a
// ready channel is given, publishing waits until the monitors have
// pushed their first data so entities never appear empty.
func PublishDiscovery(mqttClient *mqtt.Client, serial, prefix, discoveryPrefix string, ready <-chan bool) {
	log.Infof("Publishing Home Assistant discovery messages for %s", serial)

	if ready != nil {
		log.Debug("Waiting for initial data before publishing discovery messages...")
		<-ready
		log.Debug("Initial data ready, publishing discovery messages")
	}

	devBlock := createDeviceBlock(serial)

	publishEntities(mqttClient, serial, prefix, discoveryPrefix, devBlock)
}

func createDeviceBlock(serial string) map[string]interface{} {
	return map[string]interface{}{
		"ids":  []string{fmt.Sprintf("vaheat_%s", serial)},
		"name": fmt.Sprintf("VAHEAT Heater (%s)", serial),
		"sw":   "vaheat-mate",
		"mf":   "VAHEAT",
	}
}

func publishEntities(mqttClient *mqtt.Client, serial, prefix, discoveryPrefix string, devBlock map[string]interface{}) {
	entities := AllEntities()

	for _, entity := range entities {
		config := entity.Build(serial, prefix, devBlock)
		topic := entity.GetDiscoveryTopic(discoveryPrefix, serial)

		if err := mqttClient.PublishJSON(topic, config); err != nil {
			log.Errorf("Error publishing discovery message for %s (%s): %v", entity.Name, entity.Key, err)
		} else {
			log.Debugf("Published discovery for %s at %s", entity.Name, topic)
		}
	}

	log.Infof("Published %d entity discovery messages", len(entities))
}
