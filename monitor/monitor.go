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

// Package monitor polls the device and publishes whatever changed.
// Polls go through the engine's own request cycle, so a monitor never
// talks over a command in flight.
package monitor

import (
	"reflect"
	"time"

	cmp "github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/vaheat/vaheat-mate/mqtt"
	"github.com/vaheat/vaheat-mate/vaheat"
)

const (
	DefaultStatusInterval   = 2 * time.Second
	DefaultSettingsInterval = 60 * time.Second
)

// StartStatusMonitor polls get_status and publishes changed keys
// under <prefix>/status. Numeric keys are also exported as gauges.
// The returned channel signals once the first poll has published.
func StartStatusMonitor(device *vaheat.Client, mqttClient *mqtt.Client, serial string, interval time.Duration) chan bool {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	cache := make(map[string]interface{})
	gauges := make(map[string]*prometheus.GaugeVec)
	ready := make(chan bool, 1)
	firstPublish := true

	alarmGauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vaheat_mate",
			Subsystem: "status",
			Name:      "alarm_active",
		},
		[]string{"serial"},
	)
	prometheus.Register(alarmGauge)

	go func() {
		for {
			status, err := device.GetStatus()
			if err != nil {
				log.Warnf("status poll failed: %v", err)
				time.Sleep(interval)
				continue
			}

			registerGauges(gauges, "status", status)
			changeSet := changedValues(cache, status)
			for key, value := range changeSet {
				updateGauge(gauges[key], serial, value)

				// The alarm token gets a boolean shadow so Home
				// Assistant and alerting can key off it directly.
				if key == "alarm" {
					if state, ok := value.(string); ok {
						if state == vaheat.NoAlarm {
							changeSet["alarm_active"] = "OFF"
							alarmGauge.WithLabelValues(serial).Set(0)
						} else {
							changeSet["alarm_active"] = "ON"
							alarmGauge.WithLabelValues(serial).Set(1)
							log.Warnf("device alarm: %s", state)
						}
					}
				}
			}
			mqttClient.PublishMany("status", changeSet)

			if firstPublish {
				select {
				case ready <- true:
				default:
				}
				firstPublish = false
			}

			time.Sleep(interval)
		}
	}()

	return ready
}

// StartSettingsMonitor polls get_settings and publishes changed keys
// under <prefix>/settings. Settings move rarely, so the interval is
// much longer than the status poll.
func StartSettingsMonitor(device *vaheat.Client, mqttClient *mqtt.Client, serial string, interval time.Duration) chan bool {
	if interval <= 0 {
		interval = DefaultSettingsInterval
	}
	cache := make(map[string]interface{})
	gauges := make(map[string]*prometheus.GaugeVec)
	ready := make(chan bool, 1)
	firstPublish := true

	go func() {
		for {
			settings, err := device.GetSettings()
			if err != nil {
				log.Warnf("settings poll failed: %v", err)
				time.Sleep(interval)
				continue
			}

			registerGauges(gauges, "settings", settings)
			changeSet := changedValues(cache, settings)
			for key, value := range changeSet {
				updateGauge(gauges[key], serial, value)
			}
			mqttClient.PublishMany("settings", changeSet)

			if firstPublish {
				select {
				case ready <- true:
				default:
				}
				firstPublish = false
			}

			time.Sleep(interval)
		}
	}()

	return ready
}

// changedValues diffs a fresh poll against the cache, returning only
// the keys that moved and folding them back into the cache.
func changedValues(cache, fresh map[string]interface{}) map[string]interface{} {
	changeSet := make(map[string]interface{})
	for key, value := range fresh {
		if !cmp.Equal(cache[key], value) {
			changeSet[key] = value
			cache[key] = value
		}
	}
	return changeSet
}

func registerGauges(gauges map[string]*prometheus.GaugeVec, subsystem string, values map[string]interface{}) {
	for key, value := range values {
		if gauges[key] != nil || !isNumeric(value) {
			continue
		}
		gauges[key] = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "vaheat_mate",
				Subsystem: subsystem,
				Name:      key,
			},
			[]string{"serial"},
		)
		prometheus.Register(gauges[key])
	}
}

func isNumeric(value interface{}) bool {
	if value == nil {
		return false
	}
	dataType := reflect.TypeOf(value).Kind()
	return dataType == reflect.Float64 || dataType == reflect.Int
}

func updateGauge(gauge *prometheus.GaugeVec, serial string, value interface{}) {
	if gauge == nil {
		return
	}
	switch v := value.(type) {
	case float64:
		gauge.WithLabelValues(serial).Set(v)
	case int:
		gauge.WithLabelValues(serial).Set(float64(v))
	}
}
