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

// vaheat-mate bridges a VAHEAT benchtop heater on a USB serial port
// to MQTT, with Prometheus metrics and Home Assistant discovery.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	healthz "github.com/klyve/go-healthz"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/vaheat/vaheat-mate/config"
	"github.com/vaheat/vaheat-mate/homeassistant"
	"github.com/vaheat/vaheat-mate/monitor"
	"github.com/vaheat/vaheat-mate/mqtt"
	"github.com/vaheat/vaheat-mate/serialport"
	"github.com/vaheat/vaheat-mate/vaheat"
)

// determineMQTTPrefix extracts the prefix from the MQTT URL path, or
// generates one from the device serial
func determineMQTTPrefix(mqttURL *url.URL, configured, serial string) string {
	if configured != "" {
		return configured
	}
	if len(mqttURL.Path) > 1 {
		return mqttURL.Path[1:]
	}
	return fmt.Sprintf("vaheat/%s", serial)
}

// resolvePort returns the configured serial device, or the first
// attached heater when none was configured.
func resolvePort(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	ports, err := serialport.Find()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", fmt.Errorf("no VAHEAT device attached; use -port to name one")
	}
	if len(ports) > 1 {
		log.Warnf("multiple heaters attached (%s), using %s", strings.Join(ports, ", "), ports[0])
	}
	return ports[0], nil
}

func parseBoolPayload(payload []byte) bool {
	switch strings.ToLower(strings.TrimSpace(string(payload))) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}

// handleSet dispatches one <prefix>/set/<key> message to the device.
func handleSet(device *vaheat.Client, key string, payload []byte) error {
	switch key {
	case "keylock":
		return device.SetKeylock(parseBoolPayload(payload))
	case "stop_heating":
		return device.StopHeating()
	case "start_heating":
		params, err := heatingParams(payload)
		if err != nil {
			return err
		}
		return device.StartHeating(params)
	case "mode":
		params, err := heatingParams(payload)
		if err != nil {
			return err
		}
		return device.SetMode(params)
	case "streaming":
		var patch vaheat.StreamingPatch
		if err := json.Unmarshal(payload, &patch); err != nil {
			return err
		}
		_, err := device.SetStreaming(patch)
		return err
	case "brightness":
		level, err := strconv.Atoi(strings.TrimSpace(string(payload)))
		if err != nil {
			return err
		}
		return device.SetSettings(vaheat.SettingsPatch{Brightness: &level})
	case "haptic_strength":
		level, err := strconv.Atoi(strings.TrimSpace(string(payload)))
		if err != nil {
			return err
		}
		return device.SetSettings(vaheat.SettingsPatch{HapticStrength: &level})
	case "reset":
		var scope vaheat.ResetScope
		if err := json.Unmarshal(payload, &scope); err != nil {
			return err
		}
		return device.DoReset(scope)
	}
	return fmt.Errorf("no handler for set/%s", key)
}

func heatingParams(payload []byte) (vaheat.HeatingParams, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	return vaheat.HeatingParamsFromMap(fields)
}

func main() {
	cfg := config.Load()
	cfg.SetupLogging()

	if cfg.Bind != "false" {
		go func(listenAddress string) {
			log.Infof("Starting metrics server on %s", listenAddress)
			instance := healthz.Instance{
				Logger:   log.New(),
				Detailed: true,
			}

			http.Handle("/metrics", promhttp.Handler())
			http.Handle("/healthz", instance.Healthz())
			http.Handle("/liveness", instance.Liveness())

			if err := http.ListenAndServe(listenAddress, nil); err != nil {
				log.Errorf("HTTP server error: %v", err)
			}
		}(cfg.Bind)
	}

	portName, err := resolvePort(cfg.Port)
	if err != nil {
		log.Fatal(err)
	}
	port, err := serialport.Open(portName, cfg.BaudRate)
	if err != nil {
		log.Fatal(err)
	}

	device := vaheat.NewClient(port, cfg.ReadTimeout)
	info, err := device.GetInfo()
	if err != nil {
		log.Fatalf("Failed to identify heater on %s: %v", portName, err)
	}
	serial := info.SerialNumber()
	if serial == "" {
		log.Fatalf("Heater on %s reported no serial number", portName)
	}
	log.Infof("Connected to heater at %s (serial: %s)", portName, serial)

	mqttUrl, err := url.Parse(cfg.MQTTURL)
	if err != nil {
		log.Fatalf("Invalid MQTT URL: %s", cfg.MQTTURL)
	}

	mqttPrefix := determineMQTTPrefix(mqttUrl, cfg.MQTTPrefix, serial)
	mqttClient, err := mqtt.NewClient(mqttUrl, fmt.Sprintf("vaheat-mate-%s", serial), mqttPrefix)
	if err != nil {
		log.Errorf("Failed to create MQTT client: %s", err)
		os.Exit(1)
	}

	log.Infof("Connected to MQTT broker %s (publishing on \"%s\")", mqttUrl.Host, mqttPrefix)

	if err := mqttClient.Subscribe("set/#", 1, func(client *mqtt.Client, msg mqtt.Message) {
		parts := strings.SplitN(msg.Topic(), "/set/", 2)
		if len(parts) != 2 {
			return
		}
		key := parts[1]
		if err := handleSet(device, key, msg.Payload()); err != nil {
			log.Errorf("Failed to handle set/%s %s: %v", key, msg.Payload(), err)
			return
		}
		log.Infof("Handled set/%s %s", key, msg.Payload())
	}); err != nil {
		log.Errorf("Failed to subscribe to set topics: %v", err)
	}

	go func() {
		if err := mqttClient.PublishMany("device", map[string]interface{}{
			"serial": serial,
			"port":   portName,
		}); err != nil {
			log.Errorf("Failed to publish device info: %v", err)
		}
	}()

	statusReady := monitor.StartStatusMonitor(device, mqttClient, serial, cfg.StatusInterval)
	settingsReady := monitor.StartSettingsMonitor(device, mqttClient, serial, cfg.SettingsInterval)

	if cfg.HADiscovery {
		go func() {
			allReady := make(chan bool, 1)
			go func() {
				<-statusReady
				<-settingsReady
				allReady <- true
			}()

			homeassistant.PublishDiscovery(mqttClient, serial, mqttPrefix, cfg.DiscoveryPrefix, allReady)
		}()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals

	log.Infof("Received %s, shutting down", sig)
	mqttClient.Disconnect()
	if err := port.Close(); err != nil {
		log.Errorf("Failed to close %s: %v", portName, err)
	}
}
