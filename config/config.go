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

package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// Config holds application configuration
type Config struct {
	LogLevel         string
	Bind             string
	Port             string
	BaudRate         int
	ReadTimeout      time.Duration
	MQTTURL          string
	MQTTPrefix       string
	StatusInterval   time.Duration
	SettingsInterval time.Duration
	HADiscovery      bool
	DiscoveryPrefix  string
}

// Load parses command-line flags and environment variables
func Load() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.LogLevel, "log-level", lookupEnvOrString("VAHEAT_MATE_LOG_LEVEL", "INFO"), "logging level")
	flag.StringVar(&cfg.Bind, "bind", lookupEnvOrString("VAHEAT_MATE_BIND", "0.0.0.0:2112"), "address to bind for healthz and prometheus metrics endpoints (default 0.0.0.0:2112), or \"false\" to disable")
	flag.StringVar(&cfg.Port, "port", lookupEnvOrString("VAHEAT_MATE_PORT", ""), "serial device of the heater, e.g. /dev/ttyACM0 (default: first attached VAHEAT)")
	flag.IntVar(&cfg.BaudRate, "baud", lookupEnvOrInt("VAHEAT_MATE_BAUD", 115200), "serial baud rate")
	flag.DurationVar(&cfg.ReadTimeout, "read-timeout", lookupEnvOrDuration("VAHEAT_MATE_READ_TIMEOUT", 500*time.Millisecond), "time to wait for the device to finish a reply")
	flag.StringVar(&cfg.MQTTURL, "mqtt", lookupEnvOrString("VAHEAT_MATE_MQTT", "mqtt[s]://localhost:1883"), "MQTT URI, in the format mqtt[s]://[<user>:<password>]@<host>:<port>[/<prefix>]")
	flag.StringVar(&cfg.MQTTPrefix, "mqtt-prefix", lookupEnvOrString("VAHEAT_MATE_MQTT_PREFIX", ""), "topic prefix (default: vaheat/<serial>)")
	flag.DurationVar(&cfg.StatusInterval, "status-interval", lookupEnvOrDuration("VAHEAT_MATE_STATUS_INTERVAL", 2*time.Second), "how often to poll device status")
	flag.DurationVar(&cfg.SettingsInterval, "settings-interval", lookupEnvOrDuration("VAHEAT_MATE_SETTINGS_INTERVAL", 60*time.Second), "how often to poll device settings")
	flag.BoolVar(&cfg.HADiscovery, "homeassistant", lookupEnvOrBool("VAHEAT_MATE_HOMEASSISTANT", true), "enable Home Assistant autodiscovery (default: true)")
	flag.StringVar(&cfg.DiscoveryPrefix, "discovery-prefix", lookupEnvOrString("VAHEAT_MATE_DISCOVERY_PREFIX", "homeassistant"), "Home Assistant discovery topic prefix")
	flag.Parse()

	return cfg
}

// SetupLogging configures the logging level
func (cfg *Config) SetupLogging() {
	log.SetFormatter(&log.TextFormatter{})
	ll, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		ll = log.InfoLevel
	}
	log.SetLevel(ll)
}

func lookupEnvOrString(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func lookupEnvOrBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if val == "true" || val == "1" || val == "yes" {
			return true
		}
		return false
	}
	return defaultVal
}

func lookupEnvOrInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
		log.Warnf("ignoring %s: %q is not a number", key, val)
	}
	return defaultVal
}

func lookupEnvOrDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		log.Warnf("ignoring %s: %q is not a duration", key, val)
	}
	return defaultVal
}
