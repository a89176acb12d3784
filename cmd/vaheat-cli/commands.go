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

package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vaheat/vaheat-mate/serialport"
	"github.com/vaheat/vaheat-mate/vaheat"
)

func (s *session) cmdConnect(args []string) {
	if s.client != nil {
		fmt.Fprintf(s.rl.Stdout(), "already connected to %s\n", s.portName)
		return
	}
	if len(args) > 0 {
		s.portName = args[0]
	}
	if s.portName == "" {
		fmt.Fprintln(s.rl.Stdout(), "no port selected; use 'port <device>' first")
		return
	}

	port, err := serialport.Open(s.portName, s.baudRate)
	if err != nil {
		s.fail(err)
		return
	}
	s.port = port
	s.client = vaheat.NewClient(port, s.timeout)

	// Identity for the prompt; a failure here leaves the session
	// usable for raw debugging.
	if info, err := s.client.GetInfo(); err == nil {
		s.serial = info.SerialNumber()
	} else {
		fmt.Fprintf(s.rl.Stdout(), "connected, but get_info failed: %v\n", err)
	}
}

func (s *session) disconnect() {
	if s.port == nil {
		return
	}
	s.port.Close()
	s.port = nil
	s.client = nil
	s.serial = ""
}

func (s *session) cmdPort(args []string) {
	out := s.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "port: %s\n", s.portName)
		if ports, err := serialport.Find(); err == nil && len(ports) > 0 {
			fmt.Fprintf(out, "found: %s\n", strings.Join(ports, ", "))
		}
		return
	}
	if s.client != nil {
		fmt.Fprintln(out, "disconnect first")
		return
	}
	s.portName = args[0]
	fmt.Fprintf(out, "port: %s\n", s.portName)
}

func (s *session) cmdBaudRate(args []string) {
	out := s.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintf(out, "baud_rate: %d\n", s.baudRate)
		return
	}
	if s.client != nil {
		fmt.Fprintln(out, "disconnect first")
		return
	}
	rate, err := strconv.Atoi(args[0])
	if err != nil || rate <= 0 {
		fmt.Fprintf(out, "not a baud rate: %s\n", args[0])
		return
	}
	s.baudRate = rate
	fmt.Fprintf(out, "baud_rate: %d\n", s.baudRate)
}

func (s *session) cmdRead() {
	if s.client == nil {
		fmt.Fprintln(s.rl.Stdout(), "not connected")
		return
	}
	line, err := s.client.ReadLine()
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), line)
}

func (s *session) cmdReadAll() {
	if s.client == nil {
		fmt.Fprintln(s.rl.Stdout(), "not connected")
		return
	}
	raw, err := s.client.ReadAll()
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), raw)
}

func (s *session) cmdWrite() {
	if s.client == nil {
		fmt.Fprintln(s.rl.Stdout(), "not connected")
		return
	}
	line, ok := s.promptLine(s.hintPrompt("raw"))
	if !ok || line == "" {
		return
	}
	if err := s.client.WriteRaw(line + "\n"); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "--- WROTE RAW ---")
	fmt.Fprintln(s.rl.Stdout(), line)
}

func (s *session) cmdError() {
	if s.lastErr == nil {
		fmt.Fprintln(s.rl.Stdout(), "no error")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%T: %v\n", s.lastErr, s.lastErr)
}

func (s *session) cmdGetProfile() {
	if s.client == nil {
		fmt.Fprintln(s.rl.Stdout(), "not connected")
		return
	}
	number, ok := s.promptInt(s.hintPrompt("profile_number 1-9"))
	if !ok {
		return
	}
	stepLine, ok := s.promptLine(s.hintPrompt("step 1-20, empty for all"))
	if !ok {
		return
	}
	if stepLine == "" {
		s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetProfile(number) })
		return
	}
	step, err := strconv.Atoi(stepLine)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "not a step number: %s\n", stepLine)
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetProfileStep(number, step) })
}

func (s *session) cmdStartHeating() {
	params, ok := s.promptHeatingParams("start_heating")
	if !ok {
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.StartHeating(params) })
}

func (s *session) cmdSetMode() {
	params, ok := s.promptHeatingParams("set_mode")
	if !ok {
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.SetMode(params) })
}

func (s *session) cmdSetKeylock() {
	line, ok := s.promptLine(s.hintPrompt(vaheat.Commands["set_keylock"]))
	if !ok || line == "" {
		return
	}
	locked := parseBoolInput(line)
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.SetKeylock(locked) })
}

func (s *session) cmdSetSettings() {
	raw, ok := s.promptLine(s.hintPrompt(vaheat.Commands["set_settings"]))
	if !ok || raw == "" {
		return
	}
	var patch vaheat.SettingsPatch
	if err := json.Unmarshal([]byte(normalizeJSONInput(raw)), &patch); err != nil {
		s.fail(err)
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.SetSettings(patch) })
}

func (s *session) cmdSetStreaming() {
	raw, ok := s.promptLine(s.hintPrompt(vaheat.Commands["set_streaming"]))
	if !ok || raw == "" {
		return
	}
	var patch vaheat.StreamingPatch
	if err := json.Unmarshal([]byte(normalizeJSONInput(raw)), &patch); err != nil {
		s.fail(err)
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.SetStreaming(patch) })
}

func (s *session) cmdStartStreaming(args []string) {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
	} else {
		line, ok := s.promptLine(s.hintPrompt("once|continuous"))
		if !ok {
			return
		}
		mode = line
	}
	mode = strings.ToLower(strings.TrimSpace(mode))
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.StartStreaming(mode) })
}

func (s *session) cmdSetProfile() {
	raw, ok := s.promptLine(s.hintPrompt(vaheat.Commands["set_profile"]))
	if !ok || raw == "" {
		return
	}
	var profile vaheat.Profile
	if err := json.Unmarshal([]byte(normalizeJSONInput(raw)), &profile); err != nil {
		s.fail(err)
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.SetProfile(profile) })
}

func (s *session) cmdDoReset() {
	raw, ok := s.promptLine(s.hintPrompt(vaheat.Commands["do_reset"]))
	if !ok || raw == "" {
		return
	}
	var scope vaheat.ResetScope
	if err := json.Unmarshal([]byte(normalizeJSONInput(raw)), &scope); err != nil {
		s.fail(err)
		return
	}
	confirm, ok := s.promptLine("This erases device state. Continue? [y/N] ")
	if !ok || !strings.EqualFold(confirm, "y") {
		fmt.Fprintln(s.rl.Stdout(), "cancelled")
		return
	}
	s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.DoReset(scope) })
}

// deviceOp runs one operation against the connected device, printing
// the result or recording the error, plus the raw wire text when raw
// echo is on.
func (s *session) deviceOp(op func(*vaheat.Client) (interface{}, error)) {
	out := s.rl.Stdout()
	if s.client == nil {
		fmt.Fprintln(out, "not connected")
		return
	}
	result, err := op(s.client)
	s.echoRaw()
	if err != nil {
		s.fail(err)
		return
	}
	if result == nil {
		fmt.Fprintln(out, "ok")
		return
	}
	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "%v\n", result)
		return
	}
	fmt.Fprintln(out, string(pretty))
}

func (s *session) promptHeatingParams(name string) (vaheat.HeatingParams, bool) {
	raw, ok := s.promptLine(s.hintPrompt(vaheat.Commands[name]))
	if !ok || raw == "" {
		return nil, false
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal([]byte(normalizeJSONInput(raw)), &fields); err != nil {
		s.fail(err)
		return nil, false
	}
	params, err := vaheat.HeatingParamsFromMap(fields)
	if err != nil {
		s.fail(err)
		return nil, false
	}
	return params, true
}

// promptLine asks for one line under a temporary prompt. The second
// return is false when the user interrupted or closed the input.
func (s *session) promptLine(prompt string) (string, bool) {
	s.rl.SetPrompt(prompt)
	defer s.rl.SetPrompt(s.prompt())
	line, err := s.rl.Readline()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (s *session) promptInt(prompt string) (int, bool) {
	line, ok := s.promptLine(prompt)
	if !ok || line == "" {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "not a number: %s\n", line)
		return 0, false
	}
	return n, true
}

func (s *session) echoRaw() {
	if !s.showRaw || s.client == nil {
		return
	}
	read, write := s.client.LastRaw()
	out := s.rl.Stdout()
	fmt.Fprintln(out, "--- WROTE RAW ---")
	fmt.Fprintln(out, write)
	fmt.Fprintln(out, "--- READ RAW ---")
	fmt.Fprintln(out, read)
}

func (s *session) fail(err error) {
	s.lastErr = err
	fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
}
