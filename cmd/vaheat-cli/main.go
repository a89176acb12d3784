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

// vaheat-cli is an interactive console for a VAHEAT benchtop heater:
// every device command, plus raw wire access for debugging.
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
	"github.com/vaheat/vaheat-mate/serialport"
	"github.com/vaheat/vaheat-mate/vaheat"
)

type session struct {
	rl       *readline.Instance
	portName string
	baudRate int
	timeout  time.Duration

	port    *serialport.Port
	client  *vaheat.Client
	serial  string
	showRaw bool
	lastErr error
}

func main() {
	portName := flag.String("port", "", "serial device to connect to on startup")
	baudRate := flag.Int("baud", serialport.DefaultBaudRate, "serial baud rate")
	timeout := flag.Duration("read-timeout", serialport.DefaultReadTimeout, "time to wait for the device to finish a reply")
	logLevel := flag.String("log-level", "WARNING", "logging level")
	flag.Parse()

	if ll, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(ll)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "♨ > ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		log.Fatalf("failed to create readline: %v", err)
	}

	s := &session{
		rl:       rl,
		portName: *portName,
		baudRate: *baudRate,
		timeout:  *timeout,
	}
	s.run()
}

func (s *session) run() {
	defer s.rl.Close()
	defer s.disconnect()

	s.printBanner()

	if s.portName != "" {
		s.cmdConnect(nil)
	}

	for {
		s.rl.SetPrompt(s.prompt())
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			// EOF
			fmt.Fprintln(s.rl.Stdout(), "bye")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "connect":
			s.cmdConnect(args)

		case "disconnect":
			s.disconnect()

		case "port":
			s.cmdPort(args)

		case "baud_rate", "baud":
			s.cmdBaudRate(args)

		case "raw":
			s.showRaw = !s.showRaw
			fmt.Fprintf(s.rl.Stdout(), "raw echo %v\n", s.showRaw)

		case "read":
			s.cmdRead()

		case "read_all":
			s.cmdReadAll()

		case "write":
			s.cmdWrite()

		case "error":
			s.cmdError()

		case "get_info":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetInfo() })

		case "get_status":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetStatus() })

		case "get_settings":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetSettings() })

		case "get_streaming":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.GetStreaming() })

		case "get_profile":
			s.cmdGetProfile()

		case "start_heating":
			s.cmdStartHeating()

		case "stop_heating":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return nil, c.StopHeating() })

		case "set_mode":
			s.cmdSetMode()

		case "set_keylock":
			s.cmdSetKeylock()

		case "set_settings":
			s.cmdSetSettings()

		case "set_streaming":
			s.cmdSetStreaming()

		case "start_streaming":
			s.cmdStartStreaming(args)

		case "stop_streaming":
			s.deviceOp(func(c *vaheat.Client) (interface{}, error) { return c.StopStreaming() })

		case "set_profile":
			s.cmdSetProfile()

		case "do_reset":
			s.cmdDoReset()

		case "exit", "quit", "q":
			fmt.Fprintln(s.rl.Stdout(), "bye")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *session) prompt() string {
	if s.client == nil {
		return "♨ > "
	}
	if s.serial != "" {
		return fmt.Sprintf("♨ [%s]> ", s.serial)
	}
	return fmt.Sprintf("♨ [%s]> ", s.portName)
}

// hintPrompt shows the fields a command accepts while asking for its
// parameters.
func (s *session) hintPrompt(hint string) string {
	base := strings.TrimSuffix(s.prompt(), "> ")
	return fmt.Sprintf("%s:%s> ", base, hint)
}

func (s *session) printBanner() {
	out := s.rl.Stdout()
	fmt.Fprintln(out, "[[VAHEAT CLI]]")
	ports, err := serialport.Find()
	if err != nil {
		fmt.Fprintf(out, "could not scan serial ports: %v\n", err)
		return
	}
	if len(ports) == 0 {
		fmt.Fprintln(out, "no VAHEAT device attached")
		return
	}
	fmt.Fprintf(out, "found: %s\n", strings.Join(ports, ", "))
	if s.portName == "" {
		s.portName = ports[0]
	}
}

func (s *session) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
VAHEAT commands:
  get_info          device identity
  get_status        live state, including alarms
  get_settings      stored settings
  get_streaming     telemetry setup
  get_profile       one stored profile, or a single step
  start_heating     start in auto/direct/shock/profile mode
  stop_heating      stop immediately
  set_mode          change mode without starting
  set_keylock       lock or unlock the device keys
  set_settings      update stored settings
  set_streaming     change the telemetry setup
  start_streaming   begin telemetry (once or continuous)
  stop_streaming    turn telemetry off
  set_profile       store a profile
  do_reset          erase parts of the device state

Session:
  connect [port]    open the serial port
  disconnect        close the serial port
  port [device]     show or set the port
  baud_rate [rate]  show or set the baud rate
  raw               toggle raw wire echo
  read              read one raw line
  read_all          read until the device goes quiet
  write             send a raw line
  error             show the last error
  help              this text
  exit              leave (disconnects first)`)
}
