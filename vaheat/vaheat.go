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
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTimeout is the idle-read timeout used when none is given.
const DefaultTimeout = 500 * time.Millisecond

// ByteChannel is the duplex byte stream the engine talks over,
// typically an open serial port. ReadWithTimeout returns n == 0 with
// a nil error when the timeout elapses without data. The caller owns
// the channel's lifecycle; the engine never opens or closes it.
type ByteChannel interface {
	Write(p []byte) (int, error)
	ReadWithTimeout(p []byte, timeout time.Duration) (int, error)
}

// Client drives one VAHEAT controller over a ByteChannel. Requests
// are strictly synchronous: replies carry no correlation id, so a
// mutex holds each write-then-drain cycle together and at most one
// frame is ever outstanding. One Client owns its channel exclusively.
type Client struct {
	Timeout time.Duration

	channel ByteChannel
	mu      sync.Mutex

	info      Info
	lastRead  string
	lastWrite string
}

// NewClient wraps an open channel. The timeout bounds each read while
// draining a reply; the device is considered done once it stays quiet
// for one full timeout.
func NewClient(channel ByteChannel, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{Timeout: timeout, channel: channel}
}

// exchange runs one request cycle: encode, write, drain, decode.
func (c *Client) exchange(name string, payload interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exchangeLocked(name, payload, drain)
}

// exchangeLine is exchange with a single-line read for replies that
// may be followed immediately by unrelated bytes.
func (c *Client) exchangeLine(name string, payload interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exchangeLocked(name, payload, drainLine)
}

func (c *Client) exchangeLocked(name string, payload interface{}, read func(ByteChannel, time.Duration) (string, error)) (interface{}, error) {
	frame := CommandFrame{Name: name, Payload: payload}
	encoded, err := frame.Encode()
	if err != nil {
		return nil, err
	}

	log.Debugf("send %s", encoded)
	c.lastWrite = string(encoded)
	if _, err := c.channel.Write(encoded); err != nil {
		return nil, &TransportError{Op: "write", Err: err}
	}

	raw, err := read(c.channel, c.Timeout)
	if err != nil {
		return nil, err
	}
	c.lastRead = raw
	log.Debugf("recv %s", raw)

	reply := ResponseFrame{Raw: raw}
	if err := reply.Decode(); err != nil {
		return nil, err
	}
	return reply.Data, nil
}

// GetInfo queries the device identity and caches it on the client.
func (c *Client) GetInfo() (Info, error) {
	data, err := c.exchange("get_info", nil)
	if err != nil {
		return nil, err
	}
	obj, err := asObject(data)
	if err != nil {
		return nil, err
	}
	info := Info(obj)
	c.mu.Lock()
	c.info = info
	c.mu.Unlock()
	return info, nil
}

// Info returns the identity cached by the last GetInfo, if any.
func (c *Client) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// GetStatus queries the live device state.
func (c *Client) GetStatus() (Status, error) {
	data, err := c.exchange("get_status", nil)
	if err != nil {
		return nil, err
	}
	obj, err := asObject(data)
	if err != nil {
		return nil, err
	}
	return Status(obj), nil
}

// Alarm fetches the current alarm token via get_status. Cached alarm
// values are advisory only; safety-gated operations always re-fetch.
func (c *Client) Alarm() (string, error) {
	status, err := c.GetStatus()
	if err != nil {
		return "", err
	}
	return status.Alarm(), nil
}

// GetSettings queries the configuration stored on the device.
func (c *Client) GetSettings() (Settings, error) {
	data, err := c.exchange("get_settings", nil)
	if err != nil {
		return nil, err
	}
	obj, err := asObject(data)
	if err != nil {
		return nil, err
	}
	return Settings(obj), nil
}

// SetSettings updates stored settings. Only the fields carried by the
// patch are sent.
func (c *Client) SetSettings(patch SettingsPatch) error {
	if patch.Empty() {
		return fmt.Errorf("settings patch is empty")
	}
	_, err := c.exchange("set_settings", patch)
	return err
}

// StartHeating switches the device into the requested mode and starts
// the heater. The alarm state is fetched first; anything but NO_ALARM
// refuses the start before a start_heating frame is even built.
func (c *Client) StartHeating(params HeatingParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	alarm, err := c.Alarm()
	if err != nil {
		return err
	}
	if alarm != NoAlarm {
		log.Errorf("alarm status: %s, check hardware", alarm)
		return &AlarmError{State: alarm}
	}
	if _, err := c.exchange("start_heating", params.payload()); err != nil {
		return err
	}
	log.Infof("heating started in %s mode", params.Mode())
	return nil
}

// StopHeating stops the heating process immediately.
func (c *Client) StopHeating() error {
	if _, err := c.exchange("stop_heating", nil); err != nil {
		return err
	}
	log.Info("heating stopped")
	return nil
}

// SetMode changes the operating mode without starting the heater. The
// payload is the start_heating set minus ignore_limit_error, and no
// alarm gate applies.
func (c *Client) SetMode(params HeatingParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	payload := params.payload()
	delete(payload, "ignore_limit_error")
	_, err := c.exchange("set_mode", payload)
	return err
}

// DoReset erases the selected parts of the device state.
func (c *Client) DoReset(scope ResetScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	_, err := c.exchange("do_reset", scope.payload())
	return err
}

// SetKeylock locks or unlocks the device keys.
func (c *Client) SetKeylock(locked bool) error {
	if _, err := c.exchange("set_keylock", locked); err != nil {
		return err
	}
	if locked {
		log.Info("device keys locked")
	} else {
		log.Info("device keys unlocked")
	}
	return nil
}

// GetStreaming queries the streaming setup stored on the device.
func (c *Client) GetStreaming() (*StreamingConfig, error) {
	data, err := c.exchange("get_streaming", nil)
	if err != nil {
		return nil, err
	}
	var cfg StreamingConfig
	if err := decodeInto(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetStreaming overlays the patch on the setup currently stored on
// the device and sends the merged object back in full; the device
// does not accept partial configuration. The merged setup is
// returned.
func (c *Client) SetStreaming(patch StreamingPatch) (*StreamingConfig, error) {
	current, err := c.GetStreaming()
	if err != nil {
		return nil, err
	}
	merged := patch.apply(*current)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	// Single-line read for the ack: in continuous mode telemetry
	// follows immediately and an idle drain would swallow it.
	if _, err := c.exchangeLine("set_streaming", merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// StartStreaming begins telemetry in once or continuous mode, keeping
// the rate and channel flags stored on the device. Like heating, a
// start is refused while an alarm is active.
func (c *Client) StartStreaming(mode string) (*StreamingConfig, error) {
	if mode != StreamOnce && mode != StreamContinuous {
		return nil, fmt.Errorf("streaming mode %q: want %s or %s", mode, StreamOnce, StreamContinuous)
	}
	alarm, err := c.Alarm()
	if err != nil {
		return nil, err
	}
	if alarm != NoAlarm {
		log.Errorf("alarm status: %s, check hardware", alarm)
		return nil, &AlarmError{State: alarm}
	}
	return c.SetStreaming(StreamingPatch{Mode: &mode})
}

// StopStreaming turns telemetry off.
func (c *Client) StopStreaming() (*StreamingConfig, error) {
	mode := StreamOff
	return c.SetStreaming(StreamingPatch{Mode: &mode})
}

// GetProfile fetches a stored profile by slot number.
func (c *Client) GetProfile(number int) (*Profile, error) {
	if number < MinProfileNumber || number > MaxProfileNumber {
		return nil, &RangeError{Field: "profile_number", Value: float64(number), Min: MinProfileNumber, Max: MaxProfileNumber}
	}
	data, err := c.exchange("get_profile", map[string]interface{}{"profile_number": number})
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := decodeInto(data, &profile); err != nil {
		return nil, err
	}
	if profile.Number == 0 {
		profile.Number = number
	}
	return &profile, nil
}

// GetProfileStep fetches a single step of a stored profile.
func (c *Client) GetProfileStep(number, step int) (*ProfileStep, error) {
	if number < MinProfileNumber || number > MaxProfileNumber {
		return nil, &RangeError{Field: "profile_number", Value: float64(number), Min: MinProfileNumber, Max: MaxProfileNumber}
	}
	if step < 1 || step > MaxProfileSteps {
		return nil, &RangeError{Field: "step", Value: float64(step), Min: 1, Max: MaxProfileSteps}
	}
	data, err := c.exchange("get_profile", map[string]interface{}{"profile_number": number, "step": step})
	if err != nil {
		return nil, err
	}
	var profileStep ProfileStep
	if err := decodeInto(data, &profileStep); err != nil {
		return nil, err
	}
	return &profileStep, nil
}

// SetProfile writes a profile into its slot on the device.
func (c *Client) SetProfile(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	_, err := c.exchange("set_profile", profile)
	return err
}

// ReadLine reads one raw line from the channel without sending
// anything, e.g. to inspect streamed telemetry.
func (c *Client) ReadLine() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := drainLine(c.channel, c.Timeout)
	if err == nil && raw != "" {
		c.lastRead = raw
	}
	return raw, err
}

// ReadAll drains everything buffered on the channel until it goes
// quiet.
func (c *Client) ReadAll() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := drain(c.channel, c.Timeout)
	if err == nil && raw != "" {
		c.lastRead = raw
	}
	return raw, err
}

// WriteRaw sends text verbatim, bypassing command validation.
func (c *Client) WriteRaw(s string) error {
	if s == "" {
		return fmt.Errorf("nothing to write")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastWrite = s
	if _, err := c.channel.Write([]byte(s)); err != nil {
		return &TransportError{Op: "write", Err: err}
	}
	return nil
}

// LastRaw reports the raw text of the most recent read and write, for
// wire-level debugging.
func (c *Client) LastRaw() (read, write string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRead, c.lastWrite
}
