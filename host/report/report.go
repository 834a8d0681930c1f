// Package report publishes clock readings taken by the time server, either as text lines or as JSON messages on an
// MQTT broker.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Reading is one comparison of a device clock with the host clock.
type Reading struct {
	Device string
	Clock  time.Time
	Host   time.Time
}

// Drift is how far the device clock is ahead of the host clock.
func (r Reading) Drift() time.Duration {
	return r.Clock.Sub(r.Host)
}

type payload struct {
	Device string  `json:"device"`
	Clock  int64   `json:"clock"`
	Host   int64   `json:"host"`
	Drift  float64 `json:"drift_s"`
}

// Payload encodes r as a JSON object with unix times and the drift in seconds.
func Payload(r Reading) ([]byte, error) {
	return json.Marshal(payload{
		Device: r.Device,
		Clock:  r.Clock.Unix(),
		Host:   r.Host.Unix(),
		Drift:  r.Drift().Seconds(),
	})
}

// Reporter receives readings.
type Reporter interface {
	Report(Reading) error
}

// Writer reports readings as text lines.
type Writer struct {
	W io.Writer
}

func (w Writer) Report(r Reading) error {
	_, err := fmt.Fprintf(w.W, "%s: RTC time %s (drift %v)\n", r.Device, r.Clock.UTC().Format(time.ANSIC), r.Drift())
	return err
}
