package report

import (
	"bytes"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestPayload(t *testing.T) {
	c := qt.New(t)
	host := time.Date(2024, 5, 17, 15, 30, 45, 0, time.UTC)
	r := Reading{Device: "/dev/ttyUSB0", Clock: host.Add(-1500 * time.Millisecond), Host: host}

	c.Assert(r.Drift(), qt.Equals, -1500*time.Millisecond)
	p, err := Payload(r)
	c.Assert(err, qt.IsNil)
	c.Assert(string(p), qt.Equals, `{"device":"/dev/ttyUSB0","clock":1715959843,"host":1715959845,"drift_s":-1.5}`)
}

func TestWriter(t *testing.T) {
	c := qt.New(t)
	var buf bytes.Buffer
	host := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	err := Writer{W: &buf}.Report(Reading{Device: "logger", Clock: host.Add(2 * time.Second), Host: host})
	c.Assert(err, qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "logger: RTC time Mon Jan  2 15:04:07 2006 (drift 2s)\n")
}
