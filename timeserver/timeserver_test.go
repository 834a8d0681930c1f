package timeserver

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/ajanata/rtc/datetime"
	"github.com/ajanata/rtc/softrtc"
)

type brokenClock struct{}

func (brokenClock) Now() (datetime.DateTime, error) { return datetime.DateTime{}, errors.New("nack") }
func (brokenClock) Adjust(datetime.DateTime) error { return errors.New("nack") }

func fixedClock() *softrtc.RTC {
	return softrtc.New(func() time.Duration { return 0 })
}

// serve runs Serve on one end of a pipe and returns a client on the other end.
func serve(c *qt.C, clock Clock) *Client {
	host, device := net.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- Serve(device, clock)
	}()
	c.Cleanup(func() {
		host.Close()
		c.Check(<-done, qt.IsNil)
	})
	host.SetDeadline(time.Now().Add(5 * time.Second))
	return NewClient(host)
}

func TestSetAndRead(t *testing.T) {
	c := qt.New(t)
	clock := fixedClock()
	client := serve(c, clock)

	want := time.Date(2024, 5, 17, 15, 30, 45, 0, time.UTC)
	c.Assert(client.SetTime(want.Add(700*time.Millisecond)), qt.IsNil)

	dt, err := clock.Now()
	c.Assert(err, qt.IsNil)
	c.Assert(dt, qt.Equals, datetime.FromTime(want))

	got, err := client.ReadTime()
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, want)
}

func TestSetOutOfRange(t *testing.T) {
	c := qt.New(t)
	client := serve(c, fixedClock())
	err := client.SetTime(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC))
	c.Assert(err, qt.Equals, ErrDeviceFailed)
}

func TestBrokenDeviceClock(t *testing.T) {
	c := qt.New(t)
	client := serve(c, brokenClock{})

	_, err := client.ReadTime()
	c.Assert(err, qt.Equals, ErrDeviceFailed)
	err = client.SetTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c.Assert(err, qt.Equals, ErrDeviceFailed)
}

func TestServeIgnoresNoise(t *testing.T) {
	c := qt.New(t)
	clock := fixedClock()
	c.Assert(clock.Adjust(datetime.New(2024, 1, 1, 0, 0, 0)), qt.IsNil)

	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("\r\nxR W1717171717\nRW12x\n"), &out}

	c.Assert(Serve(rw, clock), qt.IsNil)
	c.Assert(out.String(), qt.Equals, "1704067200!1717171717?")
}

func TestServePadsReply(t *testing.T) {
	c := qt.New(t)
	clock := fixedClock()
	c.Assert(clock.Adjust(datetime.New(2000, 1, 1, 0, 0, 0)), qt.IsNil)

	var out bytes.Buffer
	rw := struct {
		io.Reader
		io.Writer
	}{strings.NewReader("R"), &out}
	c.Assert(Serve(rw, clock), qt.IsNil)
	c.Assert(out.String(), qt.Equals, "0946684800")
}

type scripted struct {
	reply *strings.Reader
	sent  bytes.Buffer
}

func (s *scripted) Read(p []byte) (int, error) { return s.reply.Read(p) }
func (s *scripted) Write(p []byte) (int, error) { return s.sent.Write(p) }

func TestClientWire(t *testing.T) {
	c := qt.New(t)

	rw := &scripted{reply: strings.NewReader("!")}
	c.Assert(NewClient(rw).SetTime(time.Unix(1717171717, 0)), qt.IsNil)
	c.Assert(rw.sent.String(), qt.Equals, "W1717171717\n")

	rw = &scripted{reply: strings.NewReader("x")}
	c.Assert(NewClient(rw).SetTime(time.Unix(1717171717, 0)), qt.Equals, ErrMalformedReply)

	rw = &scripted{reply: strings.NewReader("17171717x7")}
	_, err := NewClient(rw).ReadTime()
	c.Assert(errors.Is(err, ErrMalformedReply), qt.IsTrue)
	c.Assert(rw.sent.String(), qt.Equals, "R")

	rw = &scripted{reply: strings.NewReader("1717")}
	_, err = NewClient(rw).ReadTime()
	c.Assert(err, qt.Equals, io.ErrUnexpectedEOF)
}
