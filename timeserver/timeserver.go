// Package timeserver implements the serial protocol used to keep the clock of a data logger in the field set from a
// host computer.
//
// The host sends "W" followed by the unix time in decimal and a newline to set the clock; the logger answers "!" once
// the clock is set, or "?" if it could not be. The host sends "R" to read the clock; the logger answers with the unix
// time as 10 zero-padded decimal digits, or 10 "?" if its clock could not be read. Any other byte is ignored by the
// logger.
package timeserver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ajanata/rtc/datetime"
)

const (
	cmdWrite = 'W'
	cmdRead  = 'R'
	replyOK  = '!'
	replyErr = '?'

	timeDigits = 10
)

var (
	ErrDeviceFailed   = errors.New("timeserver: device clock failed")
	ErrMalformedReply = errors.New("timeserver: malformed reply")
)

// Clock is implemented by the chip drivers and the software clock.
type Clock interface {
	Now() (datetime.DateTime, error)
	Adjust(datetime.DateTime) error
}

// Client is the host side of the protocol.
type Client struct {
	rw io.ReadWriter
}

func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// SetTime sets the device clock to t, truncated to the second.
func (c *Client) SetTime(t time.Time) error {
	_, err := fmt.Fprintf(c.rw, "%c%d\n", cmdWrite, t.Unix())
	if err != nil {
		return err
	}
	var reply [1]byte
	if _, err := io.ReadFull(c.rw, reply[:]); err != nil {
		return err
	}
	switch reply[0] {
	case replyOK:
		return nil
	case replyErr:
		return ErrDeviceFailed
	}
	return ErrMalformedReply
}

// ReadTime reads the device clock.
func (c *Client) ReadTime() (time.Time, error) {
	if _, err := c.rw.Write([]byte{cmdRead}); err != nil {
		return time.Time{}, err
	}
	var reply [timeDigits]byte
	if _, err := io.ReadFull(c.rw, reply[:]); err != nil {
		return time.Time{}, err
	}
	if reply[0] == replyErr {
		return time.Time{}, ErrDeviceFailed
	}
	secs, err := strconv.ParseUint(string(reply[:]), 10, 32)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedReply, reply[:])
	}
	return time.Unix(int64(secs), 0).UTC(), nil
}

// Serve answers commands read from rw using clock until rw returns an error. It returns nil when rw reaches EOF.
func Serve(rw io.ReadWriter, clock Clock) error {
	r := bufio.NewReader(rw)
	for {
		cmd, err := r.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch cmd {
		case cmdRead:
			err = serveRead(rw, clock)
		case cmdWrite:
			err = serveWrite(r, rw, clock)
		default:
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func serveRead(w io.Writer, clock Clock) error {
	dt, err := clock.Now()
	if err != nil {
		_, err = io.WriteString(w, strings.Repeat(string(replyErr), timeDigits))
		return err
	}
	_, err = fmt.Fprintf(w, "%0*d", timeDigits, dt.Unix())
	return err
}

func serveWrite(r *bufio.Reader, w io.Writer, clock Clock) error {
	line, err := r.ReadString('\n')
	if err != nil {
		return err
	}
	reply := []byte{replyOK}
	secs, err := strconv.ParseUint(strings.TrimRight(line, "\r\n"), 10, 32)
	if err != nil || clock.Adjust(datetime.FromUnix(uint32(secs))) != nil {
		reply[0] = replyErr
	}
	_, err = w.Write(reply)
	return err
}
