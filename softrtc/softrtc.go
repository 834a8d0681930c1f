// Package softrtc provides a software clock for boards without an RTC chip. It keeps time by adding the uptime of the
// board to an offset recorded when the clock was last adjusted, so it must be set again after every reset.
package softrtc

import (
	"time"

	"github.com/ajanata/rtc/datetime"
)

// Clock is the state of a software clock: the unix time at uptime zero. The zero value reads as the uptime counted
// from 1970. A Clock is not safe for concurrent use.
type Clock struct {
	offset int64
}

// Adjust sets the clock so that it reads dt at the given uptime.
func (c *Clock) Adjust(dt datetime.DateTime, uptime time.Duration) {
	c.offset = int64(dt.Unix()) - int64(uptime/time.Second)
}

// Now returns the time at the given uptime.
func (c Clock) Now(uptime time.Duration) datetime.DateTime {
	return datetime.FromUnix(uint32(c.offset + int64(uptime/time.Second)))
}

// Offset returns the unix time at uptime zero.
func (c Clock) Offset() int64 {
	return c.offset
}

// Uptime returns a source of elapsed time, counted from the call to Uptime.
func Uptime() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// RTC is a Clock bound to an uptime source, with the same Now and Adjust methods as the chip drivers.
type RTC struct {
	clock  Clock
	uptime func() time.Duration
}

// New creates a software RTC reading elapsed time from uptime. A nil uptime uses Uptime().
func New(uptime func() time.Duration) *RTC {
	if uptime == nil {
		uptime = Uptime()
	}
	return &RTC{uptime: uptime}
}

// Now returns the current time. It never fails.
func (r *RTC) Now() (datetime.DateTime, error) {
	return r.clock.Now(r.uptime()), nil
}

// Adjust sets the current time.
func (r *RTC) Adjust(dt datetime.DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	r.clock.Adjust(dt, r.uptime())
	return nil
}

// ReadTime returns the current time as a UTC time.Time.
func (r *RTC) ReadTime() (time.Time, error) {
	return r.clock.Now(r.uptime()).Time(), nil
}

// SetTime sets the current time from t, truncated to the second.
func (r *RTC) SetTime(t time.Time) error {
	return r.Adjust(datetime.FromTime(t))
}
