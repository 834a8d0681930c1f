// Package pcf8523 implements a driver for the PCF8523 Real-Time Clock (RTC), providing basic read-write of the current
// time only. The PCF8523 itself supports alarms, clock drift compensation, and timer interrupts, but those features
// remain unimplemented.
//
// Datasheet: https://www.nxp.com/docs/en/data-sheet/PCF8523.pdf
package pcf8523

import (
	"time"

	"tinygo.org/x/drivers"

	"github.com/ajanata/rtc/bcd"
	"github.com/ajanata/rtc/datetime"
)

type Device struct {
	bus     drivers.I2C
	Address uint16
}

func New(i2c drivers.I2C) Device {
	return Device{
		bus:     i2c,
		Address: Address,
	}
}

// LostPower reports whether the oscillator stopped since the time was last set.
func (d *Device) LostPower() (bool, error) {
	buf := [1]byte{}
	err := d.bus.Tx(d.Address, []byte{Time}, buf[:])
	if err != nil {
		return false, err
	}
	return buf[0]&secondsOS != 0, nil
}

// Initialized reports whether battery switch-over has been configured, which Adjust does.
func (d *Device) Initialized() (bool, error) {
	buf := [1]byte{}
	err := d.bus.Tx(d.Address, []byte{Control3}, buf[:])
	if err != nil {
		return false, err
	}
	return buf[0]&control3PMMask != control3PMMask, nil
}

// Adjust sets the current time, starts the clock in 24-hour mode and enables battery switch-over.
func (d *Device) Adjust(dt datetime.DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	rbuf := [1]byte{}
	err := d.bus.Tx(d.Address, []byte{Control1}, rbuf[:])
	if err != nil {
		return err
	}
	// do not change cap_sel or second/alarm/correction interrupts
	// ensure RTC is running and 24-hour mode is selected
	err = d.bus.Tx(d.Address, []byte{Control1, rbuf[0] & control1Keep}, nil)
	if err != nil {
		return err
	}

	// writing the seconds also clears the oscillator stop flag
	buf := []byte{
		Time,
		bcd.Encode(dt.Second()),
		bcd.Encode(dt.Minute()),
		bcd.Encode(dt.Hour()),
		bcd.Encode(dt.Day()),
		dt.DayOfWeek(),
		bcd.Encode(dt.Month()),
		bcd.Encode(dt.YearOffset()),
	}
	err = d.bus.Tx(d.Address, buf, nil)
	if err != nil {
		return err
	}
	// turn on battery switchover mode, turn off battery-related interrupts
	return d.bus.Tx(d.Address, []byte{Control3, 0}, nil)
}

// Now reads the current time.
func (d *Device) Now() (datetime.DateTime, error) {
	buf := [7]byte{}
	err := d.bus.Tx(d.Address, []byte{Time}, buf[:])
	if err != nil {
		return datetime.DateTime{}, err
	}

	// we don't need to read the weekday
	return datetime.New(
		uint16(bcd.Decode(buf[6]))+2000,
		bcd.Decode(buf[5]&0x1F),
		bcd.Decode(buf[3]&0x3F),
		bcd.Decode(buf[2]&0x3F),
		bcd.Decode(buf[1]&0x7F),
		bcd.Decode(buf[0]&0x7F),
	), nil
}

// ReadTime reads the current time as a UTC time.Time.
func (d *Device) ReadTime() (time.Time, error) {
	dt, err := d.Now()
	if err != nil {
		return time.Time{}, err
	}
	return dt.Time(), nil
}

// SetTime sets the current time from t, truncated to the second.
func (d *Device) SetTime(t time.Time) error {
	return d.Adjust(datetime.FromTime(t))
}
