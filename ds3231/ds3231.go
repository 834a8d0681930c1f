// Package ds3231 implements a driver for the DS3231 temperature-compensated Real-Time Clock (RTC): reading and setting
// the time, both alarms, the square wave and 32 kHz outputs, and the on-chip temperature sensor.
//
// Times are exchanged as datetime.DateTime, so the driver shares the 2000-2099 window of the chip's registers. The chip
// is always written in 24-hour mode; alarms may use either mode.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/DS3231.pdf
package ds3231

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"

	"github.com/ajanata/rtc/datetime"
)

// AlarmID selects one of the two alarms.
type AlarmID uint8

const (
	AlarmOne AlarmID = 1
	AlarmTwo AlarmID = 2
)

var ErrInvalidAlarm = errors.New("ds3231: alarm must be 1 or 2")

type Device struct {
	bus     drivers.I2C
	Address uint16
}

// New creates a new driver on the specified preconfigured I2C bus. The DS3231 supports up to 400 kHz.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Configure checks that the device responds on the bus.
func (d *Device) Configure() error {
	_, err := d.readByte(Status)
	return err
}

// Now reads the current time.
func (d *Device) Now() (datetime.DateTime, error) {
	buf := [7]byte{}
	err := d.readRegister(Time, buf[:])
	if err != nil {
		return datetime.DateTime{}, err
	}
	return decodeTime(buf), nil
}

// Adjust sets the current time and clears the oscillator stop flag.
func (d *Device) Adjust(dt datetime.DateTime) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	buf := encodeTime(dt)
	err := d.writeRegister(Time, buf[:])
	if err != nil {
		return err
	}
	status, err := d.readByte(Status)
	if err != nil {
		return err
	}
	return d.writeByte(Status, status&^statusOSF)
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

// LostPower reports whether the oscillator stopped since the time was last set, in which case the time is probably
// wrong.
func (d *Device) LostPower() (bool, error) {
	status, err := d.readByte(Status)
	if err != nil {
		return false, err
	}
	return status&statusOSF != 0, nil
}

// Temperature returns the temperature in milli-degrees Celsius, with a resolution of 0.25 degrees.
func (d *Device) Temperature() (int32, error) {
	buf := [2]byte{}
	err := d.readRegister(TempMSB, buf[:])
	if err != nil {
		return 0, err
	}
	return int32(int8(buf[0]))*1000 + int32(buf[1]>>6)*250, nil
}

// ReadAlarm reads the time and mode of the given alarm. The Mask only contains the bits of that alarm.
func (d *Device) ReadAlarm(id AlarmID) (Alarm, error) {
	switch id {
	case AlarmOne:
		buf := [4]byte{}
		if err := d.readRegister(Alarm1, buf[:]); err != nil {
			return Alarm{}, err
		}
		return decodeAlarm1(buf), nil
	case AlarmTwo:
		buf := [3]byte{}
		if err := d.readRegister(Alarm2, buf[:]); err != nil {
			return Alarm{}, err
		}
		return decodeAlarm2(buf), nil
	}
	return Alarm{}, ErrInvalidAlarm
}

// SetAlarm writes the time and mode of the given alarm. It does not enable the alarm. Mask bits belonging to the other
// alarm are ignored, as is Second for alarm 2.
func (d *Device) SetAlarm(id AlarmID, a Alarm) error {
	switch id {
	case AlarmOne:
		buf := encodeAlarm1(a)
		return d.writeRegister(Alarm1, buf[:])
	case AlarmTwo:
		buf := encodeAlarm2(a)
		return d.writeRegister(Alarm2, buf[:])
	}
	return ErrInvalidAlarm
}

// SetAlarmSimple sets the alarm to fire every day when the hour and minute match (and, for alarm 1, at second 0).
func (d *Device) SetAlarmSimple(id AlarmID, hour, minute uint8) error {
	a := Alarm{Hour: hour, Minute: minute}
	if id == AlarmOne {
		a.Mask = A1M4
	} else {
		a.Mask = A2M4
	}
	return d.SetAlarm(id, a)
}

func alarmBit(id AlarmID) (byte, error) {
	switch id {
	case AlarmOne:
		return controlA1IE, nil
	case AlarmTwo:
		return controlA2IE, nil
	}
	return 0, ErrInvalidAlarm
}

// EnableAlarm sets the alarm's interrupt enable bit, leaving the rest of the control register unchanged.
func (d *Device) EnableAlarm(id AlarmID) error {
	bit, err := alarmBit(id)
	if err != nil {
		return err
	}
	control, err := d.readByte(Control)
	if err != nil {
		return err
	}
	return d.writeByte(Control, control|bit)
}

// DisableAlarm clears the alarm's interrupt enable bit, leaving the rest of the control register unchanged.
func (d *Device) DisableAlarm(id AlarmID) error {
	bit, err := alarmBit(id)
	if err != nil {
		return err
	}
	control, err := d.readByte(Control)
	if err != nil {
		return err
	}
	return d.writeByte(Control, control&^bit)
}

// AlarmEnabled reports whether the alarm's interrupt enable bit is set.
func (d *Device) AlarmEnabled(id AlarmID) (bool, error) {
	bit, err := alarmBit(id)
	if err != nil {
		return false, err
	}
	control, err := d.readByte(Control)
	if err != nil {
		return false, err
	}
	return control&bit != 0, nil
}

// AlarmFired reports whether the alarm matched since the flag was last cleared, and clears the flag so the alarm can
// fire again.
func (d *Device) AlarmFired(id AlarmID) (bool, error) {
	// the flag bits sit at the same positions as the enable bits
	bit, err := alarmBit(id)
	if err != nil {
		return false, err
	}
	status, err := d.readByte(Status)
	if err != nil {
		return false, err
	}
	err = d.writeByte(Status, status&^bit)
	if err != nil {
		return false, err
	}
	return status&bit != 0, nil
}

// EnableOscillator turns the oscillator on or off while on battery power, and configures the square wave output. When
// battery is true the square wave keeps running on battery power. Rates above Rate8192Hz are clamped. Turning the
// oscillator on also selects the square wave on the INT/SQW pin.
func (d *Device) EnableOscillator(on, battery bool, rate SquareWaveRate) error {
	if rate > Rate8192Hz {
		rate = Rate8192Hz
	}
	control, err := d.readByte(Control)
	if err != nil {
		return err
	}
	control &^= controlRS
	if battery {
		control |= controlBBSQW
	} else {
		control &^= controlBBSQW
	}
	if on {
		control &^= controlEOSC | controlINTCN
	} else {
		control |= controlEOSC
	}
	control |= byte(rate) << 3
	return d.writeByte(Control, control)
}

// Enable32kHz turns the 32 kHz output pin on or off.
func (d *Device) Enable32kHz(on bool) error {
	status, err := d.readByte(Status)
	if err != nil {
		return err
	}
	// writing 1 to a flag bit leaves it unchanged
	if on {
		status |= statusEN32kHz
	} else {
		status &^= statusEN32kHz
	}
	return d.writeByte(Status, status)
}

// Control reads the control register.
func (d *Device) Control() (ControlFlags, error) {
	b, err := d.readByte(Control)
	if err != nil {
		return ControlFlags{}, err
	}
	return decodeControl(b), nil
}

// SetControl writes the whole control register.
func (d *Device) SetControl(c ControlFlags) error {
	return d.writeByte(Control, c.encode())
}

// Status reads the control/status register.
func (d *Device) Status() (StatusFlags, error) {
	b, err := d.readByte(Status)
	if err != nil {
		return StatusFlags{}, err
	}
	return decodeStatus(b), nil
}

// SetStatus writes the whole control/status register. Clearing a flag acknowledges it.
func (d *Device) SetStatus(s StatusFlags) error {
	return d.writeByte(Status, s.encode())
}

func (d *Device) readRegister(reg uint8, buf []byte) error {
	return d.bus.Tx(d.Address, []byte{reg}, buf)
}

func (d *Device) writeRegister(reg uint8, buf []byte) error {
	w := make([]byte, 1+len(buf))
	w[0] = reg
	copy(w[1:], buf)
	return d.bus.Tx(d.Address, w, nil)
}

func (d *Device) readByte(reg uint8) (byte, error) {
	buf := [1]byte{}
	err := d.readRegister(reg, buf[:])
	return buf[0], err
}

func (d *Device) writeByte(reg uint8, b byte) error {
	return d.bus.Tx(d.Address, []byte{reg, b}, nil)
}
