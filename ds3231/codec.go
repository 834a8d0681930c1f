package ds3231

import (
	"github.com/ajanata/rtc/bcd"
	"github.com/ajanata/rtc/datetime"
)

// AlarmBits holds the match mask bits of both alarms, one bit per alarm register, in the layout used by the Arduino
// DS3231 libraries: A1M1-A1M4 in bits 0-3 and A2M2-A2M4 in bits 4-6. A set bit means the field is ignored when matching.
type AlarmBits uint8

const (
	A1M1 AlarmBits = 1 << iota // alarm 1 seconds
	A1M2                       // alarm 1 minutes
	A1M3                       // alarm 1 hours
	A1M4                       // alarm 1 day/date
	A2M2                       // alarm 2 minutes
	A2M3                       // alarm 2 hours
	A2M4                       // alarm 2 day/date

	alarm1Bits = A1M1 | A1M2 | A1M3 | A1M4
	alarm2Bits = A2M2 | A2M3 | A2M4
)

// Alarm is the decoded content of one alarm's registers.
type Alarm struct {
	// Day is the day of the month (1-31), or the day of the week (1-7) when ByWeekday is set.
	Day    uint8
	Hour   uint8
	Minute uint8
	// Second is only stored by alarm 1.
	Second uint8
	Mask   AlarmBits

	ByWeekday bool
	// Hour12 selects 12-hour mode, in which case PM marks afternoon hours. An hour above 12 given in 12-hour mode is
	// converted to PM when written.
	Hour12 bool
	PM     bool
}

// decodeTime converts the seven time registers into a DateTime. The weekday register is ignored.
func decodeTime(buf [7]byte) datetime.DateTime {
	hour, h12, pm := decodeHour(buf[2])
	if h12 {
		hour = to24(hour, pm)
	}
	return datetime.New(
		uint16(bcd.Decode(buf[6]))+2000,
		bcd.Decode(buf[5]&0x1F), // bit 7 is the century flag
		bcd.Decode(buf[4]&0x3F),
		hour,
		bcd.Decode(buf[1]&0x7F),
		bcd.Decode(buf[0]&0x7F),
	)
}

// encodeTime converts dt to the seven time registers, leaving the weekday register at 0.
func encodeTime(dt datetime.DateTime) [7]byte {
	return [7]byte{
		bcd.Encode(dt.Second()),
		bcd.Encode(dt.Minute()),
		bcd.Encode(dt.Hour()),
		0,
		bcd.Encode(dt.Day()),
		bcd.Encode(dt.Month()),
		bcd.Encode(dt.YearOffset()),
	}
}

func to24(hour uint8, pm bool) uint8 {
	switch {
	case pm && hour < 12:
		return hour + 12
	case !pm && hour == 12:
		return 0
	}
	return hour
}

func decodeHour(b byte) (hour uint8, h12, pm bool) {
	if b&hour12Bit != 0 {
		return bcd.Decode(b & 0x1F), true, b&hourPMBit != 0
	}
	return bcd.Decode(b & 0x3F), false, false
}

func encodeHour(hour uint8, h12, pm bool) byte {
	if !h12 {
		return bcd.Encode(hour)
	}
	if hour > 12 {
		hour -= 12
		pm = true
	}
	b := bcd.Encode(hour) | hour12Bit
	if pm {
		b |= hourPMBit
	}
	return b
}

func decodeDay(b byte) (day uint8, byWeekday bool) {
	if b&dayOfWeekBit != 0 {
		return bcd.Decode(b & 0x0F), true
	}
	return bcd.Decode(b & 0x3F), false
}

func encodeDay(day uint8, byWeekday bool) byte {
	b := bcd.Encode(day)
	if byWeekday {
		b |= dayOfWeekBit
	}
	return b
}

// maskBit returns the register mask bit for the AlarmBits bit m.
func maskBit(mask, m AlarmBits) byte {
	if mask&m != 0 {
		return alarmMaskBit
	}
	return 0
}

func decodeAlarm1(buf [4]byte) Alarm {
	var a Alarm
	a.Second = bcd.Decode(buf[0] & 0x7F)
	a.Minute = bcd.Decode(buf[1] & 0x7F)
	a.Hour, a.Hour12, a.PM = decodeHour(buf[2] &^ alarmMaskBit)
	a.Day, a.ByWeekday = decodeDay(buf[3] &^ alarmMaskBit)
	for i, m := range [4]AlarmBits{A1M1, A1M2, A1M3, A1M4} {
		if buf[i]&alarmMaskBit != 0 {
			a.Mask |= m
		}
	}
	return a
}

func encodeAlarm1(a Alarm) [4]byte {
	return [4]byte{
		bcd.Encode(a.Second) | maskBit(a.Mask, A1M1),
		bcd.Encode(a.Minute) | maskBit(a.Mask, A1M2),
		encodeHour(a.Hour, a.Hour12, a.PM) | maskBit(a.Mask, A1M3),
		encodeDay(a.Day, a.ByWeekday) | maskBit(a.Mask, A1M4),
	}
}

func decodeAlarm2(buf [3]byte) Alarm {
	var a Alarm
	a.Minute = bcd.Decode(buf[0] & 0x7F)
	a.Hour, a.Hour12, a.PM = decodeHour(buf[1] &^ alarmMaskBit)
	a.Day, a.ByWeekday = decodeDay(buf[2] &^ alarmMaskBit)
	for i, m := range [3]AlarmBits{A2M2, A2M3, A2M4} {
		if buf[i]&alarmMaskBit != 0 {
			a.Mask |= m
		}
	}
	return a
}

func encodeAlarm2(a Alarm) [3]byte {
	return [3]byte{
		bcd.Encode(a.Minute) | maskBit(a.Mask, A2M2),
		encodeHour(a.Hour, a.Hour12, a.PM) | maskBit(a.Mask, A2M3),
		encodeDay(a.Day, a.ByWeekday) | maskBit(a.Mask, A2M4),
	}
}

// SquareWaveRate is the frequency of the square wave output, selected by the RS2:RS1 control bits.
type SquareWaveRate uint8

const (
	Rate1Hz SquareWaveRate = iota
	Rate1024Hz
	Rate4096Hz
	Rate8192Hz
)

// ControlFlags is the decoded control register.
type ControlFlags struct {
	// OscillatorDisabled stops the oscillator while running on battery (the ~EOSC bit).
	OscillatorDisabled bool
	BatterySquareWave  bool
	ConvertTemperature bool
	Rate               SquareWaveRate
	// InterruptControl routes alarm matches to the INT/SQW pin instead of the square wave.
	InterruptControl bool
	Alarm2Interrupt  bool
	Alarm1Interrupt  bool
}

func decodeControl(b byte) ControlFlags {
	return ControlFlags{
		OscillatorDisabled: b&controlEOSC != 0,
		BatterySquareWave:  b&controlBBSQW != 0,
		ConvertTemperature: b&controlCONV != 0,
		Rate:               SquareWaveRate(b&controlRS) >> 3,
		InterruptControl:   b&controlINTCN != 0,
		Alarm2Interrupt:    b&controlA2IE != 0,
		Alarm1Interrupt:    b&controlA1IE != 0,
	}
}

func (c ControlFlags) encode() byte {
	b := byte(c.Rate&0b11) << 3
	if c.OscillatorDisabled {
		b |= controlEOSC
	}
	if c.BatterySquareWave {
		b |= controlBBSQW
	}
	if c.ConvertTemperature {
		b |= controlCONV
	}
	if c.InterruptControl {
		b |= controlINTCN
	}
	if c.Alarm2Interrupt {
		b |= controlA2IE
	}
	if c.Alarm1Interrupt {
		b |= controlA1IE
	}
	return b
}

// StatusFlags is the decoded control/status register.
type StatusFlags struct {
	// OscillatorStopped is set by the chip whenever the oscillator stopped, meaning the time may be wrong.
	OscillatorStopped bool
	Enable32kHz       bool
	// Busy is read-only and ignored when writing.
	Busy        bool
	Alarm2Fired bool
	Alarm1Fired bool
}

func decodeStatus(b byte) StatusFlags {
	return StatusFlags{
		OscillatorStopped: b&statusOSF != 0,
		Enable32kHz:       b&statusEN32kHz != 0,
		Busy:              b&statusBSY != 0,
		Alarm2Fired:       b&statusA2F != 0,
		Alarm1Fired:       b&statusA1F != 0,
	}
}

func (s StatusFlags) encode() byte {
	var b byte
	if s.OscillatorStopped {
		b |= statusOSF
	}
	if s.Enable32kHz {
		b |= statusEN32kHz
	}
	if s.Alarm2Fired {
		b |= statusA2F
	}
	if s.Alarm1Fired {
		b |= statusA1F
	}
	return b
}
