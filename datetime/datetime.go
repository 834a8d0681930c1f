// Package datetime converts between civil calendar time and unix seconds using the same arithmetic as the registers of
// 2000-2099 real-time clock chips. It ignores time zones, DST and leap seconds.
//
// The leap year rule is year%4 == 0 with no century exception, which is exact for the supported 2000-2099 window only.
// Dates from 2100 on are not representable by the chips and are rejected by Validate.
package datetime

import (
	"errors"
	"fmt"
	"time"
)

// SecondsFrom1970To2000 is the unix time of 2000-01-01 00:00:00 UTC.
const SecondsFrom1970To2000 = 946684800

const secondsPerDay = 86400

var daysInMonth = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

var (
	ErrYearRange  = errors.New("datetime: year outside 2000-2099")
	ErrMonthRange = errors.New("datetime: month outside 1-12")
	ErrDayRange   = errors.New("datetime: day outside month")
	ErrTimeRange  = errors.New("datetime: hour, minute or second out of range")
)

// DateTime is a calendar time in the 2000-2099 window. The zero value is not a valid date; use New, FromUnix or
// FromTime.
type DateTime struct {
	yOff   uint8 // years since 2000
	month  uint8
	day    uint8
	hour   uint8
	minute uint8
	second uint8
}

// New returns the given calendar time. The year may be given in full (2024) or as an offset from 2000 (24). No range
// checking is performed; see Validate.
func New(year uint16, month, day, hour, minute, second uint8) DateTime {
	if year >= 2000 {
		year -= 2000
	}
	return DateTime{
		yOff:   uint8(year),
		month:  month,
		day:    day,
		hour:   hour,
		minute: minute,
		second: second,
	}
}

// FromUnix returns the calendar time of the unix time t. Times before 2000 wrap around and give meaningless results.
func FromUnix(t uint32) DateTime {
	t -= SecondsFrom1970To2000

	var dt DateTime
	dt.second = uint8(t % 60)
	t /= 60
	dt.minute = uint8(t % 60)
	t /= 60
	dt.hour = uint8(t % 24)
	days := uint16(t / 24)

	var leap uint16
	for dt.yOff = 0; ; dt.yOff++ {
		leap = 0
		if dt.yOff%4 == 0 {
			leap = 1
		}
		if days < 365+leap {
			break
		}
		days -= 365 + leap
	}
	for dt.month = 1; ; dt.month++ {
		n := uint16(daysInMonth[dt.month-1])
		if leap == 1 && dt.month == 2 {
			n++
		}
		if days < n {
			break
		}
		days -= n
	}
	dt.day = uint8(days) + 1
	return dt
}

// FromTime returns the calendar time of t in UTC, truncated to the second. Years that cannot be stored give a DateTime
// that fails Validate.
func FromTime(t time.Time) DateTime {
	t = t.UTC()
	year := t.Year()
	if year < 2000 || year > 2255 {
		year = 2255
	}
	return New(uint16(year), uint8(t.Month()), uint8(t.Day()), uint8(t.Hour()), uint8(t.Minute()), uint8(t.Second()))
}

// DaysSince2000 returns the number of days from 2000-01-01 to the given date. The year may be given in full or as an
// offset from 2000.
func DaysSince2000(year uint16, month, day uint8) uint16 {
	if year >= 2000 {
		year -= 2000
	}
	days := uint16(day)
	for i := uint8(1); i < month; i++ {
		days += uint16(daysInMonth[i-1])
	}
	if month > 2 && year%4 == 0 {
		days++
	}
	return days + 365*year + (year+3)/4 - 1
}

// DaysInMonth returns the length of month in year, using the same leap rule as the rest of the package.
func DaysInMonth(year uint16, month uint8) uint8 {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && year%4 == 0 {
		return 29
	}
	return daysInMonth[month-1]
}

func (dt DateTime) Year() uint16  { return uint16(dt.yOff) + 2000 }
func (dt DateTime) Month() uint8  { return dt.month }
func (dt DateTime) Day() uint8    { return dt.day }
func (dt DateTime) Hour() uint8   { return dt.hour }
func (dt DateTime) Minute() uint8 { return dt.minute }
func (dt DateTime) Second() uint8 { return dt.second }

// YearOffset returns the number of years since 2000, as stored in the chip's year register.
func (dt DateTime) YearOffset() uint8 { return dt.yOff }

// Unix returns the number of seconds since 1970-01-01 00:00:00 UTC.
func (dt DateTime) Unix() uint32 {
	days := uint32(DaysSince2000(uint16(dt.yOff), dt.month, dt.day))
	t := ((days*24+uint32(dt.hour))*60+uint32(dt.minute))*60 + uint32(dt.second)
	return t + SecondsFrom1970To2000
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday, the same numbering as time.Weekday.
func (dt DateTime) DayOfWeek() uint8 {
	days := DaysSince2000(uint16(dt.yOff), dt.month, dt.day)
	// 2000-01-01 (day 0) was a Saturday
	return uint8((days + 6) % 7)
}

// Add returns dt advanced by the given number of seconds.
func (dt DateTime) Add(seconds uint32) DateTime {
	return FromUnix(dt.Unix() + seconds)
}

// AddDays returns dt advanced by n whole days.
func (dt DateTime) AddDays(n uint32) DateTime {
	return dt.Add(n * secondsPerDay)
}

// Time returns dt as a UTC time.Time.
func (dt DateTime) Time() time.Time {
	return time.Date(int(dt.Year()), time.Month(dt.month), int(dt.day), int(dt.hour), int(dt.minute), int(dt.second), 0,
		time.UTC)
}

// Validate reports whether dt is a real calendar time inside the supported window.
func (dt DateTime) Validate() error {
	if dt.yOff > 99 {
		return ErrYearRange
	}
	if dt.month < 1 || dt.month > 12 {
		return ErrMonthRange
	}
	if dt.day < 1 || dt.day > DaysInMonth(uint16(dt.yOff), dt.month) {
		return ErrDayRange
	}
	if dt.hour > 23 || dt.minute > 59 || dt.second > 59 {
		return ErrTimeRange
	}
	return nil
}

func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", dt.Year(), dt.month, dt.day, dt.hour, dt.minute, dt.second)
}
