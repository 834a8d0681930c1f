package datetime

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestFixedPoint(t *testing.T) {
	c := qt.New(t)
	dt := New(2000, 1, 1, 0, 0, 0)
	c.Assert(DaysSince2000(2000, 1, 1), qt.Equals, uint16(0))
	c.Assert(dt.Unix(), qt.Equals, uint32(946684800))
	c.Assert(dt.DayOfWeek(), qt.Equals, uint8(6))
	c.Assert(FromUnix(946684800), qt.Equals, dt)
}

func TestYearOffsetNormalized(t *testing.T) {
	c := qt.New(t)
	c.Assert(New(24, 3, 5, 1, 2, 3), qt.Equals, New(2024, 3, 5, 1, 2, 3))
	c.Assert(New(2024, 3, 5, 1, 2, 3).YearOffset(), qt.Equals, uint8(24))
	c.Assert(New(24, 3, 5, 1, 2, 3).Year(), qt.Equals, uint16(2024))
	c.Assert(DaysSince2000(24, 3, 5), qt.Equals, DaysSince2000(2024, 3, 5))
}

func TestRoundTripEveryDay(t *testing.T) {
	c := qt.New(t)
	for y := uint16(2000); y < 2100; y++ {
		for m := uint8(1); m <= 12; m++ {
			for d := uint8(1); d <= DaysInMonth(y, m); d++ {
				dt := New(y, m, d, 23, 59, 58)
				got := FromUnix(dt.Unix())
				if got != dt {
					c.Fatalf("round trip of %v gave %v", dt, got)
				}
			}
		}
	}
}

func TestMatchesStandardLibrary(t *testing.T) {
	c := qt.New(t)
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	for ts := start; ts.Before(end); ts = ts.Add(97*time.Hour + 13*time.Minute + 7*time.Second) {
		dt := FromTime(ts)
		if dt.Unix() != uint32(ts.Unix()) {
			c.Fatalf("%v: Unix() = %d, want %d", dt, dt.Unix(), ts.Unix())
		}
		if !dt.Time().Equal(ts) {
			c.Fatalf("%v: Time() = %v, want %v", dt, dt.Time(), ts)
		}
		if dt.DayOfWeek() != uint8(ts.Weekday()) {
			c.Fatalf("%v: DayOfWeek() = %d, want %d", dt, dt.DayOfWeek(), ts.Weekday())
		}
		if FromUnix(uint32(ts.Unix())) != dt {
			c.Fatalf("FromUnix(%d) = %v, want %v", ts.Unix(), FromUnix(uint32(ts.Unix())), dt)
		}
	}
}

func TestLeapDay(t *testing.T) {
	c := qt.New(t)
	leap := New(2000, 2, 29, 12, 0, 0)
	c.Assert(leap.Validate(), qt.IsNil)
	c.Assert(FromUnix(leap.Unix()), qt.Equals, leap)
	c.Assert(leap.AddDays(1), qt.Equals, New(2000, 3, 1, 12, 0, 0))

	c.Assert(New(2001, 2, 29, 0, 0, 0).Validate(), qt.Equals, ErrDayRange)
	c.Assert(New(2001, 2, 28, 0, 0, 0).AddDays(1), qt.Equals, New(2001, 3, 1, 0, 0, 0))
	c.Assert(DaysInMonth(2001, 2), qt.Equals, uint8(28))
	c.Assert(DaysInMonth(2024, 2), qt.Equals, uint8(29))
}

func TestAdvance(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		from, want DateTime
	}{
		{New(2024, 5, 17, 8, 30, 0), New(2024, 5, 18, 8, 30, 0)},
		{New(2024, 4, 30, 0, 0, 0), New(2024, 5, 1, 0, 0, 0)},
		{New(2023, 12, 31, 23, 59, 59), New(2024, 1, 1, 23, 59, 59)},
		{New(2099, 12, 30, 1, 2, 3), New(2099, 12, 31, 1, 2, 3)},
		{New(2024, 2, 28, 6, 0, 0), New(2024, 2, 29, 6, 0, 0)},
	}
	for _, test := range tests {
		c.Assert(test.from.Add(86400), qt.Equals, test.want, qt.Commentf("from %v", test.from))
	}
	c.Assert(New(2023, 12, 31, 23, 59, 59).Add(1), qt.Equals, New(2024, 1, 1, 0, 0, 0))
}

func TestKnownWeekdays(t *testing.T) {
	c := qt.New(t)
	c.Assert(New(2000, 1, 2, 0, 0, 0).DayOfWeek(), qt.Equals, uint8(time.Sunday))
	c.Assert(New(2024, 7, 4, 0, 0, 0).DayOfWeek(), qt.Equals, uint8(time.Thursday))
	c.Assert(New(2099, 12, 31, 0, 0, 0).DayOfWeek(), qt.Equals, uint8(time.Thursday))
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	c.Assert(New(2099, 12, 31, 23, 59, 59).Validate(), qt.IsNil)
	c.Assert(New(2100, 1, 1, 0, 0, 0).Validate(), qt.Equals, ErrYearRange)
	c.Assert(New(2024, 0, 1, 0, 0, 0).Validate(), qt.Equals, ErrMonthRange)
	c.Assert(New(2024, 13, 1, 0, 0, 0).Validate(), qt.Equals, ErrMonthRange)
	c.Assert(New(2024, 4, 31, 0, 0, 0).Validate(), qt.Equals, ErrDayRange)
	c.Assert(New(2024, 4, 0, 0, 0, 0).Validate(), qt.Equals, ErrDayRange)
	c.Assert(New(2024, 4, 1, 24, 0, 0).Validate(), qt.Equals, ErrTimeRange)
	c.Assert(New(2024, 4, 1, 0, 60, 0).Validate(), qt.Equals, ErrTimeRange)
	c.Assert(DateTime{}.Validate(), qt.Equals, ErrMonthRange)

	c.Assert(FromTime(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)).Validate(), qt.Equals, ErrYearRange)
	c.Assert(FromTime(time.Date(2256, 1, 1, 0, 0, 0, 0, time.UTC)).Validate(), qt.Equals, ErrYearRange)
}

func TestString(t *testing.T) {
	c := qt.New(t)
	c.Assert(New(2006, 1, 2, 15, 4, 5).String(), qt.Equals, "2006-01-02 15:04:05")
}
