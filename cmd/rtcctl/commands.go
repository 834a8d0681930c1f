package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ajanata/rtc/datetime"
	"github.com/ajanata/rtc/ds3231"
)

var (
	errQuit  = errors.New("quit")
	errUsage = errors.New("wrong arguments (type 'help' for usage)")
)

const layout = "2006-01-02 15:04:05"

var weekdays = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// run executes one console command.
func run(rtc *ds3231.Device, args []string, out io.Writer) error {
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit

	case "help", "?":
		printHelp(out)
		return nil

	case "now":
		dt, err := rtc.Now()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s (unix %d)\n", dt, weekdays[dt.DayOfWeek()%7], dt.Unix())
		return nil

	case "set":
		dt, err := parseTime(args, time.Now())
		if err != nil {
			return err
		}
		if err := rtc.Adjust(dt); err != nil {
			return err
		}
		fmt.Fprintf(out, "Time set to %s\n", dt)
		return nil

	case "temp":
		mc, err := rtc.Temperature()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.2f °C\n", float32(mc)/1000)
		return nil

	case "lost":
		lost, err := rtc.LostPower()
		if err != nil {
			return err
		}
		if lost {
			fmt.Fprintln(out, "Oscillator stopped since the time was set; the time is probably wrong")
		} else {
			fmt.Fprintln(out, "Oscillator OK")
		}
		return nil

	case "alarm":
		id, err := oneAlarm(args)
		if err != nil {
			return err
		}
		a, err := rtc.ReadAlarm(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatAlarm(id, a))
		return nil

	case "setalarm":
		id, a, err := parseAlarm(args)
		if err != nil {
			return err
		}
		return rtc.SetAlarm(id, a)

	case "simple":
		if len(args) != 3 {
			return errUsage
		}
		id, err := parseAlarmID(args[0])
		if err != nil {
			return err
		}
		hour, err := parseUint8(args[1], 23)
		if err != nil {
			return err
		}
		minute, err := parseUint8(args[2], 59)
		if err != nil {
			return err
		}
		return rtc.SetAlarmSimple(id, hour, minute)

	case "on", "off", "enabled", "fired":
		id, err := oneAlarm(args)
		if err != nil {
			return err
		}
		return alarmState(rtc, cmd, id, out)

	case "osc":
		if len(args) != 3 {
			return errUsage
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		battery, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		rate, err := parseUint8(args[2], uint8(ds3231.Rate8192Hz))
		if err != nil {
			return err
		}
		return rtc.EnableOscillator(on, battery, ds3231.SquareWaveRate(rate))

	case "32k":
		if len(args) != 1 {
			return errUsage
		}
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return rtc.Enable32kHz(on)

	case "control":
		c, err := rtc.Control()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%+v\n", c)
		return nil

	case "status":
		s, err := rtc.Status()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%+v\n", s)
		return nil
	}
	return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
}

func alarmState(rtc *ds3231.Device, cmd string, id ds3231.AlarmID, out io.Writer) error {
	switch cmd {
	case "on":
		return rtc.EnableAlarm(id)
	case "off":
		return rtc.DisableAlarm(id)
	case "enabled":
		on, err := rtc.AlarmEnabled(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Alarm %d enabled: %v\n", id, on)
	case "fired":
		fired, err := rtc.AlarmFired(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Alarm %d fired: %v\n", id, fired)
	}
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `
Available commands:
  now                              - Show the current time
  set now|<unix>|"<date> <time>"   - Set the time (date format 2006-01-02 15:04:05, UTC)
  temp                             - Show the temperature
  lost                             - Check the oscillator stop flag
  alarm <1|2>                      - Show an alarm
  setalarm <1|2> <day> <hour> <min> [sec] [-mask N] [-weekday] [-12h] [-pm]
                                   - Set an alarm (mask bits: A1M1-A1M4 = 1,2,4,8; A2M2-A2M4 = 16,32,64)
  simple <1|2> <hour> <min>        - Set a daily alarm
  on|off <1|2>                     - Enable or disable an alarm
  enabled <1|2>                    - Check whether an alarm is enabled
  fired <1|2>                      - Check and clear an alarm's flag
  osc <on|off> <battery on|off> <rate 0-3>
                                   - Configure the oscillator and square wave
  32k <on|off>                     - Enable or disable the 32 kHz output
  control, status                  - Show the control and status registers
  quit/exit/q                      - Exit the program

`)
}

// parseTime accepts "now", a unix time, a single "date time" argument or separate date and time arguments.
func parseTime(args []string, now time.Time) (datetime.DateTime, error) {
	if len(args) == 0 || len(args) > 2 {
		return datetime.DateTime{}, errUsage
	}
	s := strings.Join(args, " ")
	if s == "now" {
		return datetime.FromTime(now), nil
	}
	if unix, err := strconv.ParseUint(s, 10, 32); err == nil {
		return datetime.FromUnix(uint32(unix)), nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return datetime.DateTime{}, fmt.Errorf("bad time %q: %w", s, err)
	}
	return datetime.FromTime(t), nil
}

func parseAlarm(args []string) (ds3231.AlarmID, ds3231.Alarm, error) {
	var a ds3231.Alarm
	fs := flag.NewFlagSet("setalarm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	mask := fs.Uint("mask", 0, "alarm mask bits")
	fs.BoolVar(&a.ByWeekday, "weekday", false, "day is a day of the week (1-7)")
	fs.BoolVar(&a.Hour12, "12h", false, "12-hour mode")
	fs.BoolVar(&a.PM, "pm", false, "afternoon, in 12-hour mode")
	// flags may come before, between or after the numbers
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return 0, a, err
		}
		if fs.NArg() == 0 {
			break
		}
		pos = append(pos, fs.Arg(0))
		args = fs.Args()[1:]
	}
	args = pos
	if len(args) != 4 && len(args) != 5 {
		return 0, a, errUsage
	}
	if *mask > 0x7F {
		return 0, a, fmt.Errorf("mask %d out of range", *mask)
	}
	a.Mask = ds3231.AlarmBits(*mask)

	id, err := parseAlarmID(args[0])
	if err != nil {
		return 0, a, err
	}
	maxDay := uint8(31)
	if a.ByWeekday {
		maxDay = 7
	}
	fields := []struct {
		dst *uint8
		max uint8
	}{{&a.Day, maxDay}, {&a.Hour, 23}, {&a.Minute, 59}, {&a.Second, 59}}
	for i, s := range args[1:] {
		v, err := parseUint8(s, fields[i].max)
		if err != nil {
			return 0, a, err
		}
		*fields[i].dst = v
	}
	return id, a, nil
}

func formatAlarm(id ds3231.AlarmID, a ds3231.Alarm) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Alarm %d: ", id)
	if a.ByWeekday {
		fmt.Fprintf(&b, "weekday %d, ", a.Day)
	} else {
		fmt.Fprintf(&b, "date %d, ", a.Day)
	}
	fmt.Fprintf(&b, "%02d:%02d", a.Hour, a.Minute)
	if id == ds3231.AlarmOne {
		fmt.Fprintf(&b, ":%02d", a.Second)
	}
	if a.Hour12 {
		if a.PM {
			b.WriteString(" PM")
		} else {
			b.WriteString(" AM")
		}
	}
	fmt.Fprintf(&b, ", mask %07b", uint8(a.Mask))
	return b.String()
}

func oneAlarm(args []string) (ds3231.AlarmID, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	return parseAlarmID(args[0])
}

func parseAlarmID(s string) (ds3231.AlarmID, error) {
	switch s {
	case "1":
		return ds3231.AlarmOne, nil
	case "2":
		return ds3231.AlarmTwo, nil
	}
	return 0, ds3231.ErrInvalidAlarm
}

func parseUint8(s string, max uint8) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v > uint64(max) {
		return 0, fmt.Errorf("%q: want a number from 0 to %d", s, max)
	}
	return uint8(v), nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
