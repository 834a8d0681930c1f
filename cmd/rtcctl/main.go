// Command rtcctl is an interactive console for a DS3231 connected to a Linux I2C bus.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/shlex"

	"github.com/ajanata/rtc/ds3231"
	"github.com/ajanata/rtc/host/i2c"
)

var (
	busName = flag.String("bus", "", "I2C bus name or path (default: first bus found)")
	addr    = flag.Uint("addr", ds3231.Address, "DS3231 I2C address")
	speed   = flag.Int64("speed", 100000, "I2C bus speed in Hz")
)

func main() {
	flag.Parse()

	bus, err := i2c.Open(*busName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer bus.Close()
	if err := bus.SetSpeed(*speed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot set bus speed: %v\n", err)
	}

	rtc := ds3231.New(bus)
	rtc.Address = uint16(*addr)
	if err := rtc.Configure(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: no DS3231 at 0x%02X on %s: %v\n", *addr, bus, err)
		os.Exit(1)
	}
	fmt.Printf("DS3231 at 0x%02X on %s (type 'help' for available commands, 'quit' to exit)\n", *addr, bus)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		err = run(&rtc, args, os.Stdout)
		if errors.Is(err, errQuit) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}
