// Command rtctimeserver keeps the clock of a data logger on a serial port set from the host's clock. Once a minute (by
// default) it sets the logger clock; in between it reads the logger clock back and reports the drift, optionally
// publishing each reading to an MQTT broker.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ajanata/rtc/host/report"
	"github.com/ajanata/rtc/host/serial"
	"github.com/ajanata/rtc/timeserver"
)

var (
	device   = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud     = flag.Int("baud", serial.DefaultBaud, "Baud rate")
	interval = flag.Duration("interval", 10*time.Second, "Time between commands")
	setEvery = flag.Int("set-every", 6, "Set the logger clock on every n-th command, read it otherwise")
	broker   = flag.String("mqtt", "", "MQTT broker URL to publish readings to, e.g. tcp://localhost:1883")
	topic    = flag.String("topic", "rtc/readings", "MQTT topic")
	clientID = flag.String("client-id", "rtctimeserver", "MQTT client ID")
)

func main() {
	flag.Parse()

	port, err := serial.Open(serial.Config{Device: *device, Baud: *baud})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v. Is the logger connected?\n", err)
		os.Exit(1)
	}
	defer port.Close()

	reporters := []report.Reporter{report.Writer{W: os.Stdout}}
	if *broker != "" {
		m, err := report.DialMQTT(*broker, *clientID, *topic, 5*time.Second)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer m.Close()
		reporters = append(reporters, m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	s := &server{
		name:      *device,
		client:    timeserver.NewClient(port),
		port:      port,
		setEvery:  *setEvery,
		reporters: reporters,
		now:       time.Now,
		out:       os.Stdout,
	}
	fmt.Printf("Serving time to %s every %v\n", *device, *interval)
	if err := s.run(ctx, ticker.C, deviceExists(*device)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nShutting down time server.")
}

func deviceExists(path string) func() bool {
	return func() bool {
		_, err := os.Stat(path)
		return err == nil
	}
}
