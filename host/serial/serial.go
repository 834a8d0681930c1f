// Package serial opens the USB serial link to a data logger running the time server firmware.
package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

const (
	// DefaultBaud matches the logger firmware.
	DefaultBaud = 9600

	// DefaultReadTimeout bounds how long a command waits for its reply.
	DefaultReadTimeout = 2 * time.Second
)

// Config selects the device and line settings. Zero fields take the defaults above.
type Config struct {
	Device      string // e.g. /dev/ttyUSB0 or COM3
	Baud        int
	ReadTimeout time.Duration
}

// Port is an open serial link. It satisfies io.ReadWriteCloser.
type Port struct {
	port   *serial.Port
	device string
}

// Open opens the device named in cfg.
func Open(cfg Config) (*Port, error) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}
	return &Port{port: p, device: cfg.Device}, nil
}

func (p *Port) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *Port) Write(b []byte) (int, error) { return p.port.Write(b) }
func (p *Port) Close() error                { return p.port.Close() }

// Flush drops received bytes that have not been read yet, such as a reply that arrived after its command timed out.
func (p *Port) Flush() error {
	return p.port.Flush()
}

func (p *Port) String() string {
	return p.device
}
