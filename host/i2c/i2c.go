// Package i2c opens Linux I2C buses through periph.io for use with the drivers in this module on a host computer such
// as a Raspberry Pi.
package i2c

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*Bus)(nil)

// Bus is an open host I2C bus. It implements drivers.I2C.
type Bus struct {
	bus i2c.BusCloser
}

// Open initializes the host drivers and opens the named bus ("1", "/dev/i2c-1", or "" for the first one found).
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph: %w", err)
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", name, err)
	}
	return &Bus{bus: b}, nil
}

// SetSpeed changes the bus clock, in Hz.
func (b *Bus) SetSpeed(hz int64) error {
	return b.bus.SetSpeed(physic.Frequency(hz) * physic.Hertz)
}

// Tx writes w to the device at addr and then reads len(r) bytes into r, in a single transaction.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

func (b *Bus) String() string {
	return b.bus.String()
}

func (b *Bus) Close() error {
	return b.bus.Close()
}
