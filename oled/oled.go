/*
Package oled renders frames on SSD1306 and SH1106 class monochrome OLED
displays over I2C.

The packed page-major frame layout matches the display's GDDRAM layout, so
frames are written to the controller as-is with no per-pixel conversion.
*/
package oled

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Sink drives one display. It implements the bitreel.FrameSink interface.
type Sink struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// NewSink opens the named I2C bus (empty for the first available one) and
// initializes a width by height display on it.
func NewSink(busName string, width, height int) (*Sink, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, err
	}

	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height

	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, err
	}

	return &Sink{
		bus: bus,
		dev: dev,
	}, nil
}

// Render writes one packed frame to the display.
func (s *Sink) Render(packed []byte, width, height int) error {
	if len(packed) != width*height/8 {
		return fmt.Errorf("oled: packed buffer is %d bytes, want %d", len(packed), width*height/8)
	}
	_, err := s.dev.Write(packed)
	return err
}

// Halt blanks the display and releases the bus.
func (s *Sink) Halt() error {
	if err := s.dev.Halt(); err != nil {
		s.bus.Close()
		return err
	}
	return s.bus.Close()
}
