//go:build !tinygo

package display

import (
	"fmt"
	"image"
	"image/color"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Panel adapts a periph.io SSD1306 to drivers.Displayer so the same drawing
// code runs on Linux and on the microcontroller.
type Panel struct {
	dev *ssd1306.Dev
	img *image1bit.VerticalLSB
}

// NewPanel opens an SSD1306 at 0x3C on an I2C bus.
func NewPanel(bus i2c.Bus, width, height int) (*Panel, error) {
	opts := ssd1306.DefaultOpts
	opts.W = width
	opts.H = height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return &Panel{
		dev: dev,
		img: image1bit.NewVerticalLSB(dev.Bounds()),
	}, nil
}

func (p *Panel) Size() (x, y int16) {
	b := p.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (p *Panel) SetPixel(x, y int16, c color.RGBA) {
	p.img.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
}

func (p *Panel) Display() error {
	return p.dev.Draw(p.dev.Bounds(), p.img, image.Point{})
}

// ClearBuffer blanks the in-memory image.
func (p *Panel) ClearBuffer() {
	clear(p.img.Pix)
}

// Halt turns the panel off.
func (p *Panel) Halt() error {
	return p.dev.Halt()
}
