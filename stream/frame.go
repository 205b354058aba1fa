package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxPixels is the largest frame the wire format can describe.
const MaxPixels = math.MaxUint16

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a Frame of n pixels filled with background.
func NewFrame(n int, background colorful.Color) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	for i := range f.pixels {
		f.pixels[i] = background
	}
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour at i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// SetPixel sets the colour at i. Pixels off the strip are dropped.
func (f *Frame) SetPixel(i int, c colorful.Color) {
	if i < 0 || i >= len(f.pixels) {
		return
	}
	f.pixels[i] = c
}

// MarshalBinary converts a Frame into binary data.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > MaxPixels {
		return nil, fmt.Errorf("frame of %d pixels exceeds %d", len(f.pixels), MaxPixels)
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
