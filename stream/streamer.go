package stream

import (
	"log"

	"github.com/lucasb-eyer/go-colorful"
)

// A Publisher delivers rendered frames to a display.
type Publisher interface {
	Publish(f *Frame) error
}

// Streamer renders fixtures into frames and streams them to a Publisher.
type Streamer struct {
	pixels     int
	background colorful.Color
	fixtures   []*Fixture
	publisher  Publisher
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(pixels int, background colorful.Color, publisher Publisher) *Streamer {
	s := new(Streamer)
	s.pixels = pixels
	s.background = background
	s.publisher = publisher
	return s
}

// Add appends a fixture; later fixtures paint over earlier ones.
func (s *Streamer) Add(f *Fixture) {
	s.fixtures = append(s.fixtures, f)
}

// Replace swaps the whole fixture list.
func (s *Streamer) Replace(fixtures []*Fixture) {
	s.fixtures = append([]*Fixture(nil), fixtures...)
}

// Fixtures returns the fixtures in paint order.
func (s *Streamer) Fixtures() []*Fixture {
	return s.fixtures
}

// CalculateFrame renders every fixture over the strip background.
func (s *Streamer) CalculateFrame() *Frame {
	f := NewFrame(s.pixels, s.background)
	for _, fx := range s.fixtures {
		fx.Render(f)
	}
	return f
}

// SendFrame renders a frame and publishes it. Failures are logged so one
// dropped frame does not stop the stream.
func (s *Streamer) SendFrame() {
	if err := s.publisher.Publish(s.CalculateFrame()); err != nil {
		log.Printf("stream: publish frame: %v", err)
	}
}
