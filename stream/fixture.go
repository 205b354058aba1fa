package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledtween/tween"
)

var (
	// ErrNoValue indicates a style property that has never been set and has
	// no default.
	ErrNoValue = errors.New("no value")
	// ErrBadStyle indicates a style value the fixture cannot display.
	ErrBadStyle = errors.New("bad style value")
)

const (
	defaultColour     = "#ffffff"
	defaultBackground = "#000000"
)

// A Fixture is a region of the strip that behaves like a styled element:
// a background filling the region and a lit segment that can be moved,
// stretched, recoloured and faded by tweens.
type Fixture struct {
	Name   string
	Offset int
	Length int

	style     map[string]string
	transform tween.Transform
}

// NewFixture creates a Fixture covering length pixels from offset.
func NewFixture(name string, offset, length int) *Fixture {
	f := new(Fixture)
	f.Name = name
	f.Offset = offset
	f.Length = length
	f.style = make(map[string]string)
	return f
}

// Style returns the raw value last written to property.
func (f *Fixture) Style(property string) (string, bool) {
	v, ok := f.style[property]
	return v, ok
}

// Transform returns the fixture's spatial record.
func (f *Fixture) Transform() *tween.Transform {
	return &f.transform
}

// SetStyle stores a style value, rejecting ones that cannot be rendered.
func (f *Fixture) SetStyle(property, value string) error {
	if err := f.Check(property, value); err != nil {
		return err
	}
	f.style[property] = value
	return nil
}

// Check reports whether value can be rendered for property. Colours must be
// hex; opacity and sizes must be numbers with an optional px suffix.
func (f *Fixture) Check(property, value string) error {
	switch property {
	case "color", "backgroundColor":
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("%w: %s %q: %v", ErrBadStyle, property, value, err)
		}
	case "opacity", "width", "height":
		if _, err := parseLength(value); err != nil {
			return fmt.Errorf("%w: %s %q", ErrBadStyle, property, value)
		}
	}
	return nil
}

// ComputedValue returns the effective value of property, applying the
// fixture's defaults.
func (f *Fixture) ComputedValue(property string) (tween.Value, error) {
	raw, set := f.style[property]
	switch property {
	case "opacity":
		return f.number(raw, set, 1)
	case "width":
		return f.number(raw, set, float64(f.Length))
	case "height":
		return f.number(raw, set, 1)
	case "color":
		if !set {
			raw = defaultColour
		}
		return tween.Text(raw), nil
	case "backgroundColor":
		if !set {
			raw = defaultBackground
		}
		return tween.Text(raw), nil
	}
	if !set {
		return tween.Value{}, fmt.Errorf("%w: %s", ErrNoValue, property)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return tween.Number(n), nil
	}
	return tween.Text(raw), nil
}

func (f *Fixture) number(raw string, set bool, def float64) (tween.Value, error) {
	if !set {
		return tween.Number(def), nil
	}
	n, err := parseLength(raw)
	if err != nil {
		return tween.Value{}, err
	}
	return tween.Number(n), nil
}

// Render paints the fixture onto frame.
func (f *Fixture) Render(frame *Frame) {
	bg := f.colour("backgroundColor", defaultBackground)
	fg := f.colour("color", defaultColour)
	opacity := math.Max(0, math.Min(1, f.float("opacity", 1)))
	width := f.float("width", float64(f.Length))

	x, _ := f.transform.Translation()
	sx, _ := f.transform.ScaleFactors()
	if rot := f.transform.Rotation(); rot != 0 {
		h, c, l := fg.Hcl()
		fg = colorful.Hcl(math.Mod(h+rot+360, 360), c, l).Clamped()
	}
	lit := bg.BlendRgb(fg, opacity)

	for i := 0; i < f.Length; i++ {
		frame.SetPixel(f.Offset+i, bg)
	}
	start := int(math.Round(x))
	end := start + int(math.Round(width*sx))
	for i := start; i < end; i++ {
		if i >= 0 && i < f.Length {
			frame.SetPixel(f.Offset+i, lit)
		}
	}
}

func (f *Fixture) colour(property, def string) colorful.Color {
	v, ok := f.style[property]
	if !ok {
		v = def
	}
	c, err := colorful.Hex(v)
	if err != nil {
		c, _ = colorful.Hex(def)
	}
	return c
}

func (f *Fixture) float(property string, def float64) float64 {
	v, ok := f.style[property]
	if !ok {
		return def
	}
	n, err := parseLength(v)
	if err != nil {
		return def
	}
	return n
}

// parseLength reads a number with an optional px suffix.
func parseLength(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
