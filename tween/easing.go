package tween

import (
	"fmt"
	"strings"

	"github.com/fogleman/ease"
)

// Style selects the shape of an easing curve.
// Quad is the zero value so an empty Info eases with Quad.
type Style int

const (
	Quad Style = iota
	Linear
	Sine
	Back
	Bounce
	Cubic
	Quart
	Quint
	Exponential
	Circular
	Elastic
)

var styleNames = [...]string{
	Quad:        "Quad",
	Linear:      "Linear",
	Sine:        "Sine",
	Back:        "Back",
	Bounce:      "Bounce",
	Cubic:       "Cubic",
	Quart:       "Quart",
	Quint:       "Quint",
	Exponential: "Exponential",
	Circular:    "Circular",
	Elastic:     "Elastic",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// Styles returns every easing style in declaration order.
func Styles() []Style {
	out := make([]Style, len(styleNames))
	for i := range styleNames {
		out[i] = Style(i)
	}
	return out
}

// ParseStyle resolves a style name, ignoring case.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "expo":
		return Exponential, nil
	case "circ":
		return Circular, nil
	}
	for i, n := range styleNames {
		if strings.EqualFold(n, name) {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("%w: style %q", ErrUnknownEasing, name)
}

// Direction selects which end of the curve the easing is applied to.
// Out is the zero value.
type Direction int

const (
	Out Direction = iota
	In
	InOut
)

func (d Direction) String() string {
	switch d {
	case Out:
		return "Out"
	case In:
		return "In"
	case InOut:
		return "InOut"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Directions returns every easing direction.
func Directions() []Direction {
	return []Direction{In, Out, InOut}
}

// ParseDirection resolves a direction name, ignoring case.
func ParseDirection(name string) (Direction, error) {
	for _, d := range Directions() {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: direction %q", ErrUnknownEasing, name)
}

// An EasingFunc maps linear progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

// curves holds In, Out and InOut for each style, indexed by Direction.
var curves = map[Style][3]EasingFunc{
	Quad:        {Out: ease.OutQuad, In: ease.InQuad, InOut: ease.InOutQuad},
	Linear:      {Out: ease.Linear, In: ease.Linear, InOut: ease.Linear},
	Sine:        {Out: ease.OutSine, In: ease.InSine, InOut: ease.InOutSine},
	Back:        {Out: ease.OutBack, In: ease.InBack, InOut: ease.InOutBack},
	Bounce:      {Out: outBounce, In: inBounce, InOut: inOutBounce},
	Cubic:       {Out: ease.OutCubic, In: ease.InCubic, InOut: ease.InOutCubic},
	Quart:       {Out: ease.OutQuart, In: ease.InQuart, InOut: ease.InOutQuart},
	Quint:       {Out: ease.OutQuint, In: ease.InQuint, InOut: ease.InOutQuint},
	Exponential: {Out: ease.OutExpo, In: ease.InExpo, InOut: ease.InOutExpo},
	Circular:    {Out: ease.OutCirc, In: ease.InCirc, InOut: ease.InOutCirc},
	Elastic:     {Out: ease.OutElastic, In: ease.InElastic, InOut: ease.InOutElastic},
}

// outBounce settles with three rebounds of decreasing height, landing at
// 1/2.75, 2/2.75 and 2.5/2.75.
func outBounce(t float64) float64 {
	const k = 7.5625
	switch {
	case t < 1/2.75:
		return k * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return k*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return k*t*t + 0.9375
	}
	t -= 2.625 / 2.75
	return k*t*t + 0.984375
}

func inBounce(t float64) float64 {
	return 1 - outBounce(1-t)
}

func inOutBounce(t float64) float64 {
	if t < 0.5 {
		return inBounce(t*2) * 0.5
	}
	return outBounce(t*2-1)*0.5 + 0.5
}

// Lookup returns the easing curve for a style and direction. The returned
// function is pinned to exactly 0 at t <= 0 and exactly 1 at t >= 1; interior
// points may leave [0,1] for Back and Elastic.
func Lookup(style Style, dir Direction) (EasingFunc, error) {
	set, ok := curves[style]
	if !ok || dir < 0 || int(dir) >= len(set) {
		return nil, fmt.Errorf("%w: %v/%v", ErrUnknownEasing, style, dir)
	}
	f := set[dir]
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return f(t)
	}, nil
}

// Ease applies the curve for style and direction to t.
func Ease(style Style, dir Direction, t float64) (float64, error) {
	f, err := Lookup(style, dir)
	if err != nil {
		return t, err
	}
	return f(t), nil
}
