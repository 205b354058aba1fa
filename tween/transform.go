package tween

import (
	"fmt"
	"strings"
)

type transformField uint8

const (
	fieldX transformField = 1 << iota
	fieldY
	fieldRotation
	fieldScale
	fieldScaleX
	fieldScaleY
)

var transformFields = map[string]transformField{
	"x":        fieldX,
	"y":        fieldY,
	"rotation": fieldRotation,
	"scale":    fieldScale,
	"scaleX":   fieldScaleX,
	"scaleY":   fieldScaleY,
}

// Transform accumulates the spatial properties of one target so they can be
// written as a single combined transform. Targets own their record; tweens
// only read and update it.
type Transform struct {
	values map[transformField]float64
	set    transformField
}

// Get returns a spatial property and whether it has been set.
func (t *Transform) Get(property string) (float64, bool) {
	f, ok := transformFields[property]
	if !ok || t.set&f == 0 {
		return 0, false
	}
	return t.values[f], true
}

// Set records a spatial property. Unknown names are ignored.
func (t *Transform) Set(property string, v float64) {
	f, ok := transformFields[property]
	if !ok {
		return
	}
	if t.values == nil {
		t.values = make(map[transformField]float64)
	}
	t.values[f] = v
	t.set |= f
}

// Translation returns x and y, defaulting unset axes to 0.
func (t *Transform) Translation() (x, y float64) {
	return t.values[fieldX], t.values[fieldY]
}

// Rotation returns the rotation in degrees, 0 if unset.
func (t *Transform) Rotation() float64 {
	return t.values[fieldRotation]
}

// ScaleFactors returns the effective horizontal and vertical scale. A uniform
// scale wins over scaleX and scaleY; unset factors are 1.
func (t *Transform) ScaleFactors() (sx, sy float64) {
	if t.set&fieldScale != 0 {
		s := t.values[fieldScale]
		return s, s
	}
	sx, sy = 1, 1
	if t.set&fieldScaleX != 0 {
		sx = t.values[fieldScaleX]
	}
	if t.set&fieldScaleY != 0 {
		sy = t.values[fieldScaleY]
	}
	return sx, sy
}

// String serialises the record as translate, then rotate, then scale.
func (t *Transform) String() string {
	var parts []string
	if t.set&(fieldX|fieldY) != 0 {
		x, y := t.Translation()
		parts = append(parts, fmt.Sprintf("translate(%spx, %spx)", formatFloat(x), formatFloat(y)))
	}
	if t.set&fieldRotation != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%sdeg)", formatFloat(t.Rotation())))
	}
	switch {
	case t.set&fieldScale != 0:
		parts = append(parts, fmt.Sprintf("scale(%s)", formatFloat(t.values[fieldScale])))
	case t.set&(fieldScaleX|fieldScaleY) != 0:
		sx, sy := t.ScaleFactors()
		parts = append(parts, fmt.Sprintf("scale(%s, %s)", formatFloat(sx), formatFloat(sy)))
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return Number(f).String()
}
