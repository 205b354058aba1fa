package tween

import "fmt"

// TransformProperty is the style attribute that receives the combined
// spatial transform.
const TransformProperty = "transform"

type bindingKind int

const (
	bindRaw bindingKind = iota
	bindTransform
	bindDirect
	bindLength
)

var propertyKinds = map[string]bindingKind{
	"x":               bindTransform,
	"y":               bindTransform,
	"rotation":        bindTransform,
	"scale":           bindTransform,
	"scaleX":          bindTransform,
	"scaleY":          bindTransform,
	"opacity":         bindDirect,
	"backgroundColor": bindDirect,
	"color":           bindDirect,
	"width":           bindLength,
	"height":          bindLength,
}

func kindOf(property string) bindingKind {
	return propertyKinds[property]
}

// binding ties one goal property to its captured start value and write path.
type binding struct {
	property string
	kind     bindingKind
	start    Value
	goal     Value
}

// readStart captures the current value of property on target. Spatial
// properties come from the transform record, with scales defaulting to 1 and
// everything else to 0.
func readStart(target Target, property string, kind bindingKind) (Value, error) {
	if kind == bindTransform {
		if v, ok := target.Transform().Get(property); ok {
			return Number(v), nil
		}
		switch property {
		case "scale", "scaleX", "scaleY":
			return Number(1), nil
		}
		return Number(0), nil
	}
	v, err := target.ComputedValue(property)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s: %v", ErrMissingStartValue, property, err)
	}
	return v, nil
}

// write stores v for a single binding. Spatial properties only update the
// transform record; it reports true so the caller can flush once.
func (b *binding) write(target Target, v Value) (bool, error) {
	switch b.kind {
	case bindTransform:
		f, _ := v.Float()
		target.Transform().Set(b.property, f)
		return true, nil
	case bindLength:
		s := v.String()
		if v.IsNumber() {
			s += "px"
		}
		return false, target.SetStyle(b.property, s)
	default:
		return false, target.SetStyle(b.property, v.String())
	}
}

func flushTransform(target Target) error {
	return target.SetStyle(TransformProperty, target.Transform().String())
}

// Apply writes a single property to target the way a tween does, flushing
// the combined transform immediately for spatial properties.
func Apply(target Target, property string, v Value) error {
	b := binding{property: property, kind: kindOf(property)}
	if b.kind == bindTransform && !v.IsNumber() {
		return fmt.Errorf("%w: %s needs a number, got %q", ErrInvalidConfig, property, v.String())
	}
	touched, err := b.write(target, v)
	if err != nil || !touched {
		return err
	}
	return flushTransform(target)
}
