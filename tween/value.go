package tween

import "strconv"

// Value is a property value: either a number or an opaque token such as a
// colour or a keyword.
type Value struct {
	num     float64
	text    string
	numeric bool
}

// Number creates a numeric Value.
func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

// Text creates an opaque Value.
func Text(s string) Value {
	return Value{text: s}
}

// Float returns the number held by v and whether v is numeric.
func (v Value) Float() (float64, bool) {
	return v.num, v.numeric
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.numeric
}

// String formats numbers with the shortest representation that round-trips.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.text
}

// Interpolate computes the value between start and goal at eased progress p.
// Numbers are lerped, so overshooting curves can leave [start, goal]. When
// either side is not a number nothing can be blended: start is held until p
// reaches 1, then goal is returned.
func Interpolate(start, goal Value, p float64) Value {
	if start.numeric && goal.numeric {
		if p == 1 {
			return goal
		}
		return Number(start.num + (goal.num-start.num)*p)
	}
	if p >= 1 {
		return goal
	}
	return start
}
