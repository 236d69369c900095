package glm

import "math"

// Rad is an angle in radians.
type Rad float32

func DegToRad[T Numeric](deg T) Rad {
	return Rad(float64(deg) * (math.Pi / 180))
}

// Normalize wraps the angle into [0, 2π).
func (r Rad) Normalize() Rad {
	wrapped := math.Mod(float64(r), 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}

	return Rad(wrapped)
}
