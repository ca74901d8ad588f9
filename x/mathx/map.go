package mathx

import "golang.org/x/exp/constraints"

// Map maps x from [inMin,inMax] onto [outMin,outMax] with 64-bit
// intermediates. Division truncates toward zero and x is not clamped, so
// values outside the input range extrapolate. A degenerate input range
// yields outMin.
func Map[T constraints.Integer](x, inMin, inMax, outMin, outMax T) int64 {
	if inMax == inMin {
		return int64(outMin)
	}
	num := (int64(x) - int64(inMin)) * (int64(outMax) - int64(outMin))
	return int64(outMin) + num/(int64(inMax)-int64(inMin))
}
